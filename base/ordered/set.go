// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ordered

import "iter"

// Set is a set remembering the order in which elements have first been added.
type Set[T comparable] struct {
	els  []T
	seen map[T]bool
}

// NewSet returns a set containing the given elements.
func NewSet[T comparable](els ...T) *Set[T] {
	s := &Set[T]{seen: make(map[T]bool)}
	s.Add(els...)
	return s
}

// Add elements to the set. Elements already in the set are ignored.
// Returns the number of elements actually added.
func (s *Set[T]) Add(els ...T) int {
	n := 0
	for _, el := range els {
		if s.seen[el] {
			continue
		}
		s.seen[el] = true
		s.els = append(s.els, el)
		n++
	}
	return n
}

// Contains returns true if the element is in the set.
func (s *Set[T]) Contains(el T) bool {
	return s.seen[el]
}

// All returns an iterator over the elements of the set.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, el := range s.els {
			if !yield(el) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements in order.
func (s *Set[T]) Slice() []T {
	return append([]T{}, s.els...)
}

// Size returns the number of elements in the set.
func (s *Set[T]) Size() int {
	return len(s.els)
}
