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

// Package uname provides unique names.
package uname

import (
	"fmt"
	"strings"
	"unicode"
)

// Unique generates unique names.
type Unique struct {
	next  map[string]int
	taken map[string]bool
}

// New name generator.
func New() *Unique {
	return &Unique{
		next:  make(map[string]int),
		taken: make(map[string]bool),
	}
}

// Sanitize replaces all the characters that cannot appear in an identifier by an underscore.
// Consecutive invalid characters are collapsed into a single underscore,
// so that "lib::add" becomes "lib_add".
func Sanitize(s string) string {
	var b strings.Builder
	lastInvalid := false
	for i, r := range s {
		valid := r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if valid {
			b.WriteRune(r)
			lastInvalid = false
			continue
		}
		if !lastInvalid {
			b.WriteRune('_')
		}
		lastInvalid = true
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// Name returns a unique name given a desired base name.
// The base name is first sanitized. If it is available, it is returned directly.
// Else, a unique numerical suffix is appended.
func (n *Unique) Name(root string) string {
	root = Sanitize(root)
	if !n.taken[root] {
		n.taken[root] = true
		n.next[root] = 1
		return root
	}
	for {
		index := n.next[root]
		if index == 0 {
			index = 1
		}
		n.next[root] = index + 1
		name := fmt.Sprintf("%s%d", root, index)
		if !n.taken[name] {
			n.taken[name] = true
			return name
		}
	}
}
