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

package typeexpr

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
)

type (
	// Dim is an axis of a shape: either a literal size or a symbol.
	Dim struct {
		Size   int
		Symbol string
	}

	// Shape annotation of a tensor.
	// A variadic shape has an unknown rank and no dimensions.
	Shape struct {
		Variadic bool
		Dims     []Dim
	}
)

// Size returns a dimension of a literal size.
func Size(n int) Dim {
	return Dim{Size: n}
}

// Symbol returns a symbolic dimension.
func Symbol(name string) Dim {
	return Dim{Symbol: name}
}

// IsSymbolic returns true if the dimension is a symbol.
func (d Dim) IsSymbolic() bool {
	return d.Symbol != ""
}

func (d Dim) String() string {
	if d.IsSymbolic() {
		return d.Symbol
	}
	return strconv.Itoa(d.Size)
}

// Dims returns a shape with a fixed rank.
func Dims(dims ...Dim) Shape {
	return Shape{Dims: dims}
}

// Sizes returns a shape with a fixed rank in which all dimensions have a literal size.
func Sizes(sizes ...int) Shape {
	var dims []Dim
	for _, n := range sizes {
		dims = append(dims, Size(n))
	}
	return Shape{Dims: dims}
}

// Variadic returns a shape with an unknown rank.
func Variadic() Shape {
	return Shape{Variadic: true}
}

// Rank returns the rank of the shape and true if the rank is known.
func (s Shape) Rank() (int, bool) {
	if s.Variadic {
		return 0, false
	}
	return len(s.Dims), true
}

// String returns the annotation of the shape.
func (s Shape) String() string {
	if s.Variadic {
		return "[...]"
	}
	ss := make([]string, len(s.Dims))
	for i, dim := range s.Dims {
		ss[i] = dim.String()
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// BackendShape returns the backend shape of a shaped tensor.
// It returns false if the rank is unknown, if a dimension is symbolic,
// or if the backend does not support the element kind.
func (s *Shaped) BackendShape() (*shape.Shape, bool) {
	if s.Shape.Variadic {
		return nil, false
	}
	if slices.ContainsFunc(s.Shape.Dims, Dim.IsSymbolic) {
		return nil, false
	}
	dt := s.Elem.Kind.DType()
	if dt == dtype.Invalid {
		return nil, false
	}
	axes := make([]int, len(s.Shape.Dims))
	for i, dim := range s.Shape.Dims {
		axes[i] = dim.Size
	}
	return &shape.Shape{DType: dt, AxisLengths: axes}, true
}
