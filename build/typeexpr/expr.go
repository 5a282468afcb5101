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

// Package typeexpr defines the type expressions annotating the parameters
// of an operator implementation.
//
// A type expression is a tree over a closed set of nodes:
// element types, shaped tensors, type variables, unions, optional
// and sequence wrappers, and attribute types.
package typeexpr

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/opsig/base/stringseq"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
)

type (
	// Expr is a type expression.
	// The set of implementations is closed: only the types of this package implement it.
	Expr interface {
		fmt.Stringer
		node()
	}

	// Element is a tensor of a given element kind with no shape information.
	Element struct {
		Kind elemkind.Kind
	}

	// Shaped is an element type with a shape annotation.
	Shaped struct {
		Elem  *Element
		Shape Shape
	}

	// Union of type expressions. Members are kept in declaration order.
	Union struct {
		Members []Expr
	}

	// Optional wraps a type expression for a value that may be absent.
	Optional struct {
		Inner Expr
	}

	// Sequence wraps a type expression for a sequence of values.
	Sequence struct {
		Inner Expr
	}
)

var (
	_ Expr = (*Element)(nil)
	_ Expr = (*Shaped)(nil)
	_ Expr = (*TypeVar)(nil)
	_ Expr = (*Union)(nil)
	_ Expr = (*Optional)(nil)
	_ Expr = (*Sequence)(nil)
	_ Expr = (*Attribute)(nil)
)

// Tensor returns the element type of a given kind.
func Tensor(kind elemkind.Kind) *Element {
	return &Element{Kind: kind}
}

// AnyTensor returns the wildcard tensor type matching all element kinds.
func AnyTensor() *Element {
	return Tensor(elemkind.Any)
}

func (*Element) node() {}

// String returns the annotation of the element type.
func (e *Element) String() string {
	return e.Kind.Ident()
}

// WithShape applies a shape annotation to an element type.
// Only an element type can be shaped: shaping an already shaped tensor
// (for example FLOAT[10][20]) returns an InvalidShapeError.
func WithShape(base Expr, shape Shape) (*Shaped, error) {
	switch baseT := base.(type) {
	case *Element:
		return &Shaped{Elem: baseT, Shape: shape}, nil
	case *Shaped:
		return nil, &InvalidShapeError{Expr: base, Reason: "tensor type already has a shape"}
	default:
		return nil, &InvalidShapeError{Expr: base, Reason: "only tensor element types can be shaped"}
	}
}

func (*Shaped) node() {}

// String returns the annotation of the shaped type.
func (s *Shaped) String() string {
	return s.Elem.String() + s.Shape.String()
}

// NewUnion returns the union of a non-empty list of type expressions.
func NewUnion(members ...Expr) (*Union, error) {
	if len(members) == 0 {
		return nil, errors.Errorf("a union requires at least one member")
	}
	if slices.Contains(members, nil) {
		return nil, errors.Errorf("a union cannot contain a nil member")
	}
	return &Union{Members: members}, nil
}

func (*Union) node() {}

// String returns the annotation of the union.
func (u *Union) String() string {
	return "Union[" + stringseq.JoinStringer(u.Members, ", ") + "]"
}

// NewOptional wraps a type expression in an optional.
func NewOptional(inner Expr) *Optional {
	return &Optional{Inner: inner}
}

func (*Optional) node() {}

// String returns the annotation of the optional.
func (o *Optional) String() string {
	return "Optional[" + o.Inner.String() + "]"
}

// NewSequence wraps a type expression in a sequence.
func NewSequence(inner Expr) *Sequence {
	return &Sequence{Inner: inner}
}

func (*Sequence) node() {}

// String returns the annotation of the sequence.
func (s *Sequence) String() string {
	return "Sequence[" + s.Inner.String() + "]"
}

// InvalidShapeError is returned when a shape annotation is applied to a type
// that cannot be shaped.
type InvalidShapeError struct {
	Expr   Expr
	Reason string
}

func (err *InvalidShapeError) Error() string {
	return fmt.Sprintf("cannot apply a shape to %s: %s", err.Expr, err.Reason)
}
