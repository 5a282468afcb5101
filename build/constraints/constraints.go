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

// Package constraints computes the type constraints of operator parameters
// from their type expressions.
//
// Resolve expands a type expression into the ordered list of type-constraint
// descriptors the parameter accepts, for example:
//
//	INT64                        -> tensor(int64)
//	Optional[INT64]              -> tensor(int64), optional(tensor(int64))
//	Sequence[Union[INT64,FLOAT]] -> sequence(tensor(int64)), sequence(tensor(float))
//
// Name returns the name of the constraint shared by all the parameters
// annotated with the same type variable.
package constraints

import (
	"fmt"

	"github.com/gx-org/opsig/base/ordered"
	"github.com/gx-org/opsig/build/typeexpr"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
)

// AllTypeStrings is the descriptor of all the tensor element types,
// in the canonical order of the element kinds.
var AllTypeStrings = allTypeStrings()

func allTypeStrings() []string {
	kinds := elemkind.All()
	all := make([]string, len(kinds))
	for i, kind := range kinds {
		all[i] = TensorString(kind)
	}
	return all
}

// TensorString returns the descriptor of a tensor of a given element kind.
func TensorString(kind elemkind.Kind) string {
	return "tensor(" + kind.String() + ")"
}

// UnsupportedTypeError is returned when a type expression cannot be resolved
// into type constraints.
type UnsupportedTypeError struct {
	Expr typeexpr.Expr
}

func (err *UnsupportedTypeError) Error() string {
	if err.Expr == nil {
		return "cannot resolve type constraints of a missing type"
	}
	return fmt.Sprintf("cannot resolve type constraints of %s (%T)", err.Expr, err.Expr)
}

// Resolve returns the type constraints accepted by a type expression.
// The list has no duplicate: only the first occurrence of a descriptor is kept.
func Resolve(expr typeexpr.Expr) ([]string, error) {
	set := ordered.NewSet[string]()
	if err := resolve(set, expr); err != nil {
		return nil, err
	}
	return set.Slice(), nil
}

func resolve(set *ordered.Set[string], expr typeexpr.Expr) error {
	switch exprT := expr.(type) {
	case *typeexpr.Element:
		return resolveElement(set, exprT)
	case *typeexpr.Shaped:
		return resolveElement(set, exprT.Elem)
	case *typeexpr.Union:
		for _, member := range exprT.Members {
			if err := resolve(set, member); err != nil {
				return err
			}
		}
		return nil
	case *typeexpr.TypeVar:
		return resolveTypeVar(set, exprT)
	case *typeexpr.Optional:
		inner, err := Resolve(exprT.Inner)
		if err != nil {
			return err
		}
		set.Add(inner...)
		for _, s := range inner {
			set.Add("optional(" + s + ")")
		}
		return nil
	case *typeexpr.Sequence:
		inner, err := Resolve(exprT.Inner)
		if err != nil {
			return err
		}
		for _, s := range inner {
			set.Add("sequence(" + s + ")")
		}
		return nil
	}
	return &UnsupportedTypeError{Expr: expr}
}

func resolveElement(set *ordered.Set[string], el *typeexpr.Element) error {
	if el == nil {
		return &UnsupportedTypeError{}
	}
	switch {
	case el.Kind == elemkind.Any:
		set.Add(AllTypeStrings...)
	case el.Kind.IsConcrete():
		set.Add(TensorString(el.Kind))
	default:
		return &UnsupportedTypeError{Expr: el}
	}
	return nil
}

func resolveTypeVar(set *ordered.Set[string], tv *typeexpr.TypeVar) error {
	if len(tv.Constraints) > 0 {
		for _, el := range tv.Constraints {
			if err := resolveElement(set, el); err != nil {
				return err
			}
		}
		return nil
	}
	switch bound := tv.Bound.(type) {
	case *typeexpr.Element:
		return resolveElement(set, bound)
	case *typeexpr.Union:
		return resolve(set, bound)
	}
	return &UnsupportedTypeError{Expr: tv}
}

// Name returns the name of the type constraint of a type expression
// annotating a parameter. Only type variables, optional type variables,
// and sequences of type variables have a name. For instance, if T is a
// type variable:
//
//	T           -> T
//	Optional[T] -> OptionalT
//	Sequence[T] -> SequenceT
//
// The boolean is false if no name is available.
func Name(expr typeexpr.Expr) (string, bool) {
	switch exprT := expr.(type) {
	case *typeexpr.TypeVar:
		return exprT.Name, true
	case *typeexpr.Optional:
		if tv, ok := exprT.Inner.(*typeexpr.TypeVar); ok {
			return "Optional" + tv.Name, true
		}
	case *typeexpr.Sequence:
		if tv, ok := exprT.Inner.(*typeexpr.TypeVar); ok {
			return "Sequence" + tv.Name, true
		}
	}
	return "", false
}
