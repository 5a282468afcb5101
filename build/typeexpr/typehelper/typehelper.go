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

// Package typehelper provides helper functions to build type expressions programmatically.
// All the functions panic on error and are meant to be used in tests.
package typehelper

import (
	"github.com/gx-org/opsig/build/typeexpr"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Tensor returns an element type.
func Tensor(kind elemkind.Kind) *typeexpr.Element {
	return typeexpr.Tensor(kind)
}

// Float returns the FLOAT element type.
func Float() *typeexpr.Element {
	return typeexpr.Tensor(elemkind.Float)
}

// Int64 returns the INT64 element type.
func Int64() *typeexpr.Element {
	return typeexpr.Tensor(elemkind.Int64)
}

// Shaped returns a tensor type with a fixed shape.
func Shaped(kind elemkind.Kind, sizes ...int) *typeexpr.Shaped {
	return must(typeexpr.WithShape(typeexpr.Tensor(kind), typeexpr.Sizes(sizes...)))
}

// Variadic returns a tensor type with an unknown rank.
func Variadic(kind elemkind.Kind) *typeexpr.Shaped {
	return must(typeexpr.WithShape(typeexpr.Tensor(kind), typeexpr.Variadic()))
}

// Union returns a union of type expressions.
func Union(members ...typeexpr.Expr) *typeexpr.Union {
	return must(typeexpr.NewUnion(members...))
}

// Optional wraps a type expression in an optional.
func Optional(inner typeexpr.Expr) *typeexpr.Optional {
	return typeexpr.NewOptional(inner)
}

// Sequence wraps a type expression in a sequence.
func Sequence(inner typeexpr.Expr) *typeexpr.Sequence {
	return typeexpr.NewSequence(inner)
}

// Constrained returns a type variable constrained to some element kinds.
func Constrained(name string, kinds ...elemkind.Kind) *typeexpr.TypeVar {
	els := make([]*typeexpr.Element, len(kinds))
	for i, kind := range kinds {
		els[i] = typeexpr.Tensor(kind)
	}
	return must(typeexpr.Constrained(name, els...))
}

// Bounded returns a bound type variable.
func Bounded(name string, bound typeexpr.Expr) *typeexpr.TypeVar {
	return must(typeexpr.Bounded(name, bound))
}

// Scope returns a scope declaring type variables.
func Scope(vars ...*typeexpr.TypeVar) *typeexpr.Scope {
	return must(typeexpr.NewScope(vars...))
}

// Signature returns a signature given its return type and its parameters.
func Signature(ret typeexpr.Expr, params ...typeexpr.Param) *typeexpr.Signature {
	return must(typeexpr.NewSignature(params, ret))
}

// Param returns a signature parameter.
func Param(name string, tp typeexpr.Expr) typeexpr.Param {
	return typeexpr.Param{Name: name, Type: tp}
}
