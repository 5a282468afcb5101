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
	"go/token"
	"iter"

	"github.com/pkg/errors"
	"github.com/gx-org/opsig/base/ordered"
	"github.com/gx-org/opsig/base/stringseq"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
)

// TypeVar is a type placeholder shared by the parameters of an operator.
// A type variable is either constrained to an explicit list of element types
// or bound to an element type or to a union.
type TypeVar struct {
	Name        string
	Constraints []*Element
	Bound       Expr
}

// Constrained returns a type variable constrained to a list of element types.
func Constrained(name string, constraints ...*Element) (*TypeVar, error) {
	if err := checkVarName(name); err != nil {
		return nil, err
	}
	if len(constraints) == 0 {
		return nil, errors.Errorf("type variable %s requires at least one constraint", name)
	}
	return &TypeVar{Name: name, Constraints: constraints}, nil
}

// Bounded returns a type variable bound to an element type or a union.
func Bounded(name string, bound Expr) (*TypeVar, error) {
	if err := checkVarName(name); err != nil {
		return nil, err
	}
	switch bound.(type) {
	case *Element, *Union:
	default:
		return nil, errors.Errorf("type variable %s: bound %v is not an element type or a union", name, bound)
	}
	return &TypeVar{Name: name, Bound: bound}, nil
}

func checkVarName(name string) error {
	if !token.IsIdentifier(name) {
		return errors.Errorf("invalid type variable name %q", name)
	}
	_, isAttr := attrIdents[name]
	switch {
	case elemkind.FromIdent(name) != elemkind.Invalid, isAttr,
		name == optionalIdent, name == sequenceIdent, name == unionIdent:
		return errors.Errorf("type variable name %s is reserved", name)
	}
	return nil
}

func (*TypeVar) node() {}

// String returns the name of the type variable.
func (tv *TypeVar) String() string {
	return tv.Name
}

// Declaration returns the declaration of the type variable.
func (tv *TypeVar) Declaration() string {
	if tv.Bound != nil {
		return "TypeVar(" + tv.Name + ", bound=" + tv.Bound.String() + ")"
	}
	return "TypeVar(" + tv.Name + ", " + stringseq.JoinStringer(tv.Constraints, ", ") + ")"
}

// Scope declares type variables available to annotations.
type Scope struct {
	vars *ordered.Map[string, *TypeVar]
}

// NewScope returns a scope declaring the given type variables.
func NewScope(vars ...*TypeVar) (*Scope, error) {
	s := &Scope{vars: ordered.NewMap[string, *TypeVar]()}
	for _, tv := range vars {
		if err := s.Declare(tv); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Declare a type variable in the scope.
func (s *Scope) Declare(tv *TypeVar) error {
	if _, ok := s.vars.Load(tv.Name); ok {
		return errors.Errorf("type variable %s already declared", tv.Name)
	}
	s.vars.Store(tv.Name, tv)
	return nil
}

// Lookup a type variable given its name.
func (s *Scope) Lookup(name string) (*TypeVar, bool) {
	if s == nil {
		return nil, false
	}
	return s.vars.Load(name)
}

// Vars returns the type variables in declaration order.
func (s *Scope) Vars() iter.Seq[*TypeVar] {
	if s == nil {
		return func(func(*TypeVar) bool) {}
	}
	return s.vars.Values()
}
