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
	"strings"

	"github.com/pkg/errors"
)

type (
	// Param is a named parameter of a signature.
	Param struct {
		Name string
		Type Expr
	}

	// Signature of an operator implementation: its parameters in declaration
	// order and the type of the value it returns.
	// Return is nil if the implementation does not declare a return type.
	Signature struct {
		Params []Param
		Return Expr
	}
)

// NewSignature returns a signature after checking that parameter names are unique.
func NewSignature(params []Param, ret Expr) (*Signature, error) {
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if param.Name == "" {
			return nil, errors.Errorf("parameter with type %v has no name", param.Type)
		}
		if param.Type == nil {
			return nil, errors.Errorf("parameter %s has no type", param.Name)
		}
		if seen[param.Name] {
			return nil, errors.Errorf("parameter %s declared more than once", param.Name)
		}
		seen[param.Name] = true
	}
	return &Signature{Params: params, Return: ret}, nil
}

// Param returns the type of a parameter given its name.
func (s *Signature) Param(name string) (Expr, bool) {
	for _, param := range s.Params {
		if param.Name == name {
			return param.Type, true
		}
	}
	return nil, false
}

// String returns a string representation of the signature.
func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, param := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
		b.WriteString(": ")
		b.WriteString(param.Type.String())
	}
	b.WriteString(")")
	if s.Return != nil {
		b.WriteString(" -> ")
		b.WriteString(s.Return.String())
	}
	return b.String()
}
