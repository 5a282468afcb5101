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

// Package manifest loads operator declarations from YAML files.
//
// A manifest declares type variables and operators:
//
//	typevars:
//	  - name: TReal
//	    constraints: [FLOAT, DOUBLE]
//	  - name: TInt
//	    bound: Union[INT32, INT64]
//	ops:
//	  - name: aten::add
//	    params:
//	      - {name: self, type: TReal}
//	      - {name: other, type: TReal}
//	      - {name: alpha, type: float}
//	    return: TReal
package manifest

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
	"github.com/gx-org/opsig/api/opreg"
	"github.com/gx-org/opsig/base/uname"
	"github.com/gx-org/opsig/build/compiler"
	"github.com/gx-org/opsig/build/fmterr"
	"github.com/gx-org/opsig/build/registry"
	"github.com/gx-org/opsig/build/typeexpr"
)

type (
	// Manifest declares type variables and operators.
	Manifest struct {
		TypeVars []TypeVarDecl `yaml:"typevars"`
		Ops      []OpDecl      `yaml:"ops"`
	}

	// TypeVarDecl declares a type variable.
	// Exactly one of Constraints or Bound must be set.
	TypeVarDecl struct {
		Name        string   `yaml:"name"`
		Constraints []string `yaml:"constraints,omitempty"`
		Bound       string   `yaml:"bound,omitempty"`
	}

	// OpDecl declares an implementation of an operator.
	OpDecl struct {
		Name      string      `yaml:"name"`
		Overload  bool        `yaml:"overload,omitempty"`
		TraceOnly bool        `yaml:"trace_only,omitempty"`
		Params    []ParamDecl `yaml:"params"`
		Return    string      `yaml:"return,omitempty"`
	}

	// ParamDecl declares a parameter of an operator.
	ParamDecl struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}
)

// Parse a manifest from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, errors.Errorf("cannot parse manifest: %v", err)
	}
	return &m, nil
}

// Load a manifest from a file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("cannot read manifest: %v", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmterr.PrefixWith("%s: ", path)(err)
	}
	return m, nil
}

// Scope returns the scope declaring the type variables of the manifest.
// A bound can refer to the type variables declared before it.
func (m *Manifest) Scope() (*typeexpr.Scope, error) {
	scope, err := typeexpr.NewScope()
	if err != nil {
		return nil, err
	}
	for _, decl := range m.TypeVars {
		tv, err := decl.typeVar(scope)
		if err != nil {
			return nil, err
		}
		if err := scope.Declare(tv); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

func (d TypeVarDecl) typeVar(scope *typeexpr.Scope) (*typeexpr.TypeVar, error) {
	switch {
	case len(d.Constraints) > 0 && d.Bound != "":
		return nil, errors.Errorf("type variable %s cannot have both constraints and a bound", d.Name)
	case d.Bound != "":
		bound, err := typeexpr.Parse(d.Bound, scope)
		if err != nil {
			return nil, fmterr.PrefixWith("type variable %s: ", d.Name)(err)
		}
		return typeexpr.Bounded(d.Name, bound)
	}
	els := make([]*typeexpr.Element, len(d.Constraints))
	for i, src := range d.Constraints {
		expr, err := typeexpr.Parse(src, nil)
		if err != nil {
			return nil, fmterr.PrefixWith("type variable %s: ", d.Name)(err)
		}
		el, ok := expr.(*typeexpr.Element)
		if !ok {
			return nil, errors.Errorf("type variable %s: constraint %s is not an element type", d.Name, src)
		}
		els[i] = el
	}
	return typeexpr.Constrained(d.Name, els...)
}

// Declaration returns the declaration of the operator parameters.
func (d OpDecl) Declaration() opreg.Declaration {
	decl := opreg.Declaration{Return: d.Return}
	for _, p := range d.Params {
		decl.Params = append(decl.Params, opreg.ParamDecl{Name: p.Name, Type: p.Type})
	}
	return decl
}

func unimplemented(name string) compiler.Impl {
	return func(...any) ([]any, error) {
		return nil, errors.Errorf("operator %s is declared in a manifest and has no implementation", name)
	}
}

// Register all the operators of the manifest in a registry.
// Manifest operators have no Go implementation: calling them returns an error.
// Errors for all the operators are reported together.
func (m *Manifest) Register(reg *registry.Registry, opts ...opreg.Option) error {
	scope, err := m.Scope()
	if err != nil {
		return err
	}
	var errs error
	for _, op := range m.Ops {
		if op.Name == "" {
			errs = multierr.Append(errs, errors.Errorf("operator with no name"))
			continue
		}
		opOpts := append([]opreg.Option{}, opts...)
		opOpts = append(opOpts, opreg.WithRegistry(reg), opreg.WithScope(scope))
		if op.Overload {
			opOpts = append(opOpts, opreg.Overload())
		}
		if op.TraceOnly {
			opOpts = append(opOpts, opreg.TraceOnly(), opreg.WithTraceName(uname.Sanitize(op.Name)))
		}
		if _, err := opreg.Register(op.Name, op.Declaration(), unimplemented(op.Name), opOpts...); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
