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

// Package schema builds operator schemas from the signature of their implementation.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	opfmt "github.com/gx-org/opsig/base/fmt"
	"github.com/gx-org/opsig/base/ordered"
	"github.com/gx-org/opsig/build/constraints"
	"github.com/gx-org/opsig/build/fmterr"
	"github.com/gx-org/opsig/build/typeexpr"
)

// ReturnName is the name of the formal output of an operator.
const ReturnName = "return_val"

// ReturnConstraint is the name of the output type constraint when the
// return type is not a type variable.
const ReturnConstraint = "TReturn"

type (
	// Formal is an input or an output of an operator.
	Formal struct {
		Name           string `json:"name"`
		TypeConstraint string `json:"type_constraint"`
		// Shape is the backend shape of a tensor with a known element type
		// and literal dimensions, for example "[2][3]float32".
		Shape          string `json:"shape,omitempty"`
	}

	// Attribute of an operator.
	Attribute struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}

	// TypeConstraint lists the types accepted by the formals referring to it.
	TypeConstraint struct {
		Name         string   `json:"name"`
		AllowedTypes []string `json:"allowed_types"`
	}

	// OpSchema is the formal definition of an operator.
	OpSchema struct {
		Name            string           `json:"name"`
		Inputs          []Formal         `json:"inputs"`
		Attributes      []Attribute      `json:"attributes,omitempty"`
		Outputs         []Formal         `json:"outputs"`
		TypeConstraints []TypeConstraint `json:"type_constraints"`
	}
)

type builder struct {
	schema      *OpSchema
	constraints *ordered.Map[string, []string]
}

// FromSignature returns the schema of an operator given the signature of its implementation.
// Errors for all the parameters are reported together.
func FromSignature(name string, sig *typeexpr.Signature) (*OpSchema, error) {
	if sig == nil {
		return nil, errors.Errorf("operator %s has no signature", name)
	}
	b := &builder{
		schema:      &OpSchema{Name: name},
		constraints: ordered.NewMap[string, []string](),
	}
	var errs error
	for _, param := range sig.Params {
		if attr, ok := param.Type.(*typeexpr.Attribute); ok {
			b.schema.Attributes = append(b.schema.Attributes, Attribute{Name: param.Name, Type: attr.ProtoType()})
			continue
		}
		formal, err := b.formal(param.Name, "T_"+param.Name, param.Type)
		if err != nil {
			errs = multierr.Append(errs, fmterr.PrefixWith("parameter %s: ", param.Name)(err))
			continue
		}
		b.schema.Inputs = append(b.schema.Inputs, formal)
	}
	if sig.Return != nil {
		formal, err := b.formal(ReturnName, ReturnConstraint, sig.Return)
		if err != nil {
			errs = multierr.Append(errs, fmterr.PrefixWith("return value: ")(err))
		} else {
			b.schema.Outputs = append(b.schema.Outputs, formal)
		}
	}
	if errs != nil {
		return nil, fmterr.PrefixWith("cannot build schema of %s: ", name)(errs)
	}
	for cName, allowed := range b.constraints.Iter() {
		b.schema.TypeConstraints = append(b.schema.TypeConstraints, TypeConstraint{
			Name:         cName,
			AllowedTypes: allowed,
		})
	}
	return b.schema, nil
}

func (b *builder) formal(name, defaultConstraint string, tp typeexpr.Expr) (Formal, error) {
	allowed, err := constraints.Resolve(tp)
	if err != nil {
		return Formal{}, err
	}
	cName, ok := constraints.Name(tp)
	if !ok {
		cName = defaultConstraint
	}
	prev, loaded := b.constraints.LoadOrStore(cName, func() []string { return allowed })
	if loaded && !slices.Equal(prev, allowed) {
		return Formal{}, errors.Errorf("type constraint %s already declared with types %v", cName, prev)
	}
	formal := Formal{Name: name, TypeConstraint: cName}
	if shaped, ok := tp.(*typeexpr.Shaped); ok {
		if bs, ok := shaped.BackendShape(); ok {
			formal.Shape = bs.String()
		}
	}
	return formal, nil
}

// Constraint returns a type constraint given its name.
func (s *OpSchema) Constraint(name string) (TypeConstraint, bool) {
	for _, tc := range s.TypeConstraints {
		if tc.Name == name {
			return tc, true
		}
	}
	return TypeConstraint{}, false
}

func formalsString(formals []Formal) string {
	ss := make([]string, len(formals))
	for i, f := range formals {
		ss[i] = f.Name + ": " + f.TypeConstraint
	}
	return strings.Join(ss, ", ")
}

// String returns a human readable definition of the operator.
func (s *OpSchema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s) -> (%s)\n", s.Name, formalsString(s.Inputs), formalsString(s.Outputs))
	var body strings.Builder
	for _, attr := range s.Attributes {
		fmt.Fprintf(&body, "attribute %s: %s\n", attr.Name, attr.Type)
	}
	for _, formal := range slices.Concat(s.Inputs, s.Outputs) {
		if formal.Shape != "" {
			fmt.Fprintf(&body, "shape %s: %s\n", formal.Name, formal.Shape)
		}
	}
	for _, tc := range s.TypeConstraints {
		fmt.Fprintf(&body, "%s: %s\n", tc.Name, strings.Join(tc.AllowedTypes, ", "))
	}
	b.WriteString(opfmt.Indent(body.String()))
	return b.String()
}
