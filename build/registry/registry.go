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

// Package registry records operator implementations under their operator name.
//
// An operator has an optional default implementation and an ordered list of
// overloads. The registry also indexes every implementation by the symbol
// generated for it by the compiler.
//
// A registry is not safe for concurrent use.
package registry

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gx-org/opsig/base/ordered"
	"github.com/gx-org/opsig/build/compiler"
	"github.com/gx-org/opsig/build/typeexpr"
)

type (
	// FunctionRecord is an operator implementation and its metadata.
	FunctionRecord struct {
		// Name of the operator, for example "aten::add".
		Name string
		// Function is the compiled or traced implementation.
		Function compiler.Function
		// Signature captured from the declaration of the implementation.
		Signature *typeexpr.Signature
	}

	// OverloadSet groups all the implementations of an operator.
	OverloadSet struct {
		Name      string
		Default   *FunctionRecord
		Overloads []*FunctionRecord
	}

	// Registry maps operator names to their implementations.
	Registry struct {
		ops     *ordered.Map[string, *OverloadSet]
		symbols map[string]*FunctionRecord
	}
)

// Default is the registry used when no registry is specified.
var Default = New()

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		ops:     ordered.NewMap[string, *OverloadSet](),
		symbols: make(map[string]*FunctionRecord),
	}
}

// Symbol returns the symbol of the implementation.
func (r *FunctionRecord) Symbol() string {
	return r.Function.Name()
}

func (r *FunctionRecord) String() string {
	return fmt.Sprintf("%s%s", r.Symbol(), r.Signature)
}

// SetDefault sets the default implementation and returns the previous default, if any.
func (o *OverloadSet) SetDefault(r *FunctionRecord) *FunctionRecord {
	prev := o.Default
	o.Default = r
	return prev
}

// AddOverload appends an overload.
func (o *OverloadSet) AddOverload(r *FunctionRecord) {
	o.Overloads = append(o.Overloads, r)
}

// All returns the default implementation, if any, followed by the overloads in registration order.
func (o *OverloadSet) All() iter.Seq[*FunctionRecord] {
	return func(yield func(*FunctionRecord) bool) {
		if o.Default != nil && !yield(o.Default) {
			return
		}
		for _, r := range o.Overloads {
			if !yield(r) {
				return
			}
		}
	}
}

func (o *OverloadSet) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	b.WriteString(":\n")
	if o.Default != nil {
		fmt.Fprintf(&b, "\tdefault: %s\n", o.Default)
	}
	for i, r := range o.Overloads {
		fmt.Fprintf(&b, "\toverload %d: %s\n", i, r)
	}
	return b.String()
}

// Register an implementation for an operator.
// If overload is false, the implementation replaces the default implementation
// of the operator; the replaced record, if any, is returned. Otherwise, the
// implementation is appended to the list of overloads.
// In both cases, the record is indexed by the symbol of the function,
// replacing any record previously indexed by the same symbol.
func (r *Registry) Register(fn compiler.Function, name string, sig *typeexpr.Signature, overload bool) (rec, replaced *FunctionRecord) {
	set, _ := r.ops.LoadOrStore(name, func() *OverloadSet {
		return &OverloadSet{Name: name}
	})
	rec = &FunctionRecord{Name: name, Function: fn, Signature: sig}
	if overload {
		set.AddOverload(rec)
	} else {
		replaced = set.SetDefault(rec)
	}
	r.symbols[fn.Name()] = rec
	return rec, replaced
}

// ByName returns the implementations of an operator.
func (r *Registry) ByName(name string) (*OverloadSet, error) {
	set, ok := r.ops.Load(name)
	if !ok {
		return nil, &NotFoundError{Kind: "operator", Key: name}
	}
	return set, nil
}

// Contains returns true if an operator has been registered.
func (r *Registry) Contains(name string) bool {
	return r.ops.Has(name)
}

// BySymbol returns the record of an implementation given its generated symbol.
func (r *Registry) BySymbol(symbol string) (*FunctionRecord, error) {
	rec, ok := r.symbols[symbol]
	if !ok {
		return nil, &NotFoundError{Kind: "symbol", Key: symbol}
	}
	return rec, nil
}

// Names returns the operator names in the order they have first been registered.
func (r *Registry) Names() iter.Seq[string] {
	return r.ops.Keys()
}

// OverloadSets returns all the overload sets in the order their operators have first been registered.
func (r *Registry) OverloadSets() iter.Seq[*OverloadSet] {
	return r.ops.Values()
}

// Size returns the number of operators in the registry.
func (r *Registry) Size() int {
	return r.ops.Size()
}

func (r *Registry) String() string {
	var b strings.Builder
	for set := range r.OverloadSets() {
		b.WriteString(set.String())
	}
	return b.String()
}

// NotFoundError is returned when an operator or a symbol is not in a registry.
type NotFoundError struct {
	Kind string
	Key  string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in registry", err.Kind, err.Key)
}
