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

// Package compiler defines the boundary with the compiler turning Go operator
// implementations into invocable functions tagged with a generated symbol.
package compiler

import (
	"fmt"

	"github.com/gx-org/opsig/base/uname"
	"github.com/gx-org/opsig/build/typeexpr"
)

type (
	// Impl is a Go implementation of an operator.
	Impl func(args ...any) ([]any, error)

	// Opset identifies the namespace and version of compiled functions.
	Opset struct {
		Domain  string
		Version int
	}

	// Function is an invocable operator implementation.
	Function interface {
		// Name returns the symbol of the function.
		// For a compiled function, the symbol is unique for the compiler that generated it.
		Name() string
		// Opset returns the opset of the function.
		// Functions that have not been compiled return an empty opset.
		Opset() Opset
		// Call the function given its arguments.
		Call(args ...any) ([]any, error)
	}

	// Compiler compiles implementations given their signature.
	Compiler interface {
		Compile(opset Opset, name string, sig *typeexpr.Signature, impl Impl) (Function, error)
	}
)

func (o Opset) String() string {
	return fmt.Sprintf("%s@%d", o.Domain, o.Version)
}

// traced is an implementation registered without compilation.
type traced struct {
	name string
	impl Impl
}

var _ Function = (*traced)(nil)

// Trace returns a function calling an implementation directly.
func Trace(name string, impl Impl) Function {
	return &traced{name: name, impl: impl}
}

func (f *traced) Name() string {
	return f.name
}

func (f *traced) Opset() Opset {
	return Opset{}
}

func (f *traced) Call(args ...any) ([]any, error) {
	return f.impl(args...)
}

// Script is a reference compiler.
// It generates a unique symbol for every compiled function and checks
// the number of arguments against the signature when the function is called.
// A Script is not safe for concurrent use.
type Script struct {
	symbols *uname.Unique
}

var _ Compiler = (*Script)(nil)

// NewScript returns a new reference compiler.
func NewScript() *Script {
	return &Script{symbols: uname.New()}
}

// Compile an implementation.
func (s *Script) Compile(opset Opset, name string, sig *typeexpr.Signature, impl Impl) (Function, error) {
	if impl == nil {
		return nil, &Error{Op: "compile", Name: name, Msg: "no implementation"}
	}
	if sig == nil {
		return nil, &Error{Op: "compile", Name: name, Msg: "no signature"}
	}
	return &scripted{
		symbol: s.symbols.Name(name),
		opset:  opset,
		sig:    sig,
		impl:   impl,
	}, nil
}

type scripted struct {
	symbol string
	opset  Opset
	sig    *typeexpr.Signature
	impl   Impl
}

var _ Function = (*scripted)(nil)

func (f *scripted) Name() string {
	return f.symbol
}

func (f *scripted) Opset() Opset {
	return f.opset
}

func (f *scripted) Call(args ...any) ([]any, error) {
	if len(args) != len(f.sig.Params) {
		return nil, &Error{
			Op:   "call",
			Name: f.symbol,
			Msg:  fmt.Sprintf("got %d arguments but signature %s requires %d", len(args), f.sig, len(f.sig.Params)),
		}
	}
	return f.impl(args...)
}

// Error is an error returned by the reference compiler or by the functions it compiled.
type Error struct {
	Op   string
	Name string
	Msg  string
}

func (err *Error) Error() string {
	return fmt.Sprintf("cannot %s %s: %s", err.Op, err.Name, err.Msg)
}
