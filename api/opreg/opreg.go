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

// Package opreg registers Go implementations of operators.
//
// A typical library declares its implementations at initialization:
//
//	var Add = opreg.MustRegister("aten::add", opreg.Declaration{
//		Params: []opreg.ParamDecl{
//			{Name: "self", Type: "TReal"},
//			{Name: "other", Type: "TReal"},
//			{Name: "alpha", Type: "float"},
//		},
//		Return: "TReal",
//	}, aten_add, opreg.WithScope(scope))
//
// The signature is captured from the declaration before the implementation is
// compiled. The compiled function is then recorded in the registry under the
// operator name and its generated symbol.
package opreg

import (
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	opfmt "github.com/gx-org/opsig/base/fmt"
	"github.com/gx-org/opsig/build/compiler"
	"github.com/gx-org/opsig/build/fmterr"
	"github.com/gx-org/opsig/build/registry"
	"github.com/gx-org/opsig/build/typeexpr"
)

// DefaultOpset is the opset of implementations compiled by the default compiler.
var DefaultOpset = compiler.Opset{Domain: "opsig.lib", Version: 1}

var defaultCompiler = compiler.NewScript()

type (
	// ParamDecl declares a parameter of an implementation.
	// Type is an annotation parsed with typeexpr.Parse. If Expr is set, Type is ignored.
	ParamDecl struct {
		Name string
		Type string
		Expr typeexpr.Expr
	}

	// Declaration of the parameters and return type of an implementation.
	// An empty Return with a nil ReturnExpr declares no return value.
	Declaration struct {
		Params     []ParamDecl
		Return     string
		ReturnExpr typeexpr.Expr
	}

	// Option configures the registration of an implementation.
	Option func(*binder)

	// Binder registers an implementation and returns the registered function.
	Binder func(impl compiler.Impl) (compiler.Function, error)

	binder struct {
		overload  bool
		traceOnly bool
		traceName string
		registry  *registry.Registry
		compiler  compiler.Compiler
		opset     compiler.Opset
		scope     *typeexpr.Scope
		logger    *slog.Logger
	}
)

// Capture the signature of a declaration.
// Type variables are resolved in the given scope, which can be nil.
func (d Declaration) Capture(scope *typeexpr.Scope) (*typeexpr.Signature, error) {
	var errs error
	params := make([]typeexpr.Param, 0, len(d.Params))
	for _, pd := range d.Params {
		tp, err := annotation(pd.Type, pd.Expr, scope)
		if err != nil {
			errs = multierr.Append(errs, fmterr.PrefixWith("parameter %s: ", pd.Name)(err))
			continue
		}
		params = append(params, typeexpr.Param{Name: pd.Name, Type: tp})
	}
	var ret typeexpr.Expr
	if d.ReturnExpr != nil || d.Return != "" {
		var err error
		if ret, err = annotation(d.Return, d.ReturnExpr, scope); err != nil {
			errs = multierr.Append(errs, fmterr.PrefixWith("return value: ")(err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return typeexpr.NewSignature(params, ret)
}

func annotation(src string, expr typeexpr.Expr, scope *typeexpr.Scope) (typeexpr.Expr, error) {
	if expr != nil {
		return expr, nil
	}
	return typeexpr.Parse(src, scope)
}

// Overload registers the implementation as an overload instead of the default implementation.
func Overload() Option {
	return func(b *binder) { b.overload = true }
}

// TraceOnly registers the implementation as-is, without compiling it.
func TraceOnly() Option {
	return func(b *binder) { b.traceOnly = true }
}

// WithTraceName sets the symbol of a trace-only implementation.
// By default, the symbol is the name of the Go function.
func WithTraceName(name string) Option {
	return func(b *binder) { b.traceName = name }
}

// WithRegistry sets the registry in which the implementation is registered.
func WithRegistry(r *registry.Registry) Option {
	return func(b *binder) { b.registry = r }
}

// WithCompiler sets the compiler compiling the implementation.
func WithCompiler(c compiler.Compiler) Option {
	return func(b *binder) { b.compiler = c }
}

// WithOpset sets the opset passed to the compiler.
func WithOpset(opset compiler.Opset) Option {
	return func(b *binder) { b.opset = opset }
}

// WithScope sets the scope declaring the type variables used by the declaration.
func WithScope(scope *typeexpr.Scope) Option {
	return func(b *binder) { b.scope = scope }
}

// WithLogger sets the logger recording registrations.
func WithLogger(logger *slog.Logger) Option {
	return func(b *binder) { b.logger = logger }
}

// Op returns a binder registering implementations of an operator.
func Op(name string, decl Declaration, opts ...Option) Binder {
	b := &binder{
		registry: registry.Default,
		compiler: defaultCompiler,
		opset:    DefaultOpset,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return func(impl compiler.Impl) (compiler.Function, error) {
		return b.register(name, decl, impl)
	}
}

// Register an implementation of an operator.
func Register(name string, decl Declaration, impl compiler.Impl, opts ...Option) (compiler.Function, error) {
	return Op(name, decl, opts...)(impl)
}

// MustRegister registers an implementation of an operator and panics on error.
func MustRegister(name string, decl Declaration, impl compiler.Impl, opts ...Option) compiler.Function {
	fn, err := Register(name, decl, impl, opts...)
	if err != nil {
		panic(err)
	}
	return fn
}

func (b *binder) register(name string, decl Declaration, impl compiler.Impl) (compiler.Function, error) {
	sig, err := decl.Capture(b.scope)
	if err != nil {
		return nil, fmterr.PrefixWith("cannot capture the signature of %s: ", name)(err)
	}
	var fn compiler.Function
	if b.traceOnly {
		if impl == nil {
			return nil, errors.Errorf("cannot trace %s: no implementation", name)
		}
		traceName := b.traceName
		if traceName == "" {
			traceName = opfmt.ShortFunc(impl)
		}
		fn = compiler.Trace(traceName, impl)
	} else {
		if fn, err = b.compiler.Compile(b.opset, name, sig, impl); err != nil {
			return nil, err
		}
		if fn == nil {
			return nil, errors.Errorf("compiler returned no function for %s", name)
		}
	}
	_, replaced := b.registry.Register(fn, name, sig, b.overload)
	if replaced != nil {
		b.logger.Warn("default implementation replaced", "op", name, "previous", replaced.Symbol(), "symbol", fn.Name())
	}
	b.logger.Debug("registered operator",
		"op", name,
		"symbol", fn.Name(),
		"signature", sig.String(),
		"overload", b.overload,
		"trace_only", b.traceOnly,
	)
	return fn, nil
}
