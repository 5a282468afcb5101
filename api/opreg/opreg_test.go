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

package opreg_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/gx-org/opsig/api/opreg"
	"github.com/gx-org/opsig/build/compiler"
	"github.com/gx-org/opsig/build/registry"
	"github.com/gx-org/opsig/build/typeexpr"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
	th "github.com/gx-org/opsig/build/typeexpr/typehelper"
)

var (
	tReal     = th.Constrained("TReal", elemkind.Float, elemkind.Double)
	testScope = th.Scope(tReal)
	addDecl   = opreg.Declaration{
		Params: []opreg.ParamDecl{
			{Name: "self", Type: "TReal"},
			{Name: "other", Type: "TReal"},
			{Name: "alpha", Type: "float"},
		},
		Return: "TReal",
	}
)

func atenAdd(args ...any) ([]any, error) {
	return []any{args[0].(float64) + args[2].(float64)*args[1].(float64)}, nil
}

type fakeCompiler struct {
	calls      int
	opset      compiler.Opset
	sig        *typeexpr.Signature
	failed     error
	// noFunction makes the compiler return neither a function nor an error.
	noFunction bool
}

func (c *fakeCompiler) Compile(opset compiler.Opset, name string, sig *typeexpr.Signature, impl compiler.Impl) (compiler.Function, error) {
	c.calls++
	c.opset = opset
	c.sig = sig
	if c.failed != nil {
		return nil, c.failed
	}
	if c.noFunction {
		return nil, nil
	}
	return compiler.Trace("compiled_"+name, impl), nil
}

func TestRegisterCompiled(t *testing.T) {
	reg := registry.New()
	comp := &fakeCompiler{}
	opset := compiler.Opset{Domain: "test.lib", Version: 3}
	fn, err := opreg.Register("aten::add", addDecl, atenAdd,
		opreg.WithRegistry(reg),
		opreg.WithCompiler(comp),
		opreg.WithOpset(opset),
		opreg.WithScope(testScope),
	)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if comp.calls != 1 || comp.opset != opset {
		t.Errorf("compiler called %d times with opset %v", comp.calls, comp.opset)
	}
	wantSig := th.Signature(tReal,
		th.Param("self", tReal),
		th.Param("other", tReal),
		th.Param("alpha", typeexpr.NewAttribute(typeexpr.AttrFloat)),
	)
	if diff := cmp.Diff(wantSig, comp.sig); diff != "" {
		t.Errorf("unexpected signature passed to the compiler (-want +got):\n%s", diff)
	}
	if fn.Name() != "compiled_aten::add" {
		t.Errorf("got function %q but want the compiled function", fn.Name())
	}
	rec, err := reg.BySymbol(fn.Name())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Function != fn || rec.Signature != comp.sig {
		t.Errorf("registry does not record the compiled function with its captured signature")
	}
	set, err := reg.ByName("aten::add")
	if err != nil {
		t.Fatal(err)
	}
	if set.Default != rec {
		t.Errorf("function not registered as the default implementation")
	}
	got, err := fn.Call(1.0, 2.0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 2.0 {
		t.Errorf("got %v but want 2", got[0])
	}
}

func TestRegisterTraceOnly(t *testing.T) {
	reg := registry.New()
	comp := &fakeCompiler{}
	fn, err := opreg.Register("aten::add", addDecl, atenAdd,
		opreg.TraceOnly(),
		opreg.Overload(),
		opreg.WithRegistry(reg),
		opreg.WithCompiler(comp),
		opreg.WithScope(testScope),
	)
	if err != nil {
		t.Fatal(err)
	}
	if comp.calls != 0 {
		t.Errorf("trace only functions should not be compiled")
	}
	if fn.Name() != "atenAdd" {
		t.Errorf("got name %q but want atenAdd", fn.Name())
	}
	set, err := reg.ByName("aten::add")
	if err != nil {
		t.Fatal(err)
	}
	if set.Default != nil || len(set.Overloads) != 1 || set.Overloads[0].Function != fn {
		t.Errorf("unexpected overload set:\n%s", set)
	}
}

func TestRegisterCaptureError(t *testing.T) {
	reg := registry.New()
	comp := &fakeCompiler{}
	decl := opreg.Declaration{
		Params: []opreg.ParamDecl{
			{Name: "self", Type: "FLOAT[10][20]"},
			{Name: "other", Type: "Unknown"},
		},
		Return: "FLOAT",
	}
	_, err := opreg.Register("aten::bad", decl, atenAdd, opreg.WithRegistry(reg), opreg.WithCompiler(comp))
	if err == nil {
		t.Fatal("expected an error")
	}
	var shapeErr *typeexpr.InvalidShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("error %v does not contain an InvalidShapeError", err)
	}
	if !strings.Contains(err.Error(), "parameter other") {
		t.Errorf("error %q does not report parameter other", err.Error())
	}
	if comp.calls != 0 {
		t.Errorf("compiler should not be called when the signature cannot be captured")
	}
	if reg.Contains("aten::bad") {
		t.Errorf("registry should not contain aten::bad")
	}
}

func TestRegisterCompileError(t *testing.T) {
	reg := registry.New()
	compErr := errors.New("compilation failed")
	comp := &fakeCompiler{failed: compErr}
	_, err := opreg.Register("aten::add", addDecl, atenAdd,
		opreg.WithRegistry(reg),
		opreg.WithCompiler(comp),
		opreg.WithScope(testScope),
	)
	if err != compErr {
		t.Errorf("got error %v but want the compiler error", err)
	}
	if reg.Contains("aten::add") {
		t.Errorf("registry should not contain aten::add")
	}
}

func TestRegisterNoFunction(t *testing.T) {
	reg := registry.New()
	_, err := opreg.Register("aten::add", addDecl, atenAdd,
		opreg.WithRegistry(reg),
		opreg.WithCompiler(&fakeCompiler{noFunction: true}),
		opreg.WithScope(testScope),
	)
	if err == nil || !strings.Contains(err.Error(), "compiler returned no function for aten::add") {
		t.Errorf("got error %v but want a missing function error", err)
	}
	if reg.Contains("aten::add") || reg.Size() != 0 {
		t.Errorf("registry should be empty but contains:\n%s", reg)
	}
}

func TestRegisterDefaults(t *testing.T) {
	fn := opreg.MustRegister("opreg_test::identity", opreg.Declaration{
		Params: []opreg.ParamDecl{{Name: "self", Expr: th.Float()}},
		Return: "FLOAT",
	}, func(args ...any) ([]any, error) { return args, nil })
	if fn.Opset() != opreg.DefaultOpset {
		t.Errorf("got opset %v but want %v", fn.Opset(), opreg.DefaultOpset)
	}
	if !registry.Default.Contains("opreg_test::identity") {
		t.Errorf("operator not registered in the default registry")
	}
	rec, err := registry.Default.BySymbol(fn.Name())
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Signature.String(); got != "(self: FLOAT) -> FLOAT" {
		t.Errorf("unexpected signature %s", got)
	}
	if _, err := fn.Call(1, 2); err == nil {
		t.Errorf("expected an arity error")
	}
}

func TestRegisterLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := registry.New()
	bind := opreg.Op("aten::abs", opreg.Declaration{
		Params: []opreg.ParamDecl{{Name: "self", Type: "FLOAT[...]"}},
		Return: "FLOAT[...]",
	}, opreg.WithRegistry(reg), opreg.WithLogger(logger), opreg.TraceOnly())
	if _, err := bind(atenAdd); err != nil {
		t.Fatal(err)
	}
	if _, err := bind(func(...any) ([]any, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	logs := buf.String()
	for _, want := range []string{"registered operator", "op=aten::abs", "default implementation replaced", "previous=atenAdd"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs do not contain %q:\n%s", want, logs)
		}
	}
}
