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

package compiler_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/gx-org/opsig/build/compiler"
	th "github.com/gx-org/opsig/build/typeexpr/typehelper"
)

func add(args ...any) ([]any, error) {
	return []any{args[0].(int) + args[1].(int)}, nil
}

var addSig = th.Signature(th.Float(),
	th.Param("self", th.Float()),
	th.Param("other", th.Float()),
)

func TestScript(t *testing.T) {
	script := compiler.NewScript()
	opset := compiler.Opset{Domain: "test.lib", Version: 2}
	var names []string
	for range 3 {
		fn, err := script.Compile(opset, "lib::add", addSig, add)
		if err != nil {
			t.Fatal(err)
		}
		if fn.Opset() != opset {
			t.Errorf("got opset %v but want %v", fn.Opset(), opset)
		}
		names = append(names, fn.Name())
	}
	if diff := cmp.Diff([]string{"lib_add", "lib_add1", "lib_add2"}, names); diff != "" {
		t.Errorf("unexpected generated symbols (-want +got):\n%s", diff)
	}
}

func TestScriptCall(t *testing.T) {
	fn, err := compiler.NewScript().Compile(compiler.Opset{Domain: "test.lib", Version: 1}, "lib::add", addSig, add)
	if err != nil {
		t.Fatal(err)
	}
	got, err := fn.Call(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{3}, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	_, err = fn.Call(1)
	var compErr *compiler.Error
	if !errors.As(err, &compErr) || compErr.Op != "call" {
		t.Errorf("got error %v but want a call error", err)
	}
}

func TestScriptErrors(t *testing.T) {
	script := compiler.NewScript()
	opset := compiler.Opset{Domain: "test.lib", Version: 1}
	if _, err := script.Compile(opset, "lib::add", addSig, nil); err == nil {
		t.Errorf("expected an error when compiling a nil implementation")
	}
	if _, err := script.Compile(opset, "lib::add", nil, add); err == nil {
		t.Errorf("expected an error when compiling without a signature")
	}
}

func TestTrace(t *testing.T) {
	fn := compiler.Trace("aten_add", add)
	if fn.Name() != "aten_add" {
		t.Errorf("got name %q but want aten_add", fn.Name())
	}
	if fn.Opset() != (compiler.Opset{}) {
		t.Errorf("traced function should not have an opset: got %v", fn.Opset())
	}
	got, err := fn.Call(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 7 {
		t.Errorf("got %v but want 7", got[0])
	}
	if s := (compiler.Opset{Domain: "lib", Version: 3}).String(); s != "lib@3" {
		t.Errorf("got %q but want lib@3", s)
	}
}
