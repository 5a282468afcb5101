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

package constraints_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/gx-org/opsig/build/constraints"
	"github.com/gx-org/opsig/build/typeexpr"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
	th "github.com/gx-org/opsig/build/typeexpr/typehelper"
)

var (
	tvConstraints = th.Constrained("_TestTypeVarConstraints", elemkind.Int64, elemkind.Float)
	tvOneBound    = th.Bounded("_TestTypeVarOneBound", th.Int64())
	tvTwoBound    = th.Bounded("_TestTypeVarTwoBound", th.Union(th.Int64(), th.Float()))
)

func wrapAll(wrapper string, ss []string) []string {
	var r []string
	for _, s := range ss {
		r = append(r, wrapper+"("+s+")")
	}
	return r
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		expr typeexpr.Expr
		want []string
	}{
		{
			name: "tensor_type_all",
			expr: typeexpr.AnyTensor(),
			want: constraints.AllTypeStrings,
		},
		{
			name: "tensor_type",
			expr: th.Int64(),
			want: []string{"tensor(int64)"},
		},
		{
			name: "tensor_type_union",
			expr: th.Union(th.Int64(), th.Float()),
			want: []string{"tensor(int64)", "tensor(float)"},
		},
		{
			name: "tensor_type_variadic_shape",
			expr: th.Variadic(elemkind.Int64),
			want: []string{"tensor(int64)"},
		},
		{
			name: "tensor_type_shape",
			expr: th.Shaped(elemkind.Int64, 10),
			want: []string{"tensor(int64)"},
		},
		{
			name: "type_var_constraints",
			expr: tvConstraints,
			want: []string{"tensor(int64)", "tensor(float)"},
		},
		{
			name: "type_bound_one",
			expr: tvOneBound,
			want: []string{"tensor(int64)"},
		},
		{
			name: "type_bound_two",
			expr: tvTwoBound,
			want: []string{"tensor(int64)", "tensor(float)"},
		},
		{
			name: "optional_tensor_type_all",
			expr: th.Optional(typeexpr.AnyTensor()),
			want: append(append([]string{}, constraints.AllTypeStrings...), wrapAll("optional", constraints.AllTypeStrings)...),
		},
		{
			name: "optional_tensor_type",
			expr: th.Optional(th.Int64()),
			want: []string{"tensor(int64)", "optional(tensor(int64))"},
		},
		{
			name: "optional_tensor_type_union",
			expr: th.Optional(th.Union(th.Int64(), th.Float())),
			want: []string{
				"tensor(int64)",
				"tensor(float)",
				"optional(tensor(int64))",
				"optional(tensor(float))",
			},
		},
		{
			name: "optional_tensor_type_variadic_shape",
			expr: th.Optional(th.Variadic(elemkind.Int64)),
			want: []string{"tensor(int64)", "optional(tensor(int64))"},
		},
		{
			name: "optional_tensor_type_shape",
			expr: th.Optional(th.Shaped(elemkind.Int64, 10)),
			want: []string{"tensor(int64)", "optional(tensor(int64))"},
		},
		{
			name: "optional_type_var_constraints",
			expr: th.Optional(tvConstraints),
			want: []string{
				"tensor(int64)",
				"tensor(float)",
				"optional(tensor(int64))",
				"optional(tensor(float))",
			},
		},
		{
			name: "optional_type_bound_one",
			expr: th.Optional(tvOneBound),
			want: []string{"tensor(int64)", "optional(tensor(int64))"},
		},
		{
			name: "optional_type_bound_two",
			expr: th.Optional(tvTwoBound),
			want: []string{
				"tensor(int64)",
				"tensor(float)",
				"optional(tensor(int64))",
				"optional(tensor(float))",
			},
		},
		{
			name: "sequence_type_all",
			expr: th.Sequence(typeexpr.AnyTensor()),
			want: wrapAll("sequence", constraints.AllTypeStrings),
		},
		{
			name: "sequence_type",
			expr: th.Sequence(th.Int64()),
			want: []string{"sequence(tensor(int64))"},
		},
		{
			name: "union_sequence_type",
			expr: th.Union(th.Sequence(th.Int64()), th.Sequence(th.Float())),
			want: []string{"sequence(tensor(int64))", "sequence(tensor(float))"},
		},
		{
			name: "sequence_type_variadic_shape",
			expr: th.Sequence(th.Variadic(elemkind.Int64)),
			want: []string{"sequence(tensor(int64))"},
		},
		{
			name: "sequence_type_shape",
			expr: th.Sequence(th.Shaped(elemkind.Int64, 10)),
			want: []string{"sequence(tensor(int64))"},
		},
		{
			name: "sequence_type_var_constraints",
			expr: th.Sequence(tvConstraints),
			want: []string{"sequence(tensor(int64))", "sequence(tensor(float))"},
		},
		{
			name: "sequence_type_bound_one",
			expr: th.Sequence(tvOneBound),
			want: []string{"sequence(tensor(int64))"},
		},
		{
			name: "sequence_type_bound_two",
			expr: th.Sequence(tvTwoBound),
			want: []string{"sequence(tensor(int64))", "sequence(tensor(float))"},
		},
		{
			name: "optional_sequence_type",
			expr: th.Optional(th.Sequence(th.Int64())),
			want: []string{"sequence(tensor(int64))", "optional(sequence(tensor(int64)))"},
		},
		{
			name: "union_duplicates",
			expr: th.Union(th.Int64(), th.Float(), th.Shaped(elemkind.Int64, 3), tvConstraints),
			want: []string{"tensor(int64)", "tensor(float)"},
		},
		{
			name: "union_optional_member",
			expr: th.Union(th.Optional(th.Float()), th.Int64()),
			want: []string{"tensor(float)", "optional(tensor(float))", "tensor(int64)"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := constraints.Resolve(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected constraints for %s (-want +got):\n%s", test.expr, diff)
			}
		})
	}
}

func TestResolveWrappers(t *testing.T) {
	exprs := []typeexpr.Expr{
		th.Float(),
		typeexpr.AnyTensor(),
		th.Union(th.Int64(), th.Float()),
		tvTwoBound,
		th.Sequence(tvConstraints),
		th.Optional(th.Int64()),
	}
	for _, x := range exprs {
		bare, err := constraints.Resolve(x)
		if err != nil {
			t.Fatal(err)
		}
		opt, err := constraints.Resolve(th.Optional(x))
		if err != nil {
			t.Fatal(err)
		}
		if len(opt) > 2*len(bare) {
			t.Errorf("Optional[%s]: got %d constraints but want at most %d", x, len(opt), 2*len(bare))
		}
		if diff := cmp.Diff(bare, opt[:len(bare)]); diff != "" {
			t.Errorf("Optional[%s] does not start with the constraints of %s (-want +got):\n%s", x, x, diff)
		}
		seq, err := constraints.Resolve(th.Sequence(x))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(wrapAll("sequence", bare), seq); diff != "" {
			t.Errorf("unexpected constraints for Sequence[%s] (-want +got):\n%s", x, diff)
		}
	}
}

func TestResolveElementTypes(t *testing.T) {
	for _, kind := range elemkind.All() {
		got, err := constraints.Resolve(th.Tensor(kind))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"tensor(" + kind.String() + ")"}, got); diff != "" {
			t.Errorf("unexpected constraints for %s (-want +got):\n%s", kind, diff)
		}
	}
}

func TestResolveUnsupported(t *testing.T) {
	attr := typeexpr.NewAttribute(typeexpr.AttrInt)
	tests := []struct {
		expr typeexpr.Expr
		want typeexpr.Expr
	}{
		{expr: attr, want: attr},
		{expr: th.Optional(attr), want: attr},
		{expr: th.Union(th.Float(), attr), want: attr},
		{expr: th.Tensor(elemkind.Invalid), want: th.Tensor(elemkind.Invalid)},
		{expr: nil, want: nil},
	}
	for _, test := range tests {
		_, err := constraints.Resolve(test.expr)
		var unsupported *constraints.UnsupportedTypeError
		if !errors.As(err, &unsupported) {
			t.Errorf("%v: got error %v but want an UnsupportedTypeError", test.expr, err)
			continue
		}
		if diff := cmp.Diff(test.want, unsupported.Expr); diff != "" {
			t.Errorf("%v: unexpected expression in error (-want +got):\n%s", test.expr, diff)
		}
	}
}

func TestAllTypeStrings(t *testing.T) {
	want := []string{
		"tensor(float)",
		"tensor(uint8)",
		"tensor(int8)",
		"tensor(uint16)",
		"tensor(int16)",
		"tensor(int32)",
		"tensor(int64)",
		"tensor(string)",
		"tensor(bool)",
		"tensor(float16)",
		"tensor(double)",
		"tensor(uint32)",
		"tensor(uint64)",
		"tensor(complex64)",
		"tensor(complex128)",
		"tensor(bfloat16)",
	}
	if diff := cmp.Diff(want, constraints.AllTypeStrings); diff != "" {
		t.Errorf("unexpected catalog (-want +got):\n%s", diff)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		expr typeexpr.Expr
		want string
		ok   bool
	}{
		{name: "type_var", expr: tvConstraints, want: "_TestTypeVarConstraints", ok: true},
		{name: "type_var_bound", expr: tvOneBound, want: "_TestTypeVarOneBound", ok: true},
		{name: "optional_type_var", expr: th.Optional(tvOneBound), want: "Optional_TestTypeVarOneBound", ok: true},
		{name: "sequence_type_var", expr: th.Sequence(tvOneBound), want: "Sequence_TestTypeVarOneBound", ok: true},
		{name: "normal_type", expr: th.Int64()},
		{name: "shaped_type", expr: th.Shaped(elemkind.Int64, 3)},
		{name: "union_type", expr: th.Union(th.Int64(), th.Float())},
		{name: "optional_type", expr: th.Optional(th.Int64())},
		{name: "sequence_type", expr: th.Sequence(th.Int64())},
		{name: "optional_sequence_type", expr: th.Optional(th.Sequence(th.Int64()))},
		{name: "optional_sequence_type_var", expr: th.Optional(th.Sequence(tvOneBound))},
		{name: "optional_union_type", expr: th.Optional(th.Union(th.Int64(), th.Float()))},
		{name: "attribute", expr: typeexpr.NewAttribute(typeexpr.AttrFloat)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := constraints.Name(test.expr)
			if ok != test.ok || got != test.want {
				t.Errorf("got %q,%v but want %q,%v", got, ok, test.want, test.ok)
			}
		})
	}
}
