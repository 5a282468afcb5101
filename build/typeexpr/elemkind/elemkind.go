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

// Package elemkind defines the element kinds of tensors in operator signatures.
package elemkind

import "github.com/gx-org/backend/dtype"

// Kind of a tensor element.
// Values follow the numbering of the ONNX TensorProto data types.
type Kind uint

// Element kinds.
const (
	Invalid Kind = iota

	Float
	Uint8
	Int8
	Uint16
	Int16
	Int32
	Int64
	String
	Bool
	Float16
	Double
	Uint32
	Uint64
	Complex64
	Complex128
	Bfloat16

	// Any is the wildcard kind matching all the element kinds.
	Any
)

type info struct {
	ident string
	name  string
	dtype dtype.DataType
}

var infos = [...]info{
	Invalid:    {ident: "INVALID", name: "invalid", dtype: dtype.Invalid},
	Float:      {ident: "FLOAT", name: "float", dtype: dtype.Float32},
	Uint8:      {ident: "UINT8", name: "uint8", dtype: dtype.Invalid},
	Int8:       {ident: "INT8", name: "int8", dtype: dtype.Invalid},
	Uint16:     {ident: "UINT16", name: "uint16", dtype: dtype.Invalid},
	Int16:      {ident: "INT16", name: "int16", dtype: dtype.Invalid},
	Int32:      {ident: "INT32", name: "int32", dtype: dtype.Int32},
	Int64:      {ident: "INT64", name: "int64", dtype: dtype.Int64},
	String:     {ident: "STRING", name: "string", dtype: dtype.Invalid},
	Bool:       {ident: "BOOL", name: "bool", dtype: dtype.Bool},
	Float16:    {ident: "FLOAT16", name: "float16", dtype: dtype.Invalid},
	Double:     {ident: "DOUBLE", name: "double", dtype: dtype.Float64},
	Uint32:     {ident: "UINT32", name: "uint32", dtype: dtype.Uint32},
	Uint64:     {ident: "UINT64", name: "uint64", dtype: dtype.Uint64},
	Complex64:  {ident: "COMPLEX64", name: "complex64", dtype: dtype.Invalid},
	Complex128: {ident: "COMPLEX128", name: "complex128", dtype: dtype.Invalid},
	Bfloat16:   {ident: "BFLOAT16", name: "bfloat16", dtype: dtype.Bfloat16},
	Any:        {ident: "TensorType", name: "any", dtype: dtype.Invalid},
}

// All returns all the concrete element kinds, in their canonical order.
func All() []Kind {
	all := make([]Kind, 0, int(Any-Float))
	for k := Float; k < Any; k++ {
		all = append(all, k)
	}
	return all
}

// IsConcrete returns true if the kind is a valid kind other than the wildcard.
func (k Kind) IsConcrete() bool {
	return k > Invalid && k < Any
}

// Ident returns the identifier used to annotate a parameter with the kind.
func (k Kind) Ident() string {
	if k > Any {
		return infos[Invalid].ident
	}
	return infos[k].ident
}

// String returns the name of the kind as used in type-constraint descriptors.
func (k Kind) String() string {
	if k > Any {
		return infos[Invalid].name
	}
	return infos[k].name
}

// DType converts a kind into a backend data type.
// Returns dtype.Invalid if the backend does not support the kind.
func (k Kind) DType() dtype.DataType {
	if k > Any {
		return dtype.Invalid
	}
	return infos[k].dtype
}

// FromIdent returns a kind given its annotation identifier.
// The "TensorType" identifier returns the wildcard kind.
func FromIdent(ident string) Kind {
	for k := Float; k <= Any; k++ {
		if infos[k].ident == ident {
			return k
		}
	}
	return Invalid
}

