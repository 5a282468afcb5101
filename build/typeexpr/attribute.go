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

// AttrKind is the kind of value of an attribute.
type AttrKind int

// Attribute kinds.
const (
	AttrBool AttrKind = iota
	AttrInt
	AttrFloat
	AttrString
)

var attrIdents = map[string]AttrKind{
	"bool":   AttrBool,
	"int":    AttrInt,
	"float":  AttrFloat,
	"string": AttrString,
}

// Ident returns the annotation identifier of the attribute kind.
func (k AttrKind) Ident() string {
	switch k {
	case AttrBool:
		return "bool"
	case AttrInt:
		return "int"
	case AttrFloat:
		return "float"
	case AttrString:
		return "string"
	}
	return "invalid"
}

// Attribute is the type of a parameter passed as an operator attribute
// instead of a graph input.
type Attribute struct {
	Kind AttrKind
	// List is true for a sequence of values.
	List bool
}

// NewAttribute returns an attribute type of a given kind.
func NewAttribute(kind AttrKind) *Attribute {
	return &Attribute{Kind: kind}
}

// NewAttributeList returns the type of an attribute holding a list of values.
func NewAttributeList(kind AttrKind) *Attribute {
	return &Attribute{Kind: kind, List: true}
}

func (*Attribute) node() {}

// String returns the annotation of the attribute type.
func (a *Attribute) String() string {
	if a.List {
		return "Sequence[" + a.Kind.Ident() + "]"
	}
	return a.Kind.Ident()
}

// ProtoType returns the name of the attribute type in an operator schema.
// Booleans are stored as integers.
func (a *Attribute) ProtoType() string {
	var s string
	switch a.Kind {
	case AttrBool, AttrInt:
		s = "INT"
	case AttrFloat:
		s = "FLOAT"
	case AttrString:
		s = "STRING"
	default:
		return "UNDEFINED"
	}
	if a.List {
		s += "S"
	}
	return s
}
