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

// Package fmt provides utility methods for building string representations of operator objects.
package fmt

import (
	"path"
	"reflect"
	"runtime"
	"strings"
)

// IndentSkip skips some lines and indent the rest with a tabulation.
func IndentSkip(skip int, x string) string {
	var y strings.Builder
	n := 0
	for line := range strings.Lines(x) {
		if n >= skip {
			y.WriteString("\t")
		}
		y.WriteString(line)
		n++
	}
	return y.String()
}

// Indent the given string by a tabulation.
func Indent(x string) string {
	return IndentSkip(0, x)
}

// Func returns the fully qualified name of a function.
func Func(f any) string {
	if f == nil {
		return "<nil>"
	}
	val := reflect.ValueOf(f)
	if val.Kind() != reflect.Func || val.IsNil() {
		return "<nil>"
	}
	fn := runtime.FuncForPC(val.Pointer())
	if fn == nil {
		return "<unknown>"
	}
	return fn.Name()
}

// ShortFunc returns the name of a function without its package path.
// Closures keep their generated suffix, for example "TestOp.func1".
func ShortFunc(f any) string {
	name := path.Base(Func(f))
	if i := strings.IndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return name
}
