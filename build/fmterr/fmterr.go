// Copyright 2024 Google LLC
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

// Package fmterr provides helpers to format errors given a position
// in the source of an annotation.
package fmterr

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/pkg/errors"
)

// FileSet builds errors formatted for a given file set.
type FileSet struct {
	FSet *token.FileSet
}

// Errorf returns a formatted error for the user.
func (f FileSet) Errorf(node ast.Node, format string, a ...any) error {
	return Errorf(f.FSet, node, format, a...)
}

// Position positions an error in the source.
func (f FileSet) Position(node ast.Node, err error) error {
	return Position(f.FSet, node, err)
}

type errorWithPos struct {
	fset *token.FileSet
	pos  token.Pos
	err  error
}

// Position adds position information to an error.
func Position(fset *token.FileSet, src ast.Node, err error) error {
	return errorWithPos{
		fset: fset,
		pos:  src.Pos(),
		err:  err,
	}
}

// Errorf returns a formatted error at a position.
func Errorf(fset *token.FileSet, src ast.Node, format string, a ...any) error {
	return Position(fset, src, errors.Errorf(format, a...))
}

// Error returns a string description of the error.
func (err errorWithPos) Error() string {
	if err.fset == nil || !err.pos.IsValid() {
		return err.err.Error()
	}
	return PosString(err.fset, err.pos) + " " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

// PosString returns a position as a string that can be used for an error.
// Annotations parsed from strings have no file name: only the column is kept.
func PosString(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)
	if p.Filename == "" {
		return fmt.Sprintf("%d:", p.Column)
	}
	return p.String() + ":"
}

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}
