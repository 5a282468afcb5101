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

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/opsig/build/fmterr"
	"github.com/gx-org/opsig/build/typeexpr/elemkind"
)

const (
	optionalIdent = "Optional"
	sequenceIdent = "Sequence"
	unionIdent    = "Union"
)

// placeholder is a token replaced by an identifier before parsing.
// go/parser only accepts types after the first index of an index list,
// so literal dimensions and ellipses are replaced by identifiers of the
// same length. Error columns are preserved.
type placeholder struct {
	tok token.Token
	lit string
}

type exprParser struct {
	fmterr.FileSet
	scope        *Scope
	placeholders map[int]placeholder
}

// Parse an annotation into a type expression.
// Identifiers are resolved, in order, as element types (FLOAT, INT64, ..., TensorType),
// attribute types (bool, int, float, string) and type variables declared in the scope.
// The scope can be nil.
func Parse(src string, scope *Scope) (Expr, error) {
	rewritten, placeholders := substitute(src)
	fset := token.NewFileSet()
	node, err := parser.ParseExprFrom(fset, "", rewritten, 0)
	if err != nil {
		return nil, errors.Errorf("cannot parse annotation %q: %v", src, err)
	}
	p := &exprParser{
		FileSet:      fmterr.FileSet{FSet: fset},
		scope:        scope,
		placeholders: placeholders,
	}
	expr, err := p.expr(node)
	if err != nil {
		return nil, fmterr.PrefixWith("annotation %q: ", src)(err)
	}
	return expr, nil
}

// substitute replaces literals and ellipses by underscores.
// The source is returned unchanged if it cannot be scanned,
// so that the parser reports the error.
func substitute(src string) (string, map[int]placeholder) {
	fset := token.NewFileSet()
	file := fset.AddFile("", -1, len(src))
	var s scanner.Scanner
	s.Init(file, []byte(src), nil, 0)
	placeholders := make(map[int]placeholder)
	out := []byte(src)
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		switch tok {
		case token.ELLIPSIS:
			lit = tok.String()
		case token.INT, token.FLOAT, token.IMAG, token.CHAR, token.STRING:
		default:
			continue
		}
		offset := file.Offset(pos)
		placeholders[offset] = placeholder{tok: tok, lit: lit}
		copy(out[offset:], strings.Repeat("_", len(lit)))
	}
	if s.ErrorCount > 0 {
		return src, nil
	}
	return string(out), placeholders
}

func (p *exprParser) placeholder(ident *ast.Ident) (placeholder, bool) {
	ph, ok := p.placeholders[p.FSet.Position(ident.Pos()).Offset]
	return ph, ok
}

func (p *exprParser) expr(node ast.Expr) (Expr, error) {
	switch nodeT := node.(type) {
	case *ast.ParenExpr:
		return p.expr(nodeT.X)
	case *ast.Ident:
		return p.ident(nodeT)
	case *ast.IndexExpr:
		return p.index(nodeT.X, []ast.Expr{nodeT.Index})
	case *ast.IndexListExpr:
		return p.index(nodeT.X, nodeT.Indices)
	default:
		return nil, p.Errorf(node, "unsupported annotation syntax")
	}
}

func (p *exprParser) ident(ident *ast.Ident) (Expr, error) {
	if ph, ok := p.placeholder(ident); ok {
		if ph.tok == token.ELLIPSIS {
			return nil, p.Errorf(ident, "... can only be used as a shape")
		}
		return nil, p.Errorf(ident, "unsupported annotation syntax %s", ph.lit)
	}
	name := ident.Name
	if kind := elemkind.FromIdent(name); kind != elemkind.Invalid {
		return Tensor(kind), nil
	}
	if kind, ok := attrIdents[name]; ok {
		return NewAttribute(kind), nil
	}
	if tv, ok := p.scope.Lookup(name); ok {
		return tv, nil
	}
	switch name {
	case optionalIdent, sequenceIdent, unionIdent:
		return nil, p.Errorf(ident, "%s requires type arguments", name)
	}
	return nil, p.Errorf(ident, "undefined type %s", name)
}

func (p *exprParser) index(x ast.Expr, args []ast.Expr) (Expr, error) {
	if ident, ok := x.(*ast.Ident); ok {
		switch ident.Name {
		case optionalIdent:
			inner, err := p.single(ident, args)
			if err != nil {
				return nil, err
			}
			return NewOptional(inner), nil
		case sequenceIdent:
			inner, err := p.single(ident, args)
			if err != nil {
				return nil, err
			}
			if attr, ok := inner.(*Attribute); ok && !attr.List {
				return NewAttributeList(attr.Kind), nil
			}
			return NewSequence(inner), nil
		case unionIdent:
			members := make([]Expr, len(args))
			for i, arg := range args {
				var err error
				if members[i], err = p.expr(arg); err != nil {
					return nil, err
				}
			}
			return NewUnion(members...)
		}
	}
	base, err := p.expr(x)
	if err != nil {
		return nil, err
	}
	shape, err := p.shape(args)
	if err != nil {
		return nil, err
	}
	shaped, err := WithShape(base, shape)
	if err != nil {
		return nil, p.Position(x, err)
	}
	return shaped, nil
}

func (p *exprParser) single(ident *ast.Ident, args []ast.Expr) (Expr, error) {
	if len(args) != 1 {
		return nil, p.Errorf(ident, "%s requires exactly one type argument but got %d", ident.Name, len(args))
	}
	return p.expr(args[0])
}

func (p *exprParser) shape(args []ast.Expr) (Shape, error) {
	if len(args) == 1 {
		if ident, ok := args[0].(*ast.Ident); ok {
			if ph, ok := p.placeholder(ident); ok && ph.tok == token.ELLIPSIS {
				return Variadic(), nil
			}
		}
	}
	var dims []Dim
	for _, arg := range args {
		dim, err := p.dim(arg)
		if err != nil {
			return Shape{}, err
		}
		dims = append(dims, dim)
	}
	return Dims(dims...), nil
}

func (p *exprParser) dim(arg ast.Expr) (Dim, error) {
	ident, ok := arg.(*ast.Ident)
	if !ok {
		return Dim{}, p.Errorf(arg, "invalid dimension")
	}
	ph, ok := p.placeholder(ident)
	if !ok {
		return Symbol(ident.Name), nil
	}
	switch ph.tok {
	case token.ELLIPSIS:
		return Dim{}, p.Errorf(arg, "... must be the only dimension of a shape")
	case token.INT:
		size, err := strconv.Atoi(ph.lit)
		if err != nil {
			return Dim{}, p.Errorf(arg, "invalid dimension %s: %v", ph.lit, err)
		}
		return Size(size), nil
	case token.STRING:
		sym, err := strconv.Unquote(ph.lit)
		if err != nil || sym == "" || sym == "..." {
			return Dim{}, p.Errorf(arg, "invalid symbolic dimension %s", ph.lit)
		}
		return Symbol(sym), nil
	}
	return Dim{}, p.Errorf(arg, "invalid dimension %s", ph.lit)
}
