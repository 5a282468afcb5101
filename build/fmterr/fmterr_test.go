package fmterr_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/gx-org/opsig/build/fmterr"
)

type sentinel struct{}

func (sentinel) Error() string { return "sentinel" }

func TestPosition(t *testing.T) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", "Optional[INT64]", 0)
	if err != nil {
		t.Fatal(err)
	}
	index := expr.(*ast.IndexExpr)
	posErr := fmterr.FileSet{FSet: fset}.Position(index.Index, sentinel{})
	if got, want := posErr.Error(), "10: sentinel"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	var target sentinel
	if !errors.As(posErr, &target) {
		t.Errorf("cannot unwrap %T from %v", target, posErr)
	}
	if got := fmt.Sprintf("%v", posErr); got != "10: sentinel" {
		t.Errorf("unexpected %%v formatting: %q", got)
	}
}

func TestVerbose(t *testing.T) {
	err := errors.Errorf("cannot resolve")
	got := fmterr.Verbose(err)
	if !strings.HasPrefix(got, "cannot resolve\nError generated at:") {
		t.Errorf("unexpected verbose error:\n%s", got)
	}
	if got := fmterr.Verbose(sentinel{}); got != "sentinel" {
		t.Errorf("got %q but want %q", got, "sentinel")
	}
	prefixed := fmterr.PrefixWith("param %s: ", "x")(sentinel{})
	if got := prefixed.Error(); got != "param x: sentinel" {
		t.Errorf("got %q but want %q", got, "param x: sentinel")
	}
}
