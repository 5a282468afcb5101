// Package stringseq provides functions for converting sequences to strings.
package stringseq

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// JoinFunc converts each element with f and concatenates the results.
// The separator string sep is placed between elements in the resulting string.
func JoinFunc[T any](seq iter.Seq[T], f func(T) string, sep string) string {
	var b strings.Builder
	n := 0
	for item := range seq {
		if n > 0 {
			b.WriteString(sep)
		}
		b.WriteString(f(item))
		n++
	}
	return b.String()
}

// Join concatenates the elements of its first argument to create a single string.
func Join(seq iter.Seq[string], sep string) string {
	return JoinFunc(seq, func(s string) string { return s }, sep)
}

// JoinStringer concatenates the stringified elements of a slice.
func JoinStringer[T fmt.Stringer](els []T, sep string) string {
	return JoinFunc(slices.Values(els), func(el T) string { return el.String() }, sep)
}
