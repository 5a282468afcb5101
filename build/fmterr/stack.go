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

package fmterr

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'w', 'v':
		if s.Flag('+') {
			io.WriteString(s, Verbose(err))
			return
		}
		io.WriteString(s, err.Error())
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}

// Verbose returns the error message followed by the stack trace
// of the first error in the chain recording one.
func Verbose(err error) string {
	if err == nil {
		return ""
	}
	var withSt stackTracer
	if !errors.As(err, &withSt) {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(err.Error())
	fmt.Fprintf(&b, "\nError generated at:%+v\n", withSt.StackTrace())
	return b.String()
}
