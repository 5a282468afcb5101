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

package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/gx-org/opsig/build/typeexpr"
	"github.com/gx-org/opsig/internal/manifest"
)

// scopeFlags declares type variables from the command line.
type scopeFlags struct {
	typeVars []string
	bounds   []string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.typeVars, "typevar", nil, "declare a constrained type variable (NAME=KIND1,KIND2)")
	cmd.Flags().StringArrayVar(&f.bounds, "bound", nil, "declare a bounded type variable (NAME=EXPR)")
}

// scope returns the scope declaring the type variables.
// Constrained type variables are declared first, so that bounds can refer to them.
func (f *scopeFlags) scope() (*typeexpr.Scope, error) {
	var m manifest.Manifest
	for _, flag := range f.typeVars {
		name, kinds, err := splitDecl("typevar", flag)
		if err != nil {
			return nil, err
		}
		m.TypeVars = append(m.TypeVars, manifest.TypeVarDecl{
			Name:        name,
			Constraints: strings.Split(kinds, ","),
		})
	}
	for _, flag := range f.bounds {
		name, bound, err := splitDecl("bound", flag)
		if err != nil {
			return nil, err
		}
		m.TypeVars = append(m.TypeVars, manifest.TypeVarDecl{Name: name, Bound: bound})
	}
	return m.Scope()
}

func splitDecl(flag, value string) (string, string, error) {
	name, rhs, ok := strings.Cut(value, "=")
	name, rhs = strings.TrimSpace(name), strings.TrimSpace(rhs)
	if !ok || name == "" || rhs == "" {
		return "", "", errors.Errorf("invalid --%s %q: want NAME=VALUE", flag, value)
	}
	return name, rhs, nil
}
