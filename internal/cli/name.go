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
	"github.com/spf13/cobra"
	"github.com/gx-org/opsig/build/constraints"
)

// NameResult is the JSON output of the name command.
type NameResult struct {
	Expr  string `json:"expr"`
	Name  string `json:"name,omitempty"`
	Found bool   `json:"found"`
}

// NewNameCommand creates the name command.
func NewNameCommand(rootOpts *RootOptions) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:     "name <annotation>",
		Short:   "Print the name of the type constraint of a type annotation",
		Example: `  opsig name --typevar T=FLOAT 'Optional[T]'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := parseArg(&flags, args[0])
			if err != nil {
				return err
			}
			name, found := constraints.Name(expr)
			text := name + "\n"
			if !found {
				text = "no constraint name for " + expr.String() + "\n"
			}
			return newOutput(rootOpts, cmd).write(text, NameResult{
				Expr:  expr.String(),
				Name:  name,
				Found: found,
			})
		},
	}
	flags.register(cmd)
	return cmd
}
