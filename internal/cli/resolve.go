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

	"github.com/spf13/cobra"
	"github.com/gx-org/opsig/build/constraints"
	"github.com/gx-org/opsig/build/typeexpr"
)

// ResolveResult is the JSON output of the resolve command.
type ResolveResult struct {
	Expr        string   `json:"expr"`
	Constraints []string `json:"constraints"`
	// Shape is the backend shape of a tensor with literal dimensions.
	Shape       string   `json:"shape,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "resolve <annotation>",
		Short: "Print the type constraints accepted by a type annotation",
		Example: `  opsig resolve 'Optional[Union[INT64, FLOAT]]'
  opsig resolve --typevar TReal=FLOAT,DOUBLE 'Sequence[TReal]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := parseArg(&flags, args[0])
			if err != nil {
				return err
			}
			allowed, err := constraints.Resolve(expr)
			if err != nil {
				return err
			}
			rootOpts.Logger().Debug("resolved type constraints", "expr", expr.String(), "count", len(allowed))
			var text strings.Builder
			for _, s := range allowed {
				text.WriteString(s)
				text.WriteString("\n")
			}
			result := ResolveResult{
				Expr:        expr.String(),
				Constraints: allowed,
			}
			if shaped, ok := expr.(*typeexpr.Shaped); ok {
				if bs, ok := shaped.BackendShape(); ok {
					result.Shape = bs.String()
				}
			}
			return newOutput(rootOpts, cmd).write(text.String(), result)
		},
	}
	flags.register(cmd)
	return cmd
}

func parseArg(flags *scopeFlags, src string) (typeexpr.Expr, error) {
	scope, err := flags.scope()
	if err != nil {
		return nil, err
	}
	return typeexpr.Parse(src, scope)
}
