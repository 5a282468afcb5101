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
	"github.com/gx-org/opsig/build/schema"
)

// SchemaResult is the schema of an implementation in the JSON output of the schema command.
type SchemaResult struct {
	Symbol string           `json:"symbol"`
	Schema *schema.OpSchema `json:"schema"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <manifest> [operator...]",
		Short: "Print the schemas of the operators declared in a manifest",
		Long: `Print the schemas of the operators declared in a manifest.

A schema lists the inputs, attributes and outputs of an implementation
together with the type constraints of its inputs and outputs.
All the operators are printed if none is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(rootOpts, args[0])
			if err != nil {
				return err
			}
			sets, err := selectSets(reg, args[1:])
			if err != nil {
				return err
			}
			var text strings.Builder
			results := []SchemaResult{}
			for _, set := range sets {
				for rec := range set.All() {
					s, err := schema.FromSignature(rec.Name, rec.Signature)
					if err != nil {
						return err
					}
					text.WriteString("# " + rec.Symbol() + "\n")
					text.WriteString(s.String())
					results = append(results, SchemaResult{Symbol: rec.Symbol(), Schema: s})
				}
			}
			return newOutput(rootOpts, cmd).write(text.String(), results)
		},
	}
	return cmd
}
