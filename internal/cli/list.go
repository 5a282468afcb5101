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
	"github.com/gx-org/opsig/build/compiler"
)

// ListEntry is an implementation in the JSON output of the list command.
type ListEntry struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Signature string `json:"signature"`
	Overload  bool   `json:"overload"`
	Opset     string `json:"opset,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <manifest> [operator...]",
		Short: "List the implementations of the operators declared in a manifest",
		Args:  cobra.MinimumNArgs(1),
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
			entries := []ListEntry{}
			for _, set := range sets {
				text.WriteString(set.String())
				for rec := range set.All() {
					entry := ListEntry{
						Name:      rec.Name,
						Symbol:    rec.Symbol(),
						Signature: rec.Signature.String(),
						Overload:  rec != set.Default,
					}
					if opset := rec.Function.Opset(); opset != (compiler.Opset{}) {
						entry.Opset = opset.String()
					}
					entries = append(entries, entry)
				}
			}
			return newOutput(rootOpts, cmd).write(text.String(), entries)
		},
	}
	return cmd
}
