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

// Package report writes markdown reports reproducing a mismatch between
// an operator implementation and the runtime executing its compiled model.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/mod/module"
	"github.com/gx-org/opsig/base/tmpl"
	"github.com/gx-org/opsig/build/fmterr"
)

// Dir is the default directory in which reports are written.
const Dir = "error_reports"

var issueTmpl = template.Must(template.New("issue").Parse(`### Summary

The runtime raises ` + "`{{.ErrorText}}`" + ` when executing test ` + "`{{.TestName}}`" + `.

To recreate this report, use

` + "```bash" + `
OPSIG_REPRODUCTION_REPORT=1 go test ./... -run {{.ShortTestName}}
` + "```" + `

### To reproduce

Model:

` + "```" + `
{{.ModelText}}
` + "```" + `

Inputs:

` + "```" + `
{{.Inputs}}
` + "```" + `

### Full error stack

` + "```" + `
{{.ErrorStack}}
` + "```" + `

### Environment

` + "```" + `
{{.Environment}}
` + "```" + `
`))

type issue struct {
	ErrorText     string
	TestName      string
	ShortTestName string
	ModelText     string
	Inputs        string
	ErrorStack    string
	Environment   string
}

// ShortTestName returns the last element of a dotted or slashed test name.
func ShortTestName(testName string) string {
	short := testName
	if i := strings.LastIndexAny(short, "./"); i >= 0 && i < len(short)-1 {
		short = short[i+1:]
	}
	return short
}

func fileName(testName string) string {
	base := strings.NewReplacer("/", "-", ":", "-", " ", "_").Replace(ShortTestName(testName))
	return base + "-" + uuid.NewString() + ".md"
}

func formatInputs(inputs map[string]any) (string, error) {
	names := maps.Keys(inputs)
	sort.Strings(names)
	return tmpl.IterateFunc(names, "\n", func(_ int, name string) (string, error) {
		return fmt.Sprintf("%s = %#v", name, inputs[name]), nil
	})
}

func environment() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OS: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "Go version: %s", runtime.Version())
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b.String()
	}
	for _, dep := range info.Deps {
		b.WriteString("\n")
		b.WriteString(module.Version{Path: dep.Path, Version: dep.Version}.String())
	}
	return b.String()
}

// Markdown returns the report of a failed test as markdown.
func Markdown(testName, modelText string, inputs map[string]any, err error) (string, error) {
	inputText, fErr := formatInputs(inputs)
	if fErr != nil {
		return "", fErr
	}
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	return tmpl.Execute(issueTmpl, issue{
		ErrorText:     errText,
		TestName:      testName,
		ShortTestName: ShortTestName(testName),
		ModelText:     strings.TrimSpace(modelText),
		Inputs:        inputText,
		ErrorStack:    fmterr.Verbose(err),
		Environment:   environment(),
	})
}

// Create writes the report of a failed test in a directory.
// The directory is created if it does not exist.
// Returns the path of the report.
func Create(dir, testName, modelText string, inputs map[string]any, err error) (string, error) {
	md, mErr := Markdown(testName, modelText, inputs, err)
	if mErr != nil {
		return "", mErr
	}
	if dir == "" {
		dir = Dir
	}
	if mErr := os.MkdirAll(dir, 0o755); mErr != nil {
		return "", errors.Errorf("cannot create report directory: %v", mErr)
	}
	path := filepath.Join(dir, fileName(testName))
	if mErr := os.WriteFile(path, []byte(md), 0o644); mErr != nil {
		return "", errors.Errorf("cannot write report: %v", mErr)
	}
	return path, nil
}
