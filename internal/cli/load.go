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
	"github.com/gx-org/opsig/api/opreg"
	"github.com/gx-org/opsig/build/compiler"
	"github.com/gx-org/opsig/build/registry"
	"github.com/gx-org/opsig/internal/manifest"
)

// loadRegistry registers the operators of a manifest in a new registry.
func loadRegistry(opts *RootOptions, path string) (*registry.Registry, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := m.Register(reg,
		opreg.WithCompiler(compiler.NewScript()),
		opreg.WithLogger(opts.Logger()),
	); err != nil {
		return nil, err
	}
	opts.Logger().Debug("manifest loaded", "path", path, "ops", reg.Size())
	return reg, nil
}

// selectSets returns the overload sets of the given operators,
// or all of them if no operator is given.
func selectSets(reg *registry.Registry, names []string) ([]*registry.OverloadSet, error) {
	var sets []*registry.OverloadSet
	if len(names) == 0 {
		for set := range reg.OverloadSets() {
			sets = append(sets, set)
		}
		return sets, nil
	}
	for _, name := range names {
		set, err := reg.ByName(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}
