//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package plugin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// A Manifest describes one plugin: its identity, the script to load, the
// commands it contributes, and its lifecycle hooks. Parsed from the
// plugin.toml found in each plugin directory.
type Manifest struct {
	ID       string        `toml:"id"`
	Name     string        `toml:"name"`
	Script   string        `toml:"script"`
	Commands []CommandSpec `toml:"commands"`
	Hooks    Hooks         `toml:"hooks"`
}

// A CommandSpec declares one command inside a manifest.
type CommandSpec struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Func        string `toml:"func"`
	Key         string `toml:"key"`
}

// Hooks names the script functions bound to editor lifecycle events.
type Hooks struct {
	OnOpen string `toml:"on_open"`
	OnSave string `toml:"on_save"`
}

// ManifestFileName is the expected manifest name inside a plugin directory.
const ManifestFileName = "plugin.toml"

// readManifest parses and validates the manifest in dir. The manifest id
// must match the directory name so plugin references stay unambiguous.
func readManifest(dir string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(filepath.Join(dir, ManifestFileName), &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFileName, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest has no id")
	}
	if base := filepath.Base(dir); m.ID != base {
		return nil, fmt.Errorf("manifest id %q does not match directory name %q", m.ID, base)
	}
	if m.Script == "" {
		return nil, fmt.Errorf("manifest has no script")
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	for _, c := range m.Commands {
		if c.Name == "" || c.Func == "" {
			return nil, fmt.Errorf("command entries need both name and func")
		}
	}
	return &m, nil
}

// DefaultDirs returns the plugin search directories: a plugins directory
// under the current working directory, and one next to the executable.
func DefaultDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, "plugins"))
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "plugins"))
	}
	return dirs
}
