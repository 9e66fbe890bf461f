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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tern-editor/tern/buffer"
	"github.com/tern-editor/tern/command"
	"github.com/tern-editor/tern/editor"
	"go.starlark.net/starlark"
)

func writePlugin(t *testing.T, root, id, manifest, script string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.star"), []byte(script), 0644); err != nil {
		t.Fatal(err)
	}
}

const upperManifest = `
id = "upper"
name = "Upper"
script = "main.star"

[[commands]]
name = "upcase"
description = "Upper-case the current line"
func = "upcase"
key = "ctrl+u"
`

const upperScript = `
def upcase(ed):
    ed.set_current_line_text(ed.current_line_text().upper())
`

func TestLoadAndRunCommand(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "upper", upperManifest, upperScript)

	host := NewHost()
	reg := command.NewRegistry()
	host.Load([]string{root}, reg)
	if len(host.Plugins()) != 1 {
		t.Fatalf("Expected 1 plugin, loaded %d", len(host.Plugins()))
	}

	cmd, ok := reg.Get("upcase")
	if !ok {
		t.Fatal("Plugin command not registered")
	}
	if cmd.Description != "Upper-case the current line (plugin: Upper)" {
		t.Errorf("Unexpected description: %q", cmd.Description)
	}
	if name, _ := reg.ResolveKey("Ctrl+U"); name != "upcase" {
		t.Errorf("Chord resolved to %q", name)
	}

	e := editor.NewEditor()
	e.Buffer = buffer.FromString("hello")
	if err := host.RunCommand(e, cmd.Plugin.PluginID, cmd.Plugin.Func); err != nil {
		t.Fatal(err)
	}
	if e.Buffer.Text() != "HELLO" {
		t.Errorf("Command did not run: %q", e.Buffer.Text())
	}
	// a plugin command undoes as one unit
	e.Undo()
	if e.Buffer.Text() != "hello" {
		t.Errorf("Undo after plugin command left %q", e.Buffer.Text())
	}
}

func TestLoadIsolation(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "upper", upperManifest, upperScript)
	// id does not match the directory name
	writePlugin(t, root, "broken", `
id = "other"
name = "Broken"
script = "main.star"
`, "")
	// script fails at load time
	writePlugin(t, root, "crashy", `
id = "crashy"
name = "Crashy"
script = "main.star"
`, "undefined_name()\n")

	host := NewHost()
	host.Load([]string{root}, command.NewRegistry())
	if len(host.Plugins()) != 1 {
		t.Fatalf("Expected only the good plugin to load, got %d", len(host.Plugins()))
	}
	if host.Plugins()[0].ID != "upper" {
		t.Errorf("Wrong plugin survived: %q", host.Plugins()[0].ID)
	}
}

func TestRunawayScriptAborted(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "spin", `
id = "spin"
name = "Spin"
script = "main.star"

[[commands]]
name = "spin"
func = "spin"
`, `
def spin(ed):
    ed.insert("started")
    while True:
        pass
`)
	writePlugin(t, root, "upper", upperManifest, upperScript)

	host := NewHost()
	reg := command.NewRegistry()
	host.Load([]string{root}, reg)

	e := editor.NewEditor()
	err := host.RunCommand(e, "spin", "spin")
	if err == nil {
		t.Fatal("Runaway script should be aborted")
	}
	if !strings.Contains(err.Error(), "operation limit") {
		t.Errorf("Unexpected error: %v", err)
	}
	// edits made before the abort are kept
	if e.Buffer.Text() != "started" {
		t.Errorf("Partial edits lost: %q", e.Buffer.Text())
	}
	// the host stays usable for other plugins
	e.Buffer = buffer.FromString("quiet")
	e.Cursor = e.Buffer.Clamp(e.Cursor)
	if err := host.RunCommand(e, "upper", "upcase"); err != nil {
		t.Fatalf("Host unusable after an aborted script: %v", err)
	}
	if e.Buffer.Text() != "QUIET" {
		t.Errorf("Later command did not run: %q", e.Buffer.Text())
	}
}

func TestHookFailureDoesNotStopOthers(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "bad", `
id = "bad"
name = "Bad"
script = "main.star"

[hooks]
on_open = "setup"
`, `
def setup(ed, path):
    fail("boom")
`)
	writePlugin(t, root, "colors", `
id = "colors"
name = "Colors"
script = "main.star"

[hooks]
on_open = "setup"
`, `
def setup(ed, path):
    ed.add_highlight("txt", "TODO", "yellow", 5)
`)

	host := NewHost()
	host.Load([]string{root}, command.NewRegistry())

	e := editor.NewEditor()
	e.Highlights.SetExtension("txt")
	host.CallHook(e, "on_open", "notes.txt")

	if !e.Highlights.Active() {
		t.Error("The surviving hook's rule should be registered")
	}
	if e.Status() == "" {
		t.Error("The failing hook should leave a status message")
	}
	if !strings.Contains(e.Status(), "Bad") {
		t.Errorf("Status should name the failing plugin: %q", e.Status())
	}
}

func TestCursorAPI(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "nav", `
id = "nav"
name = "Nav"
script = "main.star"

[[commands]]
name = "jump"
func = "jump"

[[commands]]
name = "report"
func = "report"
`, `
def jump(ed):
    ed.set_cursor(2, 100)

def report(ed):
    ed.status("line %d col %d" % (ed.cursor_line(), ed.cursor_col()))
`)

	host := NewHost()
	host.Load([]string{root}, command.NewRegistry())

	e := editor.NewEditor()
	e.Buffer = buffer.FromString("one\ntwo\nthree")
	if err := host.RunCommand(e, "nav", "jump"); err != nil {
		t.Fatal(err)
	}
	// line 2 exists; column 100 clamps to the line length
	if e.Cursor.Row != 1 || e.Cursor.Col != 3 {
		t.Errorf("Cursor at %+v after clamped jump", e.Cursor)
	}
	if err := host.RunCommand(e, "nav", "report"); err != nil {
		t.Fatal(err)
	}
	if e.Status() != "line 2 col 4" {
		t.Errorf("Positions should be 1-based: %q", e.Status())
	}
}

func TestReleasedHandleRejected(t *testing.T) {
	e := editor.NewEditor()
	a := newAPI(e)
	v, err := a.Attr("insert")
	if err != nil || v == nil {
		t.Fatalf("Attr failed: %v", err)
	}
	fn := v.(*starlark.Builtin)
	thread := &starlark.Thread{Name: "test"}
	if _, err := starlark.Call(thread, fn, starlark.Tuple{starlark.String("x")}, nil); err != nil {
		t.Fatal(err)
	}
	a.release()
	if _, err := starlark.Call(thread, fn, starlark.Tuple{starlark.String("y")}, nil); err == nil {
		t.Error("A handle kept past its call should be rejected")
	}
	if e.Buffer.Text() != "x" {
		t.Errorf("Released handle mutated the editor: %q", e.Buffer.Text())
	}
}

func TestManifestValidation(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sample")
	os.MkdirAll(dir, 0755)

	os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(`id = "sample"`), 0644)
	if _, err := readManifest(dir); err == nil {
		t.Error("Manifest without a script should be rejected")
	}

	os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(`
id = "elsewhere"
script = "main.star"
`), 0644)
	if _, err := readManifest(dir); err == nil {
		t.Error("Manifest id must match the directory name")
	}

	os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(`
id = "sample"
script = "main.star"
`), 0644)
	m, err := readManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "sample" {
		t.Errorf("Name should default to the id, got %q", m.Name)
	}
}
