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
// Package plugin loads Starlark plugins and runs their functions against
// the editor through a narrow capability object. Every script execution
// runs on a fresh interpreter thread with a fixed step ceiling, so a
// runaway plugin stops on its own without taking the editor down.
package plugin

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tern-editor/tern/command"
	"github.com/tern-editor/tern/editor"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// StepLimit is the abstract-step ceiling for a single script execution.
// Loading a script and calling one of its functions each get a fresh
// budget of this size.
const StepLimit = 2000000

// fileOptions enables the imperative dialect plugins are written in.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// A Plugin is one successfully loaded plugin: its manifest plus the
// globals produced by executing its script.
type Plugin struct {
	ID       string
	Name     string
	Dir      string
	Hooks    Hooks
	Commands []CommandSpec
	globals  starlark.StringDict
}

// A Host owns the loaded plugins.
type Host struct {
	plugins []*Plugin
}

// NewHost returns an empty host.
func NewHost() *Host {
	return &Host{}
}

// Plugins returns the loaded plugins in load order.
func (h *Host) Plugins() []*Plugin {
	return h.plugins
}

// Load scans each directory for plugin subdirectories and loads every one
// it finds. A plugin that fails to load is logged and skipped; it never
// prevents other plugins from loading. Commands declared by loaded
// plugins are registered with reg.
func (h *Host) Load(dirs []string, reg *command.Registry) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			pluginDir := filepath.Join(dir, name)
			if _, err := os.Stat(filepath.Join(pluginDir, ManifestFileName)); err != nil {
				continue
			}
			p, err := h.load(pluginDir)
			if err != nil {
				log.Printf("plugin %s: %+v", name, err)
				continue
			}
			h.plugins = append(h.plugins, p)
			h.register(p, reg)
		}
	}
}

// load reads the manifest in dir and executes its script, returning the
// resulting plugin.
func (h *Host) load(dir string) (*Plugin, error) {
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}
	scriptPath := filepath.Join(dir, m.Script)
	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	thread := h.newThread(m.ID)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, scriptPath, src, nil)
	if err != nil {
		return nil, fmt.Errorf("executing script: %w", scriptErr(err))
	}
	return &Plugin{
		ID:       m.ID,
		Name:     m.Name,
		Dir:      dir,
		Hooks:    m.Hooks,
		Commands: m.Commands,
		globals:  globals,
	}, nil
}

// register adds the plugin's manifest commands to the registry. Each
// description is suffixed with the plugin name so palette entries show
// where a command came from.
func (h *Host) register(p *Plugin, reg *command.Registry) {
	for _, c := range p.Commands {
		desc := c.Description
		if desc == "" {
			desc = c.Name
		}
		reg.Register(command.Command{
			Name:        c.Name,
			Description: desc + " (plugin: " + p.Name + ")",
			Key:         c.Key,
			Plugin: &command.PluginRef{
				PluginID: p.ID,
				Func:     c.Func,
			},
		})
	}
}

// find returns the loaded plugin with the given id. When duplicate ids
// were loaded the most recently loaded one wins, matching how command
// registration resolves.
func (h *Host) find(id string) *Plugin {
	for i := len(h.plugins) - 1; i >= 0; i-- {
		if h.plugins[i].ID == id {
			return h.plugins[i]
		}
	}
	return nil
}

// RunCommand calls funcName from the named plugin against e. The edits
// the function makes are grouped into a single undo step.
func (h *Host) RunCommand(e *editor.Editor, pluginID, funcName string) error {
	p := h.find(pluginID)
	if p == nil {
		return fmt.Errorf("plugin %s is not loaded", pluginID)
	}
	e.BeginAction()
	defer e.EndAction()
	return h.call(p, funcName, e, nil)
}

// CallHook fires the named lifecycle hook on every plugin that binds it.
// A failing hook reports through the editor status line and does not stop
// the remaining hooks.
func (h *Host) CallHook(e *editor.Editor, hook, path string) {
	for _, p := range h.plugins {
		fn := p.hookFunc(hook)
		if fn == "" {
			continue
		}
		e.BeginAction()
		err := h.call(p, fn, e, starlark.String(path))
		e.EndAction()
		if err != nil {
			log.Printf("plugin %s: hook %s: %+v", p.ID, hook, err)
			e.SetStatusFor(fmt.Sprintf("Plugin %s failed: %v", p.Name, err), 3*time.Second)
		}
	}
}

func (p *Plugin) hookFunc(hook string) string {
	switch hook {
	case "on_open":
		return p.Hooks.OnOpen
	case "on_save":
		return p.Hooks.OnSave
	}
	return ""
}

// call invokes funcName from p with a fresh thread and a fresh capability
// object. The capability object is released before call returns, so a
// reference the script squirrels away in a global is useless afterward.
func (h *Host) call(p *Plugin, funcName string, e *editor.Editor, extra starlark.Value) error {
	v, ok := p.globals[funcName]
	if !ok {
		return fmt.Errorf("script defines no function %q", funcName)
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return fmt.Errorf("%q is not callable", funcName)
	}
	api := newAPI(e)
	defer api.release()
	args := starlark.Tuple{api}
	if extra != nil {
		args = append(args, extra)
	}
	thread := h.newThread(p.ID)
	if _, err := starlark.Call(thread, fn, args, nil); err != nil {
		return scriptErr(err)
	}
	return nil
}

// newThread returns an interpreter thread capped at StepLimit steps, with
// script print output routed to the log.
func (h *Host) newThread(id string) *starlark.Thread {
	thread := &starlark.Thread{Name: "plugin:" + id}
	thread.SetMaxExecutionSteps(StepLimit)
	thread.Print = func(_ *starlark.Thread, msg string) {
		log.Printf("plugin %s: %s", id, msg)
	}
	return thread
}

// scriptErr rewrites the interpreter's step-cancellation error into
// something a status line can show, and keeps evaluation backtraces for
// the log.
func scriptErr(err error) error {
	if strings.Contains(err.Error(), "too many steps") {
		return fmt.Errorf("exceeded the operation limit")
	}
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return fmt.Errorf("%s", evalErr.Msg)
	}
	return err
}
