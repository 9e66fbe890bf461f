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
// Package commander converts user input into commands for the Editor:
// key chords resolve through the command registry, everything else falls
// through to direct editing. It also owns the line prompts (open, save-as,
// find, go-to-line, and the command palette).
package commander

import (
	"fmt"
	"log"
	"strconv"
	"time"
	"unicode"

	"github.com/tern-editor/tern/command"
	"github.com/tern-editor/tern/editor"
	"github.com/tern-editor/tern/types"
)

// Prompt kinds.
const (
	promptNone = iota
	promptOpen
	promptSaveAs
	promptFind
	promptGoto
	promptCommand
)

// A PluginRunner executes a function from a loaded plugin.
type PluginRunner interface {
	RunCommand(e *editor.Editor, pluginID, funcName string) error
}

// The Commander routes key events: registry chords first, then movement,
// then plain editing. One ProcessKey call never blocks.
type Commander struct {
	editor   *editor.Editor
	registry *command.Registry
	runner   PluginRunner

	running  bool
	prompt   int
	input    []rune
	lastFind string
	quitAsk  time.Time
}

func NewCommander(e *editor.Editor, reg *command.Registry, runner PluginRunner) *Commander {
	c := &Commander{
		editor:   e,
		registry: reg,
		runner:   runner,
		running:  true,
	}
	c.registerBuiltins()
	return c
}

func (c *Commander) IsRunning() bool {
	return c.running
}

// PromptActive reports whether a line prompt is open.
func (c *Commander) PromptActive() bool {
	return c.prompt != promptNone
}

// PromptText returns the prompt label and typed input, for display.
func (c *Commander) PromptText() string {
	return c.promptLabel() + string(c.input)
}

func (c *Commander) promptLabel() string {
	switch c.prompt {
	case promptOpen:
		return "Open: "
	case promptSaveAs:
		return "Save as: "
	case promptFind:
		return "Find: "
	case promptGoto:
		return "Go to line: "
	case promptCommand:
		return "Command: "
	}
	return ""
}

// PaletteMatches returns the commands matching the palette input so far,
// or nil when the palette is closed.
func (c *Commander) PaletteMatches(limit int) []command.Command {
	if c.prompt != promptCommand {
		return nil
	}
	return c.registry.Search(string(c.input), limit)
}

// ProcessKey handles one decoded key event.
func (c *Commander) ProcessKey(ev types.KeyEvent) {
	if c.prompt != promptNone {
		c.processPromptKey(ev)
		return
	}
	if chord := command.Chord(ev); chord != "" {
		if name, ok := c.registry.ResolveKey(chord); ok {
			if cmd, ok := c.registry.Get(name); ok {
				c.run(cmd)
				return
			}
		}
		if c.processMovement(ev) {
			return
		}
	}
	c.processEditKey(ev)
}

// processMovement handles cursor movement keys; Shift extends the
// selection, Ctrl with Left/Right moves by words.
func (c *Commander) processMovement(ev types.KeyEvent) bool {
	e := c.editor
	switch ev.Name {
	case "Up":
		e.MoveCursor(editor.MoveUp, ev.Shift)
	case "Down":
		e.MoveCursor(editor.MoveDown, ev.Shift)
	case "Left":
		if ev.Ctrl {
			e.MoveCursor(editor.MoveWordLeft, ev.Shift)
		} else {
			e.MoveCursor(editor.MoveLeft, ev.Shift)
		}
	case "Right":
		if ev.Ctrl {
			e.MoveCursor(editor.MoveWordRight, ev.Shift)
		} else {
			e.MoveCursor(editor.MoveRight, ev.Shift)
		}
	case "Home":
		e.MoveCursor(editor.MoveDocStart, ev.Shift)
	case "End":
		e.MoveCursor(editor.MoveDocEnd, ev.Shift)
	case "PageUp":
		e.MoveCursor(editor.MovePageUp, ev.Shift)
	case "PageDown":
		e.MoveCursor(editor.MovePageDown, ev.Shift)
	default:
		return false
	}
	return true
}

// processEditKey handles plain text input and the editing keys that are
// not commands.
func (c *Commander) processEditKey(ev types.KeyEvent) {
	e := c.editor
	switch {
	case ev.Name == "Enter":
		e.Newline()
	case ev.Name == "Backspace":
		e.Backspace()
	case ev.Name == "Delete":
		e.DeleteForward()
	case ev.Name == "Tab":
		e.InsertTab()
	case ev.Name == "Space":
		e.TypeRune(' ')
	case ev.Name == "" && ev.Ch != 0 && !ev.Ctrl && !ev.Alt:
		e.TypeRune(ev.Ch)
	}
}

func (c *Commander) processPromptKey(ev types.KeyEvent) {
	switch {
	case ev.Name == "Esc":
		c.closePrompt()
	case ev.Name == "Enter":
		text := string(c.input)
		kind := c.prompt
		c.closePrompt()
		c.commitPrompt(kind, text)
	case ev.Name == "Backspace":
		if len(c.input) > 0 {
			c.input = c.input[:len(c.input)-1]
		}
	case ev.Name == "Space":
		c.input = append(c.input, ' ')
	case ev.Name == "" && ev.Ch != 0 && !ev.Ctrl && !ev.Alt && unicode.IsPrint(ev.Ch):
		c.input = append(c.input, ev.Ch)
	}
}

func (c *Commander) openPrompt(kind int) {
	c.prompt = kind
	c.input = nil
}

func (c *Commander) closePrompt() {
	c.prompt = promptNone
	c.input = nil
}

func (c *Commander) commitPrompt(kind int, text string) {
	e := c.editor
	switch kind {
	case promptOpen:
		if text == "" {
			return
		}
		if err := e.ReadFile(text); err != nil {
			e.SetStatus(fmt.Sprintf("Could not open %s: %v", text, err))
		}
	case promptSaveAs:
		if text == "" {
			return
		}
		if err := e.WriteFileAs(text); err != nil {
			e.SetStatus(fmt.Sprintf("Could not save %s: %v", text, err))
		} else {
			e.SetStatus("Saved " + text)
		}
	case promptFind:
		if text == "" {
			return
		}
		c.lastFind = text
		if !e.FindNext(text) {
			e.SetStatus("Not found: " + text)
		}
	case promptGoto:
		n, err := strconv.Atoi(text)
		if err != nil {
			e.SetStatus(fmt.Sprintf("Not a line number: %s", text))
			return
		}
		e.GotoLine(n)
	case promptCommand:
		if text == "" {
			return
		}
		cmd, ok := c.registry.Get(text)
		if !ok {
			if near, found := c.registry.Suggest(text); found {
				e.SetStatus(fmt.Sprintf("Unknown command %q (did you mean %q?)", text, near.Name))
			} else {
				e.SetStatus(fmt.Sprintf("Unknown command %q", text))
			}
			return
		}
		c.run(cmd)
	}
}

// run executes one command: built-ins call their closure, plugin commands
// go through the plugin runner. Failures become status messages; they
// never stop the editor.
func (c *Commander) run(cmd command.Command) {
	c.editor.BreakTyping()
	var err error
	switch {
	case cmd.Plugin != nil:
		if c.runner == nil {
			err = fmt.Errorf("no plugin host")
		} else {
			err = c.runner.RunCommand(c.editor, cmd.Plugin.PluginID, cmd.Plugin.Func)
		}
		if err != nil {
			log.Printf("plugin command %s (%s.%s): %v", cmd.Name, cmd.Plugin.PluginID, cmd.Plugin.Func, err)
			c.editor.SetStatusFor(fmt.Sprintf("Plugin %s: %s: %v", cmd.Plugin.PluginID, cmd.Plugin.Func, err), 3*time.Second)
		}
	case cmd.Action != nil:
		if err = cmd.Action(); err != nil {
			log.Printf("command %s: %v", cmd.Name, err)
			c.editor.SetStatus(fmt.Sprintf("%s: %v", cmd.Name, err))
		}
	}
}
