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
package commander

import (
	"time"

	"github.com/tern-editor/tern/buffer"
	"github.com/tern-editor/tern/command"
)

// registerBuiltins installs the editor's own commands. Plugins registered
// later may rebind these chords; the registry resolves to the most recent
// binding.
func (c *Commander) registerBuiltins() {
	e := c.editor
	builtins := []command.Command{
		{Name: "save", Description: "Save the current file", Key: "Ctrl+S",
			Action: func() error {
				if e.FileName == "" {
					c.openPrompt(promptSaveAs)
					return nil
				}
				if err := e.WriteFile(); err != nil {
					return err
				}
				e.SetStatus("Saved " + e.FileName)
				return nil
			}},
		{Name: "save_as", Description: "Save the file under a new name",
			Action: func() error {
				c.openPrompt(promptSaveAs)
				return nil
			}},
		{Name: "open", Description: "Open a file", Key: "Ctrl+O",
			Action: func() error {
				c.openPrompt(promptOpen)
				return nil
			}},
		{Name: "find", Description: "Find text in the file", Key: "Ctrl+F",
			Action: func() error {
				c.openPrompt(promptFind)
				return nil
			}},
		{Name: "find_next", Description: "Repeat the last find",
			Action: func() error {
				if c.lastFind == "" {
					c.openPrompt(promptFind)
					return nil
				}
				if !e.FindNext(c.lastFind) {
					e.SetStatus("Not found: " + c.lastFind)
				}
				return nil
			}},
		{Name: "goto_line", Description: "Go to a line number", Key: "Ctrl+G",
			Action: func() error {
				c.openPrompt(promptGoto)
				return nil
			}},
		{Name: "command", Description: "Open the command palette", Key: "Ctrl+P",
			Action: func() error {
				c.openPrompt(promptCommand)
				return nil
			}},
		{Name: "undo", Description: "Undo the last edit", Key: "Ctrl+Z",
			Action: func() error {
				if !e.Undo() {
					e.SetStatus("Nothing to undo")
				}
				return nil
			}},
		{Name: "redo", Description: "Redo the last undone edit", Key: "Ctrl+Y",
			Action: func() error {
				if !e.Redo() {
					e.SetStatus("Nothing to redo")
				}
				return nil
			}},
		{Name: "copy", Description: "Copy the selection", Key: "Ctrl+C",
			Action: func() error {
				e.Copy()
				return nil
			}},
		{Name: "cut", Description: "Cut the selection", Key: "Ctrl+X",
			Action: func() error {
				e.Cut()
				return nil
			}},
		{Name: "paste", Description: "Paste the pasteboard contents", Key: "Ctrl+V",
			Action: func() error {
				e.Paste()
				return nil
			}},
		{Name: "select_all", Description: "Select the whole file", Key: "Ctrl+A",
			Action: func() error {
				e.SelectAll()
				return nil
			}},
		{Name: "eol", Description: "Toggle line endings between LF and CRLF",
			Action: func() error {
				if e.Buffer.LineEnding() == buffer.CRLF {
					e.Buffer.SetLineEnding(buffer.LF)
					e.SetStatus("Line endings: LF")
				} else {
					e.Buffer.SetLineEnding(buffer.CRLF)
					e.SetStatus("Line endings: CRLF")
				}
				return nil
			}},
		{Name: "quit", Description: "Quit the editor", Key: "Ctrl+Q",
			Action: func() error {
				c.quit()
				return nil
			}},
	}
	for _, cmd := range builtins {
		c.registry.Register(cmd)
	}
}

// quit stops the editor, asking for confirmation when there are unsaved
// changes: pressing quit again within two seconds really quits.
func (c *Commander) quit() {
	if !c.editor.Dirty() {
		c.running = false
		return
	}
	now := time.Now()
	if now.Sub(c.quitAsk) <= 2*time.Second {
		c.running = false
		return
	}
	c.quitAsk = now
	c.editor.SetStatus("Unsaved changes; quit again to discard them")
}
