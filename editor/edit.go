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
package editor

import (
	"github.com/tern-editor/tern/buffer"
	"github.com/tern-editor/tern/types"
)

// Mutations in this file record undo entries before touching the buffer.
// Callers that bundle several mutations into a single user-visible action
// wrap them in BeginAction/EndAction.

// TypeRune inserts one typed character. Consecutive typed characters join
// the same undo group until BreakTyping is called.
func (e *Editor) TypeRune(c rune) {
	if e.group == 0 {
		if !e.typing {
			e.lastGroupID++
			e.typingGroup = e.lastGroupID
			e.typing = true
		}
		e.group = e.typingGroup
		defer func() { e.group = 0 }()
	}
	e.InsertText(string(c))
}

// InsertText replaces the selection with text, or inserts at the cursor
// when nothing is selected. The cursor ends up after the inserted text.
func (e *Editor) InsertText(text string) {
	if e.group == 0 {
		e.BeginAction()
		defer e.EndAction()
	}
	e.DeleteSelection()
	e.recordEdit(EditOp{Kind: OpInsert, At: e.Cursor, Text: text})
	e.Cursor = e.Buffer.InsertString(e.Cursor, text)
	e.dirty = true
}

// Newline inserts a line break as its own undo unit.
func (e *Editor) Newline() {
	e.BreakTyping()
	e.InsertText("\n")
}

// InsertTab inserts four spaces, the editor's tab convention.
func (e *Editor) InsertTab() {
	e.BreakTyping()
	e.InsertText("    ")
}

// DeleteSelection removes the selected text, recording it for undo.
// No-op when nothing is selected.
func (e *Editor) DeleteSelection() {
	a, z, ok := e.SelectionRange()
	if !ok {
		return
	}
	e.recordEdit(EditOp{Kind: OpDelete, At: a, End: z, Text: e.Buffer.Range(a, z)})
	e.Cursor = e.Buffer.DeleteRange(a, z)
	e.anchor = nil
	e.dirty = true
}

// Backspace deletes the selection, or the character before the cursor,
// merging with the previous line at a line start.
func (e *Editor) Backspace() {
	e.BreakTyping()
	if e.HasSelection() {
		e.DeleteSelection()
		return
	}
	if e.Cursor.Row == 0 && e.Cursor.Col == 0 {
		return
	}
	end := e.Cursor
	start := types.Position{Row: end.Row, Col: end.Col - 1}
	if end.Col == 0 {
		start = types.Position{Row: end.Row - 1, Col: e.Buffer.LineLen(end.Row - 1)}
	}
	e.recordEdit(EditOp{Kind: OpDelete, At: start, End: end, Text: e.Buffer.Range(start, end)})
	e.Cursor = e.Buffer.Backspace(e.Cursor)
	e.dirty = true
}

// DeleteForward deletes the selection, or the character at the cursor,
// merging with the next line at a line end.
func (e *Editor) DeleteForward() {
	e.BreakTyping()
	if e.HasSelection() {
		e.DeleteSelection()
		return
	}
	start := e.Cursor
	end := types.Position{Row: start.Row, Col: start.Col + 1}
	if start.Col >= e.Buffer.LineLen(start.Row) {
		if start.Row+1 >= e.Buffer.LineCount() {
			return
		}
		end = types.Position{Row: start.Row + 1, Col: 0}
	}
	e.recordEdit(EditOp{Kind: OpDelete, At: start, End: end, Text: e.Buffer.Range(start, end)})
	e.Cursor = e.Buffer.DeleteForward(e.Cursor)
	e.dirty = true
}

// SetText replaces the whole document and resets the cursor and selection
// to the document start. The replacement is one undoable action.
func (e *Editor) SetText(text string) {
	if e.group == 0 {
		e.BeginAction()
		defer e.EndAction()
	}
	old := e.Buffer.Text()
	start := types.Position{}
	e.recordEdit(EditOp{Kind: OpDelete, At: start, End: e.Buffer.End(), Text: old})
	e.recordEdit(EditOp{Kind: OpInsert, At: start, Text: text})
	e.Buffer = buffer.FromString(text)
	e.Cursor = start
	e.anchor = nil
	e.Offset = types.Size{}
	e.dirty = true
	e.Highlights.Invalidate()
}

// ReplaceCurrentLine swaps the text of the cursor's line, clamping the
// cursor to the new length.
func (e *Editor) ReplaceCurrentLine(text string) {
	if e.group == 0 {
		e.BeginAction()
		defer e.EndAction()
	}
	row := e.Cursor.Row
	start := types.Position{Row: row}
	end := types.Position{Row: row, Col: e.Buffer.LineLen(row)}
	e.recordEdit(EditOp{Kind: OpDelete, At: start, End: end, Text: e.Buffer.Line(row)})
	e.recordEdit(EditOp{Kind: OpInsert, At: start, Text: text})
	e.Buffer.DeleteRange(start, end)
	e.Buffer.InsertString(start, text)
	e.Cursor = e.Buffer.Clamp(e.Cursor)
	e.dirty = true
	e.Highlights.Invalidate()
}

// Copy puts the selection on the pasteboard. Returns false when nothing is
// selected.
func (e *Editor) Copy() bool {
	text := e.SelectedText()
	if text == "" {
		return false
	}
	e.pasteText = text
	return true
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() bool {
	if !e.Copy() {
		return false
	}
	e.DeleteSelection()
	return true
}

// Paste inserts the pasteboard contents at the cursor, replacing any
// selection. Returns false when the pasteboard is empty.
func (e *Editor) Paste() bool {
	if e.pasteText == "" {
		return false
	}
	e.InsertText(e.pasteText)
	return true
}
