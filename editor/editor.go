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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tern-editor/tern/buffer"
	"github.com/tern-editor/tern/highlight"
	"github.com/tern-editor/tern/types"
)

// The Editor manages one editing session: the buffer, the cursor and
// selection over it, the undo history, and the highlight rules for the
// current file. It holds the only mutable reference to all of them; plugins
// and the commander reach this state exclusively through Editor methods.
type Editor struct {
	Buffer *buffer.Buffer
	Cursor types.Position
	Offset types.Size // scroll offset of the visible region

	FileName string

	Highlights *highlight.Engine

	anchor *types.Position
	size   types.Size // size of the editing area
	dirty  bool

	undoStack   []UndoEntry
	redoStack   []UndoEntry
	group       int // undo group id of the action in progress, 0 when idle
	lastGroupID int
	typing      bool
	typingGroup int

	pasteText string

	status      string
	statusUntil time.Time

	fireHook func(hook, path string)
}

func NewEditor() *Editor {
	return &Editor{
		Buffer:     buffer.New(),
		Highlights: highlight.NewEngine(),
	}
}

// SetHookFunc installs the callback used to fire plugin lifecycle hooks.
// Injected by the caller that owns the plugin host; nil disables hooks.
func (e *Editor) SetHookFunc(fn func(hook, path string)) {
	e.fireHook = fn
}

func (e *Editor) hook(name string) {
	if e.fireHook != nil {
		e.fireHook(name, e.FileName)
	}
}

func (e *Editor) Dirty() bool {
	return e.dirty
}

// SetStatus shows a transient status message with the default two second
// visibility.
func (e *Editor) SetStatus(msg string) {
	e.SetStatusFor(msg, 2*time.Second)
}

func (e *Editor) SetStatusFor(msg string, d time.Duration) {
	e.status = msg
	e.statusUntil = time.Now().Add(d)
}

// Status returns the current status message, or "" once it has expired.
func (e *Editor) Status() string {
	if time.Now().After(e.statusUntil) {
		return ""
	}
	return e.status
}

// Extension returns the current file's extension, lower-cased and without
// the leading dot; "" when no file is set.
func (e *Editor) Extension() string {
	ext := filepath.Ext(e.FileName)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// SetSize tells the editor how large the visible editing area is; paging
// and scrolling are computed against it.
func (e *Editor) SetSize(size types.Size) {
	e.size = size
}

// Scroll adjusts the display offset so the cursor stays visible.
func (e *Editor) Scroll() {
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.size.Rows > 0 && e.Cursor.Row-e.Offset.Rows >= e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	if e.Cursor.Col < e.Offset.Cols {
		e.Offset.Cols = e.Cursor.Col
	}
	if e.size.Cols > 0 && e.Cursor.Col-e.Offset.Cols >= e.size.Cols {
		e.Offset.Cols = e.Cursor.Col - e.size.Cols + 1
	}
}

// ReadFile loads a file into the session, replacing the document and
// resetting cursor, selection, scroll, and history. Fires the on_open hook.
func (e *Editor) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.Buffer = buffer.FromString(string(b))
	e.FileName = path
	e.Cursor = types.Position{}
	e.anchor = nil
	e.Offset = types.Size{}
	e.dirty = false
	e.undoStack = nil
	e.redoStack = nil
	e.Highlights.SetExtension(e.Extension())
	e.Highlights.Invalidate()
	e.hook(types.HookOnOpen)
	return nil
}

// WriteFile saves the buffer to its file. A write failure leaves the
// in-memory buffer untouched. Fires the on_save hook on success.
func (e *Editor) WriteFile() error {
	if err := os.WriteFile(e.FileName, []byte(e.Buffer.String()), 0644); err != nil {
		return err
	}
	e.dirty = false
	e.hook(types.HookOnSave)
	return nil
}

// WriteFileAs saves to a new path and adopts it as the session's file.
func (e *Editor) WriteFileAs(path string) error {
	previous := e.FileName
	e.FileName = path
	if err := e.WriteFile(); err != nil {
		e.FileName = previous
		return err
	}
	e.Highlights.SetExtension(e.Extension())
	return nil
}

// SetPasteText stores text on the editor's internal pasteboard.
func (e *Editor) SetPasteText(text string) {
	e.pasteText = text
}

func (e *Editor) PasteText() string {
	return e.pasteText
}

// FindNext searches for the next occurrence of text after the cursor,
// wrapping around the end of the document. Returns false when there is no
// match anywhere.
func (e *Editor) FindNext(text string) bool {
	if text == "" {
		return false
	}
	if p, ok := e.searchForward(text, e.Cursor.Row, e.Cursor.Col+1); ok {
		e.Cursor = p
		e.anchor = nil
		return true
	}
	if p, ok := e.searchForward(text, 0, 0); ok {
		e.Cursor = p
		e.anchor = nil
		return true
	}
	return false
}

func (e *Editor) searchForward(text string, fromRow, fromCol int) (types.Position, bool) {
	for row := fromRow; row < e.Buffer.LineCount(); row++ {
		line := []rune(e.Buffer.Line(row))
		col := 0
		if row == fromRow {
			col = fromCol
		}
		if col > len(line) {
			continue
		}
		rest := string(line[col:])
		if i := strings.Index(rest, text); i >= 0 {
			return types.Position{Row: row, Col: col + len([]rune(rest[:i]))}, true
		}
	}
	return types.Position{}, false
}

// GotoLine moves the cursor to a 1-based line number, clamped.
func (e *Editor) GotoLine(n int) {
	e.Cursor = e.Buffer.Clamp(types.Position{Row: n - 1})
	e.Cursor.Col = 0
	e.anchor = nil
}
