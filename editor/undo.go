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
	"github.com/tern-editor/tern/types"
)

// UndoCapacity bounds the undo stack. Oldest entries are discarded
// silently; this is a resource bound, not a correctness concern.
const UndoCapacity = 200

// An OpKind tags an EditOp.
type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
)

// An EditOp is a minimal reversible description of one buffer mutation.
// Delete ops capture the removed text at delete time so the operation can
// be inverted without re-deriving content.
type EditOp struct {
	Kind    OpKind
	At      types.Position // insert position, or start of the deleted range
	End     types.Position // end of the deleted range (unused for inserts)
	Text    string         // inserted or removed text
}

// An UndoEntry is one EditOp plus the cursor, selection, and scroll state
// captured before the edit was applied. Entries written during the same
// dispatched action share a group id and undo as a unit.
type UndoEntry struct {
	Op           EditOp
	CursorBefore types.Position
	AnchorBefore *types.Position
	OffsetBefore types.Size
	Group        int
}

// BeginAction opens an undo group: every edit recorded until EndAction
// undoes together. Dispatched commands and plugin calls are wrapped in one
// group each. Consecutive typed characters coalesce into one group until
// any other action breaks the burst, so a typed word undoes as a unit.
func (e *Editor) BeginAction() {
	e.BreakTyping()
	if e.group != 0 {
		return
	}
	e.lastGroupID++
	e.group = e.lastGroupID
}

func (e *Editor) EndAction() {
	e.group = 0
}

// BreakTyping ends the current typing burst; the next typed character
// starts a new undo group.
func (e *Editor) BreakTyping() {
	e.typing = false
}

// recordEdit pushes one undo entry for an edit about to be applied and
// clears the redo stack.
func (e *Editor) recordEdit(op EditOp) {
	group := e.group
	if group == 0 {
		e.lastGroupID++
		group = e.lastGroupID
	}
	var anchor *types.Position
	if e.anchor != nil {
		a := *e.anchor
		anchor = &a
	}
	e.undoStack = append(e.undoStack, UndoEntry{
		Op:           op,
		CursorBefore: e.Cursor,
		AnchorBefore: anchor,
		OffsetBefore: e.Offset,
		Group:        group,
	})
	if len(e.undoStack) > UndoCapacity {
		e.undoStack = append(e.undoStack[:0], e.undoStack[len(e.undoStack)-UndoCapacity:]...)
	}
	e.redoStack = nil
	e.Highlights.Invalidate()
}

// applyInverse reverses one recorded operation against the buffer and
// returns the entry to push on the opposite stack, capturing current state.
func (e *Editor) applyInverse(entry UndoEntry) UndoEntry {
	var anchor *types.Position
	if e.anchor != nil {
		a := *e.anchor
		anchor = &a
	}
	mirror := UndoEntry{
		CursorBefore: e.Cursor,
		AnchorBefore: anchor,
		OffsetBefore: e.Offset,
		Group:        entry.Group,
	}
	switch entry.Op.Kind {
	case OpInsert:
		end := e.Buffer.EndOf(entry.Op.At, entry.Op.Text)
		e.Buffer.DeleteRange(entry.Op.At, end)
		mirror.Op = EditOp{Kind: OpDelete, At: entry.Op.At, End: end, Text: entry.Op.Text}
	case OpDelete:
		e.Buffer.InsertString(entry.Op.At, entry.Op.Text)
		mirror.Op = EditOp{Kind: OpInsert, At: entry.Op.At, Text: entry.Op.Text}
	}
	return mirror
}

// Undo reverses the most recent action (a whole undo group), restoring the
// buffer, cursor, selection, and scroll state from before it.
func (e *Editor) Undo() bool {
	e.BreakTyping()
	if len(e.undoStack) == 0 {
		return false
	}
	group := e.undoStack[len(e.undoStack)-1].Group
	for len(e.undoStack) > 0 {
		entry := e.undoStack[len(e.undoStack)-1]
		if entry.Group != group {
			break
		}
		e.undoStack = e.undoStack[:len(e.undoStack)-1]
		e.redoStack = append(e.redoStack, e.applyInverse(entry))
		e.Cursor = entry.CursorBefore
		e.anchor = entry.AnchorBefore
		e.Offset = entry.OffsetBefore
	}
	e.Cursor = e.Buffer.Clamp(e.Cursor)
	e.dirty = true
	e.Highlights.Invalidate()
	return true
}

// Redo re-applies the most recently undone action.
func (e *Editor) Redo() bool {
	e.BreakTyping()
	if len(e.redoStack) == 0 {
		return false
	}
	group := e.redoStack[len(e.redoStack)-1].Group
	for len(e.redoStack) > 0 {
		entry := e.redoStack[len(e.redoStack)-1]
		if entry.Group != group {
			break
		}
		e.redoStack = e.redoStack[:len(e.redoStack)-1]
		e.undoStack = append(e.undoStack, e.applyInverse(entry))
		e.Cursor = entry.CursorBefore
		e.anchor = entry.AnchorBefore
		e.Offset = entry.OffsetBefore
	}
	e.Cursor = e.Buffer.Clamp(e.Cursor)
	e.dirty = true
	e.Highlights.Invalidate()
	return true
}

// CanUndo reports whether anything is left to undo.
func (e *Editor) CanUndo() bool {
	return len(e.undoStack) > 0
}

// CanRedo reports whether anything is left to redo.
func (e *Editor) CanRedo() bool {
	return len(e.redoStack) > 0
}
