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

// SelectionRange returns the normalized selection as (min, max) positions.
// There is no selection when the anchor is unset or equals the cursor.
func (e *Editor) SelectionRange() (types.Position, types.Position, bool) {
	if e.anchor == nil || *e.anchor == e.Cursor {
		return types.Position{}, types.Position{}, false
	}
	return types.MinPosition(*e.anchor, e.Cursor), types.MaxPosition(*e.anchor, e.Cursor), true
}

func (e *Editor) HasSelection() bool {
	_, _, ok := e.SelectionRange()
	return ok
}

// StartSelection drops the anchor at the cursor if no anchor exists yet.
// Called before a shift-modified movement.
func (e *Editor) StartSelection() {
	if e.anchor == nil {
		a := e.Cursor
		e.anchor = &a
	}
}

func (e *Editor) ClearSelection() {
	e.anchor = nil
}

// SelectAll anchors at the document start and moves the cursor to the
// document end.
func (e *Editor) SelectAll() {
	e.anchor = &types.Position{}
	e.Cursor = e.Buffer.End()
}

// SelectedText returns the selection contents, "" when nothing is selected.
func (e *Editor) SelectedText() string {
	a, z, ok := e.SelectionRange()
	if !ok {
		return ""
	}
	return e.Buffer.Range(a, z)
}
