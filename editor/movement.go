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
	"unicode"

	"github.com/tern-editor/tern/types"
)

// Move directions.
const (
	MoveUp = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveWordLeft
	MoveWordRight
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
	MovePageUp
	MovePageDown
)

// MoveCursor moves in the given direction. When selecting, the anchor is
// dropped at the current cursor first (if absent); otherwise any selection
// is cleared. Movement breaks the current typing burst for undo purposes.
func (e *Editor) MoveCursor(direction int, selecting bool) {
	e.BreakTyping()
	if selecting {
		e.StartSelection()
	} else {
		e.ClearSelection()
	}

	p := e.Cursor
	switch direction {
	case MoveLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Row > 0 {
			p.Row--
			p.Col = e.Buffer.LineLen(p.Row)
		}
	case MoveRight:
		if p.Col < e.Buffer.LineLen(p.Row) {
			p.Col++
		} else if p.Row+1 < e.Buffer.LineCount() {
			p.Row++
			p.Col = 0
		}
	case MoveUp:
		if p.Row > 0 {
			p.Row--
		}
	case MoveDown:
		if p.Row+1 < e.Buffer.LineCount() {
			p.Row++
		}
	case MoveWordLeft:
		p = e.prevWordBoundary(p)
	case MoveWordRight:
		p = e.nextWordBoundary(p)
	case MoveLineStart:
		p.Col = 0
	case MoveLineEnd:
		p.Col = e.Buffer.LineLen(p.Row)
	case MoveDocStart:
		p = types.Position{}
	case MoveDocEnd:
		p = e.Buffer.End()
	case MovePageUp:
		jump := e.size.Rows - 1
		if jump < 1 {
			jump = 1
		}
		p.Row -= jump
	case MovePageDown:
		jump := e.size.Rows - 1
		if jump < 1 {
			jump = 1
		}
		p.Row += jump
	}
	e.Cursor = e.Buffer.Clamp(p)
}

// Word movement classifies characters into whitespace and non-whitespace
// and walks to the next class boundary. It always advances at least one
// position (except at the very edge of the document).

func (e *Editor) nextWordBoundary(p types.Position) types.Position {
	line := []rune(e.Buffer.Line(p.Row))
	if p.Col >= len(line) {
		if p.Row+1 < e.Buffer.LineCount() {
			return types.Position{Row: p.Row + 1, Col: 0}
		}
		return p
	}
	i := p.Col
	class := unicode.IsSpace(line[i])
	i++
	for i < len(line) && unicode.IsSpace(line[i]) == class {
		i++
	}
	return types.Position{Row: p.Row, Col: i}
}

func (e *Editor) prevWordBoundary(p types.Position) types.Position {
	if p.Col == 0 {
		if p.Row > 0 {
			return types.Position{Row: p.Row - 1, Col: e.Buffer.LineLen(p.Row - 1)}
		}
		return p
	}
	line := []rune(e.Buffer.Line(p.Row))
	i := p.Col - 1
	class := unicode.IsSpace(line[i])
	for i > 0 && unicode.IsSpace(line[i-1]) == class {
		i--
	}
	return types.Position{Row: p.Row, Col: i}
}
