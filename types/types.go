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
package types

// A Position is a location in a document: a zero-based line index and a
// zero-based character index within that line. The character index counts
// Unicode code points, never bytes.
type Position struct {
	Row int
	Col int
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// MinPosition returns the earlier of two positions.
func MinPosition(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPosition returns the later of two positions.
func MaxPosition(a, b Position) Position {
	if a.Before(b) {
		return b
	}
	return a
}

// A Size measures a rectangular region of the screen or document.
type Size struct {
	Rows int
	Cols int
}

// Lifecycle hooks that plugins may bind.
const (
	HookOnOpen = "on_open"
	HookOnSave = "on_save"
)

// A KeyEvent is one decoded keyboard event. Name holds either a single
// letter/digit or a named key ("Enter", "Left", "F1", ...); Ch carries the
// typed rune for plain text input and is zero otherwise.
type KeyEvent struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Name  string
	Ch    rune
}
