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
package buffer

import (
	"strings"

	"github.com/tern-editor/tern/types"
)

// Line endings used when serializing a buffer.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// A Buffer holds the document being edited as a list of lines. Every public
// operation addresses text by character index, never by byte offset; the
// byte-index conversion needed to slice the underlying strings happens here
// and nowhere else. A buffer always contains at least one (possibly empty)
// line, and no line ever contains a newline.
type Buffer struct {
	lines      []string
	lineEnding string
}

func New() *Buffer {
	return &Buffer{lines: []string{""}, lineEnding: LF}
}

// FromString builds a buffer from file contents, detecting CRLF line
// endings so they can be preserved on save.
func FromString(s string) *Buffer {
	b := &Buffer{lineEnding: LF}
	if strings.Contains(s, CRLF) {
		b.lineEnding = CRLF
	}
	for _, line := range strings.Split(s, "\n") {
		b.lines = append(b.lines, strings.TrimSuffix(line, "\r"))
	}
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	return b
}

// String serializes the buffer using the detected line ending.
func (b *Buffer) String() string {
	return strings.Join(b.lines, b.lineEnding)
}

// Text serializes the buffer with plain newlines regardless of the
// on-disk line ending. This is the form handed to plugins.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// SetLine replaces the text of line row. Out-of-range rows are ignored.
func (b *Buffer) SetLine(row int, text string) {
	if row >= 0 && row < len(b.lines) {
		b.lines[row] = text
	}
}

// LineLen returns the length of line row in characters.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len([]rune(b.lines[row]))
}

func (b *Buffer) LineEnding() string {
	return b.lineEnding
}

func (b *Buffer) SetLineEnding(ending string) {
	if ending == LF || ending == CRLF {
		b.lineEnding = ending
	}
}

// Clamp pins a position to valid document coordinates: the row into
// [0, LineCount-1] and the column into [0, LineLen(row)].
func (b *Buffer) Clamp(p types.Position) types.Position {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row > len(b.lines)-1 {
		p.Row = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := b.LineLen(p.Row); p.Col > max {
		p.Col = max
	}
	return p
}

// End returns the position just past the last character of the document.
func (b *Buffer) End() types.Position {
	row := len(b.lines) - 1
	return types.Position{Row: row, Col: b.LineLen(row)}
}

// byteIndex converts a character index within s to a byte index, pinning
// past-the-end indices to len(s). The returned offset is always a rune
// boundary, so slicing with it cannot split an encoded character.
func byteIndex(s string, chars int) int {
	if chars <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == chars {
			return i
		}
		count++
	}
	return len(s)
}

// charIndex converts a byte offset within s back to a character index.
func charIndex(s string, bytes int) int {
	if bytes > len(s) {
		bytes = len(s)
	}
	return len([]rune(s[:bytes]))
}

// InsertChar inserts a single character and returns the cursor position
// following it.
func (b *Buffer) InsertChar(p types.Position, c rune) types.Position {
	p = b.Clamp(p)
	line := b.lines[p.Row]
	i := byteIndex(line, p.Col)
	b.lines[p.Row] = line[:i] + string(c) + line[i:]
	return types.Position{Row: p.Row, Col: p.Col + 1}
}

// InsertNewline splits the line at p, moving the remainder of the line onto
// a new following line. Returns the cursor at the start of that line.
func (b *Buffer) InsertNewline(p types.Position) types.Position {
	p = b.Clamp(p)
	line := b.lines[p.Row]
	i := byteIndex(line, p.Col)
	rest := line[i:]
	b.lines[p.Row] = line[:i]
	b.lines = append(b.lines, "")
	copy(b.lines[p.Row+2:], b.lines[p.Row+1:])
	b.lines[p.Row+1] = rest
	return types.Position{Row: p.Row + 1, Col: 0}
}

// InsertString inserts text, splitting embedded line breaks into separate
// lines. The tail of the original line ends up after the last inserted
// segment. Returns the cursor position after the insertion.
func (b *Buffer) InsertString(p types.Position, text string) types.Position {
	p = b.Clamp(p)
	parts := strings.Split(strings.ReplaceAll(text, CRLF, "\n"), "\n")
	line := b.lines[p.Row]
	i := byteIndex(line, p.Col)
	if len(parts) == 1 {
		b.lines[p.Row] = line[:i] + parts[0] + line[i:]
		return types.Position{Row: p.Row, Col: p.Col + len([]rune(parts[0]))}
	}
	suffix := line[i:]
	b.lines[p.Row] = line[:i] + parts[0]
	tail := make([]string, 0, len(parts)-1)
	tail = append(tail, parts[1:len(parts)-1]...)
	tail = append(tail, parts[len(parts)-1]+suffix)
	rest := append(tail, b.lines[p.Row+1:]...)
	b.lines = append(b.lines[:p.Row+1], rest...)
	return types.Position{
		Row: p.Row + len(parts) - 1,
		Col: len([]rune(parts[len(parts)-1])),
	}
}

// EndOf computes where the cursor would land if text were inserted at p,
// without mutating the buffer. Used to rebuild the extent of a recorded
// insertion when undoing it.
func (b *Buffer) EndOf(p types.Position, text string) types.Position {
	parts := strings.Split(strings.ReplaceAll(text, CRLF, "\n"), "\n")
	if len(parts) == 1 {
		return types.Position{Row: p.Row, Col: p.Col + len([]rune(parts[0]))}
	}
	return types.Position{
		Row: p.Row + len(parts) - 1,
		Col: len([]rune(parts[len(parts)-1])),
	}
}

// Backspace deletes the character before p, joining with the previous line
// when p is at the start of a line. Returns the resulting cursor position.
func (b *Buffer) Backspace(p types.Position) types.Position {
	p = b.Clamp(p)
	if p.Col > 0 {
		line := b.lines[p.Row]
		i := byteIndex(line, p.Col-1)
		j := byteIndex(line, p.Col)
		b.lines[p.Row] = line[:i] + line[j:]
		return types.Position{Row: p.Row, Col: p.Col - 1}
	}
	if p.Row > 0 {
		prevLen := b.LineLen(p.Row - 1)
		b.lines[p.Row-1] += b.lines[p.Row]
		b.lines = append(b.lines[:p.Row], b.lines[p.Row+1:]...)
		return types.Position{Row: p.Row - 1, Col: prevLen}
	}
	return p
}

// DeleteForward deletes the character at p, joining with the next line when
// p is at the end of a line. The cursor stays at p.
func (b *Buffer) DeleteForward(p types.Position) types.Position {
	p = b.Clamp(p)
	line := b.lines[p.Row]
	if p.Col < b.LineLen(p.Row) {
		i := byteIndex(line, p.Col)
		j := byteIndex(line, p.Col+1)
		b.lines[p.Row] = line[:i] + line[j:]
		return p
	}
	if p.Row+1 < len(b.lines) {
		b.lines[p.Row] += b.lines[p.Row+1]
		b.lines = append(b.lines[:p.Row+1], b.lines[p.Row+2:]...)
	}
	return p
}

// Range extracts the text between two positions, in either order, with
// lines joined by plain newlines.
func (b *Buffer) Range(start, end types.Position) string {
	a := b.Clamp(types.MinPosition(start, end))
	z := b.Clamp(types.MaxPosition(start, end))
	if a == z {
		return ""
	}
	if a.Row == z.Row {
		line := b.lines[a.Row]
		return line[byteIndex(line, a.Col):byteIndex(line, z.Col)]
	}
	var out strings.Builder
	first := b.lines[a.Row]
	out.WriteString(first[byteIndex(first, a.Col):])
	out.WriteString("\n")
	for row := a.Row + 1; row < z.Row; row++ {
		out.WriteString(b.lines[row])
		out.WriteString("\n")
	}
	last := b.lines[z.Row]
	out.WriteString(last[:byteIndex(last, z.Col)])
	return out.String()
}

// DeleteRange removes the text between two positions, in either order.
// Same-line ranges are a substring removal; cross-line ranges join the
// surviving prefix and suffix and drop the interior lines. Returns the
// cursor at the start of the removed range.
func (b *Buffer) DeleteRange(start, end types.Position) types.Position {
	a := b.Clamp(types.MinPosition(start, end))
	z := b.Clamp(types.MaxPosition(start, end))
	if a == z {
		return a
	}
	if a.Row == z.Row {
		line := b.lines[a.Row]
		b.lines[a.Row] = line[:byteIndex(line, a.Col)] + line[byteIndex(line, z.Col):]
		return a
	}
	first := b.lines[a.Row]
	last := b.lines[z.Row]
	b.lines[a.Row] = first[:byteIndex(first, a.Col)] + last[byteIndex(last, z.Col):]
	b.lines = append(b.lines[:a.Row+1], b.lines[z.Row+1:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
		return types.Position{}
	}
	return a
}
