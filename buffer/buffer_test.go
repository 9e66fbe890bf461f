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
	"testing"

	"github.com/tern-editor/tern/types"
)

func TestInsertThenDeleteIsIdentity(t *testing.T) {
	b := FromString("one\ntwo\nthree")
	at := types.Position{Row: 1, Col: 1}
	end := b.InsertString(at, "X\nY")
	b.DeleteRange(at, end)
	if text := b.Text(); text != "one\ntwo\nthree" {
		t.Errorf("Buffer changed after insert+delete: %q", text)
	}
}

func TestInsertStringMultiline(t *testing.T) {
	b := FromString("hello world")
	end := b.InsertString(types.Position{Row: 0, Col: 5}, " there\nbig")
	if b.LineCount() != 2 {
		t.Fatalf("Expected 2 lines, got %d", b.LineCount())
	}
	if b.Line(0) != "hello there" {
		t.Errorf("Unexpected first line: %q", b.Line(0))
	}
	if b.Line(1) != "big world" {
		t.Errorf("Unexpected second line: %q", b.Line(1))
	}
	want := types.Position{Row: 1, Col: 3}
	if end != want {
		t.Errorf("Insertion ended at %+v, expected %+v", end, want)
	}
}

func TestDeleteRangeOrderIndependence(t *testing.T) {
	a := FromString("one\ntwo\nthree")
	z := FromString("one\ntwo\nthree")
	p := types.Position{Row: 0, Col: 2}
	q := types.Position{Row: 2, Col: 1}
	a.DeleteRange(p, q)
	z.DeleteRange(q, p)
	if a.Text() != z.Text() {
		t.Errorf("Order-dependent delete: %q vs %q", a.Text(), z.Text())
	}
	if a.Text() != "onhree" {
		t.Errorf("Unexpected result: %q", a.Text())
	}
}

func TestRangeOrderIndependence(t *testing.T) {
	b := FromString("one\ntwo")
	p := types.Position{Row: 0, Col: 1}
	q := types.Position{Row: 1, Col: 2}
	if b.Range(p, q) != b.Range(q, p) {
		t.Errorf("Range is order-dependent")
	}
	if got := b.Range(p, q); got != "ne\ntw" {
		t.Errorf("Unexpected range text: %q", got)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := FromString("abc\ndef")
	p := b.Backspace(types.Position{Row: 1, Col: 0})
	if b.Text() != "abcdef" {
		t.Errorf("Lines not joined: %q", b.Text())
	}
	want := types.Position{Row: 0, Col: 3}
	if p != want {
		t.Errorf("Cursor at %+v, expected %+v", p, want)
	}
}

func TestDeleteForwardJoinsLines(t *testing.T) {
	b := FromString("abc\ndef")
	b.DeleteForward(types.Position{Row: 0, Col: 3})
	if b.Text() != "abcdef" {
		t.Errorf("Lines not joined: %q", b.Text())
	}
}

func TestBackspaceAtDocumentStart(t *testing.T) {
	b := FromString("abc")
	p := b.Backspace(types.Position{})
	if b.Text() != "abc" || p != (types.Position{}) {
		t.Errorf("Backspace at start should do nothing, got %q at %+v", b.Text(), p)
	}
}

func TestLineEndingDetection(t *testing.T) {
	b := FromString("one\r\ntwo")
	if b.LineEnding() != CRLF {
		t.Errorf("CRLF not detected")
	}
	if b.Line(0) != "one" {
		t.Errorf("Carriage return leaked into line: %q", b.Line(0))
	}
	if b.String() != "one\r\ntwo" {
		t.Errorf("CRLF not preserved on output: %q", b.String())
	}
	if b.Text() != "one\ntwo" {
		t.Errorf("Plain text form should use LF: %q", b.Text())
	}
}

func TestClamp(t *testing.T) {
	b := FromString("abc\nde")
	cases := []struct{ in, want types.Position }{
		{types.Position{Row: -5, Col: -5}, types.Position{Row: 0, Col: 0}},
		{types.Position{Row: 0, Col: 99}, types.Position{Row: 0, Col: 3}},
		{types.Position{Row: 99, Col: 99}, types.Position{Row: 1, Col: 2}},
		{types.Position{Row: 1, Col: 1}, types.Position{Row: 1, Col: 1}},
	}
	for _, c := range cases {
		if got := b.Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%+v) = %+v, expected %+v", c.in, got, c.want)
		}
	}
}

func TestCharacterIndexingWithMultibyteRunes(t *testing.T) {
	b := FromString("héllo")
	p := b.InsertChar(types.Position{Row: 0, Col: 2}, 'x')
	if b.Line(0) != "héxllo" {
		t.Errorf("Insertion split a rune: %q", b.Line(0))
	}
	if p.Col != 3 {
		t.Errorf("Cursor column %d, expected 3", p.Col)
	}
	if b.LineLen(0) != 6 {
		t.Errorf("LineLen counted bytes, not characters: %d", b.LineLen(0))
	}
}

func TestDeleteRangeKeepsOneLine(t *testing.T) {
	b := FromString("only")
	b.DeleteRange(types.Position{}, b.End())
	if b.LineCount() != 1 || b.Line(0) != "" {
		t.Errorf("Buffer should hold a single empty line, got %d lines", b.LineCount())
	}
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := FromString("hello world")
	p := b.InsertNewline(types.Position{Row: 0, Col: 5})
	if b.Line(0) != "hello" || b.Line(1) != " world" {
		t.Errorf("Unexpected split: %q / %q", b.Line(0), b.Line(1))
	}
	if p != (types.Position{Row: 1, Col: 0}) {
		t.Errorf("Cursor at %+v after newline", p)
	}
}
