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
package highlight

import (
	"testing"
)

func TestHighestPriorityWins(t *testing.T) {
	e := NewEngine()
	e.SetExtension("go")
	if err := e.AddRule("go", "func\\w*", "blue", 1); err != nil {
		t.Fatal(err)
	}
	if err := e.AddRule("go", "funcs", "red", 5); err != nil {
		t.Fatal(err)
	}
	spans := e.LineSpans(0, "funcs here")
	if got := ColorAt(spans, 0); got != "red" {
		t.Errorf("Expected the higher priority rule, got %q", got)
	}
}

func TestPriorityTieGoesToFirstRegistered(t *testing.T) {
	e := NewEngine()
	e.SetExtension("go")
	e.AddRule("go", "word", "blue", 3)
	e.AddRule("go", "word", "red", 3)
	spans := e.LineSpans(0, "a word")
	if got := ColorAt(spans, 2); got != "blue" {
		t.Errorf("Tie should go to the first-registered rule, got %q", got)
	}
}

func TestClearExtensionRevealsLowerPriority(t *testing.T) {
	e := NewEngine()
	e.SetExtension("go")
	e.AddRule("", "word", "green", 1)
	e.AddRule("go", "word", "red", 9)
	if got := ColorAt(e.LineSpans(0, "word"), 0); got != "red" {
		t.Fatalf("Expected red before clearing, got %q", got)
	}
	e.ClearExtension("go")
	if got := ColorAt(e.LineSpans(0, "word"), 0); got != "green" {
		t.Errorf("Global rule should win after clearing, got %q", got)
	}
	e.ClearAll()
	if e.Active() {
		t.Error("Engine should be inactive after ClearAll")
	}
}

func TestCaptureGroupRule(t *testing.T) {
	e := NewEngine()
	e.SetExtension("ini")
	if err := e.AddGroupRule("ini", `(\w+)\s*=`, "cyan", 1, 1); err != nil {
		t.Fatal(err)
	}
	spans := e.LineSpans(0, "name = value")
	if got := ColorAt(spans, 0); got != "cyan" {
		t.Errorf("Key should be colored, got %q", got)
	}
	if got := ColorAt(spans, 5); got != "" {
		t.Errorf("The equals sign should not be colored, got %q", got)
	}
}

func TestExtensionScoping(t *testing.T) {
	e := NewEngine()
	e.SetExtension("md")
	e.AddRule("go", "word", "red", 1)
	if got := ColorAt(e.LineSpans(0, "word"), 0); got != "" {
		t.Errorf("Rules for another extension applied: %q", got)
	}
	e.SetExtension("GO")
	if got := ColorAt(e.LineSpans(0, "word"), 0); got != "red" {
		t.Errorf("Extension should match case-insensitively, got %q", got)
	}
}

func TestSpansUseCharacterIndices(t *testing.T) {
	e := NewEngine()
	e.SetExtension("txt")
	e.AddRule("txt", "end", "yellow", 1)
	// two-byte runes precede the match
	spans := e.LineSpans(0, "ééé end")
	if len(spans) != 1 {
		t.Fatalf("Expected one span, got %d", len(spans))
	}
	if spans[0].Start != 4 || spans[0].End != 7 {
		t.Errorf("Span at [%d,%d), expected [4,7)", spans[0].Start, spans[0].End)
	}
}

func TestInvalidRulesRejected(t *testing.T) {
	e := NewEngine()
	if err := e.AddRule("go", "(unclosed", "red", 1); err == nil {
		t.Error("Bad regex should be rejected")
	}
	if err := e.AddRule("go", "ok", "mauve", 1); err == nil {
		t.Error("Unknown color should be rejected")
	}
	if err := e.AddGroupRule("go", "ok", "red", 1, -2); err == nil {
		t.Error("Negative capture group should be rejected")
	}
}

func TestParseColorAliases(t *testing.T) {
	cases := []struct{ in, want string }{
		{"gray", "grey"},
		{"purple", "magenta"},
		{"RED", "red"},
		{"bright_cyan", "bright_cyan"},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseColor(%q) = %q, %v", c.in, got, err)
		}
	}
}

func TestZeroWidthMatchesSkipped(t *testing.T) {
	e := NewEngine()
	e.SetExtension("txt")
	e.AddRule("txt", "x*", "red", 1)
	spans := e.LineSpans(0, "abc")
	if len(spans) != 0 {
		t.Errorf("Zero-width matches should produce no spans, got %d", len(spans))
	}
}
