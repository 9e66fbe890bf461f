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

// Package highlight stores regex-based syntax highlighting rules and
// resolves them into colored spans for visible lines. Rules are pure data;
// the engine performs no I/O.
package highlight

import (
	"fmt"
	"regexp"
	"strings"
)

// Color names accepted from rules. Unknown names are rejected when the rule
// is registered.
var colorNames = map[string]bool{
	"red": true, "green": true, "yellow": true, "blue": true,
	"magenta": true, "cyan": true, "white": true, "grey": true,
	"bright_red": true, "bright_green": true, "bright_yellow": true,
	"bright_blue": true, "bright_magenta": true, "bright_cyan": true,
	"bright_white": true, "bright_grey": true,
}

// ParseColor validates a color token, accepting a few common spellings.
func ParseColor(name string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(name))
	switch c {
	case "gray":
		c = "grey"
	case "bright_gray":
		c = "bright_grey"
	case "purple":
		c = "magenta"
	}
	if !colorNames[c] {
		return "", fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// A Rule colors text matching a pattern. Group selects which capture group
// is painted; zero paints the whole match. Higher priority wins where
// matches overlap.
type Rule struct {
	pattern  *regexp.Regexp
	color    string
	priority int
	group    int
	serial   int
}

// A Span is one colored run within a line, in character indices,
// half-open [Start, End).
type Span struct {
	Start    int
	End      int
	Color    string
	priority int
	serial   int
}

// The Engine keeps an extension-keyed store of rules and computes the span
// list for a line on demand. Matching is re-run per line; a per-line cache
// keyed on the line's text avoids recomputation between edits but is not
// observable beyond timing.
type Engine struct {
	rulesByExt map[string][]Rule
	extension  string
	serial     int
	cache      map[int]cachedSpans
}

type cachedSpans struct {
	text  string
	spans []Span
}

func NewEngine() *Engine {
	return &Engine{
		rulesByExt: make(map[string][]Rule),
		cache:      make(map[int]cachedSpans),
	}
}

// SetExtension selects which extension's rules apply to the current file.
// The extension is stored lower-cased and without a leading dot.
func (e *Engine) SetExtension(ext string) {
	ext = normalizeExt(ext)
	if e.extension != ext {
		e.extension = ext
		e.cache = make(map[int]cachedSpans)
	}
}

func (e *Engine) Extension() string {
	return e.extension
}

// AddRule registers a whole-match rule for an extension.
func (e *Engine) AddRule(ext, pattern, color string, priority int) error {
	return e.add(ext, pattern, color, priority, 0)
}

// AddGroupRule registers a rule that paints only one capture group while
// still requiring the whole pattern to match.
func (e *Engine) AddGroupRule(ext, pattern, color string, priority, group int) error {
	if group < 0 {
		return fmt.Errorf("capture group must not be negative")
	}
	return e.add(ext, pattern, color, priority, group)
}

func (e *Engine) add(ext, pattern, color string, priority, group int) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid highlight pattern %q: %w", pattern, err)
	}
	c, err := ParseColor(color)
	if err != nil {
		return err
	}
	ext = normalizeExt(ext)
	e.serial++
	e.rulesByExt[ext] = append(e.rulesByExt[ext], Rule{
		pattern:  re,
		color:    c,
		priority: priority,
		group:    group,
		serial:   e.serial,
	})
	e.cache = make(map[int]cachedSpans)
	return nil
}

// ClearExtension removes every rule registered for an extension.
func (e *Engine) ClearExtension(ext string) {
	delete(e.rulesByExt, normalizeExt(ext))
	e.cache = make(map[int]cachedSpans)
}

// ClearAll empties the whole rule store.
func (e *Engine) ClearAll() {
	e.rulesByExt = make(map[string][]Rule)
	e.cache = make(map[int]cachedSpans)
}

// Invalidate drops cached spans; call after any buffer edit.
func (e *Engine) Invalidate() {
	e.cache = make(map[int]cachedSpans)
}

// Active reports whether any rules apply to the current file.
func (e *Engine) Active() bool {
	return len(e.rulesByExt[e.extension]) > 0 || len(e.rulesByExt[""]) > 0
}

// LineSpans returns the colored spans for one line of text. Rules for the
// current extension and extension-independent rules (empty extension) both
// apply.
func (e *Engine) LineSpans(row int, text string) []Span {
	if c, ok := e.cache[row]; ok && c.text == text {
		return c.spans
	}
	spans := e.computeSpans(text)
	e.cache[row] = cachedSpans{text: text, spans: spans}
	return spans
}

func (e *Engine) computeSpans(text string) []Span {
	var spans []Span
	for _, rules := range [][]Rule{e.rulesByExt[e.extension], e.rulesByExt[""]} {
		for _, rule := range rules {
			for _, m := range rule.pattern.FindAllStringSubmatchIndex(text, -1) {
				lo, hi := m[0], m[1]
				if rule.group > 0 {
					gi := rule.group * 2
					if gi+1 >= len(m) || m[gi] < 0 {
						continue
					}
					lo, hi = m[gi], m[gi+1]
				}
				if lo == hi {
					continue
				}
				spans = append(spans, Span{
					Start:    charIndex(text, lo),
					End:      charIndex(text, hi),
					Color:    rule.color,
					priority: rule.priority,
					serial:   rule.serial,
				})
			}
		}
	}
	return spans
}

// ColorAt resolves overlapping spans at one character position: the highest
// priority wins, and among equal priorities the earliest-registered rule
// wins. Returns "" when no span covers the position.
func ColorAt(spans []Span, col int) string {
	best := -1
	for i, s := range spans {
		if col < s.Start || col >= s.End {
			continue
		}
		if best < 0 || s.priority > spans[best].priority ||
			(s.priority == spans[best].priority && s.serial < spans[best].serial) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return spans[best].Color
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func charIndex(s string, bytes int) int {
	return len([]rune(s[:bytes]))
}
