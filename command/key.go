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
package command

import (
	"strings"

	"github.com/tern-editor/tern/types"
)

// namedKeys maps lower-cased aliases to canonical key names.
var namedKeys = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"esc":       "Esc",
	"escape":    "Esc",
	"backspace": "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"tab":       "Tab",
	"space":     "Space",
	"left":      "Left",
	"right":     "Right",
	"up":        "Up",
	"down":      "Down",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
}

// NormalizeKey rewrites a chord like "ctrl+shift+x" into the canonical form
// "Ctrl+Shift+X": modifiers ordered Ctrl, Alt, Shift; letters upper-cased;
// named keys mapped from case-insensitive aliases. Unrecognized tokens pass
// through verbatim so chords for keys we don't know about still round-trip.
// Normalization is idempotent.
func NormalizeKey(chord string) string {
	var ctrl, alt, shift bool
	key := ""
	for _, part := range strings.Split(chord, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch strings.ToLower(part) {
		case "ctrl", "control":
			ctrl = true
		case "alt":
			alt = true
		case "shift":
			shift = true
		default:
			key = canonicalKeyName(part)
		}
	}
	var parts []string
	if ctrl {
		parts = append(parts, "Ctrl")
	}
	if alt {
		parts = append(parts, "Alt")
	}
	if shift {
		parts = append(parts, "Shift")
	}
	if key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, "+")
}

func canonicalKeyName(part string) string {
	lower := strings.ToLower(part)
	if name, ok := namedKeys[lower]; ok {
		return name
	}
	runes := []rune(part)
	if len(runes) == 1 {
		return strings.ToUpper(part)
	}
	if lower[0] == 'f' && isDigits(lower[1:]) {
		return "F" + lower[1:]
	}
	return part
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Chord converts a decoded key event into its canonical chord string, or ""
// when the event carries plain text input with no modifiers.
func Chord(ev types.KeyEvent) string {
	name := ev.Name
	if name == "" && ev.Ch != 0 {
		if !ev.Ctrl && !ev.Alt {
			return ""
		}
		name = string(ev.Ch)
	}
	if name == "" {
		return ""
	}
	var parts []string
	if ev.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if ev.Alt {
		parts = append(parts, "Alt")
	}
	if ev.Shift {
		parts = append(parts, "Shift")
	}
	parts = append(parts, canonicalKeyName(name))
	return strings.Join(parts, "+")
}
