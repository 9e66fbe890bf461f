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
package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/tern-editor/tern/commander"
	"github.com/tern-editor/tern/editor"
	"github.com/tern-editor/tern/highlight"
	"github.com/tern-editor/tern/types"
)

// The Screen draws the state of an Editor.
type Screen struct {
	size types.Size // screen size
}

func NewScreen() (*Screen, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.OutputNormal)
	return &Screen{}, nil
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Render(e *editor.Editor, c *commander.Commander) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	var screenSize types.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	gutter := len(strconv.Itoa(e.Buffer.LineCount())) + 1
	editSize := types.Size{Rows: screenSize.Rows - 2, Cols: screenSize.Cols - gutter}
	e.SetSize(editSize)
	e.Scroll()

	s.renderBuffer(e, gutter, editSize)
	s.renderInfoBar(e)
	s.renderMessageBar(e, c)
	s.placeCursor(e, c, gutter)
	termbox.Flush()
}

func (s *Screen) renderBuffer(e *editor.Editor, gutter int, editSize types.Size) {
	selMin, selMax, selected := e.SelectionRange()
	for i := 0; i < editSize.Rows; i++ {
		row := e.Offset.Rows + i
		if row >= e.Buffer.LineCount() {
			break
		}
		num := strconv.Itoa(row + 1)
		s.renderText(gutter-1-len(num), i, num, termbox.ColorBlue, termbox.ColorDefault)

		line := e.Buffer.Line(row)
		spans := e.Highlights.LineSpans(row, line)
		runes := []rune(line)
		x := gutter
		for col := e.Offset.Cols; col < len(runes); col++ {
			if x >= s.size.Cols {
				break
			}
			fg := colorAttr(highlight.ColorAt(spans, col))
			bg := termbox.ColorDefault
			if selected && inRange(selMin, selMax, types.Position{Row: row, Col: col}) {
				fg, bg = termbox.ColorBlack, termbox.ColorWhite
			}
			termbox.SetCell(x, i, runes[col], fg, bg)
			x += runewidth.RuneWidth(runes[col])
		}
		// a selection that continues onto the next line claims the line end
		if selected && x < s.size.Cols &&
			inRange(selMin, selMax, types.Position{Row: row, Col: len(runes)}) && row < selMax.Row {
			termbox.SetCell(x, i, ' ', termbox.ColorBlack, termbox.ColorWhite)
		}
	}
}

func (s *Screen) renderInfoBar(e *editor.Editor) {
	name := e.FileName
	if name == "" {
		name = "[no file]"
	}
	if e.Dirty() {
		name += " *"
	}
	finalText := fmt.Sprintf(" %d/%d ", e.Cursor.Row+1, e.Buffer.LineCount())
	text := " the tern editor - " + name + " "
	for len(text) < s.size.Cols-len(finalText)-1 {
		text = text + " "
	}
	text += finalText
	s.renderText(0, s.size.Rows-2, text, termbox.ColorBlack, termbox.ColorWhite)
}

func (s *Screen) renderMessageBar(e *editor.Editor, c *commander.Commander) {
	var line string
	if c.PromptActive() {
		line = c.PromptText()
		if matches := c.PaletteMatches(5); len(matches) > 0 {
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			line += "  [" + strings.Join(names, " ") + "]"
		}
	} else {
		line = e.Status()
	}
	if len(line) > s.size.Cols {
		line = line[0:s.size.Cols]
	}
	s.renderText(0, s.size.Rows-1, line, termbox.ColorWhite, termbox.ColorDefault)
}

func (s *Screen) placeCursor(e *editor.Editor, c *commander.Commander, gutter int) {
	if c.PromptActive() {
		termbox.SetCursor(runewidth.StringWidth(c.PromptText()), s.size.Rows-1)
		return
	}
	line := []rune(e.Buffer.Line(e.Cursor.Row))
	x := gutter
	for col := e.Offset.Cols; col < e.Cursor.Col && col < len(line); col++ {
		x += runewidth.RuneWidth(line[col])
	}
	termbox.SetCursor(x, e.Cursor.Row-e.Offset.Rows)
}

func (s *Screen) renderText(x, y int, text string, fg, bg termbox.Attribute) {
	for _, ch := range text {
		if x >= s.size.Cols {
			break
		}
		termbox.SetCell(x, y, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
}

func inRange(min, max, p types.Position) bool {
	return !p.Before(min) && p.Before(max)
}

// colorAttr maps a highlight color name to a terminal attribute.
func colorAttr(name string) termbox.Attribute {
	bright := false
	if strings.HasPrefix(name, "bright_") {
		bright = true
		name = strings.TrimPrefix(name, "bright_")
	}
	var attr termbox.Attribute
	switch name {
	case "grey":
		// bright black reads as grey on most terminals
		return termbox.ColorBlack | termbox.AttrBold
	case "red":
		attr = termbox.ColorRed
	case "green":
		attr = termbox.ColorGreen
	case "yellow":
		attr = termbox.ColorYellow
	case "blue":
		attr = termbox.ColorBlue
	case "magenta":
		attr = termbox.ColorMagenta
	case "cyan":
		attr = termbox.ColorCyan
	case "white":
		attr = termbox.ColorWhite
	default:
		return termbox.ColorDefault
	}
	if bright {
		attr |= termbox.AttrBold
	}
	return attr
}
