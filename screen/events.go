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
	"github.com/nsf/termbox-go"
	"github.com/tern-editor/tern/types"
)

// PollKeyEvent blocks for the next terminal event and returns the decoded
// key event. Resize events are absorbed here (ok is false; the caller just
// renders again).
func (s *Screen) PollKeyEvent() (types.KeyEvent, bool) {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventKey:
		return decodeKey(event), true
	case termbox.EventResize:
		termbox.Flush()
	}
	return types.KeyEvent{}, false
}

// decodeKey translates a termbox key event. Control chords arrive as
// dedicated key codes; the terminal never reports Shift for letters (they
// arrive upper-cased) and never distinguishes Tab from Ctrl+I, so those
// aliases collapse here.
func decodeKey(event termbox.Event) types.KeyEvent {
	ev := types.KeyEvent{Alt: event.Mod&termbox.ModAlt != 0}
	switch event.Key {
	case termbox.KeyArrowUp:
		ev.Name = "Up"
	case termbox.KeyArrowDown:
		ev.Name = "Down"
	case termbox.KeyArrowLeft:
		ev.Name = "Left"
	case termbox.KeyArrowRight:
		ev.Name = "Right"
	case termbox.KeyHome:
		ev.Name = "Home"
	case termbox.KeyEnd:
		ev.Name = "End"
	case termbox.KeyPgup:
		ev.Name = "PageUp"
	case termbox.KeyPgdn:
		ev.Name = "PageDown"
	case termbox.KeyEnter:
		ev.Name = "Enter"
	case termbox.KeyEsc:
		ev.Name = "Esc"
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		ev.Name = "Backspace"
	case termbox.KeyDelete:
		ev.Name = "Delete"
	case termbox.KeyTab:
		ev.Name = "Tab"
	case termbox.KeySpace:
		ev.Name = "Space"
	case termbox.KeyF1:
		ev.Name = "F1"
	case termbox.KeyF2:
		ev.Name = "F2"
	case termbox.KeyF3:
		ev.Name = "F3"
	case termbox.KeyF4:
		ev.Name = "F4"
	case termbox.KeyF5:
		ev.Name = "F5"
	case termbox.KeyF6:
		ev.Name = "F6"
	case termbox.KeyF7:
		ev.Name = "F7"
	case termbox.KeyF8:
		ev.Name = "F8"
	case termbox.KeyF9:
		ev.Name = "F9"
	case termbox.KeyF10:
		ev.Name = "F10"
	case termbox.KeyF11:
		ev.Name = "F11"
	case termbox.KeyF12:
		ev.Name = "F12"
	case termbox.KeyCtrlA:
		ev.Ctrl, ev.Ch = true, 'a'
	case termbox.KeyCtrlB:
		ev.Ctrl, ev.Ch = true, 'b'
	case termbox.KeyCtrlC:
		ev.Ctrl, ev.Ch = true, 'c'
	case termbox.KeyCtrlD:
		ev.Ctrl, ev.Ch = true, 'd'
	case termbox.KeyCtrlE:
		ev.Ctrl, ev.Ch = true, 'e'
	case termbox.KeyCtrlF:
		ev.Ctrl, ev.Ch = true, 'f'
	case termbox.KeyCtrlG:
		ev.Ctrl, ev.Ch = true, 'g'
	case termbox.KeyCtrlJ:
		ev.Ctrl, ev.Ch = true, 'j'
	case termbox.KeyCtrlK:
		ev.Ctrl, ev.Ch = true, 'k'
	case termbox.KeyCtrlL:
		ev.Ctrl, ev.Ch = true, 'l'
	case termbox.KeyCtrlN:
		ev.Ctrl, ev.Ch = true, 'n'
	case termbox.KeyCtrlO:
		ev.Ctrl, ev.Ch = true, 'o'
	case termbox.KeyCtrlP:
		ev.Ctrl, ev.Ch = true, 'p'
	case termbox.KeyCtrlQ:
		ev.Ctrl, ev.Ch = true, 'q'
	case termbox.KeyCtrlR:
		ev.Ctrl, ev.Ch = true, 'r'
	case termbox.KeyCtrlS:
		ev.Ctrl, ev.Ch = true, 's'
	case termbox.KeyCtrlT:
		ev.Ctrl, ev.Ch = true, 't'
	case termbox.KeyCtrlU:
		ev.Ctrl, ev.Ch = true, 'u'
	case termbox.KeyCtrlV:
		ev.Ctrl, ev.Ch = true, 'v'
	case termbox.KeyCtrlW:
		ev.Ctrl, ev.Ch = true, 'w'
	case termbox.KeyCtrlX:
		ev.Ctrl, ev.Ch = true, 'x'
	case termbox.KeyCtrlY:
		ev.Ctrl, ev.Ch = true, 'y'
	case termbox.KeyCtrlZ:
		ev.Ctrl, ev.Ch = true, 'z'
	default:
		ev.Ch = event.Ch
	}
	return ev
}
