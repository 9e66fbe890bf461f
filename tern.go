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
package main

import (
	"log"
	"os"

	"github.com/tern-editor/tern/command"
	"github.com/tern-editor/tern/commander"
	"github.com/tern-editor/tern/editor"
	"github.com/tern-editor/tern/plugin"
	"github.com/tern-editor/tern/screen"
)

func main() {

	var filename string
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	// Open a log file; everything the editor logs goes there, since the
	// terminal belongs to the display.
	f, err := os.OpenFile(os.Getenv("HOME")+"/.ternlog", os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor()

	// The registry maps names and key chords to commands.
	reg := command.NewRegistry()

	// The plugin host loads scripts and runs them against the editor.
	host := plugin.NewHost()

	// The commander converts user inputs into commands for the editor.
	// Built-ins register first so plugins may rebind their chords.
	c := commander.NewCommander(e, reg, host)

	host.Load(plugin.DefaultDirs(), reg)
	e.SetHookFunc(func(hook, path string) {
		host.CallHook(e, hook, path)
	})

	if filename != "" {
		if err := e.ReadFile(filename); err != nil {
			if !os.IsNotExist(err) {
				log.Output(1, err.Error())
				return
			}
			// editing a file that doesn't exist yet
			e.FileName = filename
			e.Highlights.SetExtension(e.Extension())
		}
	}

	// Create a screen to manage display.
	s, err := screen.NewScreen()
	if err != nil {
		log.Output(1, err.Error())
		return
	}
	defer s.Close()

	// A panicking plugin or render bug must not leave the terminal raw.
	defer func() {
		if r := recover(); r != nil {
			s.Close()
			log.Printf("panic: %v", r)
			panic(r)
		}
	}()

	// Run the main event loop.
	for c.IsRunning() {
		s.Render(e, c)
		if ev, ok := s.PollKeyEvent(); ok {
			c.ProcessKey(ev)
		}
	}
}
