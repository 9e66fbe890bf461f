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
	"sort"
	"strings"
)

// A PluginRef names a function inside a loaded plugin script.
type PluginRef struct {
	PluginID string
	Func     string
}

// A Command is a named, optionally key-bound action. Built-in commands
// carry an Action closure; plugin commands carry a PluginRef instead.
type Command struct {
	Name        string
	Description string
	Key         string // canonical chord, empty if unbound
	Action      func() error
	Plugin      *PluginRef
}

// The Registry maps command names and canonical key chords to commands.
// Names are case-insensitive; registering a name again replaces the earlier
// command in place, and registering a chord again rebinds it, so plugin
// reloads simply re-register.
type Registry struct {
	commands []Command
	byName   map[string]int
	keymap   map[string]string // chord -> command name
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int),
		keymap: make(map[string]string),
	}
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd Command) {
	if cmd.Key != "" {
		cmd.Key = NormalizeKey(cmd.Key)
		r.keymap[cmd.Key] = cmd.Name
	}
	nameKey := strings.ToLower(cmd.Name)
	if i, ok := r.byName[nameKey]; ok {
		r.commands[i] = cmd
		return
	}
	r.byName[nameKey] = len(r.commands)
	r.commands = append(r.commands, cmd)
}

// Get looks up a command by name, case-insensitively.
func (r *Registry) Get(name string) (Command, bool) {
	i, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}

// ResolveKey maps a canonical chord like "Ctrl+S" to a command name.
func (r *Registry) ResolveKey(chord string) (string, bool) {
	name, ok := r.keymap[chord]
	return name, ok
}

// Search returns commands whose name or description contains query,
// case-insensitively, sorted by name and truncated to limit. It backs the
// command palette suggestions.
func (r *Registry) Search(query string, limit int) []Command {
	q := strings.ToLower(query)
	var found []Command
	for _, cmd := range r.commands {
		if strings.Contains(strings.ToLower(cmd.Name), q) ||
			strings.Contains(strings.ToLower(cmd.Description), q) {
			found = append(found, cmd)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return strings.ToLower(found[i].Name) < strings.ToLower(found[j].Name)
	})
	if limit >= 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}

// Suggest finds the closest command by edit distance for "did you mean"
// messages. Commands further than about 40% of the name length away are
// not suggested.
func (r *Registry) Suggest(name string) (Command, bool) {
	name = strings.ToLower(name)
	best := -1
	bestDist := 0
	for i, cmd := range r.commands {
		d := levenshtein(name, strings.ToLower(cmd.Name))
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Command{}, false
	}
	longest := len(name)
	if n := len(r.commands[best].Name); n > longest {
		longest = n
	}
	threshold := (longest*2 + 4) / 5
	if threshold < 2 {
		threshold = 2
	}
	if bestDist > threshold {
		return Command{}, false
	}
	return r.commands[best], true
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
