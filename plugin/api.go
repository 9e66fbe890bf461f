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
package plugin

import (
	"fmt"
	"sort"

	"github.com/tern-editor/tern/editor"
	"github.com/tern-editor/tern/types"
	"go.starlark.net/starlark"
)

// An API is the capability object handed to a plugin function as its
// first argument. It is valid only for the duration of that one call;
// after release every method errors instead of touching the editor.
type API struct {
	e        *editor.Editor
	released bool
}

func newAPI(e *editor.Editor) *API {
	return &API{e: e}
}

func (a *API) release() {
	a.released = true
}

func (a *API) String() string        { return "<editor>" }
func (a *API) Type() string          { return "editor" }
func (a *API) Freeze()               {}
func (a *API) Truth() starlark.Bool  { return starlark.True }
func (a *API) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: editor") }

func (a *API) Attr(name string) (starlark.Value, error) {
	impl, ok := apiMethods[name]
	if !ok {
		return nil, nil
	}
	fn := func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return dispatch(b, args, kwargs, impl)
	}
	return starlark.NewBuiltin(name, fn).BindReceiver(a), nil
}

func (a *API) AttrNames() []string {
	names := make([]string, 0, len(apiMethods))
	for name := range apiMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type apiFunc func(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

var apiMethods map[string]apiFunc

func init() {
	apiMethods = map[string]apiFunc{
		"text":                  apiText,
		"set_text":              apiSetText,
		"insert":                apiInsert,
		"has_selection":         apiHasSelection,
		"selection_text":        apiSelectionText,
		"replace_selection":     apiReplaceSelection,
		"cursor_line":           apiCursorLine,
		"cursor_col":            apiCursorCol,
		"set_cursor":            apiSetCursor,
		"current_line_text":     apiCurrentLineText,
		"set_current_line_text": apiSetCurrentLineText,
		"file_path":             apiFilePath,
		"file_extension":        apiFileExtension,
		"status":                apiStatus,
		"add_highlight":         apiAddHighlight,
		"add_highlight_group":   apiAddHighlightGroup,
		"clear_highlights":      apiClearHighlights,
		"clear_all_highlights":  apiClearAllHighlights,
	}
}

// dispatch is the shared builtin body: it recovers the receiver, rejects
// released handles, and forwards to the method implementation.
func dispatch(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, impl apiFunc) (starlark.Value, error) {
	a := b.Receiver().(*API)
	if a.released {
		return nil, fmt.Errorf("%s: editor handle is no longer valid", b.Name())
	}
	return impl(a, b, args, kwargs)
}

func apiText(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(a.e.Buffer.Text()), nil
}

func apiSetText(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	a.e.SetText(text)
	return starlark.None, nil
}

func apiInsert(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	a.e.InsertText(text)
	return starlark.None, nil
}

func apiHasSelection(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.Bool(a.e.HasSelection()), nil
}

func apiSelectionText(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(a.e.SelectedText()), nil
}

func apiReplaceSelection(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	a.e.InsertText(text)
	return starlark.None, nil
}

func apiCursorLine(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(a.e.Cursor.Row + 1), nil
}

func apiCursorCol(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(a.e.Cursor.Col + 1), nil
}

func apiSetCursor(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line, col int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &line, &col); err != nil {
		return nil, err
	}
	a.e.ClearSelection()
	a.e.Cursor = a.e.Buffer.Clamp(types.Position{Row: line - 1, Col: col - 1})
	return starlark.None, nil
}

func apiCurrentLineText(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(a.e.Buffer.Line(a.e.Cursor.Row)), nil
}

func apiSetCurrentLineText(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	a.e.ReplaceCurrentLine(text)
	return starlark.None, nil
}

func apiFilePath(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(a.e.FileName), nil
}

func apiFileExtension(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(a.e.Extension()), nil
}

func apiStatus(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var msg string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &msg); err != nil {
		return nil, err
	}
	a.e.SetStatus(msg)
	return starlark.None, nil
}

func apiAddHighlight(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ext, pattern, color string
	var priority int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 4, &ext, &pattern, &color, &priority); err != nil {
		return nil, err
	}
	if err := a.e.Highlights.AddRule(ext, pattern, color, priority); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func apiAddHighlightGroup(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ext, pattern, color string
	var priority, group int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 5, &ext, &pattern, &color, &priority, &group); err != nil {
		return nil, err
	}
	if err := a.e.Highlights.AddGroupRule(ext, pattern, color, priority, group); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func apiClearHighlights(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ext string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &ext); err != nil {
		return nil, err
	}
	a.e.Highlights.ClearExtension(ext)
	return starlark.None, nil
}

func apiClearAllHighlights(a *API, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	a.e.Highlights.ClearAll()
	return starlark.None, nil
}
