// Package keymap loads and saves an external key-binding table: a file
// the host hands to the core, not something the core owns itself.
// Bindings are expressed as a TOML document.
package keymap

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/javanhut/vtcore/keyboard"
)

// BindingEntry is one row of the on-disk keymap file.
type BindingEntry struct {
	Key        string `toml:"key"`
	Mods       string `toml:"mods"`
	AppCursor  bool   `toml:"app_cursor"`
	Text       string `toml:"text"`
	Command    string `toml:"command"`
	ClaimsAlt  bool   `toml:"claims_alt"`
	ClaimsMeta bool   `toml:"claims_meta"`
}

// File is the root of a keymap TOML document.
type File struct {
	Bindings []BindingEntry `toml:"binding"`
}

// DefaultFile returns an empty keymap, meaning "fall back to
// keyboard.DefaultTable for everything".
func DefaultFile() *File {
	return &File{}
}

// Path returns the on-disk location of the user's keymap file.
func Path() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vtcore_keymap.toml"
	}
	dir := filepath.Join(homeDir, ".config", "vtcore")
	os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "keymap.toml")
}

// Load reads the keymap file at Path(), returning DefaultFile() if it
// does not exist.
func Load() (*File, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFile(), nil
		}
		return nil, err
	}
	f := DefaultFile()
	if _, err := toml.Decode(string(data), f); err != nil {
		return nil, err
	}
	return f, nil
}

// Save writes f to Path().
func (f *File) Save() error {
	out, err := os.Create(Path())
	if err != nil {
		return err
	}
	defer out.Close()
	return toml.NewEncoder(out).Encode(f)
}

// Table adapts a File into a keyboard.Table, falling back to
// keyboard.DefaultTable for any (key, mods, state) triple the file
// does not override.
type Table struct {
	entries []compiledEntry
	fallback keyboard.Table
}

type compiledEntry struct {
	key       keyboard.Key
	mods      keyboard.Modifiers
	appCursor bool
	binding   keyboard.Binding
}

// NewTable compiles f into a lookup table layered over
// keyboard.DefaultTable.
func NewTable(f *File) *Table {
	t := &Table{fallback: keyboard.DefaultTable{}}
	for _, e := range f.Bindings {
		key, ok := parseKeyName(e.Key)
		if !ok {
			continue
		}
		t.entries = append(t.entries, compiledEntry{
			key:       key,
			mods:      parseMods(e.Mods),
			appCursor: e.AppCursor,
			binding: keyboard.Binding{
				Text:       e.Text,
				Command:    parseCommand(e.Command),
				ClaimsAlt:  e.ClaimsAlt,
				ClaimsMeta: e.ClaimsMeta,
			},
		})
	}
	return t
}

func (t *Table) Lookup(key keyboard.Key, mods keyboard.Modifiers, state keyboard.StateMask) (keyboard.Binding, bool) {
	appCursor := state&keyboard.StateAppCuKeys != 0
	for _, e := range t.entries {
		if e.key == key && e.mods == mods && e.appCursor == appCursor {
			return e.binding, true
		}
	}
	return t.fallback.Lookup(key, mods, state)
}

var keyNames = map[string]keyboard.Key{
	"up": keyboard.KeyUp, "down": keyboard.KeyDown,
	"left": keyboard.KeyLeft, "right": keyboard.KeyRight,
	"home": keyboard.KeyHome, "end": keyboard.KeyEnd,
	"pageup": keyboard.KeyPageUp, "pagedown": keyboard.KeyPageDown,
	"insert": keyboard.KeyInsert, "delete": keyboard.KeyDelete,
	"backspace": keyboard.KeyBackspace, "tab": keyboard.KeyTab,
	"enter": keyboard.KeyEnter, "escape": keyboard.KeyEscape,
	"f1": keyboard.KeyF1, "f2": keyboard.KeyF2, "f3": keyboard.KeyF3,
	"f4": keyboard.KeyF4, "f5": keyboard.KeyF5, "f6": keyboard.KeyF6,
	"f7": keyboard.KeyF7, "f8": keyboard.KeyF8, "f9": keyboard.KeyF9,
	"f10": keyboard.KeyF10, "f11": keyboard.KeyF11, "f12": keyboard.KeyF12,
}

func parseKeyName(s string) (keyboard.Key, bool) {
	k, ok := keyNames[s]
	return k, ok
}

func parseMods(s string) keyboard.Modifiers {
	var m keyboard.Modifiers
	for _, c := range s {
		switch c {
		case 'S':
			m |= keyboard.ModShift
		case 'C':
			m |= keyboard.ModCtrl
		case 'A':
			m |= keyboard.ModAlt
		case 'M':
			m |= keyboard.ModMeta
		case 'K':
			m |= keyboard.ModKeypad
		}
	}
	return m
}

func parseCommand(s string) keyboard.Command {
	switch s {
	case "erase":
		return keyboard.CommandErase
	case "scroll_page_up":
		return keyboard.CommandScrollPageUp
	case "scroll_page_down":
		return keyboard.CommandScrollPageDown
	case "scroll_line_up":
		return keyboard.CommandScrollLineUp
	case "scroll_line_down":
		return keyboard.CommandScrollLineDown
	case "scroll_to_top":
		return keyboard.CommandScrollUpToTop
	case "scroll_to_bottom":
		return keyboard.CommandScrollDownToBottom
	default:
		return keyboard.CommandNone
	}
}
