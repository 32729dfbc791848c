package hexview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the hex view key bindings.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	WordLeft, WordRight   key.Binding
	Home, End             key.Binding
	FileStart, FileEnd    key.Binding
	PageUp, PageDown      key.Binding
	HalfUp, HalfDown      key.Binding
	ToggleColumn          key.Binding

	Goto, Find         key.Binding
	FindNext, FindPrev key.Binding

	EnterEdit, ExitEdit key.Binding
	Commit, Reload      key.Binding
	Discard             key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		// Terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("ctrl+→", "word right")),

		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "row start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "row end")),
		FileStart: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "file start")),
		FileEnd:   key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "file end")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		HalfUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),

		ToggleColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "hex/ascii")),

		Goto:     key.NewBinding(key.WithKeys("g", "ctrl+g"), key.WithHelp("g", "go to offset")),
		Find:     key.NewBinding(key.WithKeys("/", "ctrl+f"), key.WithHelp("/", "find")),
		FindNext: key.NewBinding(key.WithKeys("n", "f3"), key.WithHelp("n", "next match")),
		FindPrev: key.NewBinding(key.WithKeys("N", "shift+f3"), key.WithHelp("N", "previous match")),

		EnterEdit: key.NewBinding(key.WithKeys("i", "insert"), key.WithHelp("i", "edit")),
		ExitEdit:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
		Commit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Discard:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "discard edits")),
	}
}

func (km KeyMap) empty() bool { return len(km.Left.Keys()) == 0 }
