package tui

import "github.com/charmbracelet/bubbles/key"

// browseKeyMap holds the browser bindings. Printable keys belong to the
// query input, so filters sit on tab and control keys.
type browseKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Role       key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Role, k.PrevMonth, k.NextMonth, k.Copy, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		k.ShortHelp(),
	}
}

var browseKeys = browseKeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("up", "prev")),
	Down:       key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("dn", "next")),
	ScrollUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "preview up")),
	ScrollDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "preview down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "preview page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "preview page down")),
	Role:       key.NewBinding(key.WithKeys("tab", "ctrl+r"), key.WithHelp("tab", "role")),
	PrevMonth:  key.NewBinding(key.WithKeys("ctrl+left", "ctrl+p"), key.WithHelp("C-p", "prev month")),
	NextMonth:  key.NewBinding(key.WithKeys("ctrl+right", "ctrl+n"), key.WithHelp("C-n", "next month")),
	Copy:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy link")),
	Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

type slideKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Copy key.Binding
	Quit key.Binding
}

var slideKeys = slideKeyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n", " "),
		key.WithHelp("->/space", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("<-", "back"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy share text"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
