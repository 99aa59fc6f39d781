package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/indexingco/indexingco-cli/internal/tui/components"
)

type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	APIKey     key.Binding
	Command    key.Binding
	Search     key.Binding
	Help       key.Binding
	Refresh    key.Binding
	ToggleView key.Binding
	Detail     key.Binding

	Backfill key.Binding
	Test     key.Binding
	Delete   key.Binding

	Top       key.Binding
	Bottom    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Mark      key.Binding
	Jump      key.Binding

	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Open     key.Binding
	Close    key.Binding

	GoTab key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit from anywhere")),
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus next pane")),
		FocusPrev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus previous pane")),
		APIKey:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "set API key")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command line")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search current tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh all")),
		ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "table / json view")),
		Detail:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle detail pane")),

		Backfill: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backfill pipeline")),
		Test:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test pipeline")),
		Delete:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete pipeline")),

		Top:       key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "first row")),
		Bottom:    key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last row")),
		NextMatch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		Mark:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m<x>", "save mark x")),
		Jump:      key.NewBinding(key.WithKeys("'"), key.WithHelp("'<x>", "jump to mark x")),

		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn/ctrl+f", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup/ctrl+b", "page up")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open detail")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close detail / cancel")),

		GoTab: key.NewBinding(key.WithKeys("g"), key.WithHelp("g a/p/f/t", "activity, pipelines, filters, transforms")),
	}
}

// helpSections groups the bindings for the help overlay.
func (k keyMap) helpSections() []components.KeySection {
	return []components.KeySection{
		{Title: "Navigation", Bindings: []key.Binding{k.Down, k.Up, k.PageDown, k.PageUp, k.Top, k.Bottom, k.GoTab, k.FocusNext, k.FocusPrev, k.Open, k.Close}},
		{Title: "Search", Bindings: []key.Binding{k.Search, k.NextMatch, k.PrevMatch}},
		{Title: "Commands", Bindings: []key.Binding{k.Command, k.APIKey, k.Refresh, k.ToggleView, k.Detail, k.Help, k.Quit, k.ForceQuit}},
		{Title: "Actions", Bindings: []key.Binding{k.Backfill, k.Test, k.Delete}},
		{Title: "Bookmarks", Bindings: []key.Binding{k.Mark, k.Jump}},
	}
}
