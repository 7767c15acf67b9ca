package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/1broseidon/snaptile/internal/dragmode"
)

type keyMap struct {
	New      key.Binding
	Close    key.Binding
	Focus    key.Binding
	FocusDir key.Binding
	SnapDir  key.Binding
	Cancel   key.Binding
	Settings key.Binding
	Save     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new window"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus next"),
		),
		FocusDir: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("←↑↓→", "focus"),
		),
		SnapDir: key.NewBinding(
			key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("shift+←↑↓→", "snap"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Settings: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "settings"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save config"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload config"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Close, k.Focus, k.Settings, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Close, k.Focus, k.Cancel},
		{k.FocusDir, k.SnapDir},
		{k.Settings, k.Save, k.Reload},
		{k.Help, k.Quit},
	}
}

// direction maps an arrow key, with or without shift, to a direction.
func direction(msg string) (dragmode.Direction, bool) {
	switch strings.TrimPrefix(msg, "shift+") {
	case "up":
		return dragmode.DirUp, true
	case "down":
		return dragmode.DirDown, true
	case "left":
		return dragmode.DirLeft, true
	case "right":
		return dragmode.DirRight, true
	}
	return 0, false
}
