package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start     key.Binding
	Next      key.Binding
	Restart   key.Binding
	Play      key.Binding
	NextVoice key.Binding
	PrevVoice key.Binding
	Reload    key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Next:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next phrase")),
		Restart:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new phrase")),
		Play:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "listen")),
		NextVoice: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next voice")),
		PrevVoice: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev voice")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload voices")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Next, k.Play, k.Restart, k.NextVoice, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Next, k.Restart, k.Play},
		{k.NextVoice, k.PrevVoice, k.Reload, k.Quit},
	}
}
