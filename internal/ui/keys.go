package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Select  key.Binding
	Back    key.Binding
	Forward key.Binding
	Next    key.Binding
	Toast   key.Binding
	Reload  key.Binding
	Theme   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Forward: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "forward")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next chapter")),
		Toast:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toast verse")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Theme:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Forward, k.Next, k.Toast, k.Reload, k.Theme, k.Quit}
}
