package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Right    key.Binding
	Left     key.Binding
	FastUp   key.Binding
	FastDown key.Binding
	First    key.Binding
	Last     key.Binding
	Profile  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Right, k.FastUp, k.Profile, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Right, k.Left},
		{k.FastUp, k.FastDown},
		{k.First, k.Last},
		{k.Profile, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down", "j"),
		key.WithHelp("tab/j", "next slider"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "k"),
		key.WithHelp("shift+tab/k", "previous slider"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "step"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "step back"),
	),
	FastUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "step ×5"),
	),
	FastDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "step back ×5"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first index"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last index"),
	),
	Profile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "profile"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q/esc", "quit"),
	),
}
