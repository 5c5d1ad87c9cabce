package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding used by the browser.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Open       key.Binding
	Back       key.Binding
	Search     key.Binding
	SortName   key.Binding
	SortNumber key.Binding
	FlipName   key.Binding
	FlipNumber key.Binding
	Previous   key.Binding
	Next       key.Binding
	Rulings    key.Binding
	Versions   key.Binding
	Zoom       key.Binding
	Tabs       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open card"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SortName: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "sort by name"),
		),
		SortNumber: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "sort by number"),
		),
		FlipName: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "flip name order"),
		),
		FlipNumber: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "flip number order"),
		),
		Previous: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/drag right", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/drag left", "next"),
		),
		Rulings: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rulings"),
		),
		Versions: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "versions"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z", " "),
			key.WithHelp("z", "zoom image"),
		),
		Tabs: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "tabs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpKeys adapts a set of bindings to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding {
	return h.short
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return h.full
}

func (k keyMap) gridHelp() helpKeys {
	return helpKeys{
		short: []key.Binding{k.Open, k.Search, k.SortName, k.SortNumber, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Left, k.Right},
			{k.Open, k.Search, k.Tabs},
			{k.SortName, k.SortNumber, k.FlipName, k.FlipNumber},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) detailHelp() helpKeys {
	return helpKeys{
		short: []key.Binding{k.Previous, k.Next, k.Rulings, k.Versions, k.Zoom, k.Back},
		full: [][]key.Binding{
			{k.Previous, k.Next},
			{k.Rulings, k.Versions, k.Zoom},
			{k.Back, k.Help, k.Quit},
		},
	}
}
