// ABOUTME: Key bindings for the interactive dashboard
// ABOUTME: Implements help.KeyMap so the bubbles help view can render them

package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StatsdUp   key.Binding
	StatsdDown key.Binding
	CarbonUp   key.Binding
	CarbonDown key.Binding
	Explore    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		StatsdUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add StatsD"),
		),
		StatsdDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "remove StatsD"),
		),
		CarbonUp: key.NewBinding(
			key.WithKeys("]", "c"),
			key.WithHelp("]", "add Carbon"),
		),
		CarbonDown: key.NewBinding(
			key.WithKeys("[", "C"),
			key.WithHelp("[", "remove Carbon"),
		),
		Explore: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "explore scaling"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StatsdUp, k.StatsdDown, k.CarbonUp, k.CarbonDown, k.Explore, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StatsdUp, k.StatsdDown},
		{k.CarbonUp, k.CarbonDown},
		{k.Explore, k.Help, k.Quit},
	}
}
