package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Home       key.Binding
	Properties key.Binding
	Portfolio  key.Binding
	NextTab    key.Binding
	Connect    key.Binding
	Copy       key.Binding
	Goto       key.Binding
	Sort       key.Binding
	Filter     key.Binding
	Open       key.Binding
	Back       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Home:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
	Properties: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "properties")),
	Portfolio:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "portfolio")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Connect:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "connect wallet")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy identity")),
	Goto:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to id")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// bindingsFor lists the footer shortcuts for the active view and prompt.
func bindingsFor(v view, p prompt) []key.Binding {
	if p != promptNone {
		return []key.Binding{keys.Submit, keys.Cancel}
	}
	common := []key.Binding{keys.Home, keys.Properties, keys.Portfolio, keys.Connect, keys.Goto}
	switch v {
	case viewProperties:
		return append([]key.Binding{keys.Open, keys.Sort, keys.Filter}, append(common, keys.Quit)...)
	case viewDetail:
		return append([]key.Binding{keys.Back}, append(common, keys.Quit)...)
	case viewPortfolio:
		return append([]key.Binding{keys.Copy}, append(common, keys.Quit)...)
	default:
		return append(common, keys.Quit)
	}
}
