package ui

import "github.com/charmbracelet/bubbles/key"

type extraKeyMap struct {
	Add           key.Binding
	Edit          key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	Search        key.Binding
	Status        key.Binding
	Priority      key.Binding
	Clear         key.Binding
	Notifications key.Binding
	Theme         key.Binding
	Logout        key.Binding
	Quit          key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "reminders"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k extraKeyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Status, k.Priority, k.Notifications}
}

func (k extraKeyMap) full() []key.Binding {
	return []key.Binding{
		k.Add, k.Edit, k.Toggle, k.Delete,
		k.Search, k.Status, k.Priority, k.Clear,
		k.Notifications, k.Theme, k.Logout, k.Quit,
	}
}
