package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taskflow/internal/config"
)

type keyMap struct {
	Quit            key.Binding
	Add             key.Binding
	Search          key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	NextField       key.Binding
	PrevField       key.Binding
	Left            key.Binding
	Right           key.Binding
	StatusAll       key.Binding
	StatusActive    key.Binding
	StatusCompleted key.Binding
	NextStatus      key.Binding
	NextCategory    key.Binding
	PrevCategory    key.Binding
	Priority        key.Binding
	Theme           key.Binding
	Yes             key.Binding
	No              key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:            key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:             key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Search:          key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		Up:              key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		Down:            key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		Toggle:          key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		Delete:          key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Confirm:         key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "confirm")),
		Cancel:          key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		NextField:       key.NewBinding(key.WithKeys(k.NextField), key.WithHelp(k.NextField, "next field")),
		PrevField:       key.NewBinding(key.WithKeys(k.PrevField), key.WithHelp(k.PrevField, "prev field")),
		Left:            key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
		Right:           key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		StatusAll:       key.NewBinding(key.WithKeys(k.StatusAll), key.WithHelp(k.StatusAll, "all")),
		StatusActive:    key.NewBinding(key.WithKeys(k.StatusActive), key.WithHelp(k.StatusActive, "active")),
		StatusCompleted: key.NewBinding(key.WithKeys(k.StatusCompleted), key.WithHelp(k.StatusCompleted, "completed")),
		NextStatus:      key.NewBinding(key.WithKeys(k.NextStatus), key.WithHelp(k.NextStatus, "next tab")),
		NextCategory:    key.NewBinding(key.WithKeys(k.NextCategory), key.WithHelp(k.NextCategory, "category")),
		PrevCategory:    key.NewBinding(key.WithKeys(k.PrevCategory), key.WithHelp(k.PrevCategory, "prev category")),
		Priority:        key.NewBinding(key.WithKeys(k.Priority), key.WithHelp(k.Priority, "priority")),
		Theme:           key.NewBinding(key.WithKeys(k.Theme), key.WithHelp(k.Theme, "theme")),
		Yes:             key.NewBinding(key.WithKeys("y", "Y")),
		No:              key.NewBinding(key.WithKeys("n", "N", k.Cancel)),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// listHelp satisfies help.KeyMap for the list screen.
type listHelp struct{ keys keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	k := h.keys
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Search, k.NextStatus, k.NextCategory, k.Priority, k.Theme, k.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.StatusAll, k.StatusActive, k.StatusCompleted, k.NextStatus},
		{k.NextCategory, k.PrevCategory, k.Priority},
		{k.Add, k.Search, k.Theme, k.Quit},
	}
}

type formHelp struct{ keys keyMap }

func (h formHelp) ShortHelp() []key.Binding {
	k := h.keys
	return []key.Binding{k.Confirm, k.NextField, k.PrevField, k.Left, k.Right, k.Cancel}
}

func (h formHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
