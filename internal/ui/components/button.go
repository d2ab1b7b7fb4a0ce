package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// Button fires OnPress on enter. A hidden button draws nothing and
// swallows no input.
type Button struct {
	Label   string
	Active  bool
	Hidden  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) pressable() bool {
	return b.Active && !b.Hidden && b.OnPress != nil
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.Code == tea.KeyEnter && b.pressable() {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Hidden {
		return ""
	}
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	return style.Render("▸ " + b.Label)
}
