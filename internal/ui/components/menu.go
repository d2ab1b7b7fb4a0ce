package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// MenuItem is one menu entry. Disabled entries are drawn dimmed and the
// cursor skips them.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

type Menu struct {
	Items  []MenuItem
	Cursor int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Cursor: -1}
	m.move(1)
	return m
}

// move steps the cursor in dir until it lands on an enabled item. The
// cursor stays put if there is none in that direction.
func (m *Menu) move(dir int) {
	for i := m.Cursor + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Cursor = i
			return
		}
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Menu) current() (MenuItem, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Cursor], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if item, ok := m.current(); ok && !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, 0, len(m.Items)+2)
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, theme.Hint.Render("    "+item.Label))
		case i == m.Cursor:
			lines = append(lines, theme.Selected.Render("  ▸ "+item.Label))
		default:
			lines = append(lines, theme.Unselected.Render("    "+item.Label))
		}
	}
	if item, ok := m.current(); ok && item.Hint != "" && !item.Disabled {
		lines = append(lines, "", theme.Hint.Render("  "+item.Hint))
	}
	return strings.Join(lines, "\n")
}
