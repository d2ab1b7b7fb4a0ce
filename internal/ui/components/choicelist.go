package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// ChoiceList shows keyed answer options with a cursor and a set of checked
// keys. It only moves the cursor; the owner decides what a toggle does and
// writes the result back into Checked.
type ChoiceList struct {
	Keys    []string
	Labels  []string
	Checked []string
	Cursor  int

	// Locked disables the cursor, e.g. while feedback is shown.
	Locked bool
}

// NewChoiceList creates a list from parallel key and label slices.
func NewChoiceList(keys, labels []string) ChoiceList {
	return ChoiceList{Keys: keys, Labels: labels}
}

// Update moves the cursor on up/down.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Locked {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Keys)-1 {
			c.Cursor++
		}
	}
	return c, nil
}

// CurrentKey returns the key under the cursor, or "" for an empty list.
func (c ChoiceList) CurrentKey() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Keys) {
		return ""
	}
	return c.Keys[c.Cursor]
}

// View renders one line per option with a check box.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, label := range c.Labels {
		box := "[ ] "
		checked := i < len(c.Keys) && slices.Contains(c.Checked, c.Keys[i])
		if checked {
			box = "[x] "
		}
		prefix := "  "
		if i == c.Cursor && !c.Locked {
			prefix = "▸ "
		}
		line := prefix + box + label
		switch {
		case i == c.Cursor && !c.Locked:
			b.WriteString(theme.Selected.Render(line))
		case checked:
			b.WriteString(theme.Checked.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
