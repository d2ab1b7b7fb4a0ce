package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused bubbles text input. Numeric inputs drop typed
// characters that are not digits; editing keys still go through.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput starts focused. A charLimit of 0 keeps the bubbles default.
func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.Focus()
	return TextInput{Model: m, NumericOnly: numericOnly}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func nonDigit(text string) bool {
	return strings.ContainsFunc(text, func(r rune) bool { return r < '0' || r > '9' })
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && t.NumericOnly && key.Text != "" && nonDigit(key.Text) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string { return t.Model.View() }

// Value is the input without surrounding blanks.
func (t TextInput) Value() string { return strings.TrimSpace(t.Model.Value()) }

// NumericValue parses Value, returning def for anything that is not an
// integer.
func (t TextInput) NumericValue(def int) int {
	if n, err := strconv.Atoi(t.Value()); err == nil {
		return n
	}
	return def
}

func (t *TextInput) Reset()         { t.Model.SetValue("") }
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }
func (t TextInput) Focused() bool   { return t.Model.Focused() }
