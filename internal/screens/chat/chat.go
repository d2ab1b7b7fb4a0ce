package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/ui/components"
	"github.com/abhisek/bs2tutor/internal/ui/layout"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// Asker answers a free-form question with display text.
type Asker interface {
	Ask(ctx context.Context, question string) string
}

// answerMsg carries the tutor's reply back to the screen.
type answerMsg struct {
	Text string
}

type entry struct {
	fromUser bool
	text     string
}

// ChatScreen is a question/answer transcript with an input line.
type ChatScreen struct {
	tutor      Asker
	input      components.TextInput
	spinner    spinner.Model
	transcript []entry
	busy       bool

	// scrollBack is how many lines above the bottom the view is scrolled.
	scrollBack int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat screen backed by tutor.
func New(tutor Asker) *ChatScreen {
	return &ChatScreen{
		tutor:   tutor,
		input:   components.NewTextInput("Frage zu BS2 stellen / ask a question about BS2...", false, 500),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "Chat"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		c.busy = false
		c.scrollBack = 0
		c.transcript = append(c.transcript, entry{text: msg.Text})
		return c, nil

	case spinner.TickMsg:
		if !c.busy {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return c, c.ask()
		case "pgup":
			c.scrollBack += 5
			return c, nil
		case "pgdown":
			c.scrollBack = max(c.scrollBack-5, 0)
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) ask() tea.Cmd {
	question := c.input.Value()
	if question == "" || c.busy {
		return nil
	}
	c.busy = true
	c.scrollBack = 0
	c.transcript = append(c.transcript, entry{fromUser: true, text: question})
	c.input.Reset()

	tutor := c.tutor
	return tea.Batch(c.spinner.Tick, func() tea.Msg {
		return answerMsg{Text: tutor.Ask(context.Background(), question)}
	})
}

func (c *ChatScreen) View(width, height int) string {
	inner := max(width-4, 10)

	var b strings.Builder
	for i, e := range c.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		if e.fromUser {
			b.WriteString(theme.Selected.Width(inner).Render("> " + e.text))
		} else {
			b.WriteString(theme.Body.Width(inner).Render(strings.TrimLeft(e.text, "\n")))
		}
		b.WriteString("\n")
	}
	if c.busy {
		b.WriteString(c.spinner.View() + theme.Hint.Render(" ..."))
	}

	inputLine := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(inner).
		Render(c.input.View())

	vp := viewport.New(viewport.WithWidth(inner), viewport.WithHeight(max(height-lipgloss.Height(inputLine)-1, 1)))
	vp.SetContent(b.String())
	vp.GotoBottom()
	if c.scrollBack > 0 {
		vp.ScrollUp(c.scrollBack)
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(vp.View() + "\n" + inputLine)
}
