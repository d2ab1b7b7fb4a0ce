package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/screens/chat"
	"github.com/abhisek/bs2tutor/internal/screens/history"
	"github.com/abhisek/bs2tutor/internal/screens/trainer"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/abhisek/bs2tutor/internal/store"
	"github.com/abhisek/bs2tutor/internal/ui/components"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

const banner = `╔╗ ╔═╗╔═╗  ╔╦╗╦ ╦╔╦╗╔═╗╦═╗
╠╩╗╚═╗╔═╝   ║ ║ ║ ║ ║ ║╠╦╝
╚═╝╚═╝╚═╝   ╩ ╚═╝ ╩ ╚═╝╩╚═`

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. A nil tutor, session or event repo disables
// the corresponding menu entry.
func New(tutor chat.Asker, sess *session.Session, events store.EventRepo, lang i18n.Lang) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:    "CHAT",
			Hint:     i18n.T(lang, i18n.MsgHintChat),
			Disabled: tutor == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: chat.New(tutor)}
				}
			},
		},
		{
			Label:    "TRAINER",
			Hint:     i18n.T(lang, i18n.MsgHintTrainer),
			Disabled: sess == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: trainer.New(sess, lang)}
				}
			},
		},
		{
			Label:    "HISTORY",
			Hint:     i18n.T(lang, i18n.MsgHintHistory),
			Disabled: events == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(events)}
				}
			},
		},
		{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(banner),
		theme.Subtitle.Render("Business Software 2"),
		"",
		theme.Card.Width(min(width-4, 60)).Render(h.menu.View()),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
