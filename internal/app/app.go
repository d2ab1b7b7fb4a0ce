package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/screens/chat"
	"github.com/abhisek/bs2tutor/internal/screens/home"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/abhisek/bs2tutor/internal/store"
	"github.com/abhisek/bs2tutor/internal/ui/layout"
)

// Options holds the services the screens run on. Nil services disable the
// matching menu entry.
type Options struct {
	Tutor     chat.Asker
	Session   *session.Session
	EventRepo store.EventRepo
	Language  i18n.Lang
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	lang   i18n.Lang
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	lang := opts.Language
	if !lang.Valid() {
		lang = i18n.DE
	}
	return AppModel{
		router: router.New(home.New(opts.Tutor, opts.Session, opts.EventRepo, lang)),
		lang:   lang,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BusyReporter); ok && b.Busy() {
				return m, m.router.Update(msg)
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.lang, m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, contentHeight), footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	switch hp, ok := active.(screen.KeyHintProvider); {
	case ok:
		hints = hp.KeyHints()
	case m.router.Depth() > 1:
		hints = []layout.KeyHint{{Key: "Esc", Description: i18n.T(m.lang, i18n.MsgKeyBack)}}
	default:
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: i18n.T(m.lang, i18n.MsgKeyNavigate)},
			{Key: "Enter", Description: i18n.T(m.lang, i18n.MsgKeySelect)},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: i18n.T(m.lang, i18n.MsgKeyQuit)})
}

// Run blocks until the user quits the TUI.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
