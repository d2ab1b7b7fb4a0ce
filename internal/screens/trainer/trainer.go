package trainer

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screen"
	"github.com/abhisek/bs2tutor/internal/screens/summary"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/abhisek/bs2tutor/internal/ui/components"
	"github.com/abhisek/bs2tutor/internal/ui/layout"
	"github.com/abhisek/bs2tutor/internal/ui/theme"
)

// MaxQuestions caps the queue size the setup form accepts.
const MaxQuestions = 10

type phase int

const (
	phaseSetup      phase = iota // Choosing type, language, count and topic
	phaseGenerating              // Waiting for BuildQueue
	phaseQuestion                // Answering the current question
	phaseDone                    // Queue exhausted
)

type setupField int

const (
	fieldType setupField = iota
	fieldLanguage
	fieldCount
	fieldTopic
	numFields
)

// advanceMsg is sent by the next-question button.
type advanceMsg struct{}

// queueBuiltMsg is sent when BuildQueue returns. Run numbers the start
// that produced it; results of older runs are dropped.
type queueBuiltMsg struct {
	Run  int
	Turn *session.Turn
	Err  error
}

// TrainerScreen runs a question session: setup, generation, then one
// question at a time with feedback.
type TrainerScreen struct {
	sess  *session.Session
	phase phase

	field setupField
	qtype questiongen.QuestionType
	lang  i18n.Lang
	count components.TextInput
	topic components.TextInput

	spinner spinner.Model
	run     int
	cancel  context.CancelFunc

	choices components.ChoiceList
	next    components.Button
	turn    *session.Turn
	eval    *session.Evaluation
	errMsg  string
}

var (
	_ screen.Screen          = (*TrainerScreen)(nil)
	_ screen.KeyHintProvider = (*TrainerScreen)(nil)
	_ screen.StatusProvider  = (*TrainerScreen)(nil)
	_ screen.BusyReporter    = (*TrainerScreen)(nil)
)

// New creates a trainer screen driving sess.
func New(sess *session.Session, lang i18n.Lang) *TrainerScreen {
	if !lang.Valid() {
		lang = i18n.DE
	}
	count := components.NewTextInput("3", true, 2)
	count.Blur()
	topic := components.NewTextInput("leer = zufälliges Thema / empty = random topic", false, 100)
	topic.Blur()

	return &TrainerScreen{
		sess:    sess,
		qtype:   questiongen.MultipleChoice,
		lang:    lang,
		count:   count,
		topic:   topic,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		next: components.NewButton(i18n.T(lang, i18n.MsgNextQuestion), true, func() tea.Cmd {
			return func() tea.Msg { return advanceMsg{} }
		}),
	}
}

func (t *TrainerScreen) Init() tea.Cmd {
	return nil
}

func (t *TrainerScreen) Title() string {
	return "Trainer"
}

func (t *TrainerScreen) Status() string {
	return strings.ToUpper(string(t.lang))
}

// Busy holds the screen open while BuildQueue runs on the shared session.
func (t *TrainerScreen) Busy() bool {
	return t.phase == phaseGenerating
}

func (t *TrainerScreen) KeyHints() []layout.KeyHint {
	switch t.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		if t.eval != nil && t.eval.ShouldAdvance {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next question"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "A-D/Space", Description: "Select"},
			{Key: "Enter", Description: "Check answer"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New questions"},
			{Key: "H", Description: "Home"},
		}
	case phaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (t *TrainerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case queueBuiltMsg:
		return t.handleQueueBuilt(msg)

	case advanceMsg:
		if t.phase == phaseQuestion {
			return t, t.loadTurn(t.sess.Advance())
		}
		return t, nil

	case spinner.TickMsg:
		if t.phase != phaseGenerating {
			return t, nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		switch t.phase {
		case phaseSetup:
			return t.handleSetupKey(msg)
		case phaseQuestion:
			return t.handleQuestionKey(msg)
		case phaseGenerating:
			if msg.String() == "esc" && t.cancel != nil {
				t.cancel()
			}
		case phaseDone:
			switch msg.String() {
			case "enter":
				t.phase = phaseSetup
				return t, t.focusField(fieldTopic)
			case "h":
				return t, backHome
			}
		}
		return t, nil
	}

	if t.phase == phaseSetup {
		return t, t.updateFocusedInput(msg)
	}
	return t, nil
}

func (t *TrainerScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return t, t.start()
	case "tab", "down":
		return t, t.focusField((t.field + 1) % numFields)
	case "shift+tab", "up":
		return t, t.focusField((t.field + numFields - 1) % numFields)
	case "left", "right", "space":
		switch t.field {
		case fieldType:
			if t.qtype == questiongen.MultipleChoice {
				t.qtype = questiongen.SingleChoice
			} else {
				t.qtype = questiongen.MultipleChoice
			}
			return t, nil
		case fieldLanguage:
			if t.lang == i18n.DE {
				t.lang = i18n.EN
			} else {
				t.lang = i18n.DE
			}
			return t, nil
		}
	}
	return t, t.updateFocusedInput(msg)
}

func (t *TrainerScreen) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t.field {
	case fieldCount:
		t.count, cmd = t.count.Update(msg)
	case fieldTopic:
		t.topic, cmd = t.topic.Update(msg)
	}
	return cmd
}

func (t *TrainerScreen) focusField(f setupField) tea.Cmd {
	t.field = f
	t.count.Blur()
	t.topic.Blur()
	switch f {
	case fieldCount:
		return t.count.Focus()
	case fieldTopic:
		return t.topic.Focus()
	}
	return nil
}

// start validates the form and runs BuildQueue in the background.
func (t *TrainerScreen) start() tea.Cmd {
	n := min(max(t.count.NumericValue(session.DefaultQuestionCount), 1), MaxQuestions)
	topic := t.topic.Value()
	in := session.BuildInput{
		Type:     t.qtype,
		Count:    n,
		Topic:    topic,
		Language: t.lang,
		Output:   session.OutputAuto,
	}
	if topic != "" {
		in.Output = session.OutputCustom
	}

	t.errMsg = ""
	t.phase = phaseGenerating
	t.run++
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	sess, run := t.sess, t.run
	return tea.Batch(t.spinner.Tick, func() tea.Msg {
		turn, err := sess.BuildQueue(ctx, in)
		return queueBuiltMsg{Run: run, Turn: turn, Err: err}
	})
}

func (t *TrainerScreen) handleQueueBuilt(msg queueBuiltMsg) (screen.Screen, tea.Cmd) {
	if msg.Run != t.run {
		return t, nil
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if errors.Is(msg.Err, context.Canceled) {
		t.phase = phaseSetup
		return t, t.focusField(t.field)
	}
	if msg.Err != nil {
		t.phase = phaseSetup
		t.errMsg = i18n.Localize(msg.Err, t.lang)
		return t, nil
	}
	return t, t.loadTurn(msg.Turn)
}

// loadTurn shows turn. At the end of the queue it opens the results.
func (t *TrainerScreen) loadTurn(turn *session.Turn) tea.Cmd {
	t.turn = turn
	t.eval = nil
	if turn == nil || turn.Done {
		t.phase = phaseDone
		results := summary.New(t.sess.Summary())
		return func() tea.Msg { return router.PushScreenMsg{Screen: results} }
	}
	q := turn.Question
	keys := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		keys = append(keys, o.Key)
	}
	t.choices = components.NewChoiceList(keys, session.FormatChoices(q.Options))
	t.next.Label = i18n.T(t.lang, i18n.MsgNextQuestion)
	t.next.Hidden = true
	t.phase = phaseQuestion
	return nil
}

func (t *TrainerScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := t.sess.Current()
	if q == nil {
		return t, t.loadTurn(t.sess.Advance())
	}

	if t.eval != nil && t.eval.ShouldAdvance {
		if t.next.Hidden {
			if msg.String() == "enter" {
				return t, t.loadTurn(t.sess.Advance())
			}
			return t, nil
		}
		var cmd tea.Cmd
		t.next, cmd = t.next.Update(msg)
		return t, cmd
	}

	switch key := msg.String(); key {
	case "enter":
		ev := t.sess.Submit(t.choices.Checked)
		t.eval = &ev
		if ev.ShouldAdvance {
			t.choices.Locked = true
			t.next.Hidden = !t.sess.HasNext()
		}
	case "space":
		t.choices.Checked = session.ToggleSelection(t.choices.Checked, t.choices.CurrentKey(), q.Type)
	case "a", "b", "c", "d", "A", "B", "C", "D":
		if q.HasOption(strings.ToUpper(key)) {
			t.choices.Checked = session.ToggleSelection(t.choices.Checked, key, q.Type)
		}
	default:
		var cmd tea.Cmd
		t.choices, cmd = t.choices.Update(msg)
		return t, cmd
	}
	return t, nil
}

// backHome returns to the home screen once the queue is done.
func backHome() tea.Msg {
	return router.PopToRootMsg{}
}
