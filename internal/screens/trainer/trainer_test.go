package trainer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/router"
	"github.com/abhisek/bs2tutor/internal/screens/summary"
	"github.com/abhisek/bs2tutor/internal/session"
)

// stubGenerator returns the same question for every call.
type stubGenerator struct {
	err error
}

func (g *stubGenerator) question() (*questiongen.QuestionSpec, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &questiongen.QuestionSpec{
		Text: "Welche Aussagen zu OLAP treffen zu?",
		Options: []questiongen.Option{
			{Key: "A", Text: "mehrdimensional"}, {Key: "B", Text: "zeilenweise"},
			{Key: "C", Text: "Drill-down"}, {Key: "D", Text: "Trigger"},
		},
		CorrectAnswers: []string{"A", "C"},
		Type:           questiongen.MultipleChoice,
		Source:         questiongen.Source{Type: "Hauptskript", File: "bs2.pdf", Page: 41},
	}, nil
}

func (g *stubGenerator) Generate(context.Context, questiongen.GenerateInput) (*questiongen.QuestionSpec, error) {
	return g.question()
}

func (g *stubGenerator) GenerateFromRandomTopic(context.Context, questiongen.QuestionType, i18n.Lang) (*questiongen.QuestionSpec, error) {
	return g.question()
}

func (g *stubGenerator) VariationTopic(_ context.Context, base string, _ []string, _ i18n.Lang) string {
	return base
}

// blockingGenerator holds every random-topic generation until its
// context is cancelled.
type blockingGenerator struct {
	stubGenerator
	entered chan struct{}
}

func (g *blockingGenerator) GenerateFromRandomTopic(ctx context.Context, _ questiongen.QuestionType, _ i18n.Lang) (*questiongen.QuestionSpec, error) {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

// runQueue runs the commands returned by start in the background and
// delivers the BuildQueue result.
func runQueue(cmd tea.Cmd) <-chan queueBuiltMsg {
	out := make(chan queueBuiltMsg, 1)
	go func() {
		msg := cmd()
		if m, ok := msg.(queueBuiltMsg); ok {
			out <- m
			return
		}
		batch, _ := msg.(tea.BatchMsg)
		for _, c := range batch {
			go func() {
				if m, ok := c().(queueBuiltMsg); ok {
					out <- m
				}
			}()
		}
	}()
	return out
}

func awaitQueue(t *testing.T, ch <-chan queueBuiltMsg) queueBuiltMsg {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("BuildQueue did not return")
		return queueBuiltMsg{}
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// built runs BuildQueue synchronously and feeds the result to the screen.
func built(t *testing.T, ts *TrainerScreen, count int) {
	t.Helper()
	turn, err := ts.sess.BuildQueue(context.Background(), session.BuildInput{Count: count, Language: ts.lang})
	ts.Update(queueBuiltMsg{Run: ts.run, Turn: turn, Err: err})
}

func newTrainer(gen questiongen.Generator) *TrainerScreen {
	return New(session.New(gen, session.Config{}, nil), i18n.DE)
}

func TestTrainer_StartEntersGenerating(t *testing.T) {
	ts := newTrainer(&stubGenerator{})
	_, cmd := ts.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command to build the queue")
	}
	if ts.phase != phaseGenerating {
		t.Errorf("phase = %v, want generating", ts.phase)
	}
}

func TestTrainer_SetupToggles(t *testing.T) {
	ts := newTrainer(&stubGenerator{})

	ts.Update(specialKey(tea.KeyRight))
	if ts.qtype != questiongen.SingleChoice {
		t.Errorf("qtype = %v, want single choice", ts.qtype)
	}

	ts.Update(specialKey(tea.KeyTab))
	ts.Update(specialKey(tea.KeyRight))
	if ts.lang != i18n.EN {
		t.Errorf("lang = %v, want en", ts.lang)
	}
	if ts.Status() != "EN" {
		t.Errorf("Status = %q", ts.Status())
	}

	ts.Update(specialKey(tea.KeyTab))
	if ts.field != fieldCount || !ts.count.Focused() {
		t.Error("expected count field to be focused")
	}
	ts.Update(keyPress('x'))
	ts.Update(keyPress('5'))
	if got := ts.count.Value(); got != "5" {
		t.Errorf("count = %q, want 5", got)
	}
}

func TestTrainer_AnswerFlow(t *testing.T) {
	ts := newTrainer(&stubGenerator{})
	built(t, ts, 2)
	if ts.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", ts.phase)
	}

	view := ts.View(100, 30)
	for _, want := range []string{"Frage 1 von 2", "A) mehrdimensional", "Welche Aussagen"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	ts.Update(keyPress('a'))
	ts.Update(keyPress('c'))
	ts.Update(keyPress('c'))
	ts.Update(keyPress('c'))
	if got := strings.Join(ts.choices.Checked, ","); got != "A,C" {
		t.Fatalf("checked = %q, want A,C", got)
	}

	ts.Update(specialKey(tea.KeyEnter))
	if ts.eval == nil || !ts.eval.Correct || !ts.eval.ShouldAdvance {
		t.Fatalf("expected a correct evaluation, got %+v", ts.eval)
	}
	if ts.next.Hidden {
		t.Error("expected next button on the first of two questions")
	}
	if !strings.Contains(ts.View(100, 30), "Quelle: Hauptskript (bs2.pdf, Seite 42)") {
		t.Error("expected source line after the answer")
	}

	_, cmd := ts.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected the next button to fire")
	}
	ts.Update(cmd())
	if ts.sess.Index != 1 || ts.eval != nil {
		t.Fatalf("expected second question, index=%d", ts.sess.Index)
	}

	for i := 0; i < session.DefaultMaxAttempts; i++ {
		ts.Update(specialKey(tea.KeyEnter))
	}
	if ts.eval == nil || ts.eval.Correct || !ts.eval.ShouldAdvance {
		t.Fatalf("expected attempts to be exhausted, got %+v", ts.eval)
	}
	if !ts.next.Hidden {
		t.Error("expected no next button on the last question")
	}
	if !strings.Contains(ts.eval.Feedback, "Richtige Antwort: A, C") {
		t.Errorf("feedback = %q", ts.eval.Feedback)
	}

	_, cmd = ts.Update(specialKey(tea.KeyEnter))
	if ts.phase != phaseDone {
		t.Fatalf("phase = %v, want done", ts.phase)
	}
	if cmd == nil {
		t.Fatal("expected the results screen to open")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("pushed %T, want *summary.SummaryScreen", push.Screen)
	}
	if sum := ts.sess.Summary(); sum.Answered != 2 || sum.Correct != 1 {
		t.Errorf("summary = %+v", sum)
	}

	_, cmd = ts.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command to go home")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestTrainer_GenerationFailureShowsLocalizedError(t *testing.T) {
	ts := newTrainer(&stubGenerator{err: errors.New("boom")})
	built(t, ts, 1)

	if ts.phase != phaseSetup {
		t.Fatalf("phase = %v, want setup", ts.phase)
	}
	want := i18n.T(i18n.DE, i18n.MsgGenerationFailed)
	if ts.errMsg != want {
		t.Errorf("errMsg = %q, want %q", ts.errMsg, want)
	}
	if !strings.Contains(ts.View(100, 30), "Es konnten keine Fragen") {
		t.Error("expected error in setup view")
	}
}

func TestTrainer_KeyHints(t *testing.T) {
	ts := newTrainer(&stubGenerator{})
	if len(ts.KeyHints()) == 0 {
		t.Error("expected setup key hints")
	}
	built(t, ts, 1)
	if len(ts.KeyHints()) == 0 {
		t.Error("expected question key hints")
	}
}

func TestTrainer_EscCancelsRunningGeneration(t *testing.T) {
	gen := &blockingGenerator{entered: make(chan struct{}, 1)}
	ts := newTrainer(gen)

	_, cmd := ts.Update(specialKey(tea.KeyEnter))
	if !ts.Busy() {
		t.Fatal("expected the screen to be busy while generating")
	}

	result := runQueue(cmd)
	select {
	case <-gen.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("generation never started")
	}

	if _, nav := ts.Update(specialKey(tea.KeyEscape)); nav != nil {
		t.Error("expected Esc during generation to cancel, not navigate")
	}
	msg := awaitQueue(t, result)
	if !errors.Is(msg.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", msg.Err)
	}

	ts.Update(msg)
	if ts.phase != phaseSetup || ts.Busy() {
		t.Errorf("phase = %v, want setup", ts.phase)
	}
	if ts.errMsg != "" {
		t.Errorf("cancellation should not show an error, got %q", ts.errMsg)
	}
	if len(ts.sess.Queue) != 0 {
		t.Errorf("queue = %d questions, want none", len(ts.sess.Queue))
	}
}

func TestTrainer_IgnoresResultOfEarlierRun(t *testing.T) {
	ts := newTrainer(&stubGenerator{})
	ts.Update(specialKey(tea.KeyEnter))
	ts.Update(specialKey(tea.KeyEscape))
	ts.Update(queueBuiltMsg{Run: 1, Err: context.Canceled})

	ts.Update(specialKey(tea.KeyEnter))
	if ts.run != 2 {
		t.Fatalf("run = %d, want 2", ts.run)
	}
	ts.Update(queueBuiltMsg{Run: 1, Err: errors.New("late failure")})
	if ts.phase != phaseGenerating || ts.errMsg != "" {
		t.Errorf("stale result changed the screen: phase=%v err=%q", ts.phase, ts.errMsg)
	}

	built(t, ts, 1)
	if ts.phase != phaseQuestion {
		t.Errorf("phase = %v, want question", ts.phase)
	}
}

func TestTrainer_IgnoresKeysWhileGenerating(t *testing.T) {
	ts := newTrainer(&stubGenerator{})
	ts.Update(specialKey(tea.KeyEnter))
	runs := ts.run
	if _, cmd := ts.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected Enter during generation to do nothing")
	}
	if ts.run != runs {
		t.Error("expected no second BuildQueue")
	}
}
