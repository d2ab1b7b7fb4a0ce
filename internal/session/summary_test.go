package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	fake := &fakeGenerator{results: []fakeResult{
		{q: mkQuestion("a", "A")}, {q: mkQuestion("b", "B")}, {q: mkQuestion("c", "C")},
	}}
	s := New(fake, Config{MaxAttempts: 2}, nil)
	clock := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	_, err := s.BuildQueue(context.Background(), BuildInput{Count: 3})
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, 3, sum.Total)
	assert.Zero(t, sum.Answered)
	assert.Zero(t, sum.Accuracy())

	s.Submit([]string{"A"})
	s.Advance()
	s.Submit([]string{"A"})
	s.Submit([]string{"B"})
	s.Advance()
	s.Submit(nil)
	ev := s.Submit(nil)
	require.True(t, ev.ShouldAdvance)
	s.Submit([]string{"C"}) // ignored: the result is already recorded
	s.Advance()

	clock = clock.Add(90 * time.Second)
	sum = s.Summary()
	assert.Equal(t, s.ID, sum.SessionID)
	assert.Equal(t, 3, sum.Answered)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 1, sum.FirstTry)
	assert.Equal(t, 2, sum.MaxAttempts)
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.InDelta(t, 2.0/3.0, sum.Accuracy(), 1e-9)

	require.Len(t, sum.Results, 3)
	assert.Equal(t, "b", sum.Results[1].Question.Text)
	assert.Equal(t, 2, sum.Results[1].Attempts)
	assert.False(t, sum.Results[2].Correct)
}

func TestSummary_ResetByBuildQueue(t *testing.T) {
	fake := &fakeGenerator{results: []fakeResult{{q: mkQuestion("a", "A")}, {q: mkQuestion("b", "B")}}}
	s := New(fake, Config{}, nil)

	_, err := s.BuildQueue(context.Background(), BuildInput{Count: 1})
	require.NoError(t, err)
	s.Submit([]string{"A"})
	require.Equal(t, 1, s.Summary().Answered)

	_, err = s.BuildQueue(context.Background(), BuildInput{Count: 1})
	require.NoError(t, err)
	assert.Zero(t, s.Summary().Answered)
}
