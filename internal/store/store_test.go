package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_PragmasOnEveryConnection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Holding two connections at once forces the pool to open a second one.
	c1, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := s.DB().Conn(ctx)
	require.NoError(t, err)
	defer c2.Close()

	want := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"synchronous":  "1",
		"busy_timeout": "5000",
	}
	for i, conn := range []*sql.Conn{c1, c2} {
		for pragma, value := range want {
			var got string
			require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA "+pragma).Scan(&got))
			assert.Equal(t, value, got, "connection %d, PRAGMA %s", i, pragma)
		}
	}
}

func TestOpen_MigratesOnceAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	s, err := Open(path)
	require.NoError(t, err)
	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	require.NoError(t, s.EventRepo().AppendLLMRequest(context.Background(), LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "chat-answer", Success: true,
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	events, err := s.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations)+1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.ErrorContains(t, err, "newer than this binary")
}

func seedEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	for i, purpose := range []string{"question-gen", "answer-validation", "question-gen"} {
		data := LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 10 * (i + 1),
			LatencyMs:    int64(50 * (i + 1)),
			Success:      i != 1,
			RequestBody:  fmt.Sprintf("[user]\nprompt %d", i),
			ResponseBody: "{}",
		}
		if i == 1 {
			data.ErrorMessage = "boom"
		}
		require.NoError(t, repo.AppendLLMRequest(context.Background(), data))
	}
}

func TestQueryLLMEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()
	seedEvents(t, repo)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID, "newest first")
	assert.False(t, all[1].Success)
	assert.Equal(t, "boom", all[1].ErrorMessage)
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	gen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen", Limit: 1})
	require.NoError(t, err)
	require.Len(t, gen, 1)
	assert.Equal(t, 300, gen[0].InputTokens)

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nprompt 0", got.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 20},
		{Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 200, OutputTokens: 40},
		{Model: "gemini-2.0-flash", Purpose: "topic-extraction", InputTokens: 50, OutputTokens: 5},
	} {
		e.Provider, e.LatencyMs, e.Success = "test", 100, true
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "question-gen", Calls: 2, InputTokens: 300, OutputTokens: 60, AvgLatencyMs: 100}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 300, OutputTokens: 60}, byModel[1])
}

func TestDeleteLLMEventsBefore(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()
	seedEvents(t, repo)

	n, err := repo.DeleteLLMEventsBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteLLMEventsBefore(ctx, time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, left)
}
