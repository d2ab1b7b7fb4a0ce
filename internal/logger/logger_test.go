package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]any{"provider", "openai", "openai_api_key", "sk-123", "Authorization", "Bearer x"})
	assert.Equal(t, []any{"provider", "openai", "openai_api_key", "[REDACTED]", "Authorization", "[REDACTED]"}, out)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]any{"topic", "OLAP", "dangling"})
	assert.Equal(t, []any{"topic", "OLAP", "dangling"}, out)
}

func TestNop(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("discarded", "k", 1)
	l.Sync()
}
