package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// mockLLM records prompts and returns a canned answer.
type mockLLM struct {
	response string
	err      error
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	return m.response, m.err
}

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

// mockPrompts serves a fixed prompt.
type mockPrompts struct {
	prompt string
	err    error
}

func (m *mockPrompts) Load(string) (string, error) { return m.prompt, m.err }
func (m *mockPrompts) Reload()                     {}

var testDefs = []domain.FieldDefinition{
	{Key: "client_email", Kind: domain.FieldKindEmail, Label: "Client email"},
	{Key: "amount", Kind: domain.FieldKindAmount, Label: "Amount"},
}

func fastLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100})
}

func TestSuggester_Suggest(t *testing.T) {
	llm := &mockLLM{response: "```json\n" + `{"suggestions": [
		{"field": "courriel", "key": "client_email", "confidence": 0.93},
		{"field": "prix", "key": "amount", "confidence": 0.7},
		{"field": "prix", "key": "client_email", "confidence": 0.2},
		{"field": "unknown", "key": "amount", "confidence": 0.9},
		{"field": "note", "key": "not_a_key", "confidence": 0.9}
	]}` + "\n```"}
	s := NewSuggester(llm, nil, fastLimiter())

	got, err := s.Suggest(context.Background(),
		[]string{"prix", "courriel", "note"},
		map[string]string{"courriel": "jane@example.com", "prix": "12,50", "note": "x"},
		testDefs)
	require.NoError(t, err)

	assert.Equal(t, []domain.FieldSuggestion{
		{Field: "courriel", Key: "client_email", Confidence: 0.93},
		{Field: "prix", Key: "amount", Confidence: 0.7},
	}, got)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- client_email: Client email (email)")
	assert.Contains(t, llm.prompts[0], "- courriel = jane@example.com")
	assert.True(t, llm.opts[0].JSON)
}

func TestSuggester_ClampsConfidence(t *testing.T) {
	llm := &mockLLM{response: `{"suggestions":[{"field":"a","key":"amount","confidence":3}]}`}
	s := NewSuggester(llm, nil, fastLimiter())

	got, err := s.Suggest(context.Background(), []string{"a"}, nil, testDefs)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Confidence, 1e-9)
}

func TestSuggester_UsesPromptStore(t *testing.T) {
	llm := &mockLLM{response: `{"suggestions":[]}`}
	s := NewSuggester(llm, &mockPrompts{prompt: "KEYS %s FIELDS %s"}, fastLimiter())

	_, err := s.Suggest(context.Background(), []string{"x"}, map[string]string{"x": "1"}, testDefs)
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "KEYS - client_email")
	assert.Contains(t, llm.prompts[0], "FIELDS - x = 1")
}

func TestSuggester_PromptStoreFailureFallsBack(t *testing.T) {
	llm := &mockLLM{response: `{"suggestions":[]}`}
	s := NewSuggester(llm, &mockPrompts{err: errors.New("broken")}, fastLimiter())

	_, err := s.Suggest(context.Background(), []string{"x"}, nil, testDefs)
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "Canonical fields")
}

func TestSuggester_TruncatesLongValues(t *testing.T) {
	llm := &mockLLM{response: `{}`}
	s := NewSuggester(llm, nil, fastLimiter())

	long := make([]rune, 500)
	for i := range long {
		long[i] = 'é'
	}
	_, err := s.Suggest(context.Background(), []string{"x"}, map[string]string{"x": string(long)}, testDefs)
	require.NoError(t, err)
	assert.NotContains(t, llm.prompts[0], string(long))
	assert.Contains(t, llm.prompts[0], "...")
}

func TestSuggester_NothingToDo(t *testing.T) {
	llm := &mockLLM{}
	s := NewSuggester(llm, nil, fastLimiter())

	got, err := s.Suggest(context.Background(), nil, nil, testDefs)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, llm.prompts)
}

func TestSuggester_Errors(t *testing.T) {
	t.Run("no llm", func(t *testing.T) {
		_, err := NewSuggester(nil, nil, nil).Suggest(context.Background(), []string{"x"}, nil, testDefs)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("llm failure", func(t *testing.T) {
		s := NewSuggester(&mockLLM{err: errors.New("connection refused")}, nil, fastLimiter())
		_, err := s.Suggest(context.Background(), []string{"x"}, nil, testDefs)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("no json", func(t *testing.T) {
		s := NewSuggester(&mockLLM{response: "I cannot help"}, nil, fastLimiter())
		_, err := s.Suggest(context.Background(), []string{"x"}, nil, testDefs)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("bad json", func(t *testing.T) {
		s := NewSuggester(&mockLLM{response: `{"suggestions": [}`}, nil, fastLimiter())
		_, err := s.Suggest(context.Background(), []string{"x"}, nil, testDefs)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("cancelled", func(t *testing.T) {
		limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1})
		limiter.Backoff(time.Hour)
		s := NewSuggester(&mockLLM{}, nil, limiter)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Suggest(ctx, []string{"x"}, nil, testDefs)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})
	require.NotNil(t, r)
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_BackoffDelays(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 10})
	r.Backoff(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, r.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
