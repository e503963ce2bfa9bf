package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/logger"
)

// Ensure Suggester implements the interface.
var _ driven.FieldSuggester = (*Suggester)(nil)

// Suggestion request defaults.
const (
	suggestMaxTokens   = 512
	suggestTemperature = 0.1
	// maxValueLength truncates long input values in the prompt.
	maxValueLength = 120
	// errorBackoff delays the next request after a failed one.
	errorBackoff = 2 * time.Second
)

// Suggester asks an LLM to map unrecognised input fields onto canonical keys.
type Suggester struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	limiter *RateLimiter
}

// NewSuggester creates a suggester. prompts may be nil, in which case the
// built-in field_suggest prompt is used.
func NewSuggester(llm driven.LLMService, prompts driven.PromptStore, limiter *RateLimiter) *Suggester {
	if limiter == nil {
		limiter = NewRateLimiter(DefaultRateLimit)
	}
	return &Suggester{llm: llm, prompts: prompts, limiter: limiter}
}

// suggestResponse is the JSON object the prompt asks for.
type suggestResponse struct {
	Suggestions []struct {
		Field      string  `json:"field"`
		Key        string  `json:"key"`
		Confidence float64 `json:"confidence"`
	} `json:"suggestions"`
}

// Suggest returns at most one suggestion per unmapped field, sorted by field name.
// Suggestions naming unknown fields or keys are dropped.
func (s *Suggester) Suggest(ctx context.Context, unmapped []string, values map[string]string,
	defs []domain.FieldDefinition) ([]domain.FieldSuggestion, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if len(unmapped) == 0 || len(defs) == 0 {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(s.loadPrompt(), canonicalList(defs), unknownList(unmapped, values))
	out, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   suggestMaxTokens,
		Temperature: suggestTemperature,
		JSON:        true,
	})
	if err != nil {
		s.limiter.Backoff(errorBackoff)
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	suggestions, err := parseSuggestions(out, unmapped, defs)
	if err != nil {
		return nil, err
	}
	logger.Debug("LLM (%s) suggested %d of %d unmapped fields", s.llm.ModelName(), len(suggestions), len(unmapped))
	return suggestions, nil
}

func (s *Suggester) loadPrompt() string {
	if s.prompts != nil {
		if prompt, err := s.prompts.Load(driven.PromptFieldSuggest); err == nil {
			return prompt
		}
	}
	return defaultFieldSuggestPrompt
}

// defaultFieldSuggestPrompt is the fallback prompt when no PromptStore is configured.
const defaultFieldSuggestPrompt = `Map these form fields onto canonical document fields.

Canonical fields:
%s

Unrecognised fields:
%s

Answer with JSON: {"suggestions": [{"field": "...", "key": "...", "confidence": 0.0}]}`

func canonicalList(defs []domain.FieldDefinition) string {
	var b strings.Builder
	for _, def := range defs {
		label := def.Label
		if label == "" {
			label = def.Key
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", def.Key, label, def.Kind)
	}
	return strings.TrimRight(b.String(), "\n")
}

func unknownList(unmapped []string, values map[string]string) string {
	names := append([]string(nil), unmapped...)
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := strings.TrimSpace(values[name])
		if r := []rune(value); len(r) > maxValueLength {
			value = string(r[:maxValueLength]) + "..."
		}
		fmt.Fprintf(&b, "- %s = %s\n", name, value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseSuggestions decodes the model output, tolerating code fences and
// prose around the JSON object.
func parseSuggestions(out string, unmapped []string, defs []domain.FieldDefinition) ([]domain.FieldSuggestion, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in model output", domain.ErrLLMUnavailable)
	}

	var resp suggestResponse
	if err := json.Unmarshal([]byte(out[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding suggestions: %w", domain.ErrLLMUnavailable, err)
	}

	fields := make(map[string]bool, len(unmapped))
	for _, name := range unmapped {
		fields[name] = true
	}
	keys := make(map[string]bool, len(defs))
	for _, def := range defs {
		keys[def.Key] = true
	}

	best := make(map[string]domain.FieldSuggestion)
	for _, sug := range resp.Suggestions {
		if !fields[sug.Field] || !keys[sug.Key] {
			continue
		}
		conf := min(max(sug.Confidence, 0), 1)
		if cur, ok := best[sug.Field]; ok && cur.Confidence >= conf {
			continue
		}
		best[sug.Field] = domain.FieldSuggestion{Field: sug.Field, Key: sug.Key, Confidence: conf}
	}

	result := make([]domain.FieldSuggestion, 0, len(best))
	for _, sug := range best {
		result = append(result, sug)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Field < result[j].Field })
	return result, nil
}
