package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/llm"
)

type scriptedCompleter struct {
	requests []llm.CompletionRequest
	response string
	err      error
}

func (s *scriptedCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	return s.response, s.err
}

const enrichmentResponse = `{
	"lenses_used": ["A", "C"],
	"enriched_text": "**[LENS A]**: The real constraint is review latency. **[LENS C]**: Automating the changelog covers most of the value."
}`

func TestEnrichHappyPath(t *testing.T) {
	completer := &scriptedCompleter{response: enrichmentResponse}
	enricher := NewEnricher(completer, DefaultConfig())

	outcome := enricher.Enrich(context.Background(), "automate the release notes", 40)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.True(t, req.JSONMode)

	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "You are an analytical thinking engine.")
	assert.Contains(t, prompt, "Lens A: First Principles:")
	assert.Contains(t, prompt, "Lens B: Inversion (Pre-Mortem):")
	assert.Contains(t, prompt, "Lens C: The 80/20 Rule:")
	assert.Contains(t, prompt, "Lens D: The Devil's Advocate:")
	assert.Contains(t, prompt, `Note: "automate the release notes"`)
	assert.Contains(t, prompt, "Maximum 300 words total")

	assert.False(t, outcome.Skipped)
	assert.False(t, outcome.Degraded)
	assert.Equal(t, []string{"A", "C"}, outcome.Result.LensesUsed)
	assert.Contains(t, outcome.Result.EnrichedText, "**[LENS A]**")
}

func TestEnrichLensOrderIsStable(t *testing.T) {
	prompt := buildEnrichmentPrompt("note", 300)

	posA := strings.Index(prompt, "Lens A:")
	posB := strings.Index(prompt, "Lens B:")
	posC := strings.Index(prompt, "Lens C:")
	posD := strings.Index(prompt, "Lens D:")
	require.True(t, posA >= 0 && posB >= 0 && posC >= 0 && posD >= 0)
	assert.True(t, posA < posB && posB < posC && posC < posD)
}

func TestEnrichSkipsBelowThreshold(t *testing.T) {
	completer := &scriptedCompleter{response: enrichmentResponse}
	enricher := NewEnricher(completer, DefaultConfig())

	outcome := enricher.Enrich(context.Background(), "minor note", 14)

	assert.True(t, outcome.Skipped)
	assert.False(t, outcome.Degraded)
	assert.NoError(t, outcome.Cause)
	assert.Empty(t, completer.requests, "no model call below the threshold")
}

func TestEnrichRunsAtThresholdBoundary(t *testing.T) {
	completer := &scriptedCompleter{response: enrichmentResponse}
	enricher := NewEnricher(completer, DefaultConfig())

	outcome := enricher.Enrich(context.Background(), "borderline note", 15)

	assert.False(t, outcome.Skipped)
	require.Len(t, completer.requests, 1)
	assert.Equal(t, []string{"A", "C"}, outcome.Result.LensesUsed)
}

func TestEnrichTransportFailureDegrades(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("model unavailable")}
	enricher := NewEnricher(completer, DefaultConfig())

	outcome := enricher.Enrich(context.Background(), "important note", 50)

	assert.False(t, outcome.Skipped)
	require.True(t, outcome.Degraded)
	require.Error(t, outcome.Cause)
	assert.Empty(t, outcome.Result.LensesUsed)
	assert.Empty(t, outcome.Result.EnrichedText)
}

func TestEnrichMalformedResponseDegrades(t *testing.T) {
	completer := &scriptedCompleter{response: "the note seems fine to me"}
	enricher := NewEnricher(completer, DefaultConfig())

	outcome := enricher.Enrich(context.Background(), "important note", 50)

	require.True(t, outcome.Degraded)
	var malformed *llm.MalformedResponseError
	assert.True(t, errors.As(outcome.Cause, &malformed))
}

func TestEnrichCustomWordBudget(t *testing.T) {
	completer := &scriptedCompleter{response: enrichmentResponse}
	cfg := DefaultConfig()
	cfg.MaxWords = 120
	enricher := NewEnricher(completer, cfg)

	enricher.Enrich(context.Background(), "note", 20)

	require.Len(t, completer.requests, 1)
	assert.Contains(t, completer.requests[0].Messages[0].Content, "Maximum 120 words total")
}
