// Package enrichment adds analytical commentary to high-impact notes. The
// model examines a note through four fixed lenses, keeps the two most
// impactful and counter-intuitive, and answers in BLUF form. Low-impact
// notes skip the stage entirely; failures degrade to an empty result so the
// pipeline keeps moving.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/llm"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
)

// Config holds the enrichment stage settings.
type Config struct {
	Model           llm.ModelConfig
	ImpactThreshold int
	MaxWords        int
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{
		Model: llm.ModelConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.7,
			TopP:        0.9,
		},
		ImpactThreshold: 15,
		MaxWords:        300,
	}
}

// Outcome is the result of one enrichment attempt. Skipped means the note
// fell below the impact threshold and no model call was made; Degraded means
// the call failed and the empty result was substituted. The two are distinct
// states and callers that care must check both.
type Outcome struct {
	Result   model.EnrichmentResult
	Skipped  bool
	Degraded bool
	Cause    error
}

// Enricher runs the lens analysis.
type Enricher struct {
	completer llm.Completer
	cfg       Config
}

// NewEnricher builds an enricher over the given completer.
func NewEnricher(completer llm.Completer, cfg Config) *Enricher {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 300
	}
	return &Enricher{completer: completer, cfg: cfg}
}

// Enrich analyzes one note, gated on the ranking stage's impact score.
func (e *Enricher) Enrich(ctx context.Context, note string, impact int) Outcome {
	if impact < e.cfg.ImpactThreshold {
		slog.Info("Skipping enrichment", "impact", impact, "threshold", e.cfg.ImpactThreshold)
		return Outcome{Skipped: true}
	}

	slog.Info("Starting enrichment", "impact", impact)

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildEnrichmentPrompt(note, e.cfg.MaxWords)},
	}

	raw, err := llm.CompleteJSON(ctx, e.completer, e.cfg.Model, messages)
	if err != nil {
		return degradedOutcome(err)
	}

	var result model.EnrichmentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return degradedOutcome(fmt.Errorf("failed to parse enrichment response: %w", err))
	}

	slog.Info("Enrichment complete", "lenses", result.LensesUsed)
	return Outcome{Result: result}
}

func degradedOutcome(cause error) Outcome {
	slog.Error("Enrichment failed, continuing without analysis", "error", cause)
	return Outcome{
		Result: model.EnrichmentResult{
			LensesUsed:   []string{},
			EnrichedText: "",
		},
		Degraded: true,
		Cause:    cause,
	}
}
