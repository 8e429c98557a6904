// Package ranking scores a note on importance, urgency and impact through
// two sequential model calls: an executor brainstorms assumptions and
// consequences, then a judge turns that analysis plus project context into
// calibrated scores. Neither step aborts the pipeline; failures degrade to
// documented defaults and the outcome records the substitution.
package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/llm"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
)

// Config holds the ranking stage settings.
type Config struct {
	ExecutorModel llm.ModelConfig
	JudgeModel    llm.ModelConfig
}

// DefaultConfig returns the stage defaults: a fast executor for open-ended
// brainstorming and a stronger judge for the final scores.
func DefaultConfig() Config {
	return Config{
		ExecutorModel: llm.ModelConfig{
			Model:       "gemma-3-27b-it",
			Temperature: 1.0,
			TopP:        1.0,
		},
		JudgeModel: llm.ModelConfig{
			Model:       "gemini-3-flash-preview",
			Temperature: 0.5,
			TopP:        0.9,
		},
	}
}

// BrainstormOutcome carries the executor step's analysis. Degraded marks a
// substituted neutral default, with Cause holding the underlying error.
type BrainstormOutcome struct {
	Result   model.BrainstormResult
	Degraded bool
	Cause    error
}

// JudgeOutcome carries the judge step's final scores. Degraded marks the
// conservative default substituted after a failed assessment.
type JudgeOutcome struct {
	Result   model.RankingResult
	Degraded bool
	Cause    error
}

// Outcome bundles both ranking steps for one note.
type Outcome struct {
	Brainstorm BrainstormOutcome
	Judgement  JudgeOutcome
}

// Ranker runs the two-step ranking conversation.
type Ranker struct {
	completer llm.Completer
	cfg       Config
}

// NewRanker builds a ranker over the given completer.
func NewRanker(completer llm.Completer, cfg Config) *Ranker {
	return &Ranker{completer: completer, cfg: cfg}
}

// Rank assesses one note. Both steps always produce a usable result: a
// failed brainstorm yields a neutral default and a failed judgement yields
// conservative scores with a title derived from the note itself.
func (r *Ranker) Rank(ctx context.Context, note string, projectMetadata map[string]model.ProjectMetadata) Outcome {
	slog.Info("Starting ranking process")

	brainstorm := r.brainstorm(ctx, note)
	slog.Debug("Brainstorm complete",
		"judgement", brainstorm.Result.Judgement,
		"assumptions", len(brainstorm.Result.Assumptions),
		"degraded", brainstorm.Degraded)

	judgement := r.judge(ctx, note, projectMetadata, brainstorm.Result)
	slog.Info("Ranking complete",
		"importance", judgement.Result.Importance,
		"urgency", judgement.Result.Urgency,
		"impact", judgement.Result.Impact,
		"confidence", judgement.Result.Confidence,
		"degraded", judgement.Degraded)

	return Outcome{Brainstorm: brainstorm, Judgement: judgement}
}

func (r *Ranker) brainstorm(ctx context.Context, note string) BrainstormOutcome {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildBrainstormPrompt(note)},
	}

	raw, err := llm.CompleteJSON(ctx, r.completer, r.cfg.ExecutorModel, messages)
	if err != nil {
		return degradedBrainstorm(err)
	}

	var result model.BrainstormResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return degradedBrainstorm(fmt.Errorf("failed to parse brainstorm response: %w", err))
	}
	return BrainstormOutcome{Result: result}
}

func degradedBrainstorm(cause error) BrainstormOutcome {
	slog.Error("Brainstorming failed, using neutral defaults", "error", cause)
	return BrainstormOutcome{
		Result: model.BrainstormResult{
			Assumptions:     []string{},
			PotentialImpact: "Unknown",
			RelatedTopics:   []string{},
			Judgement:       "medium",
		},
		Degraded: true,
		Cause:    cause,
	}
}

func (r *Ranker) judge(ctx context.Context, note string, projectMetadata map[string]model.ProjectMetadata, brainstorm model.BrainstormResult) JudgeOutcome {
	metaContext, err := json.MarshalIndent(projectMetadata, "", "  ")
	if err != nil {
		return degradedJudge(note, fmt.Errorf("failed to encode project metadata: %w", err))
	}

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildJudgePrompt(note, brainstorm, string(metaContext))},
	}

	raw, err := llm.CompleteJSON(ctx, r.completer, r.cfg.JudgeModel, messages)
	if err != nil {
		return degradedJudge(note, err)
	}

	var result model.RankingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return degradedJudge(note, fmt.Errorf("failed to parse judge response: %w", err))
	}
	// Scores are trusted verbatim, never clamped; anything out of range is a
	// failed assessment.
	if err := result.Validate(); err != nil {
		return degradedJudge(note, err)
	}
	return JudgeOutcome{Result: result}
}

func degradedJudge(note string, cause error) JudgeOutcome {
	slog.Error("Ranking failed, using conservative defaults", "error", cause)
	return JudgeOutcome{
		Result: model.RankingResult{
			Title:      model.DefaultTitle(note),
			Importance: 2,
			Urgency:    1,
			Impact:     20,
			Confidence: 0.5,
			Reasoning:  "Error during ranking, using defaults",
		},
		Degraded: true,
		Cause:    cause,
	}
}
