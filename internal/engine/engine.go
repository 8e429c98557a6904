// Package engine orchestrates the note triage pipeline: batch
// classification, per-note ranking, conditional enrichment and task
// persistence. One failing note never aborts the run; its error is recorded
// and processing moves on.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/artifact"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
)

// Engine runs notes through the pipeline stages.
type Engine struct {
	classifier Classifier
	ranker     Ranker
	enricher   Enricher
	tasks      TaskService
	artifacts  *artifact.Logger
	onNote     func(done, total int)
}

// New creates an engine with the given stages. A nil artifact logger
// disables trace recording.
func New(classifier Classifier, ranker Ranker, enricher Enricher, tasks TaskService, artifacts *artifact.Logger) *Engine {
	if artifacts == nil {
		artifacts = artifact.Nop()
	}
	return &Engine{
		classifier: classifier,
		ranker:     ranker,
		enricher:   enricher,
		tasks:      tasks,
		artifacts:  artifacts,
	}
}

// OnNoteProcessed registers a callback invoked after each note finishes,
// successful or not.
func (e *Engine) OnNoteProcessed(fn func(done, total int)) {
	e.onNote = fn
}

// NoteResult pairs one input note with its outcome. Task is nil when Err is
// set; Location names the created page or debug file otherwise.
type NoteResult struct {
	Err      error
	Task     *model.Task
	Note     string
	Location string
}

// ProcessNotes runs the full pipeline over a set of notes. Results are
// returned in input order. Classification is a single batched stage, so its
// failure fails every note; everything after it is per note.
func (e *Engine) ProcessNotes(ctx context.Context, notes []string) []NoteResult {
	slog.Info("Starting note processing workflow", "notes", len(notes))

	results := make([]NoteResult, len(notes))
	for i, note := range notes {
		results[i].Note = note
	}

	metadataResults, err := e.classifier.Classify(ctx, notes)
	if err != nil {
		classificationErr := fmt.Errorf("classification failed: %w", err)
		for i := range results {
			results[i].Err = classificationErr
		}
		return results
	}

	for i := range notes {
		select {
		case <-ctx.Done():
			for j := i; j < len(notes); j++ {
				results[j].Err = ctx.Err()
			}
			return results
		default:
		}

		noteCtx := artifact.WithWorkflowID(ctx, artifact.NewWorkflowID())

		task, location, err := e.processNote(noteCtx, notes[i], metadataResults[i])
		if err != nil {
			slog.Error("Failed to process note", "note_index", i, "error", err)
			results[i].Err = err
		} else {
			results[i].Task = task
			results[i].Location = location
		}

		if e.onNote != nil {
			e.onNote(i+1, len(notes))
		}
	}

	return results
}

// ProcessNote runs the pipeline for a single note.
func (e *Engine) ProcessNote(ctx context.Context, note string) (*model.Task, error) {
	results := e.ProcessNotes(ctx, []string{note})
	return results[0].Task, results[0].Err
}

func (e *Engine) processNote(ctx context.Context, note string, meta model.MetadataResult) (*model.Task, string, error) {
	e.record(ctx, artifact.TypeClassification, meta)

	if meta.IsDoNow {
		return e.processDoNow(ctx, note, meta)
	}

	outcome := e.ranker.Rank(ctx, note, meta.ProjectMetadata)
	e.record(ctx, artifact.TypeBrainstorm, outcome.Brainstorm.Result)
	e.record(ctx, artifact.TypeJudgement, outcome.Judgement.Result)
	judgement := outcome.Judgement.Result

	enriched := e.enricher.Enrich(ctx, note, judgement.Impact)
	if !enriched.Skipped {
		e.record(ctx, artifact.TypeEnrichment, enriched.Result)
	}

	confidence := judgement.Confidence
	task := &model.Task{
		Title:        judgement.Title,
		Projects:     meta.Classification.Projects,
		AIUseStatus:  e.tasks.DetermineAIUseStatus(judgement.Confidence),
		Importance:   judgement.Importance,
		Urgency:      judgement.Urgency,
		Impact:       judgement.Impact,
		Confidence:   &confidence,
		Reasoning:    judgement.Reasoning,
		OriginalNote: note,
		Enrichment:   enriched.Result.EnrichedText,
	}

	return e.persist(ctx, task)
}

// processDoNow short-circuits ranking and enrichment: immediate tasks get
// maximal priority and the top classification confidence.
func (e *Engine) processDoNow(ctx context.Context, note string, meta model.MetadataResult) (*model.Task, string, error) {
	slog.Info("DO_NOW detected, bypassing ranking and enrichment")

	scores := meta.Classification.ConfidenceScores
	if len(scores) == 0 {
		return nil, "", fmt.Errorf("do-now classification carries no confidence scores")
	}
	confidence := scores[0]

	task := &model.Task{
		Title:        model.DefaultTitle(note),
		Projects:     meta.Classification.Projects,
		AIUseStatus:  model.AIUseProcessed,
		Importance:   4,
		Urgency:      4,
		Impact:       100,
		Confidence:   &confidence,
		OriginalNote: note,
	}

	return e.persist(ctx, task)
}

func (e *Engine) persist(ctx context.Context, task *model.Task) (*model.Task, string, error) {
	if err := task.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid task: %w", err)
	}

	e.record(ctx, artifact.TypeTask, task)

	location, err := e.tasks.Persist(ctx, task)
	if err != nil {
		return nil, "", err
	}
	slog.Info("Task persisted", "title", task.Title, "location", location)
	return task, location, nil
}

// record writes a trace artifact; trace failures never interrupt the
// pipeline.
func (e *Engine) record(ctx context.Context, artifactType string, payload any) {
	if err := e.artifacts.Log(ctx, artifactType, payload); err != nil {
		slog.Warn("Failed to record artifact", "artifact_type", artifactType, "error", err)
	}
}
