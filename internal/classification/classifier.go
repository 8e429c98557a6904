// Package classification maps raw inbox notes onto projects and action
// states. Notes go to the model in batches; each answer is validated and
// joined with project metadata fetched from Notion.
package classification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/llm"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
)

// CountMismatchError reports that the model returned a different number of
// classifications than notes sent. The batch fails rather than padding with
// guesses.
type CountMismatchError struct {
	Want int
	Got  int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d classifications, got %d", e.Want, e.Got)
}

// PageLister lists every page of a Notion data source.
type PageLister interface {
	GetAllPages(ctx context.Context, dataSourceID string) ([]notion.Page, error)
}

// Config holds the classification stage settings.
type Config struct {
	Model        llm.ModelConfig
	BatchSize    int
	TopNProjects int
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{
		Model: llm.ModelConfig{
			Model:       "gemma-3-27b-it",
			Temperature: 1.0,
			TopP:        0.9,
		},
		BatchSize:    5,
		TopNProjects: 3,
	}
}

// Classifier assigns projects and an action state to each note.
type Classifier struct {
	completer    llm.Completer
	pages        PageLister
	dataSourceID string
	cfg          Config
}

// NewClassifier builds a classifier over the given completer and project
// directory.
func NewClassifier(completer llm.Completer, pages PageLister, projectsDataSourceID string, cfg Config) *Classifier {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.TopNProjects <= 0 {
		cfg.TopNProjects = 3
	}
	return &Classifier{
		completer:    completer,
		pages:        pages,
		dataSourceID: projectsDataSourceID,
		cfg:          cfg,
	}
}

// Classify processes all notes and returns one result per note, in input
// order. Classification failures are fatal; metadata fetch failures degrade
// to empty metadata.
func (c *Classifier) Classify(ctx context.Context, notes []string) ([]model.MetadataResult, error) {
	slog.Info("Starting metadata processing", "notes", len(notes))

	projectsInfo, err := c.projectsInformation(ctx)
	if err != nil {
		return nil, err
	}

	classifications, err := c.classifyBatched(ctx, notes, projectsInfo)
	if err != nil {
		return nil, err
	}

	uniqueProjects := make(map[string]bool)
	for _, classification := range classifications {
		for _, name := range classification.Projects {
			uniqueProjects[name] = true
		}
	}

	names := make([]string, 0, len(uniqueProjects))
	for name := range uniqueProjects {
		names = append(names, name)
	}
	projectMetadata := c.FetchProjectMetadata(ctx, names)
	slog.Debug("Fetched project metadata", "projects", len(projectMetadata))

	results := make([]model.MetadataResult, 0, len(classifications))
	for _, classification := range classifications {
		noteMetadata := make(map[string]model.ProjectMetadata)
		for _, name := range classification.Projects {
			if meta, ok := projectMetadata[name]; ok {
				noteMetadata[name] = meta
			}
		}

		isDoNow := classification.Action == model.ActionDoNow
		if isDoNow {
			slog.Info("Note classified as DO_NOW", "note_id", classification.NoteID)
		}

		results = append(results, model.MetadataResult{
			Classification:  classification,
			ProjectMetadata: noteMetadata,
			IsDoNow:         isDoNow,
		})
	}

	return results, nil
}

// classifyBatched splits notes into batches and classifies each with one
// model call.
func (c *Classifier) classifyBatched(ctx context.Context, notes []string, projectsInfo string) ([]model.NoteClassification, error) {
	var all []model.NoteClassification

	for start := 0; start < len(notes); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(notes) {
			end = len(notes)
		}
		batch := notes[start:end]

		slog.Info("Classifying batch", "size", len(batch), "first_index", start, "last_index", end-1)

		classifications, err := c.classifyBatch(ctx, batch, start, projectsInfo)
		if err != nil {
			return nil, fmt.Errorf("batch starting at note %d: %w", start, err)
		}
		all = append(all, classifications...)
	}

	return all, nil
}

type classificationPayload struct {
	NoteID           int       `json:"note_id"`
	Projects         []string  `json:"projects"`
	Action           string    `json:"action"`
	Reasoning        string    `json:"reasoning"`
	ConfidenceScores []float64 `json:"confidence_scores"`
}

func (c *Classifier) classifyBatch(ctx context.Context, batch []string, firstIndex int, projectsInfo string) ([]model.NoteClassification, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: classificationSystemPrompt},
		{Role: llm.RoleUser, Content: buildClassificationPrompt(batch, firstIndex, projectsInfo)},
	}

	raw, err := llm.CompleteJSON(ctx, c.completer, c.cfg.Model, messages)
	if err != nil {
		return nil, err
	}
	slog.Debug("Batch classification response", "bytes", len(raw))

	items, err := parseClassificationPayload(raw)
	if err != nil {
		return nil, err
	}

	if len(items) != len(batch) {
		return nil, &CountMismatchError{Want: len(batch), Got: len(items)}
	}

	results := make([]model.NoteClassification, 0, len(items))
	for _, item := range items {
		topN := c.cfg.TopNProjects
		projects := item.Projects
		if len(projects) > topN {
			projects = projects[:topN]
		}
		scores := item.ConfidenceScores
		if len(scores) > topN {
			scores = scores[:topN]
		}

		classification := model.NoteClassification{
			NoteID:           item.NoteID,
			Projects:         projects,
			Action:           model.Action(item.Action),
			Reasoning:        item.Reasoning,
			ConfidenceScores: scores,
		}
		if err := classification.Validate(); err != nil {
			return nil, fmt.Errorf("invalid classification for note %d: %w", item.NoteID, err)
		}
		results = append(results, classification)
	}

	return results, nil
}

// parseClassificationPayload accepts both the documented envelope and a bare
// array, since models alternate between the two.
func parseClassificationPayload(raw json.RawMessage) ([]classificationPayload, error) {
	var wrapped struct {
		Classifications []classificationPayload `json:"classifications"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Classifications != nil {
		return wrapped.Classifications, nil
	}

	var bare []classificationPayload
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}
	return bare, nil
}

// projectsInformation returns all project titles as a JSON array string for
// prompt embedding.
func (c *Classifier) projectsInformation(ctx context.Context) (string, error) {
	pages, err := c.pages.GetAllPages(ctx, c.dataSourceID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch projects information: %w", err)
	}
	slog.Debug("Retrieved project pages", "count", len(pages))

	titles := make([]string, 0, len(pages))
	for i := range pages {
		titles = append(titles, notion.PageTitle(&pages[i]))
	}

	encoded, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("failed to encode project titles: %w", err)
	}
	return string(encoded), nil
}

// FetchProjectMetadata loads metadata for the named projects. Failures
// degrade to missing entries; classification proceeds without metadata.
// Ranking evaluation also calls this directly to rank against ground-truth
// projects without re-running classification.
func (c *Classifier) FetchProjectMetadata(ctx context.Context, names []string) map[string]model.ProjectMetadata {
	metadata := make(map[string]model.ProjectMetadata)

	pages, err := c.pages.GetAllPages(ctx, c.dataSourceID)
	if err != nil {
		slog.Error("Failed to fetch projects from data source", "error", err)
		return metadata
	}

	byTitle := make(map[string]*notion.Page)
	for i := range pages {
		if title := notion.PageTitle(&pages[i]); title != "" {
			byTitle[title] = &pages[i]
		}
	}

	for _, name := range names {
		page, ok := byTitle[name]
		if !ok {
			slog.Warn("Project not found", "project", name)
			continue
		}

		types, _ := notion.PropertyValue(page.Properties["Type"]).([]string)

		metadata[name] = model.ProjectMetadata{
			Name:     name,
			Priority: stringValue(notion.PropertyValue(page.Properties["Priority"])),
			Status:   stringValue(notion.PropertyValue(page.Properties["Status"])),
			Types:    types,
		}
		slog.Debug("Fetched metadata", "project", name)
	}

	return metadata
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
