// Package eval replays the ranking stage over previously captured tasks.
// Debug-run tasks supply the notes and titles; exported workspace tasks
// supply the ground-truth projects, so ranking quality can be measured in
// isolation from classification.
package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/ranking"
)

// Input and output filenames inside the evaluation directory.
const (
	DebugTasksFile     = "debug_tasks.json"
	NotionTasksFile    = "notion_tasks.json"
	RankingResultsFile = "ranking_results.json"
)

// StoredTask is one entry of a captured task file. Only the fields the
// evaluation consumes are decoded.
type StoredTask struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	OriginalNote string   `json:"original_note"`
	Projects     []string `json:"projects"`
}

// RankingRecord is one evaluation result: the ranking outputs plus the debug
// task's id and title so runs can be joined back to their source.
type RankingRecord struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Importance int     `json:"importance"`
	Urgency    int     `json:"urgency"`
	Impact     int     `json:"impact"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// MetadataFetcher resolves project names to their metadata.
type MetadataFetcher interface {
	FetchProjectMetadata(ctx context.Context, names []string) map[string]model.ProjectMetadata
}

// NoteRanker runs the two-step ranking for one note.
type NoteRanker interface {
	Rank(ctx context.Context, note string, projectMetadata map[string]model.ProjectMetadata) ranking.Outcome
}

// Runner wires the evaluation together.
type Runner struct {
	metadata MetadataFetcher
	ranker   NoteRanker
}

// NewRunner builds an evaluation runner.
func NewRunner(metadata MetadataFetcher, ranker NoteRanker) *Runner {
	return &Runner{metadata: metadata, ranker: ranker}
}

// LoadTasks reads a captured task list from a JSON array file. A missing
// file is an empty capture, not an error.
func LoadTasks(path string) ([]StoredTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []StoredTask{}, nil
		}
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}
	var tasks []StoredTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse tasks file %s: %w", path, err)
	}
	return tasks, nil
}

// Run ranks every debug task that has a matching workspace task, using the
// workspace task's projects as ground truth. Both input files must exist;
// tasks without a title, a note or a match are skipped with a warning.
func (r *Runner) Run(ctx context.Context, evalDir string) ([]RankingRecord, error) {
	slog.Info("Loading evaluation data", "dir", evalDir)

	debugPath := filepath.Join(evalDir, DebugTasksFile)
	notionPath := filepath.Join(evalDir, NotionTasksFile)
	if _, err := os.Stat(debugPath); err != nil {
		return nil, fmt.Errorf("debug tasks file not found: %s", debugPath)
	}
	if _, err := os.Stat(notionPath); err != nil {
		return nil, fmt.Errorf("notion tasks file not found: %s", notionPath)
	}

	debugTasks, err := LoadTasks(debugPath)
	if err != nil {
		return nil, err
	}
	notionTasks, err := LoadTasks(notionPath)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]StoredTask)
	for _, task := range notionTasks {
		if task.Title != "" {
			byTitle[task.Title] = task
		}
	}

	var results []RankingRecord
	matched := 0

	for _, debugTask := range debugTasks {
		if debugTask.Title == "" || debugTask.OriginalNote == "" {
			slog.Warn("Skipping task with missing title or note")
			continue
		}

		notionTask, ok := byTitle[debugTask.Title]
		if !ok {
			slog.Warn("No matching workspace task", "title", debugTask.Title)
			continue
		}
		if len(notionTask.Projects) == 0 {
			slog.Debug("No projects found", "title", debugTask.Title)
		}

		matched++
		projectMetadata := r.metadata.FetchProjectMetadata(ctx, notionTask.Projects)

		slog.Info("Ranking", "n", matched, "title", debugTask.Title)
		outcome := r.ranker.Rank(ctx, debugTask.OriginalNote, projectMetadata)

		result := outcome.Judgement.Result
		results = append(results, RankingRecord{
			ID:         debugTask.ID,
			Title:      debugTask.Title,
			Importance: result.Importance,
			Urgency:    result.Urgency,
			Impact:     result.Impact,
			Confidence: result.Confidence,
			Reasoning:  result.Reasoning,
		})
	}

	slog.Info("Completed ranking", "matched", matched, "total", len(debugTasks))
	return results, nil
}

// SaveResults writes the evaluation output next to its inputs.
func SaveResults(results []RankingRecord, evalDir string) error {
	path := filepath.Join(evalDir, RankingResultsFile)
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ranking results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ranking results: %w", err)
	}
	slog.Info("Saved ranking results", "count", len(results), "path", path)
	return nil
}
