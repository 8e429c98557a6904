package eval

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/ranking"
)

type fakeMetadata struct {
	requested [][]string
	metadata  map[string]model.ProjectMetadata
}

func (f *fakeMetadata) FetchProjectMetadata(_ context.Context, names []string) map[string]model.ProjectMetadata {
	f.requested = append(f.requested, names)
	return f.metadata
}

type fakeRanker struct {
	notes   []string
	outcome ranking.Outcome
}

func (f *fakeRanker) Rank(_ context.Context, note string, _ map[string]model.ProjectMetadata) ranking.Outcome {
	f.notes = append(f.notes, note)
	return f.outcome
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestRunMatchesByTitle(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, DebugTasksFile), []StoredTask{
		{ID: "wf1", Title: "Fix the build", OriginalNote: "the build is broken", Projects: []string{"Guessed Project"}},
		{ID: "wf2", Title: "", OriginalNote: "untitled note"},
		{ID: "wf3", Title: "Unmatched", OriginalNote: "no workspace counterpart"},
	})
	writeJSON(t, filepath.Join(dir, NotionTasksFile), []StoredTask{
		{Title: "Fix the build", Projects: []string{"Infra", "CI"}},
	})

	metadata := &fakeMetadata{metadata: map[string]model.ProjectMetadata{
		"Infra": {Name: "Infra"},
	}}
	ranker := &fakeRanker{outcome: ranking.Outcome{
		Judgement: ranking.JudgeOutcome{Result: model.RankingResult{
			Title:      "Fix the build pipeline",
			Importance: 3,
			Urgency:    3,
			Impact:     35,
			Confidence: 0.8,
			Reasoning:  "broken builds block everyone",
		}},
	}}
	runner := NewRunner(metadata, ranker)

	results, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, results, 1)
	record := results[0]
	assert.Equal(t, "wf1", record.ID)
	assert.Equal(t, "Fix the build", record.Title, "keeps the debug title used for matching")
	assert.Equal(t, 3, record.Importance)
	assert.Equal(t, 35, record.Impact)
	assert.Equal(t, "broken builds block everyone", record.Reasoning)

	// Ground-truth projects come from the workspace task, not the debug one.
	require.Len(t, metadata.requested, 1)
	assert.Equal(t, []string{"Infra", "CI"}, metadata.requested[0])

	require.Len(t, ranker.notes, 1)
	assert.Equal(t, "the build is broken", ranker.notes[0])
}

func TestRunMissingDebugFile(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, NotionTasksFile), []StoredTask{})

	runner := NewRunner(&fakeMetadata{}, &fakeRanker{})
	_, err := runner.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debug tasks file not found")
}

func TestRunMissingNotionFile(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, DebugTasksFile), []StoredTask{})

	runner := NewRunner(&fakeMetadata{}, &fakeRanker{})
	_, err := runner.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion tasks file not found")
}

func TestLoadTasksMissingFileReturnsEmpty(t *testing.T) {
	tasks, err := LoadTasks(filepath.Join(t.TempDir(), "nonexistent.json"))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoadTasksRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadTasks(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse tasks file")
}

func TestSaveResultsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := []RankingRecord{
		{ID: "wf1", Title: "A", Importance: 2, Urgency: 1, Impact: 20, Confidence: 0.5, Reasoning: "r"},
	}

	require.NoError(t, SaveResults(records, dir))

	raw, err := os.ReadFile(filepath.Join(dir, RankingResultsFile))
	require.NoError(t, err)

	var loaded []RankingRecord
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.Equal(t, records, loaded)
}
