package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/artifact"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
)

// DebugWriter persists tasks to local JSON files instead of the workspace
// store. Each file carries the task fields plus the constructed property map
// and block list, so a debug run shows exactly what a live run would have
// sent.
type DebugWriter struct {
	dir  string
	mode string
}

// NewDebugWriter writes task files into dir, stamping each with the active
// runtime mode.
func NewDebugWriter(dir, mode string) *DebugWriter {
	return &DebugWriter{dir: dir, mode: mode}
}

type debugTask struct {
	ID          string `json:"id"`
	Environment string `json:"environment"`
	CreatedTime string `json:"created_time"`
	model.Task
	Properties map[string]notion.Property `json:"properties"`
	Children   []notion.Block             `json:"children"`
}

// Write serializes one task. The filename is the sanitized title; a second
// task with the same title gets a timestamp suffix instead of overwriting
// the first.
func (w *DebugWriter) Write(ctx context.Context, task *model.Task, properties map[string]notion.Property, children []notion.Block) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug tasks dir: %w", err)
	}

	base := sanitizeFilename(task.Title)
	path := filepath.Join(w.dir, base+".json")
	if _, err := os.Stat(path); err == nil {
		suffix := time.Now().Format("20060102_150405")
		path = filepath.Join(w.dir, base+"_"+suffix+".json")
	}

	payload := debugTask{
		ID:          artifact.WorkflowID(ctx),
		Environment: w.mode,
		CreatedTime: time.Now().UTC().Format(time.RFC3339),
		Task:        *task,
		Properties:  properties,
		Children:    children,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode debug task: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write debug task: %w", err)
	}

	slog.Info("Debug task written", "path", path)
	return path, nil
}

// DebugSink persists tasks through a Manager's builders but writes local
// files instead of live pages. Everything a live run would send, including
// the property map and block list, lands in the file.
type DebugSink struct {
	*Manager
	writer *DebugWriter
}

// NewDebugSink pairs a manager with a debug writer.
func NewDebugSink(manager *Manager, writer *DebugWriter) *DebugSink {
	return &DebugSink{Manager: manager, writer: writer}
}

// Persist writes the task to a local debug file and returns its path.
func (s *DebugSink) Persist(ctx context.Context, task *model.Task) (string, error) {
	properties := s.BuildProperties(ctx, task)
	children := s.BuildBlocks(task)
	return s.writer.Write(ctx, task, properties, children)
}

// sanitizeFilename keeps letters and digits, turns spaces into underscores
// and drops everything else.
func sanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "task"
	}
	return b.String()
}
