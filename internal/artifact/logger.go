package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Artifact types logged by the pipeline stages.
const (
	TypeClassification = "metadata_classification"
	TypeBrainstorm     = "ranking_brainstorm"
	TypeJudgement      = "ranking_judgement"
	TypeEnrichment     = "enrichment"
	TypeTask           = "task_assembly"
)

// DefaultLogPath is where traces go unless configured otherwise.
const DefaultLogPath = "logs/llm_traces.jsonl"

// Envelope wraps a logged payload with workflow context.
type Envelope struct {
	WorkflowID   string `json:"workflow_id"`
	ArtifactType string `json:"artifact_type"`
	Payload      any    `json:"payload"`
}

// Logger appends envelopes to a JSONL sink, one JSON document per line. Safe
// for concurrent use.
type Logger struct {
	mu     sync.Mutex
	enc    *json.Encoder
	closer io.Closer
}

// NewLogger opens path for appending, creating parent directories as needed.
func NewLogger(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	return &Logger{enc: json.NewEncoder(f), closer: f}, nil
}

// NewWriterLogger wraps an arbitrary writer, typically for tests.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{enc: json.NewEncoder(w)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewWriterLogger(io.Discard)
}

// Log appends one envelope. The workflow id comes from ctx; entries logged
// outside a workflow are marked "unknown" rather than dropped.
func (l *Logger) Log(ctx context.Context, artifactType string, payload any) error {
	workflowID := WorkflowID(ctx)
	if workflowID == "" {
		workflowID = "unknown"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.enc.Encode(Envelope{
		WorkflowID:   workflowID,
		ArtifactType: artifactType,
		Payload:      payload,
	}); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
