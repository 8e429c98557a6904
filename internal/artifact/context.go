package artifact

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithWorkflowID returns a context carrying the workflow id for one note's
// trip through the pipeline.
func WithWorkflowID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// WorkflowID returns the workflow id stored in ctx, or "" when none is set.
func WorkflowID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// NewWorkflowID generates a short random id, eight hex characters. Long
// enough to grep a trace file, short enough to read in log lines.
func NewWorkflowID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
