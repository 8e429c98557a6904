package engine

import (
	"context"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/enrichment"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/ranking"
)

// Classifier defines the contract for batch note classification.
type Classifier interface {
	Classify(ctx context.Context, notes []string) ([]model.MetadataResult, error)
}

// Ranker defines the contract for the two-step priority assessment.
type Ranker interface {
	Rank(ctx context.Context, note string, projectMetadata map[string]model.ProjectMetadata) ranking.Outcome
}

// Enricher defines the contract for the impact-gated lens analysis.
type Enricher interface {
	Enrich(ctx context.Context, note string, impact int) enrichment.Outcome
}

// TaskService derives the trust status of an assessment and persists
// assembled tasks, either to the workspace or to local debug files.
type TaskService interface {
	DetermineAIUseStatus(confidence float64) model.AIUseStatus
	Persist(ctx context.Context, task *model.Task) (string, error)
}
