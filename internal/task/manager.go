// Package task assembles pipeline results into workspace tasks and persists
// them. Production runs create live pages; the debug writer serializes the
// same payload to local files instead so a run can be inspected or replayed.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
)

// initialStatus is the workflow status every new task starts in.
const initialStatus = "Not started"

// Store is the slice of the workspace client the manager needs.
type Store interface {
	QueryFiltered(ctx context.Context, dataSourceID string, filter *notion.Filter) (*notion.QueryResult, error)
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)
}

// Config holds the task assembly settings.
type Config struct {
	ConfidenceThreshold float64
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{ConfidenceThreshold: 0.9}
}

// Manager builds task pages and writes them to the tasks data source.
type Manager struct {
	store                Store
	tasksDataSourceID    string
	projectsDataSourceID string
	cfg                  Config
}

// NewManager builds a manager over the given store.
func NewManager(store Store, tasksDataSourceID, projectsDataSourceID string, cfg Config) *Manager {
	return &Manager{
		store:                store,
		tasksDataSourceID:    tasksDataSourceID,
		projectsDataSourceID: projectsDataSourceID,
		cfg:                  cfg,
	}
}

// DetermineAIUseStatus maps an assessment confidence to a trust marker.
// Confidence at or above the threshold counts as processed.
func (m *Manager) DetermineAIUseStatus(confidence float64) model.AIUseStatus {
	if confidence < m.cfg.ConfidenceThreshold {
		slog.Debug("Marking task as ambiguous",
			"confidence", confidence, "threshold", m.cfg.ConfidenceThreshold)
		return model.AIUseAmbiguous
	}
	return model.AIUseProcessed
}

// BuildProperties maps a task onto the tasks data source schema. The project
// relation is best effort: an unresolvable project is logged and omitted,
// never fatal.
func (m *Manager) BuildProperties(ctx context.Context, task *model.Task) map[string]notion.Property {
	properties := map[string]notion.Property{
		"Name":         notion.TitleProperty(task.Title),
		"Importance":   notion.SelectProperty(strconv.Itoa(task.Importance)),
		"Urgency":      notion.SelectProperty(strconv.Itoa(task.Urgency)),
		"Impact Score": notion.NumberProperty(float64(task.Impact)),
		"UseAIStatus":  notion.SelectProperty(strings.ToLower(string(task.AIUseStatus))),
		"Status":       notion.StatusProperty(initialStatus),
	}

	if len(task.Projects) > 0 {
		name := task.Projects[0]
		result, err := m.store.QueryFiltered(ctx, m.projectsDataSourceID, notion.TitleEquals("Name", name))
		switch {
		case err != nil:
			slog.Warn("Could not find project", "project", name, "error", err)
		case len(result.Results) > 0:
			properties["Project"] = notion.RelationProperty(result.Results[0].ID)
			slog.Debug("Linked task to project", "project", name)
		}
	}

	return properties
}

// BuildBlocks builds the page body: the original note in a toggle, the
// enrichment in a second toggle when present, and a confidence callout when
// the assessment carried one.
func (m *Manager) BuildBlocks(task *model.Task) []notion.Block {
	blocks := notion.ToggleBlocks(task.OriginalNote, "📝 Original Note")

	if task.Enrichment != "" {
		blocks = append(blocks, notion.ToggleBlocks(task.Enrichment, "💡 AI Enrichment")...)
	}

	if task.Confidence != nil {
		text := fmt.Sprintf("**Confidence**: %.2f", *task.Confidence)
		blocks = append(blocks, notion.Callout(text, "🤖"))
	}

	return blocks
}

// Create writes the task to the tasks data source and returns the new page.
func (m *Manager) Create(ctx context.Context, task *model.Task) (*notion.Page, error) {
	slog.Info("Creating task", "title", task.Title)

	properties := m.BuildProperties(ctx, task)
	children := m.BuildBlocks(task)

	page, err := m.store.CreatePage(ctx, notion.CreatePageRequest{
		Parent: notion.Parent{
			Type:         "data_source_id",
			DataSourceID: m.tasksDataSourceID,
		},
		Properties: properties,
		Children:   children,
	})
	if err != nil {
		slog.Error("Failed to create task", "title", task.Title, "error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	slog.Info("Task created successfully", "page_id", page.ID)
	return page, nil
}

// Persist creates the task as a live page and returns its URL, or its id
// when the store returned no URL.
func (m *Manager) Persist(ctx context.Context, task *model.Task) (string, error) {
	page, err := m.Create(ctx, task)
	if err != nil {
		return "", err
	}
	if page.URL != "" {
		return page.URL, nil
	}
	return page.ID, nil
}
