package model

import "fmt"

// AIUseStatus marks how much a task's AI assessment can be trusted.
type AIUseStatus string

// AI use status constants.
const (
	AIUseProcessed AIUseStatus = "PROCESSED"
	AIUseAmbiguous AIUseStatus = "AMBIGUOUS"
)

// Valid reports whether the status is one of the known values.
func (s AIUseStatus) Valid() bool {
	return s == AIUseProcessed || s == AIUseAmbiguous
}

// Task is the final pipeline artifact, created once and written once to the
// workspace store (or a local debug file in non-production modes).
type Task struct {
	Title        string      `json:"title"`
	AIUseStatus  AIUseStatus `json:"ai_use_status"`
	Reasoning    string      `json:"reasoning,omitempty"`
	OriginalNote string      `json:"original_note"`
	Enrichment   string      `json:"enrichment,omitempty"`
	Projects     []string    `json:"projects"`
	Confidence   *float64    `json:"confidence,omitempty"`
	Importance   int         `json:"importance"`
	Urgency      int         `json:"urgency"`
	Impact       int         `json:"impact"`
}

// Validate ensures the task is inside the workspace schema's ranges.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !t.AIUseStatus.Valid() {
		return fmt.Errorf("unknown AI use status %q", t.AIUseStatus)
	}
	if t.Importance < 1 || t.Importance > 4 {
		return fmt.Errorf("importance must be between 1 and 4, got %d", t.Importance)
	}
	if t.Urgency < 1 || t.Urgency > 4 {
		return fmt.Errorf("urgency must be between 1 and 4, got %d", t.Urgency)
	}
	if t.Impact < 0 || t.Impact > 100 {
		return fmt.Errorf("impact must be between 0 and 100, got %d", t.Impact)
	}
	if t.Confidence != nil && (*t.Confidence < 0.0 || *t.Confidence > 1.0) {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", *t.Confidence)
	}
	return nil
}
