// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Action indicates the cognitive state a note was classified into.
type Action string

// Action category constants.
const (
	ActionDoNow   Action = "DO_NOW"
	ActionRefine  Action = "REFINE"
	ActionExecute Action = "EXECUTE"
)

// Valid reports whether the action is one of the known categories.
func (a Action) Valid() bool {
	switch a {
	case ActionDoNow, ActionRefine, ActionExecute:
		return true
	}
	return false
}

// NoteClassification is one note's classification verdict: ranked project
// references, an action category, and a confidence score per project.
type NoteClassification struct {
	Action           Action    `json:"action"`
	Reasoning        string    `json:"reasoning"`
	Projects         []string  `json:"projects"`
	ConfidenceScores []float64 `json:"confidence_scores"`
	NoteID           int       `json:"note_id"`
}

// Validate ensures the classification has valid data.
func (c *NoteClassification) Validate() error {
	if !c.Action.Valid() {
		return fmt.Errorf("unknown action %q", c.Action)
	}

	if len(c.Projects) != len(c.ConfidenceScores) {
		return fmt.Errorf("projects and confidence scores must have equal length, got %d and %d",
			len(c.Projects), len(c.ConfidenceScores))
	}

	for i, score := range c.ConfidenceScores {
		if score < 0.0 || score > 1.0 {
			return fmt.Errorf("confidence score at index %d must be between 0.0 and 1.0, got %.2f", i, score)
		}
	}

	return nil
}

// TopConfidence returns the confidence score of the highest-ranked project.
func (c *NoteClassification) TopConfidence() (float64, bool) {
	if len(c.ConfidenceScores) == 0 {
		return 0, false
	}
	return c.ConfidenceScores[0], true
}

// MetadataResult bundles a note's classification with metadata for the
// projects that classification references.
type MetadataResult struct {
	ProjectMetadata map[string]ProjectMetadata
	Classification  NoteClassification
	IsDoNow         bool
}
