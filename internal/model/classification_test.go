package model

import (
	"testing"
)

func TestNoteClassification_Validate(t *testing.T) {
	tests := []struct {
		name           string
		errMsg         string
		classification NoteClassification
		wantErr        bool
	}{
		{
			name: "valid classification",
			classification: NoteClassification{
				NoteID:           0,
				Projects:         []string{"Inbox Agent", "Writing"},
				Action:           ActionRefine,
				Reasoning:        "insight about workflow",
				ConfidenceScores: []float64{0.9, 0.4},
			},
			wantErr: false,
		},
		{
			name: "valid with no projects",
			classification: NoteClassification{
				Action:           ActionExecute,
				Projects:         []string{},
				ConfidenceScores: []float64{},
			},
			wantErr: false,
		},
		{
			name: "unknown action",
			classification: NoteClassification{
				Action:           Action("LATER"),
				Projects:         []string{"A"},
				ConfidenceScores: []float64{0.5},
			},
			wantErr: true,
			errMsg:  `unknown action "LATER"`,
		},
		{
			name: "mismatched lengths",
			classification: NoteClassification{
				Action:           ActionDoNow,
				Projects:         []string{"A", "B"},
				ConfidenceScores: []float64{0.9},
			},
			wantErr: true,
			errMsg:  "projects and confidence scores must have equal length, got 2 and 1",
		},
		{
			name: "score above one",
			classification: NoteClassification{
				Action:           ActionRefine,
				Projects:         []string{"A"},
				ConfidenceScores: []float64{1.2},
			},
			wantErr: true,
			errMsg:  "confidence score at index 0 must be between 0.0 and 1.0, got 1.20",
		},
		{
			name: "negative score",
			classification: NoteClassification{
				Action:           ActionRefine,
				Projects:         []string{"A", "B"},
				ConfidenceScores: []float64{0.8, -0.1},
			},
			wantErr: true,
			errMsg:  "confidence score at index 1 must be between 0.0 and 1.0, got -0.10",
		},
		{
			name: "edge case - scores 0.0 and 1.0",
			classification: NoteClassification{
				Action:           ActionDoNow,
				Projects:         []string{"A", "B"},
				ConfidenceScores: []float64{1.0, 0.0},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.classification.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestNoteClassification_TopConfidence(t *testing.T) {
	c := NoteClassification{
		Action:           ActionDoNow,
		Projects:         []string{"A", "B"},
		ConfidenceScores: []float64{0.95, 0.4},
	}

	got, ok := c.TopConfidence()
	if !ok {
		t.Fatal("TopConfidence() ok = false, want true")
	}
	if got != 0.95 {
		t.Errorf("TopConfidence() = %v, want 0.95", got)
	}

	empty := NoteClassification{Action: ActionRefine}
	if _, ok := empty.TopConfidence(); ok {
		t.Error("TopConfidence() ok = true for empty scores, want false")
	}
}

func TestAction_Valid(t *testing.T) {
	valid := []Action{ActionDoNow, ActionRefine, ActionExecute}
	for _, a := range valid {
		if !a.Valid() {
			t.Errorf("Valid() = false for %q, want true", a)
		}
	}

	if Action("DO_LATER").Valid() {
		t.Error(`Valid() = true for "DO_LATER", want false`)
	}
	if Action("").Valid() {
		t.Error("Valid() = true for empty action, want false")
	}
}
