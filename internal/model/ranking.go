package model

import (
	"fmt"
	"strings"
)

// TitleMaxLength is the longest task title the workspace schema accepts.
const TitleMaxLength = 80

// BrainstormResult is the intermediate artifact of the ranking stage's
// executor step. It is consumed immediately by the judge step and never
// persisted.
type BrainstormResult struct {
	PotentialImpact string   `json:"potential_impact"`
	Judgement       string   `json:"judgement"`
	Assumptions     []string `json:"assumptions"`
	RelatedTopics   []string `json:"related_topics"`
}

// RankingResult is the judge step's priority assessment. The four numeric
// axes are independent; urgency does not follow from importance.
type RankingResult struct {
	Title      string  `json:"title"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
	Importance int     `json:"importance"`
	Urgency    int     `json:"urgency"`
	Impact     int     `json:"impact"`
}

// Validate ensures every field is inside its documented scale. Out-of-range
// values are rejected rather than clamped; the caller decides what a failed
// assessment means.
func (r *RankingResult) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len([]rune(r.Title)) > TitleMaxLength {
		return fmt.Errorf("title must be at most %d characters, got %d", TitleMaxLength, len([]rune(r.Title)))
	}
	if r.Importance < 1 || r.Importance > 4 {
		return fmt.Errorf("importance must be between 1 and 4, got %d", r.Importance)
	}
	if r.Urgency < 1 || r.Urgency > 4 {
		return fmt.Errorf("urgency must be between 1 and 4, got %d", r.Urgency)
	}
	if r.Impact < 0 || r.Impact > 100 {
		return fmt.Errorf("impact must be between 0 and 100, got %d", r.Impact)
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", r.Confidence)
	}
	return nil
}

// DefaultTitle derives a task title from a note's first non-empty line:
// markdown bold and bracket markers are stripped and the result is truncated
// to TitleMaxLength with a trailing ellipsis.
func DefaultTitle(note string) string {
	firstLine := ""
	for _, line := range strings.Split(note, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}

	title := strings.NewReplacer("**", "", "*", "", "[", "", "]", "").Replace(firstLine)

	if runes := []rune(title); len(runes) > TitleMaxLength {
		title = string(runes[:TitleMaxLength-3]) + "..."
	}

	if title == "" {
		return "Untitled Task"
	}
	return title
}
