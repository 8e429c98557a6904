package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var stubNoteRe = regexp.MustCompile(`(?m)^Note (\d+):`)

// StubClient is an offline Completer used in TEST mode. It sniffs the prompt
// to decide which pipeline stage is calling and answers with a deterministic
// payload of the right shape, so the whole pipeline can run without network
// access or spend.
type StubClient struct{}

// Complete returns a canned response matching the calling stage's contract.
func (s *StubClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	prompt := lastUserContent(req.Messages)

	switch {
	case strings.Contains(prompt, "<notes_to_classify>"):
		return s.classificationResponse(prompt), nil
	case strings.Contains(prompt, "critical thinking assistant"):
		return `{"assumptions": ["stub assumption"], "potential_impact": "Stubbed impact assessment.", "related_topics": ["testing"], "judgement": "medium"}`, nil
	case strings.Contains(prompt, "analytical thinking engine"):
		return `{"lenses_used": ["A", "C"], "enriched_text": "**[LENS A]**: Stubbed first-principles take. **[LENS C]**: Stubbed 80/20 cut."}`, nil
	default:
		return `{"title": "Debug Task - TEST Mode", "importance": 2, "urgency": 1, "impact": 20, "confidence": 0.5, "reasoning": "Stubbed ranking response."}`, nil
	}
}

// classificationResponse builds one classification entry per note index found
// in the prompt, preserving the embedded ids.
func (s *StubClient) classificationResponse(prompt string) string {
	matches := stubNoteRe.FindAllStringSubmatch(prompt, -1)

	type stubClassification struct {
		NoteID           json.Number `json:"note_id"`
		Projects         []string    `json:"projects"`
		Action           string      `json:"action"`
		Reasoning        string      `json:"reasoning"`
		ConfidenceScores []float64   `json:"confidence_scores"`
	}

	entries := make([]stubClassification, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, stubClassification{
			NoteID:           json.Number(m[1]),
			Projects:         []string{"Test Project"},
			Action:           "REFINE",
			Reasoning:        "Stubbed classification response.",
			ConfidenceScores: []float64{0.8},
		})
	}

	payload, err := json.Marshal(map[string]any{"classifications": entries})
	if err != nil {
		return fmt.Sprintf(`{"classifications": [], "error": %q}`, err)
	}
	return string(payload)
}

func lastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	if len(messages) > 0 {
		return messages[len(messages)-1].Content
	}
	return ""
}
