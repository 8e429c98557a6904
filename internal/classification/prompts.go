package classification

import (
	"fmt"
	"strings"
)

const classificationSystemPrompt = `You are an AI Classification Engine.

Task:
1. Semantic analysis: Extract core topic, keywords, entities for EACH note
2. Project mapping: Match each note to top-3 relevant project titles
3. Action classification: Determine cognitive state (DO_NOW/REFINE/EXECUTE)
4. Confidence scoring: Assign calibrated scores [0.0-1.0]

You will classify multiple notes in a single request. Process each independently.
Output strict JSON format.`

const actionDefinitions = `DO_NOW: Atomic execution tasks (2-10 min). Physical verbs, clear deliverable, binary completion.
  Examples: "Create list", "Fix bug", "Update docs"

REFINE: Semi-processed insights requiring synthesis. Lessons, principles, habits to internalize.
  Examples: "Practice ego detachment", "Build habit of code review"

EXECUTE: Fully processed reference material. Curated resources for later consumption.
  Examples: "Article on microservices", "Video series on Kubernetes"`

// buildClassificationPrompt assembles the user prompt for one batch. Notes
// keep their global indices so ids in the answer line up with input order.
func buildClassificationPrompt(batch []string, firstIndex int, projectsInfo string) string {
	var notes strings.Builder
	for i, note := range batch {
		fmt.Fprintf(&notes, "Note %d: %s\n\n", firstIndex+i, note)
	}

	return fmt.Sprintf(`<projects>
%s
</projects>

<action_definitions>
%s
</action_definitions>

<notes_to_classify>
%s</notes_to_classify>

Return ONLY valid JSON. You MUST return exactly %d classifications, one per note, in the same order.
{
    "classifications": [
        {
            "note_id": <index>,
            "projects": ["project1", "project2", "project3"],
            "action": "DO_NOW|REFINE|EXECUTE",
            "reasoning": "brief explanation",
            "confidence_scores": [0.95, 0.85, 0.70]
        }
    ]
}`, projectsInfo, actionDefinitions, notes.String(), len(batch))
}
