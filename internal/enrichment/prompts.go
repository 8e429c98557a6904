package enrichment

import (
	"fmt"
	"strings"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
)

// lenses is ordered; the prompt presents them A through D.
var lenses = []struct {
	ID   string
	Text string
}{
	{model.LensFirstPrinciples, "First Principles: Strip this idea down to its fundamental truths. What are the physics, not the opinions?"},
	{model.LensInversion, "Inversion (Pre-Mortem): Assume this project failed. Why did it fail?"},
	{model.LensEightyTwenty, "The 80/20 Rule: What is the single sub-task here that delivers 80% of the value? Delete the rest."},
	{model.LensDevilsAdvocate, "The Devil's Advocate: Give me one brutal reason why this is a waste of time."},
}

const enrichmentPromptTemplate = `You are an analytical thinking engine. Examine this note through 4 orthogonal lenses:

%s

Note: "%s"

Your task:
1. Apply ALL 4 lenses mentally
2. Select ONLY 2 lenses: the most IMPACTFUL and the most COUNTER-INTUITIVE/SURPRISING
3. For each selected lens, provide BLUF (Bottom Line Up Front) analysis
4. Maximum %d words total
5. NO fluffy words, strictly on point, concise

Format:
**[LENS X]**: [BLUF analysis in 2-3 sentences]
**[LENS Y]**: [BLUF analysis in 2-3 sentences]

Return ONLY valid JSON:
{
    "lenses_used": ["A", "C"],
    "enriched_text": "**[LENS A]**: Core truth is... **[LENS C]**: The 20%% task that delivers 80%% value is..."
}`

func buildEnrichmentPrompt(note string, maxWords int) string {
	var desc strings.Builder
	for i, lens := range lenses {
		if i > 0 {
			desc.WriteByte('\n')
		}
		fmt.Fprintf(&desc, "Lens %s: %s", lens.ID, lens.Text)
	}
	return fmt.Sprintf(enrichmentPromptTemplate, desc.String(), note, maxWords)
}
