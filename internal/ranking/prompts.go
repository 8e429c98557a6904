package ranking

import (
	"fmt"
	"strings"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/model"
)

const brainstormPromptTemplate = `You are a critical thinking assistant. Analyze this note deeply.

Note: "%s"

Consider:
- What assumptions is the user making?
- What could be the potential impact on progress, productivity, well-being?
- What related important topics should be considered?
- How important is this really?

Think step by step. Validate your reasoning.

Return ONLY valid JSON:
{
    "assumptions": ["assumption1", "assumption2", "assumption3"],
    "potential_impact": "1-3 sentence assessment",
    "related_topics": ["topic1", "topic2"],
    "judgement": "1 sentence overall judgement of importance (low, medium, high)"
}`

const judgePromptTemplate = `You are a priority assessment expert. Evaluate this note's priority.

Note: "%s"

Brainstorm Analysis:
%s

Project Context:
%s

Generate a concise title and evaluate on these scales:
- title: Short, representative task title (max 80 chars)
- importance (1-4): How critical is this to user's goals?
  1=trivial, 2=moderate, 3=important, 4=critical
- urgency (1-4): How time-sensitive is this?
  1=no deadline, 2=this month, 3=this week, 4=today
- impact (0-100): Estimated %% contribution to goals if acted upon. Most notes score 10-30.
- confidence (0.0-1.0): How certain are you of this assessment?

Rules:
- Default to LOW scores unless evidence strongly supports higher
- Urgency is independent of importance
- Most notes are importance=2, urgency=1-2, impact=10-30

Return ONLY valid JSON:
{
    "title": "Review project planning approach",
    "importance": 2,
    "urgency": 2,
    "impact": 15,
    "confidence": 0.75,
    "reasoning": "This note addresses X, which is moderately important..."
}`

func buildBrainstormPrompt(note string) string {
	return fmt.Sprintf(brainstormPromptTemplate, note)
}

func buildJudgePrompt(note string, brainstorm model.BrainstormResult, metaContext string) string {
	brainstormContext := fmt.Sprintf(
		"Assumptions: %s\nPotential Impact: %s\nRelated Topics: %s\nPreliminary Judgment: %s",
		strings.Join(brainstorm.Assumptions, ", "),
		brainstorm.PotentialImpact,
		strings.Join(brainstorm.RelatedTopics, ", "),
		brainstorm.Judgement,
	)
	return fmt.Sprintf(judgePromptTemplate, note, brainstormContext, metaContext)
}
