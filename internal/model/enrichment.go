package model

// Lens identifiers for the four fixed analytical frames.
const (
	LensFirstPrinciples = "A"
	LensInversion       = "B"
	LensEightyTwenty    = "C"
	LensDevilsAdvocate  = "D"
)

// EnrichmentResult is the outcome of a lens analysis run: BLUF-formatted
// commentary plus the two lens identifiers the model selected. A degraded run
// produces an empty lens list and empty text, which is distinct from the
// stage being skipped below the impact threshold.
type EnrichmentResult struct {
	EnrichedText string   `json:"enriched_text"`
	LensesUsed   []string `json:"lenses_used"`
}
