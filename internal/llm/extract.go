package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// previewLimit bounds how much of an unparseable response the error carries.
const previewLimit = 200

// Fence extraction patterns, tried in order after a direct parse fails. The
// first pair requires the fences on their own lines; the second tolerates
// single-line fenced content.
var (
	fencedJSONRe       = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")
	fencedAnyRe        = regexp.MustCompile("(?s)```\\s*\\n(.*?)\\n```")
	inlineFencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	inlineFencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// MalformedResponseError reports that no extraction strategy produced valid
// JSON. The message carries a truncated preview of the offending text.
type MalformedResponseError struct {
	Preview string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to extract JSON from response (content preview: %s...)", e.Preview)
}

// ExtractJSON digs a JSON value out of raw model output. Strategies, first
// success wins: direct parse, a ```json fenced block, any fenced block, the
// same without newline-delimited fences, and finally splitting on the fence
// delimiter and stripping a leading json token. Parse failures inside a
// strategy are swallowed; only exhaustion returns *MalformedResponseError.
// The returned RawMessage is the exact candidate that parsed, so extraction
// is idempotent on already-valid JSON.
func ExtractJSON(raw string) (json.RawMessage, error) {
	if parsed, ok := tryParseJSON(raw); ok {
		return parsed, nil
	}

	for _, re := range []*regexp.Regexp{fencedJSONRe, fencedAnyRe, inlineFencedJSONRe, inlineFencedAnyRe} {
		match := re.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		if parsed, ok := tryParseJSON(match[1]); ok {
			return parsed, nil
		}
	}

	// Last resort: take the second segment between fence delimiters.
	if parts := strings.Split(raw, "```"); len(parts) >= 3 {
		candidate := parts[1]
		if strings.HasPrefix(candidate, "json") {
			candidate = strings.TrimSpace(strings.TrimPrefix(candidate, "json"))
		}
		if parsed, ok := tryParseJSON(candidate); ok {
			return parsed, nil
		}
	}

	return nil, &MalformedResponseError{Preview: truncate(raw, previewLimit)}
}

// tryParseJSON reports whether the trimmed candidate is valid JSON and
// returns it as a RawMessage when it is.
func tryParseJSON(candidate string) (json.RawMessage, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, false
	}

	var probe any
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
