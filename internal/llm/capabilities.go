package llm

import "strings"

// Capabilities records what a model family tolerates in a request. Providers
// disagree on JSON-mode support and on the system role; keeping the answer in
// a closed table makes adding a family a data change.
type Capabilities struct {
	SupportsJSONMode bool
	AllowsSystemRole bool
}

// familyRule matches a model identifier by case-insensitive substrings. A
// rule applies when every contains entry is present and no excludes entry is.
type familyRule struct {
	contains []string
	excludes []string
	caps     Capabilities
}

// Known model families, first match wins. Gemma models reject both the
// response_format parameter and the system role; Gemini Flash accepts both.
var familyRules = []familyRule{
	{
		contains: []string{"gemma"},
		excludes: []string{"flash"},
		caps:     Capabilities{SupportsJSONMode: false, AllowsSystemRole: false},
	},
	{
		contains: []string{"gemini", "flash"},
		caps:     Capabilities{SupportsJSONMode: true, AllowsSystemRole: true},
	},
}

var defaultCapabilities = Capabilities{SupportsJSONMode: true, AllowsSystemRole: true}

// CapabilitiesFor looks up the capability record for a model identifier.
// Unknown models get the permissive defaults.
func CapabilitiesFor(model string) Capabilities {
	lower := strings.ToLower(model)

	for _, rule := range familyRules {
		if rule.matches(lower) {
			return rule.caps
		}
	}
	return defaultCapabilities
}

func (r familyRule) matches(lowerModel string) bool {
	for _, sub := range r.contains {
		if !strings.Contains(lowerModel, sub) {
			return false
		}
	}
	for _, sub := range r.excludes {
		if strings.Contains(lowerModel, sub) {
			return false
		}
	}
	return true
}

// AdaptMessages rewrites a message list for models that reject the system
// role: system messages are collected in order, removed, and their joined
// content is prepended under an "Instructions:" header to the first user
// message. When no user message exists, one is synthesized at the front.
// Models that allow the system role get the input back unchanged. The input
// slice is never mutated.
func AdaptMessages(model string, messages []Message) []Message {
	if CapabilitiesFor(model).AllowsSystemRole {
		return messages
	}
	if len(messages) == 0 {
		return messages
	}

	var instructions []string
	adapted := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			instructions = append(instructions, msg.Content)
			continue
		}
		adapted = append(adapted, msg)
	}

	if len(instructions) == 0 {
		return adapted
	}

	header := "Instructions:\n" + strings.Join(instructions, "\n")

	for i := range adapted {
		if adapted[i].Role == RoleUser {
			adapted[i].Content = header + "\n\n" + adapted[i].Content
			return adapted
		}
	}

	return append([]Message{{Role: RoleUser, Content: header}}, adapted...)
}
