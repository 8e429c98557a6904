package llm

import (
	"context"
)

// Message roles understood by the chat-completion endpoint.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat-completion call. JSONMode maps to the
// endpoint's response_format parameter and must only be set for models that
// support it; CompleteJSON handles that decision for callers.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	TopP        float64
	JSONMode    bool
}

// Completer is the minimal completion surface the pipeline stages depend on.
// The production implementation speaks HTTP; tests and TEST mode substitute
// stubs.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
