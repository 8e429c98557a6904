package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// CompleteJSON issues one completion call and extracts the JSON value from
// its response. It consults the capability table to decide whether to request
// JSON mode and whether the messages need system-role adaptation, so callers
// only describe what they want asked. Transport failures are logged and
// returned; the response text always goes through ExtractJSON.
func CompleteJSON(ctx context.Context, c Completer, mc ModelConfig, messages []Message) (json.RawMessage, error) {
	caps := CapabilitiesFor(mc.Model)

	msgs := messages
	if !caps.AllowsSystemRole {
		msgs = AdaptMessages(mc.Model, messages)
	}

	slog.Debug("calling LLM",
		"model", mc.Model,
		"json_mode", caps.SupportsJSONMode,
		"messages_adapted", !caps.AllowsSystemRole)

	content, err := c.Complete(ctx, CompletionRequest{
		Model:       mc.Model,
		Messages:    msgs,
		Temperature: mc.Temperature,
		TopP:        mc.TopP,
		JSONMode:    caps.SupportsJSONMode,
	})
	if err != nil {
		slog.Error("LLM call failed", "model", mc.Model, "error", err)
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return ExtractJSON(content)
}
