package llm

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the Gemini OpenAI-compatibility endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// ClientConfig holds the transport-level settings for the completion client.
// It is plain data; NewCompleter turns it into a client.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultClientConfig returns a config with sensible defaults applied.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    DefaultBaseURL,
		MaxRetries: 1,
		Timeout:    60 * time.Second,
	}
}

// Validate checks that the configuration is complete.
func (c *ClientConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required (set GOOGLE_API_KEY)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	return nil
}

// ModelConfig selects a model and its sampling parameters for one pipeline
// stage. It is inert configuration data shared freely between stages.
type ModelConfig struct {
	Model       string
	Temperature float64
	TopP        float64
}

// DefaultModelConfig returns the baseline model settings.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Model:       "gemma-3-27b-it",
		Temperature: 0.5,
		TopP:        0.9,
	}
}
