package notion

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the Notion REST API endpoint.
const DefaultBaseURL = "https://api.notion.com/v1/"

// Config holds the workspace coordinates and credentials for the Notion
// client.
type Config struct {
	Token                string
	ProjectsDataSourceID string
	TasksDataSourceID    string
	InboxPageID          string
	BaseURL              string
	MaxRetries           int
	Timeout              time.Duration
}

// DefaultConfig returns a config with sensible defaults applied.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		MaxRetries: 2,
		Timeout:    30 * time.Second,
	}
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("Notion token is required (set NOTION_TOKEN)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	return nil
}
