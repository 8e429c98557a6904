// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// RuntimeMode selects where tasks land and which completion client backs the
// model calls. Anything other than the recognized modes behaves like PROD.
type RuntimeMode string

// Recognized runtime modes.
const (
	ModeProd  RuntimeMode = "PROD"
	ModeTest  RuntimeMode = "TEST"
	ModeDebug RuntimeMode = "DEBUG"
	ModeEval  RuntimeMode = "EVAL"
)

// ParseRuntimeMode normalizes a mode string. Empty input means PROD.
func ParseRuntimeMode(s string) RuntimeMode {
	mode := RuntimeMode(strings.ToUpper(strings.TrimSpace(s)))
	if mode == "" {
		return ModeProd
	}
	return mode
}

// IsTest reports whether the run uses the stubbed model client and writes
// tasks to debug files instead of the workspace.
func (m RuntimeMode) IsTest() bool { return m == ModeTest }

// IsDebug reports whether the run writes tasks to debug files.
func (m RuntimeMode) IsDebug() bool { return m == ModeDebug }

// IsEval reports whether the run replays ranking over captured tasks.
func (m RuntimeMode) IsEval() bool { return m == ModeEval }

// DefaultGeminiBaseURL is the OpenAI-compatible endpoint of the Gemini API.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Settings holds the environment-sourced application configuration.
type Settings struct {
	// Notion API configuration.
	NotionToken          string
	ProjectsDataSourceID string
	TasksDataSourceID    string
	InboxPageID          string

	// Model endpoint configuration.
	GoogleAPIKey  string
	GeminiBaseURL string

	Mode RuntimeMode

	// Local output paths.
	DebugTasksDir   string
	ArtifactLogPath string
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() Settings {
	return Settings{
		GeminiBaseURL:   DefaultGeminiBaseURL,
		Mode:            ModeProd,
		DebugTasksDir:   "logs/debug_tasks",
		ArtifactLogPath: "logs/llm_traces.jsonl",
	}
}

// LoadSettings loads application settings from Viper and environment
// variables. It follows this precedence:
// 1. Viper configuration (from config file or INBOX_ env vars)
// 2. Direct environment variables (NOTION_*, GOOGLE_API_KEY, ...)
// 3. Default values
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	// Load from Viper first
	if v := viper.GetString("notion.token"); v != "" {
		settings.NotionToken = v
	}
	if v := viper.GetString("notion.projects_data_source_id"); v != "" {
		settings.ProjectsDataSourceID = v
	}
	if v := viper.GetString("notion.tasks_data_source_id"); v != "" {
		settings.TasksDataSourceID = v
	}
	if v := viper.GetString("notion.inbox_page_id"); v != "" {
		settings.InboxPageID = v
	}
	if v := viper.GetString("llm.api_key"); v != "" {
		settings.GoogleAPIKey = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		settings.GeminiBaseURL = v
	}
	if v := viper.GetString("runtime.mode"); v != "" {
		settings.Mode = ParseRuntimeMode(v)
	}
	if v := viper.GetString("logs.debug_tasks_dir"); v != "" {
		settings.DebugTasksDir = v
	}
	if v := viper.GetString("logs.artifact_log"); v != "" {
		settings.ArtifactLogPath = v
	}

	// Override with direct environment variables if not set
	if settings.NotionToken == "" {
		settings.NotionToken = os.Getenv("NOTION_TOKEN")
	}
	if settings.ProjectsDataSourceID == "" {
		settings.ProjectsDataSourceID = os.Getenv("NOTION_PROJECTS_DATA_SOURCE_ID")
	}
	if settings.TasksDataSourceID == "" {
		settings.TasksDataSourceID = os.Getenv("NOTION_TASKS_DATA_SOURCE_ID")
	}
	if settings.InboxPageID == "" {
		settings.InboxPageID = os.Getenv("NOTION_INBOX_PAGE_ID")
	}
	if settings.GoogleAPIKey == "" {
		settings.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if settings.GeminiBaseURL == DefaultGeminiBaseURL {
		if v := os.Getenv("GEMINI_API_BASE_URL"); v != "" {
			settings.GeminiBaseURL = v
		}
	}
	if settings.Mode == ModeProd {
		if v := os.Getenv("RUNTIME_MODE"); v != "" {
			settings.Mode = ParseRuntimeMode(v)
		}
	}

	settings.DebugTasksDir = ExpandPath(settings.DebugTasksDir)
	settings.ArtifactLogPath = ExpandPath(settings.ArtifactLogPath)

	// Validate configuration
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Validate checks that the settings the pipeline depends on are present.
// The inbox page id is only needed by inbox reads and is checked there.
func (s *Settings) Validate() error {
	if s.NotionToken == "" {
		return fmt.Errorf("missing Notion token: set NOTION_TOKEN or notion.token")
	}
	if s.ProjectsDataSourceID == "" {
		return fmt.Errorf("missing projects data source id: set NOTION_PROJECTS_DATA_SOURCE_ID")
	}
	if s.TasksDataSourceID == "" {
		return fmt.Errorf("missing tasks data source id: set NOTION_TASKS_DATA_SOURCE_ID")
	}
	if s.GeminiBaseURL == "" {
		return fmt.Errorf("missing model endpoint base URL: set GEMINI_API_BASE_URL")
	}
	// TEST mode runs against the stubbed client and needs no key.
	if s.GoogleAPIKey == "" && !s.Mode.IsTest() {
		return fmt.Errorf("missing Google API key: set GOOGLE_API_KEY")
	}
	return nil
}
