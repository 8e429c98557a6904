package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsEnvVars = []string{
	"NOTION_TOKEN",
	"NOTION_PROJECTS_DATA_SOURCE_ID",
	"NOTION_TASKS_DATA_SOURCE_ID",
	"NOTION_INBOX_PAGE_ID",
	"GOOGLE_API_KEY",
	"GEMINI_API_BASE_URL",
	"RUNTIME_MODE",
}

// clearSettingsEnv empties every settings env var and restores the original
// values (and global viper state) when the test finishes.
func clearSettingsEnv(t *testing.T) {
	t.Helper()

	original := make(map[string]string, len(settingsEnvVars))
	for _, key := range settingsEnvVars {
		original[key] = os.Getenv(key)
		_ = os.Unsetenv(key)
	}

	t.Cleanup(func() {
		viper.Reset()
		for key, value := range original {
			if value == "" {
				_ = os.Unsetenv(key)
			} else {
				_ = os.Setenv(key, value)
			}
		}
	})
}

func TestParseRuntimeMode(t *testing.T) {
	tests := []struct {
		input string
		want  RuntimeMode
	}{
		{"", ModeProd},
		{"PROD", ModeProd},
		{"test", ModeTest},
		{" Test ", ModeTest},
		{"DEBUG", ModeDebug},
		{"eval", ModeEval},
		{"staging", RuntimeMode("STAGING")},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRuntimeMode(tt.input))
		})
	}
}

func TestRuntimeModeHelpers(t *testing.T) {
	assert.True(t, ModeTest.IsTest())
	assert.True(t, ModeDebug.IsDebug())
	assert.True(t, ModeEval.IsEval())

	// Unrecognized modes behave like PROD.
	unknown := ParseRuntimeMode("staging")
	assert.False(t, unknown.IsTest())
	assert.False(t, unknown.IsDebug())
	assert.False(t, unknown.IsEval())
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		envVars map[string]string
		check   func(t *testing.T, s *Settings)
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "all environment variables",
			envVars: map[string]string{
				"NOTION_TOKEN":                   "secret-token",
				"NOTION_PROJECTS_DATA_SOURCE_ID": "ds-projects",
				"NOTION_TASKS_DATA_SOURCE_ID":    "ds-tasks",
				"NOTION_INBOX_PAGE_ID":           "page-inbox",
				"GOOGLE_API_KEY":                 "api-key",
				"GEMINI_API_BASE_URL":            "http://localhost:8080/v1/",
				"RUNTIME_MODE":                   "debug",
			},
			check: func(t *testing.T, s *Settings) {
				t.Helper()
				assert.Equal(t, "secret-token", s.NotionToken)
				assert.Equal(t, "ds-projects", s.ProjectsDataSourceID)
				assert.Equal(t, "ds-tasks", s.TasksDataSourceID)
				assert.Equal(t, "page-inbox", s.InboxPageID)
				assert.Equal(t, "api-key", s.GoogleAPIKey)
				assert.Equal(t, "http://localhost:8080/v1/", s.GeminiBaseURL)
				assert.Equal(t, ModeDebug, s.Mode)
			},
		},
		{
			name: "defaults applied",
			envVars: map[string]string{
				"NOTION_TOKEN":                   "secret-token",
				"NOTION_PROJECTS_DATA_SOURCE_ID": "ds-projects",
				"NOTION_TASKS_DATA_SOURCE_ID":    "ds-tasks",
				"GOOGLE_API_KEY":                 "api-key",
			},
			check: func(t *testing.T, s *Settings) {
				t.Helper()
				assert.Equal(t, DefaultGeminiBaseURL, s.GeminiBaseURL)
				assert.Equal(t, ModeProd, s.Mode)
				assert.Equal(t, "logs/debug_tasks", s.DebugTasksDir)
				assert.Equal(t, "logs/llm_traces.jsonl", s.ArtifactLogPath)
			},
		},
		{
			name: "missing notion token",
			envVars: map[string]string{
				"NOTION_PROJECTS_DATA_SOURCE_ID": "ds-projects",
				"NOTION_TASKS_DATA_SOURCE_ID":    "ds-tasks",
				"GOOGLE_API_KEY":                 "api-key",
			},
			wantErr: true,
			errMsg:  "missing Notion token",
		},
		{
			name: "missing api key in prod",
			envVars: map[string]string{
				"NOTION_TOKEN":                   "secret-token",
				"NOTION_PROJECTS_DATA_SOURCE_ID": "ds-projects",
				"NOTION_TASKS_DATA_SOURCE_ID":    "ds-tasks",
			},
			wantErr: true,
			errMsg:  "missing Google API key",
		},
		{
			name: "test mode needs no api key",
			envVars: map[string]string{
				"NOTION_TOKEN":                   "secret-token",
				"NOTION_PROJECTS_DATA_SOURCE_ID": "ds-projects",
				"NOTION_TASKS_DATA_SOURCE_ID":    "ds-tasks",
				"RUNTIME_MODE":                   "TEST",
			},
			check: func(t *testing.T, s *Settings) {
				t.Helper()
				assert.Equal(t, ModeTest, s.Mode)
				assert.Empty(t, s.GoogleAPIKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSettingsEnv(t)
			viper.Reset()
			for key, value := range tt.envVars {
				_ = os.Setenv(key, value)
			}

			settings, err := LoadSettings()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, settings)
			}
		})
	}
}

func TestLoadSettingsViperTakesPrecedence(t *testing.T) {
	clearSettingsEnv(t)
	_ = os.Setenv("NOTION_TOKEN", "env-token")
	_ = os.Setenv("NOTION_PROJECTS_DATA_SOURCE_ID", "ds-projects")
	_ = os.Setenv("NOTION_TASKS_DATA_SOURCE_ID", "ds-tasks")
	_ = os.Setenv("GOOGLE_API_KEY", "api-key")

	viper.Reset()
	viper.Set("notion.token", "viper-token")
	viper.Set("runtime.mode", "eval")
	viper.Set("logs.debug_tasks_dir", "out/debug")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "viper-token", settings.NotionToken)
	assert.Equal(t, ModeEval, settings.Mode)
	assert.Equal(t, "out/debug", settings.DebugTasksDir)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	_ = os.Setenv("INBOX_TEST_DIR", "/srv/inbox")
	defer func() { _ = os.Unsetenv("INBOX_TEST_DIR") }()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"plain", "logs/debug_tasks", "logs/debug_tasks"},
		{"tilde only", "~", home},
		{"tilde prefix", "~/logs", filepath.Join(home, "logs")},
		{"env var", "$INBOX_TEST_DIR/logs", "/srv/inbox/logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
