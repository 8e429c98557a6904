package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"action": "REFINE"}`,
			want:  `{"action": "REFINE"}`,
		},
		{
			name:  "bare array",
			input: `[1, 2, 3]`,
			want:  `[1, 2, 3]`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"a\": 1}  \n",
			want:  `{"a": 1}`,
		},
		{
			name:  "json fenced block",
			input: "Here is the result:\n```json\n{\"a\": 1}\n```\nDone.",
			want:  `{"a": 1}`,
		},
		{
			name:  "plain fenced block",
			input: "```\n[\"x\"]\n```",
			want:  `["x"]`,
		},
		{
			name:  "single line json fence",
			input: "leading text ```json{\"a\": 1}``` trailing text",
			want:  `{"a": 1}`,
		},
		{
			name:  "single line plain fence",
			input: "```{\"a\": 1}```",
			want:  `{"a": 1}`,
		},
		{
			name:  "fence without trailing newline before close",
			input: "```json\n{\"a\": 1}```",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested object in prose",
			input: "The model says:\n```json\n{\"tasks\": [{\"title\": \"x\"}], \"count\": 1}\n```",
			want:  `{"tasks": [{"title": "x"}], "count": 1}`,
		},
		{
			name:    "plain prose",
			input:   "I could not produce JSON for this request.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "fenced content is not JSON",
			input:   "```\nnot json at all\n```",
			wantErr: true,
		},
		{
			name:    "unterminated fence",
			input:   "answer below\n```json\n{\"a\": 1}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSON(%q) expected error, got %q", tt.input, string(got))
				}
				var malformed *MalformedResponseError
				if !errors.As(err, &malformed) {
					t.Errorf("error type = %T, want *MalformedResponseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON(%q) unexpected error: %v", tt.input, err)
			}
			if string(got) != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, string(got), tt.want)
			}
		})
	}
}

func TestExtractJSONIdempotent(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		"```json\n{\"nested\": {\"b\": [1, 2]}}\n```",
		"prefix\n```\n[true, false]\n```\nsuffix",
	}

	for _, input := range inputs {
		first, err := ExtractJSON(input)
		if err != nil {
			t.Fatalf("first extraction of %q failed: %v", input, err)
		}
		second, err := ExtractJSON(string(first))
		if err != nil {
			t.Fatalf("second extraction of %q failed: %v", string(first), err)
		}
		if string(first) != string(second) {
			t.Errorf("extraction not idempotent: %q then %q", string(first), string(second))
		}
	}
}

func TestMalformedResponseErrorPreview(t *testing.T) {
	long := strings.Repeat("x", 500)

	_, err := ExtractJSON(long)
	if err == nil {
		t.Fatal("expected error for non-JSON input")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type = %T, want *MalformedResponseError", err)
	}
	if len(malformed.Preview) != previewLimit {
		t.Errorf("preview length = %d, want %d", len(malformed.Preview), previewLimit)
	}
	if !strings.Contains(err.Error(), "failed to extract JSON from response") {
		t.Errorf("error message = %q, missing extraction failure text", err.Error())
	}
}
