package model

import (
	"strings"
	"testing"
)

func TestRankingResult_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		ranking RankingResult
		wantErr bool
	}{
		{
			name: "valid ranking",
			ranking: RankingResult{
				Title:      "Review project planning approach",
				Importance: 2,
				Urgency:    2,
				Impact:     15,
				Confidence: 0.75,
				Reasoning:  "moderately important",
			},
			wantErr: false,
		},
		{
			name: "empty title",
			ranking: RankingResult{
				Importance: 2,
				Urgency:    1,
				Impact:     20,
				Confidence: 0.5,
			},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name: "title too long",
			ranking: RankingResult{
				Title:      strings.Repeat("x", 81),
				Importance: 2,
				Urgency:    1,
				Impact:     20,
				Confidence: 0.5,
			},
			wantErr: true,
			errMsg:  "title must be at most 80 characters, got 81",
		},
		{
			name: "importance zero",
			ranking: RankingResult{
				Title:      "t",
				Importance: 0,
				Urgency:    1,
				Impact:     20,
				Confidence: 0.5,
			},
			wantErr: true,
			errMsg:  "importance must be between 1 and 4, got 0",
		},
		{
			name: "urgency above scale",
			ranking: RankingResult{
				Title:      "t",
				Importance: 2,
				Urgency:    5,
				Impact:     20,
				Confidence: 0.5,
			},
			wantErr: true,
			errMsg:  "urgency must be between 1 and 4, got 5",
		},
		{
			name: "impact above 100 is rejected, not clamped",
			ranking: RankingResult{
				Title:      "t",
				Importance: 2,
				Urgency:    1,
				Impact:     150,
				Confidence: 0.5,
			},
			wantErr: true,
			errMsg:  "impact must be between 0 and 100, got 150",
		},
		{
			name: "confidence above one",
			ranking: RankingResult{
				Title:      "t",
				Importance: 2,
				Urgency:    1,
				Impact:     20,
				Confidence: 1.5,
			},
			wantErr: true,
			errMsg:  "confidence must be between 0.0 and 1.0, got 1.50",
		},
		{
			name: "edge case - all bounds",
			ranking: RankingResult{
				Title:      strings.Repeat("y", 80),
				Importance: 4,
				Urgency:    4,
				Impact:     100,
				Confidence: 1.0,
			},
			wantErr: false,
		},
		{
			name: "edge case - impact zero",
			ranking: RankingResult{
				Title:      "t",
				Importance: 1,
				Urgency:    1,
				Impact:     0,
				Confidence: 0.0,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ranking.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		name string
		note string
		want string
	}{
		{
			name: "plain first line",
			note: "Fix the deployment script\nwith more details below",
			want: "Fix the deployment script",
		},
		{
			name: "markdown markers stripped",
			note: "**[DO_NOW]** Fix bug\nmore text",
			want: "DO_NOW Fix bug",
		},
		{
			name: "leading blank lines skipped",
			note: "\n\nClarify the problem first\nrest",
			want: "Clarify the problem first",
		},
		{
			name: "long line truncated with ellipsis",
			note: strings.Repeat("a", 100),
			want: strings.Repeat("a", 77) + "...",
		},
		{
			name: "empty note",
			note: "",
			want: "Untitled Task",
		},
		{
			name: "only markers",
			note: "**[]**",
			want: "Untitled Task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultTitle(tt.note)
			if got != tt.want {
				t.Errorf("DefaultTitle() = %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(got, "*[]") {
				t.Errorf("DefaultTitle() = %q still contains markdown markers", got)
			}
		})
	}
}
