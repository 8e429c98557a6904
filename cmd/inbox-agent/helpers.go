package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/artifact"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/classification"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/cli"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/config"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/engine"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/enrichment"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/llm"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/ranking"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/task"
)

// buildSettings loads and validates the application settings.
func buildSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// buildNotionClient creates the workspace client with a fresh run-scoped
// cache.
func buildNotionClient(ctx context.Context, settings *config.Settings) (*notion.Client, error) {
	cfg := notion.DefaultConfig()
	cfg.Token = settings.NotionToken
	cfg.ProjectsDataSourceID = settings.ProjectsDataSourceID
	cfg.TasksDataSourceID = settings.TasksDataSourceID
	cfg.InboxPageID = settings.InboxPageID

	client, err := notion.NewClient(ctx, cfg, notion.NewCache())
	if err != nil {
		return nil, fmt.Errorf("failed to create Notion client: %w", err)
	}
	return client, nil
}

// buildCompleter creates the completion client. TEST mode gets the offline
// stub instead of the live endpoint.
func buildCompleter(settings *config.Settings) (llm.Completer, error) {
	cfg := llm.DefaultClientConfig()
	cfg.BaseURL = settings.GeminiBaseURL
	cfg.APIKey = settings.GoogleAPIKey

	completer, err := llm.NewCompleter(cfg, settings.Mode.IsTest())
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return completer, nil
}

// buildEngine assembles the pipeline. TEST and DEBUG runs persist tasks to
// local debug files; everything else writes to the workspace.
func buildEngine(notionClient *notion.Client, completer llm.Completer, settings *config.Settings, artifacts *artifact.Logger) *engine.Engine {
	classifier := classification.NewClassifier(completer, notionClient, settings.ProjectsDataSourceID, classification.DefaultConfig())
	ranker := ranking.NewRanker(completer, ranking.DefaultConfig())
	enricher := enrichment.NewEnricher(completer, enrichment.DefaultConfig())
	manager := task.NewManager(notionClient, settings.TasksDataSourceID, settings.ProjectsDataSourceID, task.DefaultConfig())

	var sink engine.TaskService = manager
	if settings.Mode.IsTest() || settings.Mode.IsDebug() {
		writer := task.NewDebugWriter(settings.DebugTasksDir, string(settings.Mode))
		sink = task.NewDebugSink(manager, writer)
	}

	return engine.New(classifier, ranker, enricher, sink, artifacts)
}

// runPipeline processes notes end to end and prints per-note outcomes.
func runPipeline(ctx context.Context, notes []string) error {
	if len(notes) == 0 {
		return fmt.Errorf("no notes to process")
	}

	settings, err := buildSettings()
	if err != nil {
		return err
	}

	notionClient, err := buildNotionClient(ctx, settings)
	if err != nil {
		return err
	}

	completer, err := buildCompleter(settings)
	if err != nil {
		return err
	}

	artifacts, err := artifact.NewLogger(settings.ArtifactLogPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact log: %w", err)
	}
	defer func() {
		if closeErr := artifacts.Close(); closeErr != nil {
			slog.Warn("Failed to close artifact log", "error", closeErr)
		}
	}()

	eng := buildEngine(notionClient, completer, settings, artifacts)

	interrupt := cli.NewInterruptHandler(os.Stdout)
	ctx = interrupt.HandleInterrupts(ctx, len(notes) > 1)

	if len(notes) > 1 {
		bar := newProgressBar(len(notes))
		eng.OnNoteProcessed(func(_, _ int) {
			_ = bar.Add(1)
		})
	}

	slog.Info("Processing notes", "count", len(notes), "mode", settings.Mode)
	results := eng.ProcessNotes(ctx, notes)

	created := 0
	for i, result := range results {
		if result.Err != nil {
			fmt.Println(cli.FormatError(fmt.Sprintf("Note %d: %v", i+1, result.Err)))
			continue
		}
		created++
		fmt.Println(cli.FormatSuccess("Task created: " + result.Task.Title))
		fmt.Println(cli.StyleSubtle("   " + result.Location))
	}

	if interrupt.WasInterrupted() {
		return nil
	}
	if created == 0 {
		return fmt.Errorf("no tasks created from %d notes", len(notes))
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("Filed %d of %d notes", created, len(notes))))
	return nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Processing notes...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stdout); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// splitNotes turns raw text into notes, one per blank-line separated block.
func splitNotes(content string) []string {
	var notes []string
	for _, chunk := range strings.Split(content, "\n\n") {
		if note := strings.TrimSpace(chunk); note != "" {
			notes = append(notes, note)
		}
	}
	return notes
}
