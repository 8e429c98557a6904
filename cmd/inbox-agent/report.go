package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/cli"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <page-id>",
		Short: "Show a full report for a Notion page",
		Long: `Fetch a page's properties, comments and child blocks and print them
as indented JSON. Useful for inspecting what the agent sees.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pageID := args[0]

	settings, err := buildSettings()
	if err != nil {
		return err
	}

	notionClient, err := buildNotionClient(ctx, settings)
	if err != nil {
		return err
	}

	report, err := notionClient.GetPageReport(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to build page report: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render page report: %w", err)
	}

	fmt.Println(cli.FormatTitle("Page report"))
	fmt.Println(string(data))

	return nil
}
