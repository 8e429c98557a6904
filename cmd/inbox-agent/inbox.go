package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/cli"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
)

func inboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Triage the Notion inbox page",
		Long: `Read every block of the configured inbox page and triage each
non-empty one as a note.

Examples:
  inbox-agent inbox           # Process everything in the inbox
  inbox-agent inbox --list    # Only show what would be processed`,
		RunE: runInbox,
	}

	cmd.Flags().BoolP("list", "l", false, "list inbox notes without processing them")

	_ = viper.BindPFlag("inbox.list", cmd.Flags().Lookup("list"))

	return cmd
}

func runInbox(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := buildSettings()
	if err != nil {
		return err
	}
	if settings.InboxPageID == "" {
		return fmt.Errorf("missing inbox page id: set NOTION_INBOX_PAGE_ID or notion.inbox_page_id")
	}

	notionClient, err := buildNotionClient(ctx, settings)
	if err != nil {
		return err
	}

	blocks, err := notionClient.GetChildBlocks(ctx, settings.InboxPageID)
	if err != nil {
		return fmt.Errorf("failed to read inbox page: %w", err)
	}

	var notes []string
	for _, block := range blocks {
		if text := strings.TrimSpace(notion.PlainText(block)); text != "" {
			notes = append(notes, text)
		}
	}

	if len(notes) == 0 {
		fmt.Println(cli.FormatInfo("Inbox is empty, nothing to do."))
		return nil
	}

	if viper.GetBool("inbox.list") {
		fmt.Println(cli.FormatTitle(fmt.Sprintf("Inbox (%d notes)", len(notes))))
		for i, note := range notes {
			fmt.Printf("%s %s\n", cli.BoldStyle.Render(fmt.Sprintf("%d.", i+1)), firstLine(note))
		}
		return nil
	}

	return runPipeline(ctx, notes)
}

// firstLine trims a note to its first line for compact listings.
func firstLine(note string) string {
	if idx := strings.IndexByte(note, '\n'); idx >= 0 {
		return note[:idx] + " …"
	}
	return note
}
