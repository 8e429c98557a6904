package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/cli"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/notion"
)

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List workspace projects",
		Long:  `Display the projects the classifier assigns notes to, with their priority, status and type.`,
		RunE:  runProjects,
	}
}

func runProjects(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := buildSettings()
	if err != nil {
		return err
	}

	notionClient, err := buildNotionClient(ctx, settings)
	if err != nil {
		return err
	}

	pages, err := notionClient.GetAllPages(ctx, settings.ProjectsDataSourceID)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}

	if len(pages) == 0 {
		fmt.Println(cli.InfoStyle.Render("No projects found."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Projects (%d)", len(pages))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Name"),
		cli.TableHeaderStyle.Render("Priority"),
		cli.TableHeaderStyle.Render("Status"),
		cli.TableHeaderStyle.Render("Type"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 24),
		strings.Repeat("-", 8),
		strings.Repeat("-", 12),
		strings.Repeat("-", 12))

	for i := range pages {
		title := notion.PageTitle(&pages[i])
		if title == "" {
			title = pages[i].ID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			title,
			propertyString(pages[i], "Priority"),
			propertyString(pages[i], "Status"),
			propertyString(pages[i], "Type"))
	}

	return nil
}

// propertyString renders a property value for table output.
func propertyString(page notion.Page, name string) string {
	prop, ok := page.Properties[name]
	if !ok {
		return ""
	}
	switch v := notion.PropertyValue(prop).(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
