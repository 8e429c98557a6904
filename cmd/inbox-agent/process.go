// Package main contains the inbox-agent CLI commands.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [note]...",
		Short: "Triage notes into tasks",
		Long: `Classify, rank and file notes as prioritized tasks in your workspace.

Each argument is one note. Notes can also come from a file or stdin,
separated by blank lines.

Examples:
  inbox-agent process "buy a new charger"
  inbox-agent process "first note" "second note"
  inbox-agent process --file notes.txt
  cat notes.txt | inbox-agent process --stdin`,
		RunE: runProcess,
	}

	// Flags
	cmd.Flags().StringP("file", "f", "", "read notes from a file (blank-line separated)")
	cmd.Flags().Bool("stdin", false, "read notes from stdin (blank-line separated)")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("process.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("process.stdin", cmd.Flags().Lookup("stdin"))

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	notes, err := gatherNotes(args)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return fmt.Errorf("no notes provided: pass notes as arguments, --file or --stdin")
	}

	return runPipeline(ctx, notes)
}

// gatherNotes collects notes from arguments, then an optional file, then
// optionally stdin.
func gatherNotes(args []string) ([]string, error) {
	notes := make([]string, 0, len(args))
	for _, arg := range args {
		notes = append(notes, splitNotes(arg)...)
	}

	if path := viper.GetString("process.file"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read notes file: %w", err)
		}
		notes = append(notes, splitNotes(string(content))...)
	}

	if viper.GetBool("process.stdin") {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		notes = append(notes, splitNotes(string(content))...)
	}

	return notes, nil
}
