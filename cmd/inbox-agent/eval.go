package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmsavkov/Notion-Inbox-Agent/internal/classification"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/cli"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/eval"
	"github.com/dmsavkov/Notion-Inbox-Agent/internal/ranking"
)

func evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Replay pipeline stages over captured tasks",
	}
	cmd.AddCommand(evalRankingCmd())
	return cmd
}

func evalRankingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Re-rank captured tasks against their workspace counterparts",
		Long: `Load debug_tasks.json and notion_tasks.json from the evaluation
directory, re-run the two-step ranking for every captured task using the
ground-truth project metadata of its workspace counterpart, and write
ranking_results.json next to the inputs.`,
		RunE: runEvalRanking,
	}

	cmd.Flags().StringP("dir", "d", "logs/eval", "directory holding the captured task files")
	_ = viper.BindPFlag("eval.dir", cmd.Flags().Lookup("dir"))

	return cmd
}

func runEvalRanking(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	evalDir := viper.GetString("eval.dir")

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

	classifier := classification.NewClassifier(completer, notionClient, settings.ProjectsDataSourceID, classification.DefaultConfig())
	ranker := ranking.NewRanker(completer, ranking.DefaultConfig())

	runner := eval.NewRunner(classifier, ranker)
	results, err := runner.Run(ctx, evalDir)
	if err != nil {
		return fmt.Errorf("ranking evaluation failed: %w", err)
	}

	if err := eval.SaveResults(results, evalDir); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Evaluated %d tasks", len(results))))
	fmt.Println(cli.StyleSubtle("   " + filepath.Join(evalDir, eval.RankingResultsFile)))

	return nil
}
