package main

import (
	"context"
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/post-qa/internal/answering"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/eval"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <suite.yaml>",
	Short: "Evaluate answer quality over a question suite",
	Long: `Eval answers every case of the suite concurrently and reports hit@k,
question type accuracy and latency percentiles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, _ := cmd.Flags().GetString("posts")
		workers, _ := cmd.Flags().GetInt("workers")
		topK, _ := cmd.Flags().GetInt("top-k")
		format, _ := cmd.Flags().GetString("format")
		textOnly, _ := cmd.Flags().GetBool("text-only")

		if format != "table" && format != "json" {
			return fmt.Errorf("unknown format %q, expected table or json", format)
		}

		suite, err := eval.LoadSuite(args[0])
		if err != nil {
			return err
		}

		a, err := loadApp(cmd.Context(), cmd, posts)
		if err != nil {
			return err
		}
		defer a.Close()

		var answerer eval.Answerer = a.Service
		if textOnly {
			answerer = textAnswerer{a.Service}
		}

		report, err := eval.NewRunner(answerer, eval.Config{Workers: workers, TopK: topK}).Run(cmd.Context(), suite)
		if err != nil {
			return err
		}

		if format == "json" {
			return eval.WriteJSON(report, os.Stdout)
		}
		return eval.WriteTable(report, os.Stdout)
	},
}

func init() {
	evalCmd.Flags().String("posts", "", "YAML posts file imported before the run")
	evalCmd.Flags().Int("workers", 4, "concurrent questions")
	evalCmd.Flags().Int("top-k", 0, "answers checked per case, overrides the suite")
	evalCmd.Flags().String("format", "table", "report format: table or json")
	evalCmd.Flags().Bool("text-only", false, "skip the multimedia pipeline")

	rootCmd.AddCommand(evalCmd)
}

// textAnswerer evaluates the text pipeline alone.
type textAnswerer struct {
	svc *answering.Service
}

func (t textAnswerer) Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error) {
	return t.svc.TextAnswer(ctx, userID, question)
}
