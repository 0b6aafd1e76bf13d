package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/post-qa/internal/storage/factory"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <posts.yaml>",
	Short: "Import posts into the configured storage",
	Long: `Import reads a YAML file with a top level "posts" list and writes the
posts in batches: bulk requests for Elasticsearch, COPY for PostgreSQL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		storageCfg, err := factory.LoadEnv()
		if err != nil {
			return err
		}
		backend, err := factory.NewBackend(cmd.Context(), *storageCfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		stats, err := importPosts(cmd.Context(), backend, args[0], batchSize)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts in %d batches, %d skipped\n",
			stats.Imported, stats.Batches, stats.Failed)
		return nil
	},
}

func init() {
	importCmd.Flags().Int("batch-size", 500, "posts per bulk request")
	rootCmd.AddCommand(importCmd)
}
