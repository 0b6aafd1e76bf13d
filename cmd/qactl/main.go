// Package main is the operator CLI for the post QA service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/post-qa/internal/app"
	"github.com/DjordjeVuckovic/post-qa/internal/config"
	"github.com/DjordjeVuckovic/post-qa/internal/ingest"
	"github.com/DjordjeVuckovic/post-qa/internal/ingest/collector"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/factory"
	"github.com/DjordjeVuckovic/post-qa/pkg/config/env"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qactl",
	Short: "Ask, merge, import and evaluate post QA answers",
	Long: `qactl runs the post QA pipelines from the command line.

Storage is selected with STORAGE_TYPE (es, pg or in_mem) and the usual
ES_* / PG_* variables. Pipeline settings come from the YAML file given
with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
			if err := env.LoadDotEnv(os.Getenv("ENV"), envFile); err != nil {
				slog.Info("Continuing without .env file", "error", err)
			}
		}
		if storageType, _ := cmd.Flags().GetString("storage"); storageType != "" {
			return os.Setenv("STORAGE_TYPE", storageType)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "pipeline config file")
	rootCmd.PersistentFlags().String("env-file", "", "optional .env file to load")
	rootCmd.PersistentFlags().String("storage", "", "storage type, overrides STORAGE_TYPE")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}

// loadApp builds the answering service. When posts is set the file is
// imported first, which makes the in-memory storage usable from the CLI.
func loadApp(ctx context.Context, cmd *cobra.Command, posts string) (*app.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, cfg, *storageCfg)
	if err != nil {
		return nil, err
	}

	if posts != "" {
		if _, err := importPosts(ctx, a.Backend, posts, 0); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return a, nil
}

func importPosts(ctx context.Context, backend *factory.Backend, path string, batchSize int) (ingest.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingest.Stats{}, fmt.Errorf("open posts file: %w", err)
	}
	defer f.Close()

	p := ingest.NewPipeline(collector.NewYAMLPostCollector(f), backend.Indexer,
		ingest.WithName(path),
		ingest.WithBatchSize(batchSize),
	)
	return p.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
