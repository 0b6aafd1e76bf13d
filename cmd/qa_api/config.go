package main

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/post-qa/internal/config"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/factory"
	"github.com/DjordjeVuckovic/post-qa/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type QAApiConfig struct {
	StorageConfig factory.StorageConfig
	QA            *config.Config
}

func (as *AppConfig) Load() (*QAApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/qa_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	qaCfg, err := config.LoadEnv()
	if err != nil {
		slog.Error("Failed to load qa configuration", "error", err)
		return nil, err
	}

	return &QAApiConfig{
		StorageConfig: *storageCfg,
		QA:            qaCfg,
	}, nil
}
