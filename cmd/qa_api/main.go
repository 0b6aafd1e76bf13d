// Package main Post QA API
// @title Post QA API
// @version 1.0
// @description Answers questions about a user's own media posts
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/post-qa/docs"
	"github.com/DjordjeVuckovic/post-qa/internal/app"
	"github.com/DjordjeVuckovic/post-qa/internal/router"
	"github.com/DjordjeVuckovic/post-qa/internal/server"
	pkgserver "github.com/DjordjeVuckovic/post-qa/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	if os.Getenv("LOG_LEVEL") == "debug" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	// bound once the backend exists
	health := pkgserver.NewDeferredHealthChecker()
	s := server.New(sCfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Post QA API is running")
	})

	a, err := app.New(s.Context(), cfg.QA, cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to build answering service", "error", err)
		os.Exit(1)
	}
	health.Bind(a.Backend.Health)

	router.NewAnswersRouter(s.Echo, a.Service).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if closeErr := a.Close(); closeErr != nil {
		slog.Error("Failed to release resources", "error", closeErr)
	}
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
