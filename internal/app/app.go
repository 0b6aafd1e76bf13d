// Package app wires the answering service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/post-qa/internal/answering"
	"github.com/DjordjeVuckovic/post-qa/internal/cache"
	"github.com/DjordjeVuckovic/post-qa/internal/config"
	"github.com/DjordjeVuckovic/post-qa/internal/mmqa"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
	"github.com/DjordjeVuckovic/post-qa/internal/pipeline"
	"github.com/DjordjeVuckovic/post-qa/internal/qa"
	"github.com/DjordjeVuckovic/post-qa/internal/question"
	"github.com/DjordjeVuckovic/post-qa/internal/retrieve"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/factory"
)

type App struct {
	Service *answering.Service
	Backend *factory.Backend

	closers []func() error
}

// Close releases the cache and the storage backend.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// New builds the text pipeline over the configured storage backend and, when
// enabled, the multimedia client and the response cache.
func New(ctx context.Context, cfg *config.Config, storageCfg factory.StorageConfig) (*App, error) {
	backend, err := factory.NewBackend(ctx, storageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	a := &App{Backend: backend}
	a.closers = append(a.closers, func() error {
		backend.Close()
		return nil
	})

	svc, err := a.buildService(cfg, backend)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Service = svc
	return a, nil
}

func (a *App) buildService(cfg *config.Config, backend *factory.Backend) (*answering.Service, error) {
	nlpClient, err := nlp.NewClient(cfg.NLP.BaseURL, nlp.WithTimeout(cfg.NLP.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create nlp client: %w", err)
	}

	answerer, err := qa.New(cfg.QA)
	if err != nil {
		return nil, fmt.Errorf("failed to create qa answerer: %w", err)
	}

	text := NewTextPipeline(cfg, nlpClient, nlpClient, answerer, retrieve.NewRetriever(backend.Searcher,
		retrieve.WithRows(cfg.Answers.Rows),
		retrieve.WithFieldMapping(cfg.FieldMapping),
	))

	var opts []answering.Option
	if cfg.MMQA.Enabled {
		mm, err := mmqa.NewClient(cfg.MMQA.URL, mmqa.WithTimeout(cfg.MMQA.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to create mmqa client: %w", err)
		}
		opts = append(opts, answering.WithMultimedia(mm))
		slog.Info("Multimedia pipeline enabled", "url", cfg.MMQA.URL)
	} else {
		slog.Info("Multimedia pipeline disabled")
	}

	if cfg.Cache.Enabled {
		c, err := cache.Open(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
		a.closers = append(a.closers, c.Close)
		opts = append(opts, answering.WithCache(c))
	}

	return answering.NewService(text, opts...), nil
}

// NewTextPipeline assembles the text pipeline from its capabilities.
func NewTextPipeline(
	cfg *config.Config,
	annotator nlp.Annotator,
	classifier nlp.Classifier,
	answerer qa.Answerer,
	retriever pipeline.DocumentRetriever,
) *pipeline.Text {
	vocab := question.NewVocabulary(cfg.Question.UninformativeVerbs, cfg.Question.CommandVerbs)

	return pipeline.NewText(
		question.NewPreprocessor(cfg.Question.PolitenessPhrases),
		question.NewClassifier(annotator, classifier, vocab),
		question.NewKeytermExtractor(annotator, vocab),
		retriever,
		pipeline.NewExtractor(annotator, answerer),
		pipeline.WithTopN(cfg.Answers.TopN),
	)
}
