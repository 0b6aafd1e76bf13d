// Package ingest imports posts into a storage backend.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/ingest/collector"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
)

const defaultBatchSize = 500

type PipelineConfig struct {
	Name      string
	BatchSize int
}

type Option func(*Pipeline)

func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.config.BatchSize = size
		}
	}
}

func WithName(name string) Option {
	return func(p *Pipeline) {
		p.config.Name = name
	}
}

// Stats summarizes a pipeline run.
type Stats struct {
	Imported int
	Failed   int
	Batches  int
}

// Pipeline drains a collector into an indexer in batches. Invalid posts are
// counted and skipped; a failed batch stops the run.
type Pipeline struct {
	collector collector.Collector[domain.Post]
	indexer   storage.Indexer
	config    PipelineConfig
}

func NewPipeline(c collector.Collector[domain.Post], indexer storage.Indexer, opts ...Option) *Pipeline {
	p := &Pipeline{
		collector: c,
		indexer:   indexer,
		config: PipelineConfig{
			Name:      "post-import",
			BatchSize: defaultBatchSize,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	slog.Info("Starting import pipeline", "pipeline", p.config.Name, "batch_size", p.config.BatchSize)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("collect posts: %w", err)
	}

	var stats Stats
	batch := make([]domain.Post, 0, p.config.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.indexer.SaveBulk(ctx, batch); err != nil {
			return fmt.Errorf("save batch %d: %w", stats.Batches+1, err)
		}
		stats.Imported += len(batch)
		stats.Batches++
		slog.Debug("Batch saved", "pipeline", p.config.Name, "count", len(batch), "batch", stats.Batches)
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Import cancelled", "pipeline", p.config.Name, "imported", stats.Imported, "pending_batch", len(batch))
			return stats, ctx.Err()
		case res, ok := <-results:
			if !ok {
				if err := flush(); err != nil {
					return stats, err
				}
				slog.Info("Import pipeline completed",
					"pipeline", p.config.Name,
					"imported", stats.Imported,
					"failed", stats.Failed,
					"batches", stats.Batches,
					"duration", time.Since(start))
				return stats, nil
			}

			if res.Err != nil {
				slog.Error("Skipping invalid post", "error", res.Err, "pipeline", p.config.Name)
				stats.Failed++
				continue
			}

			batch = append(batch, res.Result)
			if len(batch) >= p.config.BatchSize {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}
	}
}
