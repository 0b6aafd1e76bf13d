package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const (
	defaultBulkWorkers = 4
	bulkFlushBytes     = 5e+6
)

// Indexer writes posts with the bulk API.
type Indexer struct {
	client       *elasticsearch.TypedClient
	indexName    string
	indexBuilder *IndexBuilder
	workers      int
	refresh      string
}

type IndexerOption func(*Indexer)

func WithBulkWorkers(n int) IndexerOption {
	return func(i *Indexer) {
		if n > 0 {
			i.workers = n
		}
	}
}

// WithRefresh sets the refresh policy of bulk requests: "true", "false" or "wait_for".
func WithRefresh(refresh string) IndexerOption {
	return func(i *Indexer) {
		i.refresh = refresh
	}
}

// NewIndexer connects to the cluster and creates the posts index when missing.
func NewIndexer(ctx context.Context, config ClientConfig, opts ...IndexerOption) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &Indexer{
		client:       client,
		indexName:    config.IndexName,
		indexBuilder: NewIndexBuilder(),
		workers:      defaultBulkWorkers,
		refresh:      "wait_for",
	}
	for _, opt := range opts {
		opt(indexer)
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

// SaveBulk indexes posts by id, replacing earlier versions. It fails when any
// post could not be indexed.
func (e *Indexer) SaveBulk(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      e.indexName,
		Client:     e.client,
		NumWorkers: e.workers,
		FlushBytes: bulkFlushBytes,
		Refresh:    e.refresh,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	onFailure := func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
		if err != nil {
			slog.Error("Post indexing failed", "error", err, "id", item.DocumentID)
			return
		}
		slog.Error("Post indexing failed", "status", res.Status, "type", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
	}

	var skipped int
	for _, post := range posts {
		doc := e.indexBuilder.mapToESDocument(post)

		body, err := json.Marshal(doc)
		if err != nil {
			slog.Error("Failed to encode post", "error", err, "id", doc.ID)
			skipped++
			continue
		}

		if err := bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure:  onFailure,
		}); err != nil {
			return fmt.Errorf("failed to queue post %s: %w", doc.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Posts indexed",
		"index", e.indexName,
		"indexed", stats.NumIndexed,
		"failed", stats.NumFailed,
		"skipped", skipped,
		"requests", stats.NumRequests)

	if failed := int(stats.NumFailed) + skipped; failed > 0 {
		return fmt.Errorf("failed to index %d out of %d posts", failed, len(posts))
	}
	return nil
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	settings := e.indexBuilder.buildSettings()
	mappings := e.indexBuilder.buildMapping()

	createRes, err := e.client.Indices.Create(e.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}
