package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
)

var searchFields = []string{domain.FieldTitle, domain.FieldDescription}

type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// Search implements storage.Searcher.
// Posts are filtered by owner and scored with BM25 over title and description.
func (s *Searcher) Search(ctx context.Context, q storage.Query) ([]storage.RawHit, error) {
	rows := q.RowsOrDefault()

	slog.Info("Executing es post search",
		"userid", q.UserID,
		"keyterms", q.Keyterms,
		"rows", rows)

	res, err := s.client.Search().
		Index(s.indexName).
		Query(buildQuery(q)).
		Size(rows).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "userid", q.UserID)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	hits, err := mapToRawHits(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search results: %w", err)
	}

	slog.Info("Es search results fetched", "returned_count", len(hits))
	return hits, nil
}

func buildQuery(q storage.Query) *types.Query {
	boolQuery := &types.BoolQuery{
		Filter: []types.Query{
			{Term: map[string]types.TermQuery{
				domain.FieldUserID: {Value: q.UserID},
			}},
		},
	}

	if len(q.Keyterms) > 0 {
		or := operator.Or
		boolQuery.Must = []types.Query{
			{MultiMatch: &types.MultiMatchQuery{
				Query:    strings.Join(q.Keyterms, " "),
				Fields:   searchFields,
				Operator: &or,
			}},
		}
	}

	return &types.Query{Bool: boolQuery}
}

func mapToRawHits(hits []types.Hit) ([]storage.RawHit, error) {
	out := make([]storage.RawHit, 0, len(hits))
	for _, hit := range hits {
		var doc storage.RawHit
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// Healthy implements server.HealthChecker.
func (s *Searcher) Healthy(ctx context.Context) bool {
	ok, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}
