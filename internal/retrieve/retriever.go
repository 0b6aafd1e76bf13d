package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
)

// FieldMapping maps a DocumentRecord field to the key it has in raw hits.
// Fields not listed are read from a key with the same name.
type FieldMapping map[string]string

func (m FieldMapping) Validate() error {
	for target := range m {
		if !isDocumentField(target) {
			return fmt.Errorf("unknown record field %q in field mapping", target)
		}
	}
	return nil
}

func (m FieldMapping) source(field string) string {
	if src, ok := m[field]; ok && src != "" {
		return src
	}
	return field
}

type Option func(*Retriever)

func WithFieldMapping(mapping FieldMapping) Option {
	return func(r *Retriever) {
		r.mapping = mapping
	}
}

func WithRows(rows int) Option {
	return func(r *Retriever) {
		r.rows = rows
	}
}

// Retriever fetches a user's posts for a set of keyterms and normalizes
// every hit into a DocumentRecord.
type Retriever struct {
	searcher storage.Searcher
	mapping  FieldMapping
	rows     int
}

func NewRetriever(searcher storage.Searcher, opts ...Option) *Retriever {
	r := &Retriever{
		searcher: searcher,
		rows:     storage.DefaultRows,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retriever) Retrieve(ctx context.Context, userID string, keyterms []string) ([]domain.DocumentRecord, error) {
	hits, err := r.searcher.Search(ctx, storage.Query{
		UserID:   userID,
		Keyterms: keyterms,
		Rows:     r.rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	docs := make([]domain.DocumentRecord, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, r.Normalize(hit))
	}

	slog.Debug("Retrieved documents", "userid", userID, "keyterms", keyterms, "count", len(docs))
	return docs, nil
}

// Normalize converts a loosely typed hit into a record. Missing keys become
// empty strings and lists contribute their first element.
func (r *Retriever) Normalize(hit storage.RawHit) domain.DocumentRecord {
	var doc domain.DocumentRecord
	for _, field := range domain.DocumentFields {
		doc.SetField(field, fieldValue(hit[r.mapping.source(field)]))
	}
	return doc
}

func fieldValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		if len(val) == 0 {
			return ""
		}
		return val[0]
	case []any:
		if len(val) == 0 {
			return ""
		}
		return fieldValue(val[0])
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func isDocumentField(name string) bool {
	for _, f := range domain.DocumentFields {
		if f == name {
			return true
		}
	}
	return false
}
