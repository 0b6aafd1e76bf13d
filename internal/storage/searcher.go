package storage

import (
	"context"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

// DefaultRows is the number of hits fetched per question.
const DefaultRows = 25

// RawHit is a search hit as returned by the index. Any field may be missing
// and values may be a string or a list of values.
type RawHit map[string]any

// Query selects the posts of one user matching any of the keyterms.
// An empty Keyterms slice matches every post of the user.
type Query struct {
	UserID   string
	Keyterms []string
	Rows     int
}

func (q Query) RowsOrDefault() int {
	if q.Rows <= 0 {
		return DefaultRows
	}
	return q.Rows
}

// Searcher retrieves ranked posts from the index.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]RawHit, error)
}

// Indexer writes posts to the index.
type Indexer interface {
	SaveBulk(ctx context.Context, posts []domain.Post) error
}
