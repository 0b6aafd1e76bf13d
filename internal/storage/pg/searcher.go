package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Searcher struct {
	db *pgxpool.Pool
}

func NewSearcher(pool *ConnectionPool) (*Searcher, error) {
	return &Searcher{db: pool.conn}, nil
}

const postColumns = `id, userid, username, title, description, url, mediaurl, "timestamp"`

// Search implements storage.Searcher.
// Posts are filtered by owner and ranked with ts_rank over title and description.
func (s *Searcher) Search(ctx context.Context, q storage.Query) ([]storage.RawHit, error) {
	rows := q.RowsOrDefault()
	tsQuery := buildWebSearchQuery(q.Keyterms)

	slog.Info("Executing pg post search", "userid", q.UserID, "query", tsQuery, "rows", rows)

	var searchSQL string
	var args []any
	if tsQuery == "" {
		searchSQL = `
			SELECT ` + postColumns + `
			FROM posts
			WHERE userid = $1
			ORDER BY "timestamp" DESC NULLS LAST, id
			LIMIT $2
		`
		args = []any{q.UserID, rows}
	} else {
		searchSQL = `
			SELECT ` + postColumns + `
			FROM posts
			WHERE userid = $1
			  AND search_vector @@ websearch_to_tsquery('english', $2)
			ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', $2)) DESC, id
			LIMIT $3
		`
		args = []any{q.UserID, tsQuery, rows}
	}

	pgRows, err := s.db.Query(ctx, searchSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer pgRows.Close()

	hits := make([]storage.RawHit, 0, rows)
	for pgRows.Next() {
		var (
			id, userID, username, title, description, url, mediaURL string
			ts                                                      *time.Time
		)
		if err := pgRows.Scan(&id, &userID, &username, &title, &description, &url, &mediaURL, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		hit := storage.RawHit{
			domain.FieldID:          id,
			domain.FieldUserID:      userID,
			domain.FieldUsername:    username,
			domain.FieldTitle:       title,
			domain.FieldDescription: description,
			domain.FieldURL:         url,
			domain.FieldMediaURL:    mediaURL,
		}
		if ts != nil {
			hit[domain.FieldTimestamp] = ts.UTC().Format(time.RFC3339)
		}
		hits = append(hits, hit)
	}

	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	slog.Info("PG search results fetched", "returned_count", len(hits))
	return hits, nil
}

// buildWebSearchQuery ORs the keyterms, quoting multi-word terms as phrases.
func buildWebSearchQuery(keyterms []string) string {
	parts := make([]string, 0, len(keyterms))
	for _, term := range keyterms {
		term = strings.TrimSpace(strings.ReplaceAll(term, `"`, ""))
		if term == "" {
			continue
		}
		if strings.ContainsAny(term, " \t") {
			term = `"` + term + `"`
		}
		parts = append(parts, term)
	}
	return strings.Join(parts, " or ")
}
