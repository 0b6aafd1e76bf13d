package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) SaveBulk(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	rows := make([][]any, len(posts))
	for i, p := range posts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}

		var ts any
		if !p.Timestamp.IsZero() {
			ts = p.Timestamp.UTC()
		}

		rows[i] = []any{
			p.ID,
			p.UserID,
			p.Username,
			p.Title,
			p.Description,
			p.URL,
			p.MediaURL,
			ts,
		}
	}

	n, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"posts"},
		[]string{"id", "userid", "username", "title", "description", "url", "mediaurl", "timestamp"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert posts: %w", err)
	}

	slog.Info("Bulk insert completed", "inserted", n, "total", len(posts))
	return nil
}
