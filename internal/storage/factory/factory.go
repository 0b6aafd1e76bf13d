package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/es"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/post-qa/pkg/server"
)

// Backend bundles the capabilities of one configured storage.
type Backend struct {
	Searcher storage.Searcher
	Indexer  storage.Indexer
	Health   pkgserver.HealthChecker
	close    func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// NewBackend creates the searcher, indexer and health checker for cfg.Type.
// Elasticsearch indexes are created on first use.
func NewBackend(ctx context.Context, cfg StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		searcher, err := pg.NewSearcher(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		storer, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &Backend{
			Searcher: searcher,
			Indexer:  storer,
			Health:   pg.NewHealthChecker(pool),
			close:    pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}

		searcher, err := es.NewSearcher(*cfg.Es)
		if err != nil {
			return nil, err
		}
		indexer, err := es.NewIndexer(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}

		return &Backend{
			Searcher: searcher,
			Indexer:  indexer,
			Health:   searcher,
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		return &Backend{
			Searcher: store,
			Indexer:  store,
			Health:   store,
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
