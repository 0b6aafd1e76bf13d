//go:build integration

package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	pgtesting "github.com/DjordjeVuckovic/post-qa/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearcher_Integration(t *testing.T) {
	ctx := context.Background()
	container := pgtesting.NewPGContainer(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	defer pool.Close()

	storer, err := NewStorer(pool)
	require.NoError(t, err)
	require.NoError(t, storer.SaveBulk(ctx, []domain.Post{
		{ID: "1", UserID: "u1", Title: "Tokyo tower", Description: "night walk", Timestamp: time.Date(2015, 4, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "2", UserID: "u1", Title: "Beach", Description: "surfing"},
		{ID: "3", UserID: "u2", Title: "Tokyo", Description: "other user"},
	}))

	searcher, err := NewSearcher(pool)
	require.NoError(t, err)

	t.Run("matches keyterms of the user only", func(t *testing.T) {
		hits, err := searcher.Search(ctx, storage.Query{UserID: "u1", Keyterms: []string{"tokyo"}})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "1", hits[0][domain.FieldID])
		assert.Equal(t, "2015-04-02T00:00:00Z", hits[0][domain.FieldTimestamp])
	})

	t.Run("empty keyterms returns all user posts", func(t *testing.T) {
		hits, err := searcher.Search(ctx, storage.Query{UserID: "u1"})
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	assert.True(t, NewHealthChecker(pool).Healthy(ctx))
}
