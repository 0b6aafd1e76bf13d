package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("missing storage type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("invalid storage type", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "solr")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("elasticsearch", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "http://es1:9200, http://es2:9200")
		t.Setenv("ES_INDEX_NAME", "posts")

		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, storage.ES, cfg.Type)
		require.NotNil(t, cfg.Es)
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Es.Addresses)
		assert.Nil(t, cfg.Pg)
	})

	t.Run("elasticsearch without addresses", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "es")
		t.Setenv("ES_ADDRESSES", "")
		t.Setenv("ES_INDEX_NAME", "posts")
		_, err := LoadEnv()
		assert.Error(t, err)
	})

	t.Run("postgres requires connection string", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "pg")
		t.Setenv("PG_CONNECTION_STRING", "")
		_, err := LoadEnv()
		assert.Error(t, err)
	})
}

func TestNewBackend_InMem(t *testing.T) {
	b, err := NewBackend(context.Background(), StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer b.Close()

	assert.NotNil(t, b.Searcher)
	assert.NotNil(t, b.Indexer)
	assert.True(t, b.Health.Healthy(context.Background()))
}

func TestNewBackend_Unsupported(t *testing.T) {
	_, err := NewBackend(context.Background(), StorageConfig{Type: "solr"})
	assert.Error(t, err)
}
