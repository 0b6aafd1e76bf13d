package retrieve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	hits  []storage.RawHit
	err   error
	query storage.Query
}

func (f *fakeSearcher) Search(_ context.Context, q storage.Query) ([]storage.RawHit, error) {
	f.query = q
	return f.hits, f.err
}

func TestFieldValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "tokyo", "tokyo"},
		{"string list", []string{"first", "second"}, "first"},
		{"empty string list", []string{}, ""},
		{"any list", []any{"first", 2}, "first"},
		{"empty any list", []any{}, ""},
		{"nested list", []any{[]any{"inner"}}, "inner"},
		{"time", time.Date(2015, 4, 2, 10, 0, 0, 0, time.UTC), "2015-04-02T10:00:00Z"},
		{"number", float64(42), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldValue(tt.in))
		})
	}
}

func TestRetriever_Retrieve(t *testing.T) {
	searcher := &fakeSearcher{hits: []storage.RawHit{
		{"id": "1", "title": []any{"Tokyo tower"}, "description": "night walk", "timestamp": "2015-04-02T00:00:00Z"},
		{"id": "2"},
	}}
	r := NewRetriever(searcher, WithRows(5))

	docs, err := r.Retrieve(context.Background(), "u1", []string{"tokyo"})
	require.NoError(t, err)

	assert.Equal(t, storage.Query{UserID: "u1", Keyterms: []string{"tokyo"}, Rows: 5}, searcher.query)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.DocumentRecord{
		ID:          "1",
		Title:       "Tokyo tower",
		Description: "night walk",
		Timestamp:   "2015-04-02T00:00:00Z",
	}, docs[0])
	assert.Equal(t, domain.DocumentRecord{ID: "2"}, docs[1])
}

func TestRetriever_FieldMapping(t *testing.T) {
	searcher := &fakeSearcher{hits: []storage.RawHit{
		{"post_id": "7", "caption": "beach day", "description": "ignored"},
	}}
	mapping := FieldMapping{domain.FieldID: "post_id", domain.FieldDescription: "caption"}
	require.NoError(t, mapping.Validate())

	docs, err := NewRetriever(searcher, WithFieldMapping(mapping)).Retrieve(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "7", docs[0].ID)
	assert.Equal(t, "beach day", docs[0].Description)
	assert.Equal(t, storage.DefaultRows, searcher.query.Rows)
}

func TestFieldMapping_Validate(t *testing.T) {
	assert.Error(t, FieldMapping{"caption": "description"}.Validate())
	assert.NoError(t, FieldMapping(nil).Validate())
}

func TestRetriever_SearchError(t *testing.T) {
	boom := errors.New("index down")
	_, err := NewRetriever(&fakeSearcher{err: boom}).Retrieve(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, boom)
}
