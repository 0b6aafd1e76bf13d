package mmqa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Answer(t *testing.T) {
	var gotUser, gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotUser = r.URL.Query().Get("u")
		gotQuestion = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer_summary": "a cat",
			"answers": [{"rank": 0, "url": "v1", "vid": "42", "evidence": "cat: 0.92", "snippets": "playing"}],
			"highlighted_keyword": ["cat"]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/mmqa")
	require.NoError(t, err)

	res, err := c.Answer(context.Background(), "u1", "show me cats")
	require.NoError(t, err)

	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, "show me cats", gotQuestion)
	assert.Equal(t, "a cat", res.AnswerSummary)
	assert.Equal(t, domain.QuestionType(""), res.QuestionType)
	require.Len(t, res.Answers, 1)
	assert.Equal(t, "playing", res.Answers[0].Snippet)
	assert.Equal(t, "42", res.Answers[0].VID)
	assert.Equal(t, []string{"cat"}, res.HighlightedKeyword)
}

func TestClient_Errors(t *testing.T) {
	t.Run("error payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Error": {"message": "Not a valid userid"}}`))
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = c.Answer(context.Background(), "", "q")
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "Not a valid userid", svcErr.Message)

		var upErr *apperr.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, "mmqa", upErr.Service)
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, WithMaxRetries(0))
		require.NoError(t, err)

		_, err = c.Answer(context.Background(), "u1", "q")
		assert.ErrorContains(t, err, "502")
	})

	t.Run("relative endpoint", func(t *testing.T) {
		_, err := NewClient("/mmqa")
		assert.Error(t, err)
	})
}

func TestClient_TimeoutDoesNotTouchSharedClient(t *testing.T) {
	before := http.DefaultClient.Timeout

	c, err := NewClient("http://localhost:9000", WithHttpClient(http.DefaultClient), WithTimeout(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, before, http.DefaultClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.http)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestClient_DefaultTimeout(t *testing.T) {
	c, err := NewClient("http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, c.http.Timeout)

	c, err = NewClient("http://localhost:9000", WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
}
