package qa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type stubModel struct {
	answer string
	err    error
	calls  int
}

func (m *stubModel) Predict(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return m.answer, m.err
}

func TestLocal_Answer(t *testing.T) {
	t.Run("returns trimmed model answer", func(t *testing.T) {
		model := &stubModel{answer: "  in Kyoto "}
		got, err := NewLocal(model).Answer(context.Background(), "where?", "we were in Kyoto")
		require.NoError(t, err)
		assert.Equal(t, "in Kyoto", got)
	})

	t.Run("rejects long paragraphs without calling the model", func(t *testing.T) {
		model := &stubModel{answer: "x"}
		paragraph := strings.Repeat("word ", MaxParagraphWords+1)

		_, err := NewLocal(model).Answer(context.Background(), "where?", paragraph)
		require.ErrorIs(t, err, ErrParagraphTooLong)
		assert.True(t, IsLimitError(err))
		assert.Zero(t, model.calls)
	})

	t.Run("rejects long questions", func(t *testing.T) {
		model := &stubModel{answer: "x"}
		question := strings.Repeat("why ", MaxQuestionWords+1)

		_, err := NewLocal(model).Answer(context.Background(), question, "short paragraph")
		require.ErrorIs(t, err, ErrQuestionTooLong)
		assert.Zero(t, model.calls)
	})

	t.Run("wraps model failures", func(t *testing.T) {
		model := &stubModel{err: errors.New("oom")}
		_, err := NewLocal(model).Answer(context.Background(), "q", "p")
		require.Error(t, err)
		assert.False(t, IsLimitError(err))
	})
}

func TestRemote_Answer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		q := r.URL.Query()
		switch q.Get("paragraph") {
		case "too long":
			_ = json.NewEncoder(w).Encode(remoteResponse{Result: ErrParagraphTooLong.Error()})
		case "boom":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "nothing":
			_ = json.NewEncoder(w).Encode(remoteResponse{Result: ""})
		default:
			_ = json.NewEncoder(w).Encode(remoteResponse{Result: "answer to " + q.Get("question")})
		}
	}))
	defer srv.Close()

	remote, err := NewRemote(srv.URL+"/submit", WithMaxRetries(0))
	require.NoError(t, err)

	got, err := remote.Answer(context.Background(), "who", "a paragraph")
	require.NoError(t, err)
	assert.Equal(t, "answer to who", got)

	got, err = remote.Answer(context.Background(), "who", "nothing")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = remote.Answer(context.Background(), "who", "too long")
	assert.ErrorIs(t, err, ErrParagraphTooLong)

	_, err = remote.Answer(context.Background(), "who", "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qa: status 500")
}

type fakeLLM struct {
	reply string
}

func (f *fakeLLM) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeLLM) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return f.reply, nil
}

func TestLLMModel_Predict(t *testing.T) {
	paragraph := "Sunset over the harbour in Lisbon with friends"

	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "extractive span", reply: "Lisbon", want: "Lisbon"},
		{name: "quoted span", reply: `"the harbour"`, want: "the harbour"},
		{name: "no answer marker", reply: "NONE", want: ""},
		{name: "invented span is dropped", reply: "Porto", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewLLMModelWithClient(&fakeLLM{reply: tt.reply})
			got, err := model.Predict(context.Background(), "where?", paragraph)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New(Config{Mode: ModeRemote})
	assert.Error(t, err)

	a, err := New(Config{Mode: ModeRemote, URL: "http://localhost:1995/submit"})
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, a)

	_, err = New(Config{Mode: "grpc"})
	assert.Error(t, err)
}

func TestRemote_TimeoutDoesNotTouchSharedClient(t *testing.T) {
	before := http.DefaultClient.Timeout

	c, err := NewRemote("http://localhost:9000", WithHttpClient(http.DefaultClient), WithTimeout(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, before, http.DefaultClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.http)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestRemote_DefaultTimeout(t *testing.T) {
	c, err := NewRemote("http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, c.http.Timeout)

	c, err = NewRemote("http://localhost:9000", WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
}
