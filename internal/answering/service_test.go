package answering

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	res     *domain.ResponseRecord
	err     error
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *fakePipeline) Answer(ctx context.Context, _, _ string) (*domain.ResponseRecord, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.res
	return &copied, nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ResponseRecord
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*domain.ResponseRecord)}
}

func (c *memCache) Get(_ context.Context, userID, question string) (*domain.ResponseRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[userID+"|"+question]
	return res, ok, nil
}

func (c *memCache) Set(_ context.Context, userID, question string, res *domain.ResponseRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID+"|"+question] = res
	return nil
}

func textResponse() *domain.ResponseRecord {
	return &domain.ResponseRecord{
		AnswerSummary:      "Bob",
		QuestionType:       domain.Who,
		UserQuestion:       "who was there",
		Answers:            []domain.AnswerRecord{{URL: "t1", Evidence: "with Bob", Snippet: "Bob"}},
		HighlightedKeyword: []string{"Bob"},
	}
}

func mmResponse() *domain.ResponseRecord {
	return &domain.ResponseRecord{
		AnswerSummary: "a person",
		Answers:       []domain.AnswerRecord{{URL: "m1", Evidence: "person: 0.91"}},
	}
}

func TestService_Answer_Merges(t *testing.T) {
	svc := NewService(&fakePipeline{res: textResponse()}, WithMultimedia(&fakePipeline{res: mmResponse()}))

	res, err := svc.Answer(context.Background(), "u1", "who was there")
	require.NoError(t, err)

	assert.Equal(t, "a person", res.AnswerSummary)
	assert.Equal(t, domain.Who, res.QuestionType)
	require.Len(t, res.Answers, 2)
	assert.Equal(t, "t1", res.Answers[0].URL)
	assert.Equal(t, "with Bob\nBob", res.Answers[0].Evidence)
	assert.Equal(t, "Found a person: 0.91 in this video.\n", res.Answers[1].Evidence)
}

func TestService_Answer_RunsPipelinesConcurrently(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	text := &fakePipeline{res: textResponse(), started: started, release: release}
	mm := &fakePipeline{res: mmResponse(), started: started, release: release}
	svc := NewService(text, WithMultimedia(mm))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Answer(context.Background(), "u1", "who was there")
		done <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("pipelines did not start concurrently")
		}
	}
	close(release)
	require.NoError(t, <-done)
}

func TestService_Answer_TextOnly(t *testing.T) {
	text := textResponse()
	text.Answers = nil
	svc := NewService(&fakePipeline{res: text})

	res, err := svc.Answer(context.Background(), "u1", "who was there")
	require.NoError(t, err)
	assert.Equal(t, "Bob", res.AnswerSummary)
	assert.NotNil(t, res.Answers)
}

func TestService_Answer_Errors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		text := &fakePipeline{res: textResponse()}
		_, err := NewService(text).Answer(context.Background(), "", "who")
		var vErr *apperr.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, apperr.MsgInvalidUser, vErr.Message)
		assert.Zero(t, text.calls.Load())
	})

	t.Run("multimedia failure", func(t *testing.T) {
		boom := errors.New("mm down")
		svc := NewService(&fakePipeline{res: textResponse()}, WithMultimedia(&fakePipeline{err: boom}))
		_, err := svc.Answer(context.Background(), "u1", "who was there")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("text failure", func(t *testing.T) {
		boom := errors.New("nlp down")
		svc := NewService(&fakePipeline{err: boom}, WithMultimedia(&fakePipeline{res: mmResponse()}))
		_, err := svc.Answer(context.Background(), "u1", "who was there")
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Answer_Cache(t *testing.T) {
	text := &fakePipeline{res: textResponse()}
	mm := &fakePipeline{res: mmResponse()}
	svc := NewService(text, WithMultimedia(mm), WithCache(newMemCache()))

	first, err := svc.Answer(context.Background(), "u1", "who was there")
	require.NoError(t, err)
	second, err := svc.Answer(context.Background(), "u1", "who was there")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), text.calls.Load())
	assert.Equal(t, int32(1), mm.calls.Load())
}
