// Package answering answers a question with the text and the multimedia
// pipelines and merges both responses.
package answering

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/merge"
	"github.com/DjordjeVuckovic/post-qa/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

// Pipeline answers a question from the posts of a user.
type Pipeline interface {
	Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error)
}

type ResponseCache interface {
	Get(ctx context.Context, userID, question string) (*domain.ResponseRecord, bool, error)
	Set(ctx context.Context, userID, question string, res *domain.ResponseRecord) error
}

type Option func(*Service)

// WithMultimedia enables the multimedia pipeline. Without it the text
// response is returned alone.
func WithMultimedia(mm Pipeline) Option {
	return func(s *Service) {
		s.mm = mm
	}
}

func WithCache(cache ResponseCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

type Service struct {
	text  Pipeline
	mm    Pipeline
	cache ResponseCache
}

func NewService(text Pipeline, opts ...Option) *Service {
	s := &Service{text: text}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer runs both pipelines concurrently and merges their responses.
func (s *Service) Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error) {
	if err := pipeline.Validate(userID, question); err != nil {
		return nil, err
	}

	if res, ok := s.cached(ctx, userID, question); ok {
		return res, nil
	}

	start := time.Now()
	var textRes, mmRes *domain.ResponseRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.text.Answer(gctx, userID, question)
		if err != nil {
			return fmt.Errorf("text pipeline: %w", err)
		}
		textRes = res
		return nil
	})
	if s.mm != nil {
		g.Go(func() error {
			res, err := s.mm.Answer(gctx, userID, question)
			if err != nil {
				return fmt.Errorf("multimedia pipeline: %w", err)
			}
			mmRes = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var res domain.ResponseRecord
	if mmRes == nil {
		res = merge.Normalize(*textRes)
	} else {
		res = merge.Merge(*textRes, *mmRes)
	}

	slog.Info("Question answered",
		"userid", userID,
		"question_type", res.QuestionType,
		"answers", len(res.Answers),
		"multimedia", s.mm != nil,
		"took", time.Since(start))

	s.store(ctx, userID, question, &res)
	return &res, nil
}

// TextAnswer runs only the text pipeline.
func (s *Service) TextAnswer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error) {
	return s.text.Answer(ctx, userID, question)
}

func (s *Service) cached(ctx context.Context, userID, question string) (*domain.ResponseRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	res, ok, err := s.cache.Get(ctx, userID, question)
	if err != nil {
		slog.Warn("Response cache read failed", "error", err)
		return nil, false
	}
	if ok {
		slog.Debug("Response cache hit", "userid", userID)
	}
	return res, ok
}

func (s *Service) store(ctx context.Context, userID, question string, res *domain.ResponseRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, question, res); err != nil {
		slog.Warn("Response cache write failed", "error", err)
	}
}
