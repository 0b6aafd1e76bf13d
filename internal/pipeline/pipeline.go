// Package pipeline answers a question from the text of a user's posts.
//
// A question is cleaned, classified and turned into keyterms; the retrieved
// posts are scored by Extractor, ordered by Rank and assembled into a
// domain.ResponseRecord by BuildResponse.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/post-qa/internal/apperr"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

const minQuestionLength = 2

type Preprocessor interface {
	Clean(text string) string
}

type QuestionClassifier interface {
	Classify(ctx context.Context, question string) (domain.QuestionType, error)
}

type KeytermExtractor interface {
	Extract(ctx context.Context, question string, qt domain.QuestionType) ([]string, error)
}

type DocumentRetriever interface {
	Retrieve(ctx context.Context, userID string, keyterms []string) ([]domain.DocumentRecord, error)
}

// Text runs the text pipeline over the title and description of posts.
type Text struct {
	preprocessor Preprocessor
	classifier   QuestionClassifier
	keyterms     KeytermExtractor
	retriever    DocumentRetriever
	extractor    *Extractor
	topN         int
}

type Option func(*Text)

func WithTopN(n int) Option {
	return func(t *Text) {
		t.topN = n
	}
}

func NewText(
	preprocessor Preprocessor,
	classifier QuestionClassifier,
	keyterms KeytermExtractor,
	retriever DocumentRetriever,
	extractor *Extractor,
	opts ...Option,
) *Text {
	t := &Text{
		preprocessor: preprocessor,
		classifier:   classifier,
		keyterms:     keyterms,
		retriever:    retriever,
		extractor:    extractor,
		topN:         DefaultTopN,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validate rejects a missing user or a question shorter than two characters.
func Validate(userID, question string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.NewValidation(apperr.MsgInvalidUser)
	}
	if utf8.RuneCountInString(strings.TrimSpace(question)) < minQuestionLength {
		return apperr.NewValidation(apperr.MsgInvalidQuestion)
	}
	return nil
}

// Answer answers question from the posts of userID. Invalid input yields an
// *apperr.ValidationError; collaborator failures are returned wrapped.
func (t *Text) Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error) {
	if err := Validate(userID, question); err != nil {
		return nil, err
	}

	cleaned := t.preprocessor.Clean(question)
	if utf8.RuneCountInString(cleaned) < minQuestionLength {
		return nil, apperr.NewValidation(apperr.MsgInvalidQuestion)
	}

	qt, err := t.classifier.Classify(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to classify question: %w", err)
	}

	keyterms, err := t.keyterms.Extract(ctx, cleaned, qt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract keyterms: %w", err)
	}

	docs, err := t.retriever.Retrieve(ctx, userID, keyterms)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve posts: %w", err)
	}

	candidates, err := t.extractor.Extract(ctx, cleaned, qt, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to extract answers: %w", err)
	}

	answers := Rank(candidates, t.topN)
	FormatDates(qt, answers)

	slog.Info("Text pipeline answered",
		"userid", userID,
		"question_type", qt,
		"keyterms", keyterms,
		"documents", len(docs),
		"answers", len(answers))

	return BuildResponse(cleaned, qt, answers), nil
}
