// Package qa provides the extractive question answering capability.
//
// Two variants implement Answerer: Remote calls a QA service over HTTP and
// Local runs an in-process Model behind the input length limits of the
// reading comprehension model. Callers pick one at construction time.
package qa

import (
	"context"
	"errors"
)

// Input limits of the reading comprehension model, in words.
const (
	MaxParagraphWords = 1000
	MaxQuestionWords  = 100
)

var (
	ErrParagraphTooLong = errors.New("[Error] Sorry, the number of words in paragraph cannot be more than 1000.")
	ErrQuestionTooLong  = errors.New("[Error] Sorry, the number of words in question cannot be more than 100.")
)

// IsLimitError reports whether err is an input length rejection.
func IsLimitError(err error) bool {
	return errors.Is(err, ErrParagraphTooLong) || errors.Is(err, ErrQuestionTooLong)
}

// Answerer extracts the span of passage that answers question.
// An empty string means no answer was found.
type Answerer interface {
	Answer(ctx context.Context, question, passage string) (string, error)
}

// Model is an in-process answer span predictor.
type Model interface {
	Predict(ctx context.Context, question, paragraph string) (string, error)
}
