package qa

import (
	"context"
	"fmt"
	"strings"
)

// Local runs a Model in process and enforces the model input limits.
type Local struct {
	model Model
}

func NewLocal(model Model) *Local {
	return &Local{model: model}
}

func (l *Local) Answer(ctx context.Context, question, passage string) (string, error) {
	if len(strings.Fields(passage)) > MaxParagraphWords {
		return "", ErrParagraphTooLong
	}
	if len(strings.Fields(question)) > MaxQuestionWords {
		return "", ErrQuestionTooLong
	}

	answer, err := l.model.Predict(ctx, question, passage)
	if err != nil {
		return "", fmt.Errorf("local qa predict: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
