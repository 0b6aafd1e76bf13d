package question

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
)

// Classifier decides the question type. Rules on the annotated question are
// tried first; the external classifier is the fallback.
type Classifier struct {
	annotator nlp.Annotator
	external  nlp.Classifier
	vocab     Vocabulary
}

func NewClassifier(annotator nlp.Annotator, external nlp.Classifier, vocab Vocabulary) *Classifier {
	return &Classifier{
		annotator: annotator,
		external:  external,
		vocab:     vocab,
	}
}

func (c *Classifier) Classify(ctx context.Context, question string) (domain.QuestionType, error) {
	ann, err := c.annotator.Annotate(ctx, question)
	if err != nil {
		return "", fmt.Errorf("annotate question: %w", err)
	}

	if qt, ok := c.classifyByRules(ann); ok {
		slog.Debug("question classified by rules", "question", question, "type", qt)
		return qt, nil
	}

	cls, err := c.external.Classify(ctx, question)
	if err != nil {
		return "", fmt.Errorf("classify question: %w", err)
	}

	qt := NormalizeLabel(cls.Label)
	slog.Debug("question classified by model",
		"question", question,
		"label", cls.Label,
		"confidence", cls.Confidence,
		"type", qt)

	return qt, nil
}

func (c *Classifier) classifyByRules(ann *nlp.Annotation) (domain.QuestionType, bool) {
	if c.isCommand(ann) {
		return domain.ShowMe, true
	}
	if len(ann.Tokens) == 0 {
		return "", false
	}

	first := strings.ToLower(ann.Tokens[0].Lemma)
	switch first {
	case "where":
		return domain.Where, true
	case "when":
		return domain.When, true
	case "who":
		return domain.Who, true
	case "which":
		return domain.What, true
	case "how":
		if len(ann.Tokens) > 1 {
			next := strings.ToLower(ann.Tokens[1].Lemma)
			if next == "many" || next == "much" {
				return domain.HowMany, true
			}
		}
	}

	if c.vocab.IsUninformative(first) {
		return domain.YesNo, true
	}

	return "", false
}

// isCommand reports whether a noun phrase is governed by a command verb,
// as in "show me videos from Tokyo".
func (c *Classifier) isCommand(ann *nlp.Annotation) bool {
	for _, np := range ann.NounChunks {
		if c.vocab.IsCommand(np.RootHeadLemma) {
			return true
		}
	}
	return false
}

var exactLabels = map[string]domain.QuestionType{
	"NUM:count":   domain.HowMany,
	"NUM:dist":    domain.HowMuch,
	"NUM:money":   domain.HowMuch,
	"NUM:perc":    domain.HowMuch,
	"NUM:speed":   domain.HowMuch,
	"NUM:temp":    domain.HowMuch,
	"NUM:weight":  domain.HowMuch,
	"NUM:volsize": domain.HowMuch,
	"NUM:date":    domain.When,
	"show_me:all": domain.ShowMe,
}

var prefixLabels = []struct {
	prefix string
	qt     domain.QuestionType
}{
	{prefix: "LOC:", qt: domain.Where},
	{prefix: "HUM:", qt: domain.Who},
}

// NormalizeLabel maps a raw classifier label onto the question type bins.
// Unknown labels fall back to What.
func NormalizeLabel(label string) domain.QuestionType {
	label = strings.TrimSpace(label)
	if qt, ok := exactLabels[label]; ok {
		return qt
	}
	for _, p := range prefixLabels {
		if strings.HasPrefix(label, p.prefix) {
			return p.qt
		}
	}
	return domain.What
}
