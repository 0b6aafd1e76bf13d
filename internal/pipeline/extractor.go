package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/dateutil"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
	"github.com/DjordjeVuckovic/post-qa/internal/qa"
)

const (
	yesAnswer = "yes"
	noAnswer  = "no"
)

// answerFields are the document fields answers are extracted from, in
// evidence priority order.
var answerFields = []string{domain.FieldDescription, domain.FieldTitle}

// Candidate is an answer under construction. Votes and the per field
// extraction results never leave the package.
type Candidate struct {
	answer domain.AnswerRecord
	votes  int
	qa     map[string]string
	ner    map[string]string
}

// Extractor scores every retrieved document with independent NER and
// extractive QA signals and picks the best supported snippet.
type Extractor struct {
	annotator nlp.Annotator
	answerer  qa.Answerer
}

func NewExtractor(annotator nlp.Annotator, answerer qa.Answerer) *Extractor {
	return &Extractor{
		annotator: annotator,
		answerer:  answerer,
	}
}

// Extract returns one Candidate per document, in retrieval order.
func (e *Extractor) Extract(ctx context.Context, question string, qt domain.QuestionType, docs []domain.DocumentRecord) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(docs))
	for _, doc := range docs {
		c, err := e.score(ctx, question, qt, doc)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (e *Extractor) score(ctx context.Context, question string, qt domain.QuestionType, doc domain.DocumentRecord) (Candidate, error) {
	c := Candidate{
		answer: domain.AnswerRecord{URL: doc.URL},
		qa:     make(map[string]string, len(answerFields)),
		ner:    make(map[string]string, len(answerFields)),
	}

	for _, field := range answerFields {
		text := doc.Field(field)
		if strings.TrimSpace(text) == "" {
			continue
		}

		ner, err := e.entities(ctx, qt, text)
		if err != nil {
			return Candidate{}, err
		}
		if ner != "" {
			c.ner[field] = ner
			c.votes++
			if qt.IsDate() && dateutil.IsDate(ner) {
				c.votes++
			}
		}

		span, err := e.answer(ctx, question, text, doc.ID, field)
		if err != nil {
			return Candidate{}, err
		}
		if span != "" {
			c.qa[field] = span
			c.votes++
		}
	}

	c.answer.Snippet, c.answer.Evidence = c.pick(doc)
	c.answer.Default = defaultAnswer(qt, doc, c.answer)

	return c, nil
}

// entities joins the entities of text accepted by the question type.
func (e *Extractor) entities(ctx context.Context, qt domain.QuestionType, text string) (string, error) {
	ann, err := e.annotator.Annotate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to annotate document text: %w", err)
	}

	matched := make([]string, 0, len(ann.Entities))
	for _, ent := range ann.Entities {
		if qt.AcceptsEntity(ent.Label) {
			matched = append(matched, ent.Text)
		}
	}
	return strings.TrimSpace(strings.Join(matched, " ")), nil
}

func (e *Extractor) answer(ctx context.Context, question, text, docID, field string) (string, error) {
	span, err := e.answerer.Answer(ctx, question, text)
	if err != nil {
		if qa.IsLimitError(err) {
			slog.Warn("QA input rejected, field has no answer", "doc", docID, "field", field, "error", err)
			return "", nil
		}
		return "", fmt.Errorf("failed to answer from document text: %w", err)
	}
	return strings.TrimSpace(span), nil
}

// pick selects snippet and evidence: description QA, title QA,
// description NER, title NER.
func (c Candidate) pick(doc domain.DocumentRecord) (snippet, evidence string) {
	for _, results := range []map[string]string{c.qa, c.ner} {
		for _, field := range answerFields {
			if s := results[field]; s != "" {
				return s, doc.Field(field)
			}
		}
	}
	return "", ""
}

func defaultAnswer(qt domain.QuestionType, doc domain.DocumentRecord, a domain.AnswerRecord) string {
	switch {
	case qt.IsDate():
		return doc.Timestamp
	case qt == domain.YesNo:
		if a.Evidence != "" || a.Snippet != "" {
			return yesAnswer
		}
		return noAnswer
	default:
		return ""
	}
}

func (c Candidate) Votes() int {
	return c.votes
}

func (c Candidate) Answer() domain.AnswerRecord {
	return c.answer
}
