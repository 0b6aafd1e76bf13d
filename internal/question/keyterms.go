package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
)

var firstPersonPhrases = map[string]struct{}{
	"i":  {},
	"me": {},
	"we": {},
}

// KeytermExtractor builds the retrieval query terms of a question.
type KeytermExtractor struct {
	annotator nlp.Annotator
	vocab     Vocabulary
}

func NewKeytermExtractor(annotator nlp.Annotator, vocab Vocabulary) *KeytermExtractor {
	return &KeytermExtractor{
		annotator: annotator,
		vocab:     vocab,
	}
}

// Extract returns the deduplicated informative verbs, named entities and noun
// phrases of the question. The order of the terms carries no meaning.
func (k *KeytermExtractor) Extract(ctx context.Context, question string, _ domain.QuestionType) ([]string, error) {
	ann, err := k.annotator.Annotate(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("annotate question: %w", err)
	}

	terms := newTermSet()

	for _, tok := range ann.Tokens {
		if tok.Pos != nlp.PosVerb {
			continue
		}
		if k.vocab.IsUninformative(tok.Lemma) || k.vocab.IsCommand(tok.Lemma) {
			continue
		}
		terms.add(tok.Lemma)
	}

	for _, ent := range ann.Entities {
		terms.add(ent.Text)
	}

	for _, np := range ann.NounChunks {
		if _, ok := firstPersonPhrases[strings.ToLower(strings.TrimSpace(np.Text))]; ok {
			continue
		}
		terms.add(np.Text)
	}

	return terms.items, nil
}

type termSet struct {
	seen  map[string]struct{}
	items []string
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[string]struct{}), items: make([]string, 0)}
}

func (s *termSet) add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	if _, ok := s.seen[term]; ok {
		return
	}
	s.seen[term] = struct{}{}
	s.items = append(s.items, term)
}
