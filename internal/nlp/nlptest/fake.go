// Package nlptest provides scripted NLP capabilities for tests.
package nlptest

import (
	"context"
	"sync"

	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
)

// Annotator answers with the annotation registered for a text and with an
// empty annotation otherwise.
type Annotator struct {
	mu          sync.Mutex
	annotations map[string]*nlp.Annotation
	calls       []string
	Err         error
}

func NewAnnotator() *Annotator {
	return &Annotator{annotations: make(map[string]*nlp.Annotation)}
}

func (a *Annotator) On(text string, ann nlp.Annotation) *Annotator {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.annotations[text] = &ann
	return a
}

func (a *Annotator) Annotate(_ context.Context, text string) (*nlp.Annotation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, text)
	if a.Err != nil {
		return nil, a.Err
	}
	if ann, ok := a.annotations[text]; ok {
		return ann, nil
	}
	return &nlp.Annotation{}, nil
}

func (a *Annotator) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

// Classifier always answers with Label.
type Classifier struct {
	Label      string
	Confidence float64
	Err        error
	Calls      int
}

func (c *Classifier) Classify(_ context.Context, _ string) (*nlp.Classification, error) {
	c.Calls++
	if c.Err != nil {
		return nil, c.Err
	}
	return &nlp.Classification{Label: c.Label, Confidence: c.Confidence}, nil
}

// Entities builds an annotation that only carries entities.
func Entities(pairs ...string) nlp.Annotation {
	ents := make([]nlp.Entity, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ents = append(ents, nlp.Entity{Text: pairs[i], Label: pairs[i+1]})
	}
	return nlp.Annotation{Entities: ents}
}
