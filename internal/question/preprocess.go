package question

import (
	"sort"
	"strings"
)

// Preprocessor strips politeness phrases from questions.
type Preprocessor struct {
	phrases []string
}

// NewPreprocessor orders phrases longest first so that a phrase containing
// another one is removed whole.
func NewPreprocessor(phrases []string) *Preprocessor {
	sorted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p != "" {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return &Preprocessor{phrases: sorted}
}

func (p *Preprocessor) Clean(text string) string {
	for _, phrase := range p.phrases {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return strings.Join(strings.Fields(text), " ")
}
