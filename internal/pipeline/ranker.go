package pipeline

import (
	"sort"

	"github.com/DjordjeVuckovic/post-qa/internal/dateutil"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

// DefaultTopN is the number of answers kept per response.
const DefaultTopN = 10

// Rank orders candidates by votes, keeping retrieval order on ties, assigns
// contiguous ranks and keeps the first topN answers.
func Rank(candidates []Candidate, topN int) []domain.AnswerRecord {
	if topN <= 0 {
		topN = DefaultTopN
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].votes > sorted[j].votes
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	answers := make([]domain.AnswerRecord, 0, len(sorted))
	for i, c := range sorted {
		a := c.answer
		a.Rank = i
		answers = append(answers, a)
	}
	return answers
}

// FormatDates rewrites the evidence of date answers into a display date
// taken from the snippet, falling back to the default. Evidence is emptied
// when neither is a date.
func FormatDates(qt domain.QuestionType, answers []domain.AnswerRecord) {
	if !qt.IsDate() {
		return
	}
	for i := range answers {
		answers[i].Evidence = dateutil.BeautifyFirst(answers[i].Snippet, answers[i].Default)
	}
}
