package pipeline

import (
	"github.com/DjordjeVuckovic/post-qa/internal/dateutil"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

// BuildResponse assembles the response from ranked answers.
func BuildResponse(question string, qt domain.QuestionType, answers []domain.AnswerRecord) *domain.ResponseRecord {
	res := domain.NewResponseRecord(question, qt)
	if len(answers) == 0 {
		return res
	}

	res.Answers = answers
	res.AnswerSummary = summarize(qt, answers[0])
	for _, a := range answers {
		if a.Snippet != "" {
			res.HighlightedKeyword = append(res.HighlightedKeyword, a.Snippet)
		}
	}
	return res
}

func summarize(qt domain.QuestionType, top domain.AnswerRecord) string {
	if qt.IsDate() {
		return dateutil.BeautifyFirst(top.Snippet, top.Default)
	}
	if top.Snippet != "" {
		return top.Snippet
	}
	return top.Evidence
}
