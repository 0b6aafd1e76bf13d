// Package merge fuses the responses of the text and the multimedia pipelines
// into one response.
package merge

import (
	"log/slog"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
)

// Normalize fills the fields a pipeline left out: an unknown question type
// and question become "UNK", missing sequences become empty. The input is
// not modified.
func Normalize(r domain.ResponseRecord) domain.ResponseRecord {
	out := r
	if out.QuestionType == "" {
		out.QuestionType = domain.UnknownQuestionType
	}
	if out.UserQuestion == "" {
		out.UserQuestion = string(domain.UnknownQuestionType)
	}

	out.Answers = make([]domain.AnswerRecord, len(r.Answers))
	copy(out.Answers, r.Answers)

	out.HighlightedKeyword = make([]string, len(r.HighlightedKeyword))
	copy(out.HighlightedKeyword, r.HighlightedKeyword)

	return out
}

// Merge combines a text and a multimedia response. The summary comes from
// the multimedia response while the question type and question come from the
// text response. Answers and highlighted keywords interleave, starting with
// the text pipeline for what, yes/no and who questions and with the
// multimedia pipeline otherwise.
func Merge(text, mm domain.ResponseRecord) domain.ResponseRecord {
	text = Normalize(text)
	mm = Normalize(mm)

	BeautifyText(text.Answers)
	BeautifyMultimedia(mm.Answers)

	merged := domain.ResponseRecord{
		AnswerSummary: mm.AnswerSummary,
		QuestionType:  text.QuestionType,
		UserQuestion:  text.UserQuestion,
	}

	primary, secondary := mm, text
	if text.QuestionType.TextFirst() {
		primary, secondary = text, mm
	}

	merged.Answers = Interleave(primary.Answers, secondary.Answers)
	merged.HighlightedKeyword = Interleave(primary.HighlightedKeyword, secondary.HighlightedKeyword)

	slog.Debug("Merged responses",
		"question_type", merged.QuestionType,
		"text_first", text.QuestionType.TextFirst(),
		"text_answers", len(text.Answers),
		"mm_answers", len(mm.Answers))

	return merged
}

// Interleave alternates elements of primary and secondary, starting with
// primary. The tail of the longer slice follows once the shorter one runs out.
func Interleave[T any](primary, secondary []T) []T {
	out := make([]T, 0, len(primary)+len(secondary))
	for i, j := 0, 0; i < len(primary) || j < len(secondary); {
		if i < len(primary) {
			out = append(out, primary[i])
			i++
		}
		if j < len(secondary) {
			out = append(out, secondary[j])
			j++
		}
	}
	return out
}
