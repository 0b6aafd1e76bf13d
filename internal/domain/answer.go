package domain

import "encoding/json"

// AnswerRecord is one ranked candidate answer.
type AnswerRecord struct {
	Rank     int    `json:"rank"`
	URL      string `json:"url"`
	VID      string `json:"vid"`
	Evidence string `json:"evidence"`
	Snippet  string `json:"snippet"`
	Default  string `json:"default"`
}

// UnmarshalJSON accepts the legacy "snippets" key when "snippet" is absent.
func (a *AnswerRecord) UnmarshalJSON(data []byte) error {
	type plain AnswerRecord
	var raw struct {
		plain
		Snippet  *string `json:"snippet"`
		Snippets *string `json:"snippets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = AnswerRecord(raw.plain)
	switch {
	case raw.Snippet != nil:
		a.Snippet = *raw.Snippet
	case raw.Snippets != nil:
		a.Snippet = *raw.Snippets
	}
	return nil
}

// ResponseRecord is the externally visible answer to a question.
type ResponseRecord struct {
	AnswerSummary      string         `json:"answer_summary"`
	QuestionType       QuestionType   `json:"question_type"`
	UserQuestion       string         `json:"user_question"`
	Answers            []AnswerRecord `json:"answers"`
	HighlightedKeyword []string       `json:"highlighted_keyword"`
}

// NewResponseRecord returns a response with empty, non-nil sequences.
func NewResponseRecord(question string, qt QuestionType) *ResponseRecord {
	return &ResponseRecord{
		QuestionType:       qt,
		UserQuestion:       question,
		Answers:            make([]AnswerRecord, 0),
		HighlightedKeyword: make([]string, 0),
	}
}

// ErrorRecord is the wire shape of a rejected request.
type ErrorRecord struct {
	Error ErrorMessage `json:"Error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func NewErrorRecord(msg string) ErrorRecord {
	return ErrorRecord{Error: ErrorMessage{Message: msg}}
}
