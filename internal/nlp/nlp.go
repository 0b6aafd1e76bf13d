package nlp

import "context"

// Part-of-speech tags the question analysis relies on.
const (
	PosVerb = "VERB"
	PosAux  = "AUX"
)

type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	Pos   string `json:"pos"`
}

type NounChunk struct {
	Text          string `json:"text"`
	Lemma         string `json:"lemma"`
	RootHeadLemma string `json:"root_head_lemma"`
}

type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Annotation is the linguistic analysis of a piece of text.
type Annotation struct {
	Tokens     []Token     `json:"tokens"`
	NounChunks []NounChunk `json:"noun_chunks"`
	Entities   []Entity    `json:"entities"`
}

// Annotator tokenizes, lemmatizes and tags text.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}

// Classification is a raw label produced by the short-text classifier.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier assigns a raw question label.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}
