package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/answering"
	"github.com/DjordjeVuckovic/post-qa/internal/config"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp"
	"github.com/DjordjeVuckovic/post-qa/internal/nlp/nlptest"
	"github.com/DjordjeVuckovic/post-qa/internal/retrieve"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/factory"
	"github.com/DjordjeVuckovic/post-qa/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spanAnswerer map[string]string

func (s spanAnswerer) Answer(_ context.Context, _, passage string) (string, error) {
	return s[passage], nil
}

type staticPipeline struct {
	res *domain.ResponseRecord
}

func (s staticPipeline) Answer(context.Context, string, string) (*domain.ResponseRecord, error) {
	copied := *s.res
	return &copied, nil
}

func TestTextPipeline_EndToEnd(t *testing.T) {
	const q = "Where did I see the Tokyo tower please"
	const cleaned = "Where did I see the Tokyo tower"

	store := in_mem.NewStore(
		domain.Post{ID: "1", UserID: "u1", URL: "http://posts/1", Title: "Tokyo tower", Description: "Night view from Shiba park in Tokyo", Timestamp: time.Date(2015, 4, 2, 0, 0, 0, 0, time.UTC)},
		domain.Post{ID: "2", UserID: "u1", URL: "http://posts/2", Title: "Tokyo sushi", Description: "dinner"},
		domain.Post{ID: "3", UserID: "u1", URL: "http://posts/3", Title: "Beach", Description: "surfing"},
		domain.Post{ID: "4", UserID: "u2", URL: "http://posts/4", Title: "Tokyo tower", Description: "someone else"},
	)

	annotator := nlptest.NewAnnotator().
		On(cleaned, nlp.Annotation{
			Tokens: []nlp.Token{
				{Text: "Where", Lemma: "where"},
				{Text: "did", Lemma: "do", Pos: nlp.PosAux},
				{Text: "I", Lemma: "I"},
				{Text: "see", Lemma: "see", Pos: nlp.PosVerb},
			},
			NounChunks: []nlp.NounChunk{{Text: "I", RootHeadLemma: "see"}, {Text: "the Tokyo tower", RootHeadLemma: "see"}},
			Entities:   []nlp.Entity{{Text: "Tokyo", Label: domain.EntityGPE}},
		}).
		On("Night view from Shiba park in Tokyo", nlptest.Entities("Shiba park", domain.EntityFacility, "Tokyo", domain.EntityGPE)).
		On("Tokyo tower", nlptest.Entities("Tokyo", domain.EntityGPE))
	answerer := spanAnswerer{"Night view from Shiba park in Tokyo": "Shiba park"}

	cfg := config.Default()
	text := NewTextPipeline(cfg, annotator, &nlptest.Classifier{Label: "DESC:def"}, answerer, retrieve.NewRetriever(store))

	mm := &domain.ResponseRecord{
		AnswerSummary:      "a tower",
		Answers:            []domain.AnswerRecord{{URL: "http://videos/9", Evidence: "tower: 0.88", Snippet: "tall tower"}},
		HighlightedKeyword: []string{"tall tower"},
	}
	svc := answering.NewService(text, answering.WithMultimedia(staticPipeline{res: mm}))

	res, err := svc.Answer(context.Background(), "u1", q)
	require.NoError(t, err)

	assert.Equal(t, domain.Where, res.QuestionType)
	assert.Equal(t, cleaned, res.UserQuestion)
	assert.Equal(t, "a tower", res.AnswerSummary)

	require.Len(t, res.Answers, 3)
	assert.Equal(t, "http://videos/9", res.Answers[0].URL)
	assert.Equal(t, "Found a tower: 0.88 in this video.\ntall tower", res.Answers[0].Evidence)
	assert.Equal(t, "http://posts/1", res.Answers[1].URL)
	assert.Equal(t, "Night view from Shiba park in Tokyo\nShiba park", res.Answers[1].Evidence)
	assert.Equal(t, "http://posts/2", res.Answers[2].URL)
	assert.Equal(t, []string{"tall tower", "Shiba park"}, res.HighlightedKeyword)
}

func TestNew_InMemoryBackend(t *testing.T) {
	nlpSrv := httptest.NewServer(http.NotFoundHandler())
	defer nlpSrv.Close()

	cfg := config.Default()
	cfg.NLP.BaseURL = nlpSrv.URL
	cfg.QA.URL = nlpSrv.URL + "/submit"
	cfg.MMQA.Enabled = true
	cfg.MMQA.URL = nlpSrv.URL + "/mmqa"
	cfg.Cache.Enabled = true
	cfg.Cache.InMemory = true

	a, err := New(context.Background(), cfg, factory.StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.NotNil(t, a.Service)
	assert.True(t, a.Backend.Health.Healthy(context.Background()))

	_, err = a.Service.Answer(context.Background(), "", "where")
	assert.Error(t, err)
}

func TestNew_InvalidBackend(t *testing.T) {
	_, err := New(context.Background(), config.Default(), factory.StorageConfig{Type: "solr"})
	assert.Error(t, err)
}
