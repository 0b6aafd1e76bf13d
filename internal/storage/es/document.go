package es

import (
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

const textAnalyzer = "post_text_analyzer"

// PostDocument is the Elasticsearch representation of a media post.
type PostDocument struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userid"`
	Username    string     `json:"username,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	MediaURL    string     `json:"mediaurl,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	IndexedAt   time.Time  `json:"indexed_at"`
}

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) mapToESDocument(post domain.Post) PostDocument {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	doc := PostDocument{
		ID:          post.ID,
		UserID:      post.UserID,
		Username:    post.Username,
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL,
		MediaURL:    post.MediaURL,
		IndexedAt:   time.Now().UTC(),
	}
	if !post.Timestamp.IsZero() {
		ts := post.Timestamp.UTC()
		doc.Timestamp = &ts
	}
	return doc
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				textAnalyzer: types.StandardAnalyzer{
					Stopwords: []string{"_english_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			domain.FieldID:          types.NewKeywordProperty(),
			domain.FieldUserID:      types.NewKeywordProperty(),
			domain.FieldUsername:    types.NewKeywordProperty(),
			domain.FieldTitle:       b.createTextProperty(textAnalyzer),
			domain.FieldDescription: b.createTextProperty(textAnalyzer),
			domain.FieldURL:         types.NewKeywordProperty(),
			domain.FieldMediaURL:    types.NewKeywordProperty(),
			domain.FieldTimestamp:   types.NewDateProperty(),
			"indexed_at":            types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}
