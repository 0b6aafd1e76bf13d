package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/dateutil"
	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// postFile is the layout of a post import file.
type postFile struct {
	Posts []rawPost `yaml:"posts"`
}

// rawPost keeps the timestamp as text so free-form dates can be parsed.
type rawPost struct {
	ID          string `yaml:"id"`
	UserID      string `yaml:"userid"`
	Username    string `yaml:"username"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	MediaURL    string `yaml:"mediaurl"`
	Timestamp   string `yaml:"timestamp"`
}

// YAMLPostCollector reads posts from a YAML document with a top level
// "posts" list.
type YAMLPostCollector struct {
	reader io.Reader
}

func NewYAMLPostCollector(reader io.Reader) *YAMLPostCollector {
	return &YAMLPostCollector{reader: reader}
}

func (c *YAMLPostCollector) Collect(ctx context.Context) (<-chan Result[domain.Post], error) {
	var file postFile
	if err := yaml.NewDecoder(c.reader).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make(chan Result[domain.Post])
	go func() {
		defer close(out)
		for i, raw := range file.Posts {
			post, err := raw.toPost()
			if err != nil {
				err = fmt.Errorf("post %d: %w", i, err)
			}
			select {
			case <-ctx.Done():
				slog.Debug("Post collection cancelled", "collected", i)
				return
			case out <- Result[domain.Post]{Result: post, Err: err}:
			}
		}
	}()
	return out, nil
}

func (r rawPost) toPost() (domain.Post, error) {
	if strings.TrimSpace(r.UserID) == "" {
		return domain.Post{}, errors.New("userid is required")
	}

	p := domain.Post{
		ID:          r.ID,
		UserID:      r.UserID,
		Username:    r.Username,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		MediaURL:    r.MediaURL,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if ts := strings.TrimSpace(r.Timestamp); ts != "" {
		t, ok := dateutil.Parse(ts)
		if !ok {
			return domain.Post{}, fmt.Errorf("invalid timestamp %q", ts)
		}
		p.Timestamp = t.UTC()
	}
	return p, nil
}
