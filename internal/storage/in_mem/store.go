package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"github.com/google/uuid"
)

// Store keeps posts in memory. It implements storage.Searcher and
// storage.Indexer and is meant for local runs and tests.
type Store struct {
	lock  sync.RWMutex
	posts []domain.Post
	byID  map[string]int
}

func NewStore(posts ...domain.Post) *Store {
	s := &Store{byID: make(map[string]int)}
	_ = s.SaveBulk(context.Background(), posts)
	return s
}

func (s *Store) SaveBulk(_ context.Context, posts []domain.Post) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, p := range posts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if i, ok := s.byID[p.ID]; ok {
			s.posts[i] = p
			continue
		}
		s.byID[p.ID] = len(s.posts)
		s.posts = append(s.posts, p)
	}

	slog.Debug("Saved posts to in-memory storage", "count", len(posts), "total", len(s.posts))
	return nil
}

type scoredPost struct {
	post  domain.Post
	score int
}

// Search ranks the user's posts by the number of keyterms found in the title
// or description. Ties keep insertion order.
func (s *Store) Search(_ context.Context, q storage.Query) ([]storage.RawHit, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	terms := make([]string, 0, len(q.Keyterms))
	for _, t := range q.Keyterms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}

	var matches []scoredPost
	for _, p := range s.posts {
		if p.UserID != q.UserID {
			continue
		}
		if len(terms) == 0 {
			matches = append(matches, scoredPost{post: p})
			continue
		}

		text := strings.ToLower(p.Title + " " + p.Description)
		score := 0
		for _, t := range terms {
			if strings.Contains(text, t) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scoredPost{post: p, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	rows := q.RowsOrDefault()
	if len(matches) > rows {
		matches = matches[:rows]
	}

	hits := make([]storage.RawHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, toRawHit(m.post))
	}
	return hits, nil
}

func toRawHit(p domain.Post) storage.RawHit {
	hit := storage.RawHit{
		domain.FieldID:          p.ID,
		domain.FieldUserID:      p.UserID,
		domain.FieldUsername:    p.Username,
		domain.FieldTitle:       p.Title,
		domain.FieldDescription: p.Description,
		domain.FieldURL:         p.URL,
		domain.FieldMediaURL:    p.MediaURL,
	}
	if !p.Timestamp.IsZero() {
		hit[domain.FieldTimestamp] = p.Timestamp.UTC().Format(time.RFC3339)
	}
	return hit
}

// Healthy always reports true; the store has no external dependency.
func (s *Store) Healthy(context.Context) bool {
	return true
}
