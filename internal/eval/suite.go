// Package eval measures answer quality and latency over a suite of questions.
package eval

import (
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"gopkg.in/yaml.v3"
)

// Suite is a named set of evaluation cases.
type Suite struct {
	Name  string `yaml:"name"`
	TopK  int    `yaml:"top_k"`
	Cases []Case `yaml:"cases"`
}

// Case is a single question with its expected outcome. ExpectAnswers holds
// substrings any of which must appear in the evidence or snippet of one of
// the top answers.
type Case struct {
	ID            string              `yaml:"id"`
	UserID        string              `yaml:"userid"`
	Question      string              `yaml:"question"`
	ExpectType    domain.QuestionType `yaml:"expect_type"`
	ExpectAnswers []string            `yaml:"expect_answers"`
}

func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return ParseSuite(data)
}

func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite YAML: %w", err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite has no cases")
	}

	seen := make(map[string]struct{}, len(s.Cases))
	for i, c := range s.Cases {
		if c.ID == "" {
			return nil, fmt.Errorf("case at index %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		if strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.Question) == "" {
			return nil, fmt.Errorf("case %q needs userid and question", c.ID)
		}
	}
	return &s, nil
}
