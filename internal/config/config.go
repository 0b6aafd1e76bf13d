// Package config loads the question answering settings from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/cache"
	"github.com/DjordjeVuckovic/post-qa/internal/pipeline"
	"github.com/DjordjeVuckovic/post-qa/internal/qa"
	"github.com/DjordjeVuckovic/post-qa/internal/retrieve"
	"github.com/DjordjeVuckovic/post-qa/internal/storage"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/qa.yaml"

type Config struct {
	Question     QuestionConfig        `yaml:"question"`
	Answers      AnswersConfig         `yaml:"answers"`
	NLP          ServiceConfig         `yaml:"nlp"`
	QA           qa.Config             `yaml:"qa"`
	MMQA         MultimediaConfig      `yaml:"mmqa"`
	Cache        cache.Config          `yaml:"cache"`
	FieldMapping retrieve.FieldMapping `yaml:"field_mapping"`
}

type QuestionConfig struct {
	PolitenessPhrases  []string `yaml:"politeness_phrases"`
	UninformativeVerbs []string `yaml:"uninformative_verbs"`
	CommandVerbs       []string `yaml:"command_verbs"`
}

type AnswersConfig struct {
	TopN int `yaml:"top_n"`
	Rows int `yaml:"rows"`
}

type ServiceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MultimediaConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

func Default() *Config {
	return &Config{
		Question: QuestionConfig{
			PolitenessPhrases:  []string{"please", "Please", "could you please", "Could you please"},
			UninformativeVerbs: []string{"be", "do", "have"},
			CommandVerbs:       []string{"show", "display", "play", "find", "look", "search"},
		},
		Answers: AnswersConfig{
			TopN: pipeline.DefaultTopN,
			Rows: storage.DefaultRows,
		},
		NLP: ServiceConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		QA: qa.Config{
			Mode:    qa.ModeRemote,
			URL:     "http://localhost:1995/submit",
			Timeout: 60 * time.Second,
		},
		MMQA: MultimediaConfig{
			Timeout: 60 * time.Second,
		},
		Cache: cache.Config{
			Path: "data/cache",
			TTL:  cache.DefaultTTL,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("Config file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("open config %s: %w", path, err)
	default:
		defer f.Close()
		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads the file named by QA_CONFIG_PATH, or DefaultPath.
func LoadEnv() (*Config, error) {
	path := os.Getenv("QA_CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func decode(r io.Reader, cfg *Config) error {
	err := yaml.NewDecoder(r).Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("NLP_BASE_URL"); v != "" {
		c.NLP.BaseURL = v
	}
	if v := os.Getenv("QA_MODE"); v != "" {
		c.QA.Mode = qa.Mode(v)
	}
	if v := os.Getenv("QA_URL"); v != "" {
		c.QA.URL = v
	}
	if v := os.Getenv("MMQA_URL"); v != "" {
		c.MMQA.URL = v
		c.MMQA.Enabled = true
	}
	if v := os.Getenv("QA_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QA_TOP_N %q: %w", v, err)
		}
		c.Answers.TopN = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Answers.TopN <= 0 {
		return fmt.Errorf("answers.top_n must be positive, got %d", c.Answers.TopN)
	}
	if c.Answers.Rows <= 0 {
		return fmt.Errorf("answers.rows must be positive, got %d", c.Answers.Rows)
	}
	if c.NLP.BaseURL == "" {
		return errors.New("nlp.base_url is required")
	}
	switch c.QA.Mode {
	case qa.ModeRemote:
		if c.QA.URL == "" {
			return errors.New("qa.url is required in remote mode")
		}
	case qa.ModeLocal:
	default:
		return fmt.Errorf("unknown qa.mode %q", c.QA.Mode)
	}
	if c.MMQA.Enabled && c.MMQA.URL == "" {
		return errors.New("mmqa.url is required when mmqa is enabled")
	}
	if c.Cache.Enabled && !c.Cache.InMemory && c.Cache.Path == "" {
		return errors.New("cache.path is required for an on-disk cache")
	}
	return c.FieldMapping.Validate()
}
