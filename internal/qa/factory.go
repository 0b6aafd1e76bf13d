package qa

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

type Config struct {
	Mode    Mode          `yaml:"mode"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	LLM     LLMConfig     `yaml:"llm"`
}

// New builds the Answerer variant selected by cfg.Mode.
func New(cfg Config) (Answerer, error) {
	switch cfg.Mode {
	case ModeRemote, "":
		if cfg.URL == "" {
			return nil, fmt.Errorf("qa url is required in %s mode", ModeRemote)
		}
		return NewRemote(cfg.URL, WithTimeout(cfg.Timeout))
	case ModeLocal:
		model, err := NewLLMModel(cfg.LLM)
		if err != nil {
			return nil, err
		}
		return NewLocal(model), nil
	default:
		return nil, fmt.Errorf("unsupported qa mode: %s", cfg.Mode)
	}
}
