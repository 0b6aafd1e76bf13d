package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// noAnswer is what the model is told to reply when the paragraph holds no answer.
const noAnswer = "NONE"

const systemPrompt = `You are an extractive question answering model.
Answer with the shortest span copied verbatim from the paragraph that answers the question.
Do not explain. If the paragraph does not contain the answer reply with ` + noAnswer + `.`

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Token   string `yaml:"token"`
}

// LLMModel predicts answer spans with a chat model served behind an
// OpenAI compatible API.
type LLMModel struct {
	client llms.Model
	logger *slog.Logger
}

func NewLLMModel(cfg LLMConfig) (*LLMModel, error) {
	token := cfg.Token
	if token == "" {
		// local OpenAI compatible servers ignore the token but the client requires one
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	return NewLLMModelWithClient(client), nil
}

func NewLLMModelWithClient(client llms.Model) *LLMModel {
	return &LLMModel{
		client: client,
		logger: slog.Default().With("component", "qa-llm"),
	}
}

func (m *LLMModel) Predict(ctx context.Context, question, paragraph string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf("Paragraph:\n%s\n\nQuestion: %s", paragraph, question)),
	}

	resp, err := m.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		m.logger.Debug("no choices returned from model")
		return "", nil
	}

	answer := strings.Trim(strings.TrimSpace(resp.Choices[0].Content), `"`)
	if strings.EqualFold(answer, noAnswer) {
		return "", nil
	}
	// spans the model made up are not extractive answers
	if !strings.Contains(strings.ToLower(paragraph), strings.ToLower(answer)) {
		m.logger.Debug("discarding non-extractive answer", "answer", answer)
		return "", nil
	}
	return answer, nil
}
