package llm

import (
	"FeedSeeder/internal/api/config"
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	stopReasonContentFilter = "content_filter"
	stopReasonSensitive     = "sensitive"
)

// LangChainProvider 通过 langchaingo 调用任意 OpenAI 兼容端点
type LangChainProvider struct {
	model     llms.Model
	modelName string
}

func NewLangChainProvider(cfg config.LLMConfig) (*LangChainProvider, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
	}
	if cfg.URL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.URL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewLangChainProviderWithModel(model, cfg.TextModel), nil
}

func NewLangChainProviderWithModel(model llms.Model, modelName string) *LangChainProvider {
	return &LangChainProvider{model: model, modelName: modelName}
}

func (s *LangChainProvider) Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := s.model.GenerateContent(ctx, messages,
		llms.WithModel(s.modelName),
		llms.WithMaxTokens(maxOutputTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}

	choice := resp.Choices[0]
	if choice.StopReason == stopReasonContentFilter || choice.StopReason == stopReasonSensitive {
		return "", ErrContentBlocked
	}

	text := strings.TrimSpace(choice.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
