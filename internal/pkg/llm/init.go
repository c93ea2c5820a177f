package llm

import (
	"FeedSeeder/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// TextGenerator 文本生成服务的最小能力
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error)
}

// InitLLM 按配置创建文本生成服务
func InitLLM(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	var (
		gen TextGenerator
		err error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		gen, err = NewLangChainProvider(cfg)
	case ProviderGemini:
		gen, err = NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		log.Error("AI大模型初始化失败", "provider", cfg.Provider, "err", err)
		return nil, err
	}

	log.Info("LLM initialized successfully", "provider", cfg.Provider, "model", cfg.TextModel)
	return gen, nil
}
