package llm

import (
	"FeedSeeder/internal/api/config"
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider 直接使用 Gemini API
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

func NewGeminiProvider(ctx context.Context, cfg config.LLMConfig) (*GeminiProvider, error) {
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrInvalidCredential)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiProvider{client: client, modelName: cfg.TextModel}, nil
}

func (s *GeminiProvider) Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxOutputTokens),
	})
	if err != nil {
		return "", err
	}
	return textFromGemini(result)
}

// textFromGemini 响应里的每个字段都可能缺失
func textFromGemini(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", ErrEmptyResponse
	}

	if len(result.Candidates) > 0 && result.Candidates[0] != nil && result.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, nil
		}
	}

	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		reason := fb.BlockReasonMessage
		if reason == "" {
			reason = string(fb.BlockReason)
		}
		return "", fmt.Errorf("%w: %s", ErrContentBlocked, reason)
	}

	if len(result.Candidates) > 0 && result.Candidates[0] != nil {
		switch result.Candidates[0].FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent:
			return "", fmt.Errorf("%w: finish reason %s", ErrContentBlocked, result.Candidates[0].FinishReason)
		}
	}

	return "", ErrEmptyResponse
}
