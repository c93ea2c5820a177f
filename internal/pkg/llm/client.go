package llm

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
)

// Stats 本进程内的调用统计
type Stats struct {
	Calls    int
	Degraded int
}

// Client 在 TextGenerator 之上加入调用间隔与降级策略：
// 配额、拦截、空响应只降级当前这一条，凭据错误之后不再发起任何请求
type Client struct {
	gen   TextGenerator
	pacer Pacer
	fatal error
	stats Stats
}

func NewClient(gen TextGenerator, pacer Pacer) *Client {
	if pacer == nil {
		pacer = NoopPacer{}
	}
	return &Client{gen: gen, pacer: pacer}
}

// Generate 始终返回可写入的文本；只有凭据错误和 context 错误会同时返回 error
func (s *Client) Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error) {
	if s.fatal != nil {
		return DegradedText, s.fatal
	}
	if err := s.pacer.Wait(ctx); err != nil {
		return DegradedText, err
	}

	s.stats.Calls++
	text, err := s.gen.Generate(ctx, prompt, maxOutputTokens, temperature)
	if err == nil {
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
		err = ErrEmptyResponse
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return DegradedText, ctxErr
	}

	s.stats.Degraded++
	kind := Classify(err)
	if errors.Is(kind, ErrInvalidCredential) {
		s.fatal = kind
		log.ErrorContext(ctx, "LLM credential rejected, generation stopped", "err", err)
		return DegradedText, kind
	}

	log.WarnContext(ctx, "LLM generation degraded",
		"kind", kind.Error(),
		"prompt", truncateRunes(prompt, 50),
		"err", err,
	)
	return DegradedText, nil
}

func (s *Client) Stats() Stats {
	return s.stats
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
