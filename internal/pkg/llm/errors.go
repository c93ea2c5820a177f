package llm

import (
	"context"
	"errors"
	"strings"
)

// DegradedText 生成失败时写入帖子/评论正文的占位文本
const DegradedText = "Error generating content due to API issue."

var (
	ErrInvalidCredential = errors.New("llm credential rejected")
	ErrQuotaExhausted    = errors.New("llm quota exhausted")
	ErrContentBlocked    = errors.New("llm content blocked")
	ErrEmptyResponse     = errors.New("llm response is empty")
	ErrGenerationFailed  = errors.New("llm generation failed")
)

var credentialMarkers = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
	"incorrect api key",
	"invalid_api_key",
	"unauthenticated",
	"permission_denied",
	"status code: 401",
	"status code: 403",
	"error 401",
	"error 403",
}

var quotaMarkers = []string{
	"resource_exhausted",
	"rate limit",
	"quota",
	"status code: 429",
	"error 429",
}

var blockedMarkers = []string{
	"blocked",
	"safety",
	"content_filter",
}

// Classify 把服务端返回的错误归到固定的几类，context 错误原样返回
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	for _, known := range []error{ErrInvalidCredential, ErrQuotaExhausted, ErrContentBlocked, ErrEmptyResponse} {
		if errors.Is(err, known) {
			return known
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, credentialMarkers):
		return ErrInvalidCredential
	case containsAny(msg, quotaMarkers):
		return ErrQuotaExhausted
	case containsAny(msg, blockedMarkers):
		return ErrContentBlocked
	}
	return ErrGenerationFailed
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
