package logger

import (
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type traceKey string

// TraceIDKey 定义 Context 中的 Key
const TraceIDKey traceKey = "trace_id"

// ContextHandler 包装器，用于从 ctx 中提取 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String(string(TraceIDKey), traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// WithTraceID 为一次后台任务生成 trace_id，例如 seed-<uuid>
func WithTraceID(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, TraceIDKey, prefix+"-"+uuid.NewString())
}

// TraceID 取出 ctx 中的 trace_id
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}
