package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 请求链路标识在 Context 与日志属性中的 Key
const TraceIDKey = "trace_id"

// WithTraceID 将 trace_id 写入 Context, 供 ContextHandler 回收
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// TraceIDFrom 从 Context 中取出 trace_id, 不存在时返回空串
func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// ContextHandler 在每条记录上附加 Context 中的 trace_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFrom(ctx); traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	return h.Handler.Handle(ctx, r)
}
