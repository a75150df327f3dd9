package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// FanoutHandler 将同一条日志分发给本地与远程 Handler
type FanoutHandler struct {
	handlers []log.Handler
}

func NewFanoutHandler(handlers ...log.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

func (s *FanoutHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *FanoutHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range s.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FanoutHandler) WithAttrs(attrs []log.Attr) log.Handler {
	next := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: next}
}

func (s *FanoutHandler) WithGroup(name string) log.Handler {
	next := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		next[i] = h.WithGroup(name)
	}
	return &FanoutHandler{handlers: next}
}

// TraceOnlyHandler 仅转发带 trace_id 的记录, 无请求上下文的日志不上报远端
type TraceOnlyHandler struct {
	next log.Handler
}

func NewTraceOnlyHandler(next log.Handler) *TraceOnlyHandler {
	return &TraceOnlyHandler{next: next}
}

func (s *TraceOnlyHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *TraceOnlyHandler) Handle(ctx context.Context, r log.Record) error {
	traced := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			traced = true
			return false
		}
		return true
	})
	if !traced {
		return nil
	}
	return s.next.Handle(ctx, r)
}

func (s *TraceOnlyHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &TraceOnlyHandler{next: s.next.WithAttrs(attrs)}
}

func (s *TraceOnlyHandler) WithGroup(name string) log.Handler {
	return &TraceOnlyHandler{next: s.next.WithGroup(name)}
}
