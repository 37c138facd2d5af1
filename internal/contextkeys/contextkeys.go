package contextkeys

import (
	"context"
	"tool-catalog-service/internal/core/port"
)

type (
	loggerKey  struct{}
	traceIDKey struct{}
)

// ContextWithRequest кладёт логгер запроса и его trace_id одним вызовом
func ContextWithRequest(ctx context.Context, logger port.LoggerPort, traceID string) context.Context {
	return ContextWithTraceID(ContextWithLogger(ctx, logger), traceID)
}

func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext никогда не возвращает nil: без логгера в контексте
// отдаётся заглушка, которая всё отбрасывает.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey{}).(port.LoggerPort); ok && logger != nil {
		return logger
	}
	return discardLogger{}
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает "" для контекста вне HTTP запроса
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

type discardLogger struct{}

func (discardLogger) Debug(string, port.Fields)                {}
func (discardLogger) Info(string, port.Fields)                 {}
func (discardLogger) Warn(string, port.Fields)                 {}
func (discardLogger) Error(string, error, port.Fields)         {}
func (d discardLogger) WithFields(port.Fields) port.LoggerPort { return d }
