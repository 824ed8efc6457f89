package service

import (
	"context"

	"github.com/camel-tools-api/camel-api/internal/logging"
	"go.uber.org/zap"
)

// Logger provides request-scoped structured logging for services
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a logger tagged with the request id from ctx
func NewLogger(ctx context.Context, base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{log: base.With(zap.String("request_id", requestID))}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.log.Error("operation failed", zap.String("operation", operation), zap.Error(err))
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string, fields ...zap.Field) {
	l.log.Warn(message, append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}

// LogDebug logs a debug message with context
func (l *Logger) LogDebug(operation string, message string, fields ...zap.Field) {
	l.log.Debug(message, append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}
