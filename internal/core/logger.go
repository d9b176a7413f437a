package core

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger provides structured logging for the article service
type Logger struct {
	*slog.Logger
	features map[string]*slog.Logger
}

// NewLogger creates a new logger instance
func NewLogger() *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return &Logger{
		Logger:   slog.New(handler),
		features: make(map[string]*slog.Logger),
	}
}

// NewLoggerWith wraps an existing slog logger
func NewLoggerWith(logger *slog.Logger) *Logger {
	return &Logger{
		Logger:   logger,
		features: make(map[string]*slog.Logger),
	}
}

// ForFeature returns a logger scoped to a feature
func (l *Logger) ForFeature(featureName string) *Logger {
	if featureLogger, exists := l.features[featureName]; exists {
		return &Logger{
			Logger:   featureLogger,
			features: l.features,
		}
	}

	featureLogger := l.Logger.With("feature", featureName)
	l.features[featureName] = featureLogger

	return &Logger{
		Logger:   featureLogger,
		features: l.features,
	}
}

// WithContext returns a logger carrying the request ID from the context
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID := middleware.GetReqID(ctx); requestID != "" {
		return &Logger{
			Logger:   l.Logger.With("request_id", requestID),
			features: l.features,
		}
	}

	return l
}
