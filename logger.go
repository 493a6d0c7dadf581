package gambit

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// SimpleLogger is a minimal structured logger writing key=value lines.
type SimpleLogger struct {
	logger *slog.Logger
}

// NewSimpleLogger returns a SimpleLogger writing to stderr at debug level.
func NewSimpleLogger() *SimpleLogger {
	return NewSimpleLoggerWithWriter(os.Stderr)
}

// NewSimpleLoggerWithWriter returns a SimpleLogger writing to w.
func NewSimpleLoggerWithWriter(w io.Writer) *SimpleLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &SimpleLogger{logger: slog.New(handler).With("component", "gambit")}
}

// Debug logs at debug level.
func (l *SimpleLogger) Debug(msg string, args ...interface{}) { l.logger.Debug(msg, args...) }

// Info logs at info level.
func (l *SimpleLogger) Info(msg string, args ...interface{}) { l.logger.Info(msg, args...) }

// Warn logs at warn level.
func (l *SimpleLogger) Warn(msg string, args ...interface{}) { l.logger.Warn(msg, args...) }

// Error logs at error level.
func (l *SimpleLogger) Error(msg string, args ...interface{}) { l.logger.Error(msg, args...) }

// DefaultDebugConfig returns a disabled config that logs everything once
// enabled, with UUID request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogResponses: true,
		LogPool:      true,
		RequestIDGen: uuid.NewString,
	}
}

func (s *Service) logEnabled() bool {
	return s.debug != nil && s.debug.Enabled && s.logger != nil
}

func (s *Service) newRequestID() string {
	if s.debug != nil && s.debug.Enabled && s.debug.RequestIDGen != nil {
		return s.debug.RequestIDGen()
	}
	return ""
}
