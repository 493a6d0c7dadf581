package gambit

import "go.uber.org/zap"

// ZapLogger routes debug output to a zap logger. Key/value arguments map
// onto zap's sugared fields.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps logger, tagging every entry with component=gambit.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar().With("component", "gambit")}
}

// Debug logs at debug level.
func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, args...) }

// Info logs at info level.
func (l *ZapLogger) Info(msg string, args ...interface{}) { l.sugar.Infow(msg, args...) }

// Warn logs at warn level.
func (l *ZapLogger) Warn(msg string, args ...interface{}) { l.sugar.Warnw(msg, args...) }

// Error logs at error level.
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, args...) }

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }
