// Package logging provides structured logging for the assistant using Go's slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

type contextKey string

const (
	chatIDKey        contextKey = "chat_id"
	updateIDKey      contextKey = "update_id"
	correlationIDKey contextKey = "correlation_id"
)

var (
	defaultLogger *slog.Logger
	loggerMu      sync.RWMutex
	closer        io.Closer
)

func init() {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Config holds logging configuration.
type Config struct {
	Level    string          `yaml:"level"`    // debug, info, warn, error
	Format   string          `yaml:"format"`   // json, text
	Output   string          `yaml:"output"`   // stdout, stderr, or file path
	Rotation *RotationConfig `yaml:"rotation"` // only used for file output
}

// RotationConfig holds log rotation settings.
type RotationConfig struct {
	MaxSize    string `yaml:"max_size"`    // e.g. "10MB"
	MaxBackups int    `yaml:"max_backups"` // rotated files to keep
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "text",
		Output: "stdout",
	}
}

// Init replaces the global logger according to cfg.
// A previously opened log file is closed.
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	writer, err := getWriter(cfg)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	loggerMu.Lock()
	prev := closer
	defaultLogger = slog.New(handler)
	closer = nil
	// Only log files are owned here; stdout and stderr stay open.
	if rw, ok := writer.(*rotatingWriter); ok {
		closer = rw
	}
	loggerMu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// SetOutput points the global logger at w. Intended for tests.
func SetOutput(w io.Writer, level slog.Level) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close flushes and closes a file-backed logger.
func Close() error {
	loggerMu.Lock()
	c := closer
	closer = nil
	loggerMu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getWriter(cfg *Config) (io.Writer, error) {
	switch cfg.Output {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		w, err := newRotatingWriter(cfg.Output, cfg.Rotation)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// WithComponent returns a logger with a component attribute.
func WithComponent(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}

// WithContext returns a logger carrying the update values stored in ctx.
func WithContext(ctx context.Context) *slog.Logger {
	logger := Logger()

	if v, ok := ctx.Value(correlationIDKey).(string); ok {
		logger = logger.With(slog.String("correlation_id", v))
	}
	if v, ok := ctx.Value(updateIDKey).(int); ok {
		logger = logger.With(slog.Int("update_id", v))
	}
	if v, ok := ctx.Value(chatIDKey).(int64); ok {
		logger = logger.With(slog.Int64("chat_id", v))
	}

	return logger
}

// ContextWithCorrelationID adds a correlation ID to the context.
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// ContextWithUpdate adds the Telegram update and chat IDs to the context.
func ContextWithUpdate(ctx context.Context, updateID int, chatID int64) context.Context {
	ctx = context.WithValue(ctx, updateIDKey, updateID)
	return context.WithValue(ctx, chatIDKey, chatID)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}
