// Package logger provides a structured, levelled logger built on log/slog.
//
// Production environments get JSON output for log aggregators, everything
// else gets the human-readable text handler:
//
//	log := logger.With("component", "orders")
//	log.Debug("subscribed", "event_type", "order.created")
//	// → time=... level=DEBUG msg=subscribed component=orders event_type=order.created
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shashiranjanraj/pubsub/config"
)

var L *slog.Logger

// stdout resolves os.Stdout on every write so L follows a redirected stdout.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func init() {
	L = New(stdout{}, config.AppEnv(), config.LogLevel())
	slog.SetDefault(L)
}

// New builds a logger writing to w. env selects the handler format and the
// default level; a non-empty level ("debug", "info", "warn", "error")
// overrides that default.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{}

	var handler slog.Handler
	switch strings.ToLower(env) {
	case "production", "prod":
		opts.Level = parseLevel(level, slog.LevelInfo)
		handler = slog.NewJSONHandler(w, opts)
	default:
		opts.Level = parseLevel(level, slog.LevelDebug)
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// With returns the base logger with args attached to every record.
func With(args ...any) *slog.Logger { return L.With(args...) }

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
