// Package logging is the locator's leveled logger on top of log/slog.
package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Field is one key/value pair on a log line.
type Field = slog.Attr

func String(key, value string) Field        { return slog.String(key, value) }
func Int(key string, value int) Field       { return slog.Int(key, value) }
func Float(key string, value float64) Field { return slog.Float64(key, value) }
func Err(err error) Field                   { return slog.Any("error", err) }

// Logger is what the locator and CLI log through.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Config mirrors config.LoggingConfig plus the destination.
type Config struct {
	Level  string    // debug, info, warn|warning, error
	Format string    // text or json
	Output io.Writer // stderr when nil
}

// New builds a Logger writing text or JSON lines to cfg.Output.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return attrLogger{slog.New(slog.NewJSONHandler(out, opts))}
	}
	return attrLogger{slog.New(slog.NewTextHandler(out, opts))}
}

// Noop drops every line.
func Noop() Logger { return attrLogger{slog.New(slog.DiscardHandler)} }

// InitStdLog points the standard library logger at w with microsecond timestamps.
func InitStdLog(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

type attrLogger struct {
	l *slog.Logger
}

func (a attrLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	a.l.LogAttrs(ctx, slog.LevelDebug, msg, fields...)
}

func (a attrLogger) Info(ctx context.Context, msg string, fields ...Field) {
	a.l.LogAttrs(ctx, slog.LevelInfo, msg, fields...)
}

func (a attrLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	a.l.LogAttrs(ctx, slog.LevelWarn, msg, fields...)
}

func (a attrLogger) Error(ctx context.Context, msg string, fields ...Field) {
	a.l.LogAttrs(ctx, slog.LevelError, msg, fields...)
}

// parseLevel accepts slog level names and "warning"; anything else is info.
func parseLevel(name string) slog.Level {
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
