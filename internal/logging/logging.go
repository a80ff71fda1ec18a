package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

const ginKey = "logger"

var (
	once  sync.Once
	base  *slog.Logger
	level = new(slog.LevelVar)
)

type Options struct {
	Component string
	File      string // empty disables the rotated file sink
	Level     string // debug | info | warn | error
}

// Init configures the global logger exactly once.
// Call this in main(): logging.Init(logging.Options{Component: "delivery-api", File: "./logs/app.log"})
func Init(opts Options) *slog.Logger {
	once.Do(func() {
		SetLevel(opts.Level)

		var w io.Writer = os.Stdout
		if opts.File != "" {
			_ = os.MkdirAll(filepath.Dir(opts.File), 0o755)
			rot := &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    50, // MB
				MaxBackups: 3,
				MaxAge:     7, // days
			}
			w = io.MultiWriter(os.Stdout, rot)
		}

		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		base = slog.New(h).With("component", opts.Component)
	})
	return base
}

// SetLevel changes the level of the global handler at runtime.
func SetLevel(s string) {
	switch strings.ToLower(s) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// Base returns the global logger. Without Init it logs to stdout only.
func Base() *slog.Logger {
	if base == nil {
		return Init(Options{Component: "app"})
	}
	return base
}

// New returns a child logger derived from the global one.
// It reuses the global handler.
func New(component string) *slog.Logger {
	return Base().With("component", component)
}

// WithCtx stores a logger in a standard context (useful outside Gin).
func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx fetches a logger from ctx or falls back to the global one.
func FromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}

// With stores the logger in gin.Context and in the request context so
// use cases called with c.Request.Context() see the same logger.
func With(c *gin.Context, l *slog.Logger) {
	c.Set(ginKey, l)
	c.Request = c.Request.WithContext(WithCtx(c.Request.Context(), l))
}

// From returns the request-scoped logger from gin.Context, or the global one.
func From(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ginKey); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}
