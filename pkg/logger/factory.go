package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures a logger built by New or NewWithSentry.
type Option func(*config)

type config struct {
	writer     io.Writer
	extractors []ContextExtractor
	level      slog.Level
}

// WithLevel sets the minimum level written to the output. Default: Info.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithWriter redirects output. Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{writer: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) jsonHandler() slog.Handler {
	return slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level})
}

// New creates a JSON logger.
func New(opts ...Option) *slog.Logger {
	c := newConfig(opts)
	return slog.New(NewLogHandlerDecorator(c.jsonHandler(), c.extractors...))
}
