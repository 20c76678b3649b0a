package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the process logger / Configure le logger du processus
type Options struct {
	Level     string // debug, info, warn, error
	Format    string // text or json
	AddSource bool
	Output    io.Writer // defaults to os.Stdout

	LokiEnabled   bool
	LokiURL       string
	LokiLabels    map[string]string
	LokiBatchSize int
}

// ParseLevel maps a config level to slog, defaulting to info / Convertit le niveau configuré
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds the logger described by opts; close flushes pending Loki batches
// Construit le logger décrit par opts ; close vide les lots Loki en attente
func New(opts Options) (*slog.Logger, func() error) {
	level := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}
	var console slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		console = slog.NewJSONHandler(out, handlerOpts)
	} else {
		console = slog.NewTextHandler(out, handlerOpts)
	}

	if !opts.LokiEnabled || opts.LokiURL == "" {
		return slog.New(console), func() error { return nil }
	}

	loki := NewLokiHandler(opts.LokiURL, opts.LokiLabels, opts.LokiBatchSize, level)
	return slog.New(NewMultiHandler(console, loki)), loki.Close
}

// Setup installs the logger as slog default / Installe le logger comme défaut de slog
func Setup(opts Options) func() error {
	logger, closeFn := New(opts)
	slog.SetDefault(logger)
	slog.Info("logging configured",
		"level", ParseLevel(opts.Level).String(),
		"format", opts.Format,
		"loki_enabled", opts.LokiEnabled,
	)
	return closeFn
}

// MultiHandler fans records out to several handlers / Diffuse les enregistrements vers plusieurs handlers
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a fan-out handler; the first handler is the primary one
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle reports only the primary handler's error; secondary sinks never fail a log call
func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for i, hh := range h.handlers {
		if !hh.Enabled(ctx, record.Level) {
			continue
		}
		if err := hh.Handle(ctx, record.Clone()); err != nil && i == 0 {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}
