package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultFlushInterval is how often a partial batch is pushed / Fréquence d'envoi d'un lot partiel
const DefaultFlushInterval = 5 * time.Second

// LokiHandler is a slog.Handler that pushes JSON lines to Loki over HTTP.
// Records are batched and flushed when the batch is full, periodically, and on Close.
// Handlers derived with WithAttrs or WithGroup share the same batch.
type LokiHandler struct {
	sink   *lokiSink
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// lokiSink holds the state shared by derived handlers / Contient l'état partagé par les handlers dérivés
type lokiSink struct {
	url       string
	labels    map[string]string
	client    *http.Client
	errOut    io.Writer
	batchSize int

	mu     sync.Mutex
	batch  []lokiEntry
	timer  *time.Timer
	closed bool
}

type lokiEntry struct {
	timestamp time.Time
	line      string
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiHandler creates a new handler that sends logs to Loki.
// url: Loki base URL (e.g. "http://localhost:3100")
// labels: static stream labels (e.g. {"app": "go-fromagerie"})
// batchSize: records per push, 0 pushes every record immediately
func NewLokiHandler(url string, labels map[string]string, batchSize int, level slog.Leveler) *LokiHandler {
	if labels == nil {
		labels = make(map[string]string)
	}
	if level == nil {
		level = slog.LevelInfo
	}

	sink := &lokiSink{
		url:       url + "/loki/api/v1/push",
		labels:    labels,
		client:    &http.Client{Timeout: 5 * time.Second},
		errOut:    os.Stderr,
		batchSize: batchSize,
		batch:     make([]lokiEntry, 0, batchSize),
	}
	if batchSize > 0 {
		sink.timer = time.AfterFunc(DefaultFlushInterval, sink.periodicFlush)
	}

	return &LokiHandler{sink: sink, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle encodes the record as one JSON line and queues it.
func (h *LokiHandler) Handle(_ context.Context, r slog.Record) error {
	fields := map[string]any{
		"time":  r.Time.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}

	// Record attributes land in the innermost group
	target := fields
	for _, a := range h.attrs {
		addAttr(target, a)
	}
	for _, g := range h.groups {
		sub, ok := target[g].(map[string]any)
		if !ok {
			sub = map[string]any{}
			target[g] = sub
		}
		target = sub
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(target, a)
		return true
	})

	line, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal log to JSON: %w", err)
	}

	return h.sink.add(lokiEntry{timestamp: r.Time, line: string(line)})
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	if len(h.groups) > 0 {
		// Attributes added after a group belong to it
		clone.attrs = append(clone.attrs, nestAttrs(h.groups, attrs))
	} else {
		clone.attrs = append(clone.attrs, attrs...)
	}
	return &clone
}

// WithGroup returns a handler that nests following attributes under name.
func (h *LokiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// Close flushes any remaining logs and stops the periodic flush.
func (h *LokiHandler) Close() error {
	h.sink.mu.Lock()
	h.sink.closed = true
	if h.sink.timer != nil {
		h.sink.timer.Stop()
	}
	h.sink.mu.Unlock()
	return h.sink.flush()
}

// nestAttrs wraps attrs in the given groups, outermost first / Enveloppe attrs dans les groupes
func nestAttrs(groups []string, attrs []slog.Attr) slog.Attr {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	inner := slog.Group(groups[len(groups)-1], args...)
	for i := len(groups) - 2; i >= 0; i-- {
		inner = slog.Group(groups[i], inner)
	}
	return inner
}

func addAttr(dst map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		target := dst
		if a.Key != "" {
			sub, ok := dst[a.Key].(map[string]any)
			if !ok {
				sub = map[string]any{}
				dst[a.Key] = sub
			}
			target = sub
		}
		for _, ga := range group {
			addAttr(target, ga)
		}
		return
	}
	switch v := a.Value.Any().(type) {
	case error:
		dst[a.Key] = v.Error()
	case time.Duration:
		dst[a.Key] = v.String()
	default:
		dst[a.Key] = v
	}
}

func (s *lokiSink) add(e lokiEntry) error {
	s.mu.Lock()
	s.batch = append(s.batch, e)
	full := s.batchSize == 0 || len(s.batch) >= s.batchSize
	s.mu.Unlock()

	if full {
		return s.flush()
	}
	return nil
}

// flush sends all batched logs to Loki
func (s *lokiSink) flush() error {
	s.mu.Lock()
	if len(s.batch) == 0 {
		s.mu.Unlock()
		return nil
	}
	entries := s.batch
	s.batch = make([]lokiEntry, 0, s.batchSize)
	s.mu.Unlock()

	values := make([][]string, len(entries))
	for i, entry := range entries {
		// Loki expects [timestamp_in_nanoseconds, log_line]
		values[i] = []string{strconv.FormatInt(entry.timestamp.UnixNano(), 10), entry.line}
	}

	return s.push(lokiPushRequest{
		Streams: []lokiStream{{Stream: s.labels, Values: values}},
	})
}

// push never fails the caller when Loki is unreachable, it reports on errOut instead
func (s *lokiSink) push(req lokiPushRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.client.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		fmt.Fprintf(s.errOut, "loki: push failed: %v\n", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		fmt.Fprintf(s.errOut, "loki: push rejected with %d: %s\n", resp.StatusCode, msg)
	}
	return nil
}

func (s *lokiSink) periodicFlush() {
	_ = s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.timer != nil {
		s.timer.Reset(DefaultFlushInterval)
	}
}
