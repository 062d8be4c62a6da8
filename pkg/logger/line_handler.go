package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Common line layouts used by the job log files.
const (
	// LayoutDashed renders "2006-01-02 15:04:05 - message".
	LayoutDashed = "2006-01-02 15:04:05"
	// LayoutHeartbeat renders "02/01/2006-15:04:05 message".
	LayoutHeartbeat = "02/01/2006-15:04:05"
)

// LineOptions controls how a LineHandler renders a record.
type LineOptions struct {
	// TimeLayout is a time.Format layout. Empty disables the timestamp.
	TimeLayout string
	// Separator goes between the timestamp and the message, e.g. " - ".
	Separator string
	// Level is the minimum level written.
	Level slog.Leveler
	// Now overrides the clock; nil means the record's own time.
	Now func() time.Time
}

// LineHandler is an slog.Handler writing one plain line per record:
//
//	<time><sep><msg>[ key=value ...]
//
// It matches the append-only text files the background jobs have always
// produced, while still accepting structured attributes.
type LineHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	opts   LineOptions
	attrs  []slog.Attr // keys already carry their group prefix
	groups []string
}

// NewLineHandler creates a LineHandler writing to w.
func NewLineHandler(w io.Writer, opts LineOptions) *LineHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &LineHandler{w: w, mu: &sync.Mutex{}, opts: opts}
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if h.opts.TimeLayout != "" {
		t := r.Time
		if h.opts.Now != nil {
			t = h.opts.Now()
		}
		b.WriteString(t.Format(h.opts.TimeLayout))
		b.WriteString(h.opts.Separator)
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", h.key(a.Key), a.Value.Resolve())
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.key(a.Key), Value: a.Value})
	}
	return &clone
}

func (h *LineHandler) key(k string) string {
	if len(h.groups) == 0 {
		return k
	}
	return strings.Join(h.groups, ".") + "." + k
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// FileLogger is a *slog.Logger bound to an append-only file.
type FileLogger struct {
	*slog.Logger
	file *os.File
}

// NewFileLogger opens path for appending and returns a logger rendering
// lines with opts. The caller must Close it.
func NewFileLogger(path string, opts LineOptions) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", path, err)
	}
	return &FileLogger{Logger: slog.New(NewLineHandler(f, opts)), file: f}, nil
}

// Close closes the underlying file.
func (l *FileLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
