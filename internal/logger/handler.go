package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTimeLayout renders asctime as "2024-03-01 10:15:07,123".
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

// RootName is the name printed for records from the unnamed logger.
const RootName = "root"

// sinks is shared by a handler and every handler derived from it, so all
// lines pass through one lock.
type sinks struct {
	mu      sync.Mutex
	writers []io.Writer
	level   slog.Leveler
	layout  string
}

// LineHandler is a slog.Handler that renders
// "[<asctime>] - <name> - <levelname> - <message>" and writes the same bytes
// to every sink.
type LineHandler struct {
	out    *sinks
	name   string
	attrs  string
	prefix string
}

// NewLineHandler returns a root handler writing to ws in order.
func NewLineHandler(level slog.Leveler, layout string, ws ...io.Writer) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return &LineHandler{
		out:  &sinks{writers: ws, level: level, layout: layout},
		name: RootName,
	}
}

// WithName returns a handler that prints name in the name column.
func (h *LineHandler) WithName(name string) *LineHandler {
	h2 := *h
	if name == "" {
		name = RootName
	}
	h2.name = name
	return &h2
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.out.level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.WriteString(t.Format(h.out.layout))
	buf.WriteString("] - ")
	buf.WriteString(h.name)
	buf.WriteString(" - ")
	buf.WriteString(LevelName(r.Level))
	buf.WriteString(" - ")
	buf.WriteString(r.Message)
	buf.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	var errs []error
	for _, w := range h.out.writers {
		if _, err := w.Write(buf.Bytes()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	for _, a := range attrs {
		appendAttr(&buf, h.prefix, a)
	}
	h2 := *h
	h2.attrs = h.attrs + buf.String()
	return &h2
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		// An empty key inlines the group's members.
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			appendAttr(buf, prefix, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(quoteValue(a.Value))
}

func quoteValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
