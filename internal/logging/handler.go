package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// Output is colorized when the writer is a terminal that supports it.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	// Colors; nil when the writer does not support color.
	timeColor  *color.Color
	traceColor *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.traceColor = color.New(color.FgHiBlack)
		h.debugColor = color.New(color.FgMagenta)
		h.infoColor = color.New(color.FgGreen)
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
		h.keyColor = color.New(color.FgCyan)
	}

	return h
}

// useColor reports whether color output is enabled for this handler.
func (h *Handler) useColor() bool {
	return h.timeColor != nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// levelString renders the level name, mapping the custom trace level.
func levelString(level slog.Level) string {
	if level == LevelTrace {
		return "TRACE"
	}
	return level.String()
}

// Handle formats and writes the record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.useColor() {
			t = h.timeColor.Sprint(t)
		}
		fmt.Fprintf(&b, "%s ", t)
	}

	levelStr := levelString(r.Level)
	if h.useColor() {
		switch {
		case r.Level >= slog.LevelError:
			levelStr = h.errorColor.Sprint(levelStr)
		case r.Level >= slog.LevelWarn:
			levelStr = h.warnColor.Sprint(levelStr)
		case r.Level >= slog.LevelInfo:
			levelStr = h.infoColor.Sprint(levelStr)
		case r.Level >= slog.LevelDebug:
			levelStr = h.debugColor.Sprint(levelStr)
		default:
			levelStr = h.traceColor.Sprint(levelStr)
		}
	}
	fmt.Fprintf(&b, "%-5s ", levelStr)

	b.WriteString(r.Message)

	appendAttr := func(a slog.Attr) {
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		if h.useColor() {
			key = h.keyColor.Sprint(key)
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value)
	}

	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	b.WriteByte('\n')
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

// WithGroup returns a new Handler with the given group appended.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}
