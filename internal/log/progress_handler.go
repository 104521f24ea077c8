package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// timeLayout is the timestamp prefix for each log line.
const timeLayout = "15:04:05"

// ProgressHandler is an slog.Handler that writes compact single-line
// records suitable for watching a long build from a terminal.
//
// Design decision: We implement slog.Handler directly rather than
// wrapping slog.NewTextHandler because:
//  1. TextHandler quotes and key=value-encodes the message itself,
//     which reads poorly as a progress stream
//  2. The short HH:MM:SS timestamp matters more here than the full
//     RFC3339 stamp for runs that take a few minutes
//  3. It keeps the output format stable for users who pipe it to files
type ProgressHandler struct {
	// mu serializes writes so concurrent loggers never interleave lines.
	mu *sync.Mutex

	// output is the destination stream, typically os.Stderr.
	output io.Writer

	// level is the minimum level this handler emits.
	level slog.Level

	// attrs holds preformatted attributes from WithAttrs.
	attrs []slog.Attr

	// groups holds open group names from WithGroup, applied as key
	// prefixes.
	groups []string
}

// ProgressHandlerOption configures a ProgressHandler.
type ProgressHandlerOption func(*ProgressHandler)

// WithLevel sets the minimum level the handler emits.
func WithLevel(level slog.Level) ProgressHandlerOption {
	return func(h *ProgressHandler) {
		h.level = level
	}
}

// NewProgressHandler creates a ProgressHandler writing to output.
// The default minimum level is Info.
func NewProgressHandler(output io.Writer, opts ...ProgressHandlerOption) *ProgressHandler {
	h := &ProgressHandler{
		mu:     &sync.Mutex{},
		output: output,
		level:  slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *ProgressHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as one line and writes it to the output.
func (h *ProgressHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(r.Time.Format(timeLayout))
		sb.WriteByte(' ')
	}
	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&sb, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, h.qualify(a))
		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.output, sb.String())
	return err
}

// WithAttrs returns a new handler with the given attributes added.
func (h *ProgressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return &clone
}

// WithGroup returns a new handler with the given group name opened.
func (h *ProgressHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = make([]string, 0, len(h.groups)+1)
	clone.groups = append(clone.groups, h.groups...)
	clone.groups = append(clone.groups, name)
	return &clone
}

// qualify prefixes an attribute key with the open group names.
func (h *ProgressHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{
		Key:   strings.Join(h.groups, ".") + "." + a.Key,
		Value: a.Value,
	}
}

// appendAttr writes one attribute as " key=value", flattening groups.
func (h *ProgressHandler) appendAttr(sb *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			prefixed := ga
			if a.Key != "" {
				prefixed.Key = a.Key + "." + ga.Key
			}
			h.appendAttr(sb, prefixed)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(a.Key)
	sb.WriteByte('=')

	value := a.Value.String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = fmt.Sprintf("%q", value)
	}
	sb.WriteString(value)
}

// NewProgressLogger creates a new slog.Logger with progress-style output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Info
func NewProgressLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewProgressHandler(w, WithLevel(level)))
}
