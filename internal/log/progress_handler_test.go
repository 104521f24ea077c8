package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// record builds a timestamped record for direct Handle calls.
func record(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

// TestProgressHandler_Handle tests the single-line output format.
func TestProgressHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("formats timestamp, level, message and attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewProgressHandler(&buf)

		err := h.Handle(context.Background(), record(slog.LevelInfo, "fetched species counts",
			slog.String("group", "birds"),
			slog.Int("page", 2),
		))
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		got := buf.String()
		want := "15:04:05 INFO fetched species counts group=birds page=2\n"
		if got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("quotes values containing spaces", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewProgressHandler(&buf)

		err := h.Handle(context.Background(), record(slog.LevelWarn, "skip",
			slog.String("name", "Parus major"),
		))
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		if !strings.Contains(buf.String(), `name="Parus major"`) {
			t.Errorf("output = %q, want quoted value", buf.String())
		}
	})

	t.Run("flattens group attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewProgressHandler(&buf)

		err := h.Handle(context.Background(), record(slog.LevelInfo, "done",
			slog.Group("run", slog.Int("written", 48), slog.Int("skipped", 2)),
		))
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "run.written=48") || !strings.Contains(out, "run.skipped=2") {
			t.Errorf("output = %q, want flattened group keys", out)
		}
	})
}

// TestProgressHandler_Levels tests level filtering.
func TestProgressHandler_Levels(t *testing.T) {
	t.Parallel()

	t.Run("debug suppressed by default", func(t *testing.T) {
		t.Parallel()

		h := NewProgressHandler(&bytes.Buffer{})
		if h.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be disabled by default")
		}
		if !h.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info should be enabled by default")
		}
	})

	t.Run("WithLevel lowers the threshold", func(t *testing.T) {
		t.Parallel()

		h := NewProgressHandler(&bytes.Buffer{}, WithLevel(slog.LevelDebug))
		if !h.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be enabled")
		}
	})
}

// TestProgressHandler_WithAttrs tests attribute inheritance.
func TestProgressHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewProgressHandler(&buf)).With("group", "mosses")

	logger.Info("merged", "retained", 35)

	out := buf.String()
	if !strings.Contains(out, "group=mosses") || !strings.Contains(out, "retained=35") {
		t.Errorf("output = %q, want inherited and record attrs", out)
	}
}

// TestProgressHandler_WithGroup tests group key prefixing.
func TestProgressHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewProgressHandler(&buf)).WithGroup("inat").With("taxonId", 3)

	logger.Info("fetch")

	if !strings.Contains(buf.String(), "inat.taxonId=3") {
		t.Errorf("output = %q, want group-prefixed key", buf.String())
	}
}

// TestNewProgressLogger tests the verbose switch.
func TestNewProgressLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	quiet := NewProgressLogger(&buf, false)
	quiet.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output leaked: %q", buf.String())
	}

	verbose := NewProgressLogger(&buf, true)
	verbose.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("output = %q, want debug line", buf.String())
	}
}
