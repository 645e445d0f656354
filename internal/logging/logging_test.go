package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("hello", "skill", "go-patterns")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "skill=go-patterns") {
		t.Errorf("output missing attr: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("hello", "count", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}
	if record["count"] != float64(3) {
		t.Errorf("count = %v, want 3", record["count"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("suppressed")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message should appear: %q", out)
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelTrace(t *testing.T) {
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than LevelDebug")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext without a stored logger should fall back to the default")
	}
}

func TestHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h).WithGroup("agent").With("name", "coordinator")

	logger.Debug("step")

	out := buf.String()
	if !strings.Contains(out, "agent.name=coordinator") {
		t.Errorf("grouped attr missing: %q", out)
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
	logger := slog.New(h)

	logger.Log(context.Background(), LevelTrace, "payload")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("trace level should be labeled TRACE: %q", buf.String())
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h)

	logger.Info("only text")
	logger.Error("both")

	if !strings.Contains(a.String(), "only text") || !strings.Contains(a.String(), "both") {
		t.Errorf("text handler missing records: %q", a.String())
	}
	if strings.Contains(b.String(), "only text") {
		t.Errorf("json handler should filter info: %q", b.String())
	}
	if !strings.Contains(b.String(), "both") {
		t.Errorf("json handler missing error record: %q", b.String())
	}
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	tw := &testWriter{t: t}

	n, err := tw.Write([]byte("test message\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len("test message\n") {
		t.Errorf("Write returned %d, want %d", n, len("test message\n"))
	}
}
