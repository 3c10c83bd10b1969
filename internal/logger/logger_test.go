package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("shown", slog.Int("jdn", 2459322))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", entry["msg"])
	}
	if entry["jdn"] != float64(2459322) {
		t.Errorf("jdn = %v, want 2459322", entry["jdn"])
	}
}

func TestFromContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	SetupWriter(&buf, "debug", "text")
	defer slog.SetDefault(prev)

	ctx := WithRequestID(context.Background(), "abc123")
	if got := RequestID(ctx); got != "abc123" {
		t.Fatalf("RequestID() = %q, want abc123", got)
	}

	Info(ctx, "hello")
	if !strings.Contains(buf.String(), "request_id=abc123") {
		t.Errorf("log line missing request_id: %q", buf.String())
	}

	buf.Reset()
	Component("almanac").Warn("cap reached")
	if !strings.Contains(buf.String(), "component=almanac") {
		t.Errorf("log line missing component: %q", buf.String())
	}
}

func TestRequestID_Missing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID() = %q, want empty", got)
	}
}
