package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("source", "shs.json").Msg("merging")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if event["source"] != "shs.json" {
		t.Errorf("expected source field, got %v", event)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	got := FromContext(ctx)
	if got != &logger {
		t.Error("FromContext should return the stored logger")
	}

	// Missing logger falls back to the default.
	if FromContext(context.Background()) != Default() {
		t.Error("FromContext without a stored logger should return Default")
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithRunID(ctx, "run-42")

	if RunID(ctx) != "run-42" {
		t.Errorf("expected run-42, got %q", RunID(ctx))
	}

	FromContext(ctx).Info().Msg("hello")
	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if event["run_id"] != "run-42" {
		t.Errorf("expected run_id field in output, got %v", event)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
