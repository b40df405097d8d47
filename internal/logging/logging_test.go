package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "json")
	log.Info().Str("model", "7b-v0.1").Msg("model loaded")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not json: %v\n%s", err, buf.String())
	}
	if rec["model"] != "7b-v0.1" || rec["message"] != "model loaded" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestNewWriterLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "error", "json")
	log.Info().Msg("filtered")
	log.Error().Msg("kept")
	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Fatalf("info should be filtered at error level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("error record missing: %q", out)
	}
}

func TestNewWriterBadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "loudest", "json")
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", log.GetLevel())
	}
}

func TestNewWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "console")
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("console output missing message: %q", buf.String())
	}
}
