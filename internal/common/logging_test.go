package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerWithOutput_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)

	logger.Info().Str("user_id", "3").Msg("User selected")

	out := buf.String()
	if !strings.Contains(out, `"user_id":"3"`) {
		t.Errorf("expected user_id field in output, got %s", out)
	}
	if !strings.Contains(out, "User selected") {
		t.Errorf("expected message in output, got %s", out)
	}
}

func TestNewLoggerWithOutput_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info entry should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestNewLoggerWithOutput_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("disabled", &buf)

	logger.Error().Msg("nothing")

	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestPrintBanner_IncludesServiceURL(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 9999

	PrintBanner(&buf, cfg, NewSilentLogger())

	if !strings.Contains(buf.String(), "http://localhost:9999") {
		t.Errorf("banner missing service URL:\n%s", buf.String())
	}
}
