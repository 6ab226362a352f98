package logging

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/taskline/taskline/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf strings.Builder
	logger := NewWithWriter(&buf, &config.Config{LogLevel: "warn", LogFormat: "text"})

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn missing: %q", out)
	}
	if !strings.Contains(out, "taskline") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf strings.Builder
	logger := NewWithWriter(&buf, &config.Config{LogLevel: "info", LogFormat: "json"})

	logger.Info("hello", "key", "value")
	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("json output: %q", out)
	}
}
