package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestNewLogger(t *testing.T) {
	config := DefaultConfig()
	config.Level = "debug"
	config.Format = "console"
	config.OutputPaths = []string{"stderr"}

	logger, err := NewLogger(config)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug level to be enabled")
	}

	child := logger.Named("controller")
	if child.Logger == nil {
		t.Error("Named returned nil logger")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	config := DefaultConfig()
	config.Level = "loud"

	if _, err := NewLogger(config); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestNewNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("No-op logger should not enable any level")
	}
}
