package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"compliance_tui/pkg/config"
)

func TestInitCreatesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "logs", "compliance_tui.log")

	cfg := config.Default()
	cfg.LogFile = logPath
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"

	logger, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { slog.SetDefault(Discard()) })

	logger.Info("hello", slog.String("component", "test"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("Expected log to contain message, got: %s", string(data))
	}
}

func TestInitTraceLevel(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "trace.log")

	cfg := config.Default()
	cfg.LogFile = logPath
	cfg.LogFormat = "text"
	cfg.LogLevel = "trace"

	logger, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { slog.SetDefault(Discard()) })

	if !logger.Enabled(context.Background(), LevelTrace) {
		t.Fatal("Expected trace level to be enabled")
	}
	logger.Log(context.Background(), LevelTrace, "reveal_tick")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "level=TRACE") {
		t.Fatalf("Expected TRACE level name, got: %s", string(data))
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
