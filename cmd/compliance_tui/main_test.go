package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/response"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Mock.LatencyMs = 0
	cfg.LogFile = filepath.Join(dir, "logs", "test.log")
	path := filepath.Join(dir, "config.json")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	return path
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "compliance_tui ") {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestRunQueryPrintsMarkdown(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--config", writeTestConfig(t), "--query", "show me the dashboard"}

	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "# Compliance Dashboard Overview\n") {
		t.Errorf("output should start with the summary heading:\n%s", out)
	}
	for _, want := range []string{"## Metrics", "## Charts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunQueryPrintsJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--config", writeTestConfig(t), "--json", "--query", "list recent cases"}

	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	var res response.Structured
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("output is not a structured response: %v\n%s", err, stdout.String())
	}
	if res.Kind != response.KindTable {
		t.Errorf("Kind = %q, want %q", res.Kind, response.KindTable)
	}
}

func TestRunReadsQueryFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--config", writeTestConfig(t)}

	if code := run(args, strings.NewReader("hello there\n"), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "# Response to your query") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestRunEmptyQueryFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"--config", writeTestConfig(t)}

	if code := run(args, strings.NewReader("   \n"), &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("stderr should report the failure, got %q", stderr.String())
	}
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Responder = "carrier-pigeon"
	path := filepath.Join(dir, "config.json")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", path}, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error loading config") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestParseFlagsPositionalQuery(t *testing.T) {
	opts, err := parseFlags([]string{"show", "alerts"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if opts.query != "show alerts" {
		t.Errorf("query = %q", opts.query)
	}
}

func TestTypeOutWritesWholeText(t *testing.T) {
	var buf bytes.Buffer
	text := "# Compliance Dashboard Overview ✓"

	if err := typeOut(context.Background(), &buf, text, time.Millisecond); err != nil {
		t.Fatalf("typeOut() error: %v", err)
	}
	if buf.String() != text {
		t.Errorf("typeOut() wrote %q, want %q", buf.String(), text)
	}
}

func TestTypeOutFlushesOnCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := "# Active Security Alerts"
	if err := typeOut(ctx, &buf, text, time.Hour); err != nil {
		t.Fatalf("typeOut() error: %v", err)
	}
	if buf.String() != text {
		t.Errorf("typeOut() wrote %q, want %q", buf.String(), text)
	}
}
