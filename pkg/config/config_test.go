package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Responder != ResponderMock {
		t.Errorf("Expected Responder %q, got %q", ResponderMock, cfg.Responder)
	}
	if cfg.Mock.LatencyMs != 1000 {
		t.Errorf("Expected mock latency 1000, got %d", cfg.Mock.LatencyMs)
	}
	if cfg.Reveal.SummaryMs != 40 || cfg.Reveal.BodyMs != 25 || cfg.Reveal.ChatMs != 20 || cfg.Reveal.DefaultMs != 30 {
		t.Errorf("Unexpected reveal speeds: %+v", cfg.Reveal)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".compliance_tui", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Responder != ResponderMock {
		t.Errorf("Expected default responder, got %q", cfg.Responder)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	initialCfg := Default()
	initialCfg.Mock.LatencyMs = 250
	if err := Save(configPath, initialCfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Mock.LatencyMs != 250 {
		t.Errorf("Expected latency 250, got %d", cfg.Mock.LatencyMs)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	raw := `{
  "responder": "http",
  "http": {"endpoint": "http://localhost:8080/chat"},
  "reveal": {"summary_ms": 0}
}`
	if err := os.WriteFile(configPath, []byte(raw), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTP.APITimeoutSeconds != 30 {
		t.Errorf("Expected default timeout 30, got %d", cfg.HTTP.APITimeoutSeconds)
	}
	if cfg.Reveal.SummaryMs != 0 {
		t.Errorf("Expected explicit summary_ms 0 to be preserved, got %d", cfg.Reveal.SummaryMs)
	}
	if cfg.Reveal.BodyMs != 25 {
		t.Errorf("Expected default body_ms 25, got %d", cfg.Reveal.BodyMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoad_CorruptedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte("{invalid json}"), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupted JSON, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("COMPLIANCE_RESPONDER", "openai")
	t.Setenv("COMPLIANCE_OPENAI_API_KEY", "sk-test")
	t.Setenv("COMPLIANCE_MOCK_LATENCY_MS", "5")
	t.Setenv("COMPLIANCE_LOG_LEVEL", "debug")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Responder != ResponderOpenAI {
		t.Errorf("Expected responder openai, got %q", cfg.Responder)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("Expected API key from env, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Mock.LatencyMs != 5 {
		t.Errorf("Expected latency 5, got %d", cfg.Mock.LatencyMs)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Unset variables should keep defaults, got model %q", cfg.OpenAI.Model)
	}
}

func TestApplyEnv_DotenvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("COMPLIANCE_HTTP_ENDPOINT=http://backend.test/api\n"), 0600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("COMPLIANCE_HTTP_ENDPOINT") })

	cfg := Default()
	if err := ApplyEnv(&cfg, envPath, filepath.Join(tmpDir, "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.HTTP.Endpoint != "http://backend.test/api" {
		t.Errorf("Expected endpoint from .env, got %q", cfg.HTTP.Endpoint)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("COMPLIANCE_MOCK_LATENCY_MS", "soon")

	cfg := Default()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("Expected error for non-numeric latency, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "unknown responder", mutate: func(c *Config) { c.Responder = "carrier-pigeon" }, wantErr: "unsupported responder"},
		{name: "negative latency", mutate: func(c *Config) { c.Mock.LatencyMs = -1 }, wantErr: "latency_ms"},
		{name: "http without endpoint", mutate: func(c *Config) { c.Responder = ResponderHTTP }, wantErr: "http.endpoint"},
		{name: "http relative endpoint", mutate: func(c *Config) {
			c.Responder = ResponderHTTP
			c.HTTP.Endpoint = "/chat"
		}, wantErr: "absolute URL"},
		{name: "openai without key", mutate: func(c *Config) { c.Responder = ResponderOpenAI }, wantErr: "openai.api_key"},
		{name: "google bad temperature", mutate: func(c *Config) {
			c.Responder = ResponderGoogle
			c.Google.APIKey = "key"
			c.Google.Temperature = 3
		}, wantErr: "temperature"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "log_level"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".compliance_tui", "config.json")) {
		t.Errorf("Unexpected config path: %s", path)
	}
}
