package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment variables that override the config file.
const EnvPrefix = "COMPLIANCE"

// Responder names accepted in Config.Responder.
const (
	ResponderMock   = "mock"
	ResponderHTTP   = "http"
	ResponderOpenAI = "openai"
	ResponderGoogle = "google"
)

// Config represents the application configuration
type Config struct {
	Responder  string       `json:"responder"`
	Mock       MockConfig   `json:"mock" envconfig:"mock"`
	HTTP       HTTPConfig   `json:"http" envconfig:"http"`
	OpenAI     LLMConfig    `json:"openai" envconfig:"openai"`
	Google     LLMConfig    `json:"google" envconfig:"google"`
	Reveal     RevealConfig `json:"reveal" envconfig:"reveal"`
	ArchiveDir string       `json:"archive_dir" split_words:"true"`
	LogLevel   string       `json:"log_level" split_words:"true"`
	LogFormat  string       `json:"log_format" split_words:"true"`
	LogFile    string       `json:"log_file" split_words:"true"`
}

// MockConfig controls the built-in sample responder.
type MockConfig struct {
	LatencyMs int `json:"latency_ms" split_words:"true"`
}

// HTTPConfig holds the backend endpoint used by the http responder.
type HTTPConfig struct {
	Endpoint          string `json:"endpoint" split_words:"true"`
	AuthToken         string `json:"auth_token" split_words:"true"`
	APITimeoutSeconds int    `json:"api_timeout_seconds" split_words:"true"`
}

// LLMConfig holds the settings shared by the model-backed responders.
type LLMConfig struct {
	APIKey            string  `json:"api_key" split_words:"true"`
	Model             string  `json:"model" split_words:"true"`
	BaseURL           string  `json:"base_url,omitempty" split_words:"true"`
	Temperature       float64 `json:"temperature" split_words:"true"`
	MaxTokens         int     `json:"max_tokens" split_words:"true"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" split_words:"true"`
}

// RevealConfig holds typewriter speeds in milliseconds per character.
// Values <= 0 are clamped by the reveal package.
type RevealConfig struct {
	SummaryMs int `json:"summary_ms" split_words:"true"`
	BodyMs    int `json:"body_ms" split_words:"true"`
	ChatMs    int `json:"chat_ms" split_words:"true"`
	DefaultMs int `json:"default_ms" split_words:"true"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Responder: ResponderMock,
		Mock: MockConfig{
			LatencyMs: 1000,
		},
		HTTP: HTTPConfig{
			APITimeoutSeconds: 30,
		},
		OpenAI: LLMConfig{
			Model:             "gpt-4o-mini",
			Temperature:       0.2,
			MaxTokens:         2000,
			APITimeoutSeconds: 60,
		},
		Google: LLMConfig{
			Model:             "gemini-2.5-flash",
			Temperature:       0.2,
			MaxTokens:         2000,
			APITimeoutSeconds: 60,
		},
		Reveal: RevealConfig{
			SummaryMs: 40,
			BodyMs:    25,
			ChatMs:    20,
			DefaultMs: 30,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from the file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overlays COMPLIANCE_* environment variables onto cfg. Any
// dotenv files given are loaded first; missing files are ignored.
// Variables already present in the environment win over dotenv values.
func ApplyEnv(cfg *Config, dotenvFiles ...string) error {
	for _, path := range dotenvFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	switch c.Responder {
	case ResponderMock:
		if c.Mock.LatencyMs < 0 {
			return fmt.Errorf("mock.latency_ms must not be negative, got: %d", c.Mock.LatencyMs)
		}
	case ResponderHTTP:
		if strings.TrimSpace(c.HTTP.Endpoint) == "" {
			return fmt.Errorf("http.endpoint is required for the http responder")
		}
		u, err := url.Parse(c.HTTP.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("http.endpoint must be an absolute URL, got: %q", c.HTTP.Endpoint)
		}
		if c.HTTP.APITimeoutSeconds <= 0 {
			return fmt.Errorf("http.api_timeout_seconds must be positive, got: %d", c.HTTP.APITimeoutSeconds)
		}
	case ResponderOpenAI:
		if err := c.OpenAI.validate("openai"); err != nil {
			return err
		}
	case ResponderGoogle:
		if err := c.Google.validate("google"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported responder: %s", c.Responder)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	return nil
}

func (l LLMConfig) validate(name string) error {
	if l.APIKey == "" {
		return fmt.Errorf("%s.api_key is required (set in config file or %s_%s_API_KEY)", name, EnvPrefix, strings.ToUpper(name))
	}
	if l.Model == "" {
		return fmt.Errorf("%s.model is required", name)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("%s.temperature must be between 0 and 2, got: %f", name, l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("%s.max_tokens must be positive, got: %d", name, l.MaxTokens)
	}
	if l.APITimeoutSeconds <= 0 {
		return fmt.Errorf("%s.api_timeout_seconds must be positive, got: %d", name, l.APITimeoutSeconds)
	}
	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(baseDir(), "config.json")
}

// GetArchivePath returns the default location of the conversation archive.
func GetArchivePath() string {
	return filepath.Join(baseDir(), "archive")
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return ".compliance_tui"
	}
	return filepath.Join(homeDir, ".compliance_tui")
}
