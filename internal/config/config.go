// Package config loads leavedesk configuration from a YAML file with
// environment variable overrides. A missing file yields defaults; the
// GOOGLE_API_KEY variable is required before any model call is made.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateFormat is the calendar date layout used everywhere in the system.
const DateFormat = "2006-01-02"

// LeaveTypes is the closed set of leave types the assistant understands.
var LeaveTypes = []string{"casual_leave", "sick_leave", "earned_leave"}

// Config holds all leavedesk configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LLMConfig configures the Gemini model boundary.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// RetrievalConfig configures the policy retrieval index.
type RetrievalConfig struct {
	DatabasePath   string `yaml:"database_path"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	TopK           int    `yaml:"top_k"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Dir        string          `yaml:"dir"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "leavedesk",
		Version: "1.0.0",

		LLM: LLMConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Timeout: "120s",
		},

		Retrieval: RetrievalConfig{
			DatabasePath:   "data/policy_index.db",
			EmbeddingModel: "gemini-embedding-001",
			ChunkSize:      500,
			ChunkOverlap:   50,
			TopK:           3,
		},

		Server: ServerConfig{
			Addr: ":8080",
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Dir:       "data/logs",
			Level:     "info",
		},
	}
}

// Load reads configuration from the given path and applies environment
// overrides. A missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variables over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LEAVEDESK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LEAVEDESK_DB"); v != "" {
		c.Retrieval.DatabasePath = v
	}
	if v := os.Getenv("LEAVEDESK_DEBUG"); v != "" {
		c.Logging.DebugMode = strings.EqualFold(v, "true") || v == "1"
	}
}

// LLMTimeout parses the configured timeout, defaulting to two minutes.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// Validate checks that required settings are present for model-backed use.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("Google API key not found: set GOOGLE_API_KEY or llm.api_key in the config file")
	}
	return nil
}
