// Package config provides configuration loading and validation for the
// ranking engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the engine configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or environment
// overrides applied by the CLI layer.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Providers
	GeminiAPIKeys []string `json:"gemini_api_keys,omitempty"` // Rotated round-robin across calls
	AnnotateModel string   `json:"annotate_model,omitempty"`
	EmbedModel    string   `json:"embed_model,omitempty"`

	// Limits
	MaxJobChars      int `json:"max_job_chars,omitempty"`     // Job text cap before annotation
	MaxResumeChars   int `json:"max_resume_chars,omitempty"`  // Per-resume cap before annotation
	EmbedConcurrency int `json:"embed_concurrency,omitempty"` // Bounded fan-out for embedding calls
	AnnotateTimeout  int `json:"annotate_timeout,omitempty"`  // Seconds; annotation failures degrade, never abort

	// Logging
	JSONLogs bool `json:"json_logs,omitempty"`
	Debug    bool `json:"debug,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Port:             8080,
		AnnotateModel:    "gemini-2.5-flash",
		EmbedModel:       "text-embedding-004",
		MaxJobChars:      3000,
		MaxResumeChars:   1500,
		EmbedConcurrency: 4,
		AnnotateTimeout:  60,
	}
}

// Load reads configuration from a JSON file and fills missing values with
// defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.AnnotateModel == "" {
		c.AnnotateModel = d.AnnotateModel
	}
	if c.EmbedModel == "" {
		c.EmbedModel = d.EmbedModel
	}
	if c.MaxJobChars == 0 {
		c.MaxJobChars = d.MaxJobChars
	}
	if c.MaxResumeChars == 0 {
		c.MaxResumeChars = d.MaxResumeChars
	}
	if c.EmbedConcurrency == 0 {
		c.EmbedConcurrency = d.EmbedConcurrency
	}
	if c.AnnotateTimeout == 0 {
		c.AnnotateTimeout = d.AnnotateTimeout
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxJobChars < 0 {
		return fmt.Errorf("config error: 'max_job_chars' must be non-negative")
	}
	if c.MaxResumeChars < 0 {
		return fmt.Errorf("config error: 'max_resume_chars' must be non-negative")
	}
	if c.EmbedConcurrency < 0 {
		return fmt.Errorf("config error: 'embed_concurrency' must be non-negative")
	}
	if c.AnnotateTimeout < 0 {
		return fmt.Errorf("config error: 'annotate_timeout' must be non-negative")
	}
	return nil
}

// AnnotateTimeoutDuration returns the annotation timeout as a duration.
func (c *Config) AnnotateTimeoutDuration() time.Duration {
	return time.Duration(c.AnnotateTimeout) * time.Second
}
