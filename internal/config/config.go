// Package config provides configuration loading and structs for the kaiwa server.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Ingest    IngestConfig    `yaml:"ingest"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RetrievalConfig holds chunking and relevance scoring settings.
// SearchLimit bounds how many chunks the retriever returns; ContextLimit
// bounds how many of those are forwarded into the answer context and
// echoed to the caller.
type RetrievalConfig struct {
	ChunkSize        int     `yaml:"chunk_size"`
	SearchLimit      int     `yaml:"search_limit"`
	ContextLimit     int     `yaml:"context_limit"`
	MinWordLength    int     `yaml:"min_word_length"`
	MinPartialLength int     `yaml:"min_partial_length"`
	PhraseBonus      float64 `yaml:"phrase_bonus"`
}

// LLMConfig holds completion provider settings. The API key itself is
// read from the environment variable named by APIKeyEnv at client
// construction, never inside business logic.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// IngestConfig holds document upload settings.
type IngestConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
}

// Load reads and parses the config file at path and applies defaults.
// A missing file is not an error: the defaults are returned, so the
// server can run without a config file at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
