package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// serverConfig is the optional YAML configuration for the server binary.
// Flags override the file; everything has a usable default.
type serverConfig struct {
	Addr           string   `yaml:"addr"`
	DataDir        string   `yaml:"data_dir"`
	DefaultDialect string   `yaml:"default_dialect"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Resolver    resolverConfig    `yaml:"resolver"`
	Suggestions suggestionsConfig `yaml:"suggestions"`
}

// resolverConfig wires the optional LLM fallback for unresolved words.
// API keys come from the provider's usual environment variable
// (OPENAI_API_KEY, ANTHROPIC_API_KEY, ...).
type resolverConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c resolverConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// suggestionsConfig tunes fuzzy dictionary suggestions for unresolved words.
type suggestionsConfig struct {
	Threshold float64 `yaml:"threshold"`
	Limit     int     `yaml:"limit"`
}

func defaultConfig() *serverConfig {
	return &serverConfig{
		Addr:           ":8080",
		DataDir:        "data",
		DefaultDialect: "moroccan",
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
		Resolver:       resolverConfig{TimeoutSeconds: 15},
		Suggestions:    suggestionsConfig{Threshold: 0.85, Limit: 3},
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (*serverConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	if err := decodeConfig(f, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *serverConfig) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return validateConfig(cfg)
}

func validateConfig(cfg *serverConfig) error {
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel)
	}
	if (cfg.Resolver.Provider == "") != (cfg.Resolver.Model == "") {
		return fmt.Errorf("resolver requires both provider and model (got provider=%q model=%q)",
			cfg.Resolver.Provider, cfg.Resolver.Model)
	}
	if cfg.Suggestions.Threshold < 0 || cfg.Suggestions.Threshold > 1 {
		return fmt.Errorf("suggestions.threshold %v outside [0, 1]", cfg.Suggestions.Threshold)
	}
	return nil
}
