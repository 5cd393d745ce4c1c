package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfigFull(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig(strings.NewReader(`
addr: ":9090"
data_dir: /srv/arabica/data
default_dialect: egyptian
log_level: debug
allowed_origins:
  - https://arabichat.example
resolver:
  provider: openai
  model: gpt-4o-mini
  timeout_seconds: 30
suggestions:
  threshold: 0.9
  limit: 5
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/srv/arabica/data", cfg.DataDir)
	assert.Equal(t, "egyptian", cfg.DefaultDialect)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://arabichat.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "openai", cfg.Resolver.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Resolver.Model)
	assert.Equal(t, 30*time.Second, cfg.Resolver.timeout())
	assert.Equal(t, 0.9, cfg.Suggestions.Threshold)
	assert.Equal(t, 5, cfg.Suggestions.Limit)
}

func TestDecodeConfigPartialKeepsDefaults(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig(strings.NewReader(`addr: ":3000"`), cfg)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 0.85, cfg.Suggestions.Threshold)
}

func TestDecodeConfigRejectsUnknownField(t *testing.T) {
	err := decodeConfig(strings.NewReader(`listen_addr: ":3000"`), defaultConfig())
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "verbose"
	assert.ErrorContains(t, validateConfig(cfg), "log_level")

	cfg = defaultConfig()
	cfg.Resolver.Provider = "openai"
	assert.ErrorContains(t, validateConfig(cfg), "resolver")

	cfg = defaultConfig()
	cfg.Suggestions.Threshold = 1.5
	assert.ErrorContains(t, validateConfig(cfg), "threshold")

	assert.NoError(t, validateConfig(defaultConfig()))
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}
