package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.FallbackEnabled, "fallback must default to enabled")
	assert.Equal(t, "mock-api/db.json", cfg.MockDBFile)
	assert.Equal(t, 10*time.Second, cfg.UpstreamCfg.Timeout)
	assert.NotEmpty(t, cfg.UpstreamCfg.BaseURL)
	assert.Empty(t, cfg.RedisCfg.Addr, "cache must be off unless configured")
}

func TestBuildOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("FALLBACK_ENABLED", "false")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.local")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Build()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.FallbackEnabled)
	assert.Equal(t, "http://upstream.local", cfg.UpstreamCfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.UpstreamCfg.Timeout)
	assert.Equal(t, "localhost:6379", cfg.RedisCfg.Addr)
}

func TestBuildRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Build()
	assert.Error(t, err)
}
