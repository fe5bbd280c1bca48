package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestConfigFromLookup_Defaults(t *testing.T) {
	cfg, err := configFromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.allowAllOrigins())
}

func TestConfigFromLookup_Overrides(t *testing.T) {
	cfg, err := configFromLookup(lookup(map[string]string{
		"HTTP_ADDR":            "127.0.0.1:8080",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"REQUEST_TIMEOUT":      "15s",
		"LOG_LEVEL":            "debug",
		"LOG_FORMAT":           "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.allowAllOrigins())
}

func TestConfigFromLookup_BadTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		_, err := configFromLookup(lookup(map[string]string{"REQUEST_TIMEOUT": v}))
		assert.Error(t, err, "REQUEST_TIMEOUT=%s", v)
	}
}
