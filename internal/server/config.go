package server

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// AllowedOrigins lists CORS origins. "*" allows all.
	AllowedOrigins []string

	// RequestTimeout bounds the handling of a single request.
	RequestTimeout time.Duration

	// ShutdownTimeout bounds the drain period on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":3000",
		AllowedOrigins:  []string{"*"},
		RequestTimeout:  60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv("HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) allowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
