// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mmynk/billsplit/internal/money"
)

type Config struct {
	// HTTP server
	Port       string
	StaticPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Metrics
	MetricsEnabled bool

	// Display
	DefaultCurrency string
}

// Load reads the configuration. Values from a .env file in the working
// directory are applied first; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		StaticPath:      getEnv("STATIC_PATH", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", money.DefaultCurrency.Code),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if _, err := money.LookupCurrency(c.DefaultCurrency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid default currency '%s': %v", c.DefaultCurrency, err))
	}

	if c.StaticPath != "" {
		if info, err := os.Stat(c.StaticPath); err != nil {
			problems = append(problems, fmt.Sprintf("static path '%s': %v", c.StaticPath, err))
		} else if !info.IsDir() {
			problems = append(problems, fmt.Sprintf("static path '%s' is not a directory", c.StaticPath))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Ignoring invalid boolean", "key", key, "value", value)
		return fallback
	}
	return b
}
