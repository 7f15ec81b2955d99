package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	API    APIConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port        int
	Environment string
	// RateLimit caps mutating requests per client IP per minute.
	RateLimit int
}

func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

type APIConfig struct {
	BaseURL         string
	Timeout         time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

var defaults = map[string]any{
	"SERVER_PORT":           3000,
	"APP_ENV":               "development",
	"SERVER_RATE_LIMIT":     120,
	"API_BASE_URL":          "http://localhost:8080/api",
	"API_TIMEOUT":           "10s",
	"API_MAX_IDLE_CONNS":    10,
	"API_IDLE_CONN_TIMEOUT": "90s",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
}

// Load reads configuration from the environment on top of built-in defaults.
func Load() (*Config, error) {
	return LoadWithDefaults(nil)
}

// LoadWithDefaults is Load with overrides replacing the built-in defaults.
// Keys use the environment variable spelling (API_BASE_URL). Environment
// variables still take precedence.
func LoadWithDefaults(overrides map[string]any) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range overrides {
		v.SetDefault(strings.ToUpper(key), value)
	}

	timeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing API_TIMEOUT: %w", err)
	}
	idleTimeout, err := time.ParseDuration(v.GetString("API_IDLE_CONN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing API_IDLE_CONN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetInt("SERVER_PORT"),
			Environment: v.GetString("APP_ENV"),
			RateLimit:   v.GetInt("SERVER_RATE_LIMIT"),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Timeout:         timeout,
			MaxIdleConns:    v.GetInt("API_MAX_IDLE_CONNS"),
			IdleConnTimeout: idleTimeout,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}

	return cfg, nil
}
