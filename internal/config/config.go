// Package config loads console configuration from an optional YAML file
// with environment-variable overrides (INVDESK_*).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the console needs to reach the backend.
type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	WSURL          string        `yaml:"ws_url"`
	TokenFile      string        `yaml:"token_file"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL:     "https://erp.example.com",
		WSURL:          "wss://erp.example.com/ws",
		TokenFile:      "",
		RequestTimeout: 30 * time.Second,
	}
}

// Load reads path (if it exists) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("INVDESK_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("INVDESK_WS_URL"); v != "" {
		cfg.WSURL = v
	}
	if v := os.Getenv("INVDESK_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("INVDESK_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INVDESK_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	return cfg, nil
}

// ReadToken loads the session token from the configured token file.
// Returns "" when no file is configured or present.
func (c Config) ReadToken() string {
	if c.TokenFile == "" {
		return ""
	}
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return ""
	}
	return string(data)
}
