// Package config defines statusboard configuration and its loading hooks.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Addr is the dashboard HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr" validate:"required"`

	// BackendURL is the base URL of the backend API serving / and /health.
	BackendURL string `koanf:"backend_url" validate:"required,url"`

	// RequestTimeout bounds each backend request. Zero means no timeout.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=0"`

	// Title is the dashboard heading.
	Title string `koanf:"title"`

	// StubAddr is the listen address of the stub backend.
	StubAddr string `koanf:"stub_addr" validate:"required"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":3000",
		BackendURL: "http://localhost:8000",
		Title:      "Intelligent Development Assistant",
		StubAddr:   ":8000",
	}
}
