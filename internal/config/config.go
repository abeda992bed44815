// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for dagskra.
//
// Precedence is defaults < YAML file < DAGSKRA_* environment variables.
// The YAML file is parsed strictly: unknown keys and multiple documents are
// rejected.
package config

import "time"

// AppConfig is the complete service configuration.
type AppConfig struct {
	// Version is the binary version, set by the loader.
	Version string `yaml:"-"`

	LogLevel   string `yaml:"logLevel"`
	LogService string `yaml:"logService"`

	Server    ServerSettings  `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Page      PageConfig      `yaml:"page"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// ServerSettings configures the page server.
type ServerSettings struct {
	ListenAddr      string        `yaml:"listenAddr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	MaxHeaderBytes  int           `yaml:"maxHeaderBytes"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// AssetsDir is served under /static.
	AssetsDir string `yaml:"assetsDir"`
}

// MetricsConfig configures the separate Prometheus listener.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listenAddr"`
}

// UpstreamConfig configures the schedule feed client.
type UpstreamConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// PageConfig holds the display constants rendered into every page.
type PageConfig struct {
	Author string `yaml:"author"`
	Email  string `yaml:"email"`
	Title  string `yaml:"title"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"` // grpc|http
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
	Environment  string  `yaml:"environment"`
}

// RateLimitConfig configures the per-IP request limit on page routes.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
}
