// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names. DAGSKRA_LOG_LEVEL falls back to LOG_LEVEL.
const (
	EnvLogLevel              = "DAGSKRA_LOG_LEVEL"
	EnvLogLevelFallback      = "LOG_LEVEL"
	EnvLogService            = "DAGSKRA_LOG_SERVICE"
	EnvListen                = "DAGSKRA_LISTEN"
	EnvReadTimeout           = "DAGSKRA_SERVER_READ_TIMEOUT"
	EnvWriteTimeout          = "DAGSKRA_SERVER_WRITE_TIMEOUT"
	EnvIdleTimeout           = "DAGSKRA_SERVER_IDLE_TIMEOUT"
	EnvMaxHeaderBytes        = "DAGSKRA_SERVER_MAX_HEADER_BYTES"
	EnvShutdownTimeout       = "DAGSKRA_SERVER_SHUTDOWN_TIMEOUT"
	EnvAssetsDir             = "DAGSKRA_ASSETS_DIR"
	EnvMetricsEnabled        = "DAGSKRA_METRICS_ENABLED"
	EnvMetricsListen         = "DAGSKRA_METRICS_LISTEN"
	EnvUpstreamURL           = "DAGSKRA_UPSTREAM_URL"
	EnvUpstreamTimeout       = "DAGSKRA_UPSTREAM_TIMEOUT"
	EnvPageAuthor            = "DAGSKRA_PAGE_AUTHOR"
	EnvPageEmail             = "DAGSKRA_PAGE_EMAIL"
	EnvPageTitle             = "DAGSKRA_PAGE_TITLE"
	EnvTelemetryEnabled      = "DAGSKRA_TELEMETRY_ENABLED"
	EnvTelemetryExporter     = "DAGSKRA_TELEMETRY_EXPORTER"
	EnvTelemetryEndpoint     = "DAGSKRA_TELEMETRY_ENDPOINT"
	EnvTelemetrySamplingRate = "DAGSKRA_TELEMETRY_SAMPLING_RATE"
	EnvTelemetryEnvironment  = "DAGSKRA_TELEMETRY_ENVIRONMENT"
	EnvRateLimitEnabled      = "DAGSKRA_RATELIMIT_ENABLED"
	EnvRateLimitRPM          = "DAGSKRA_RATELIMIT_RPM"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{} // keys read during the last Load
}

// NewLoader creates a new configuration loader. An empty configPath means
// defaults plus environment only.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// ConfigPath returns the file the loader reads, if any.
func (l *Loader) ConfigPath() string { return l.configPath }

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults, then
// validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnvConfig(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file over cfg with STRICT parsing. Keys absent
// from the file keep their current value.
func (l *Loader) loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrMultipleDocuments
	}
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	l.ConsumedEnvKeys[EnvLogLevelFallback] = struct{}{}
	if level := l.envString(EnvLogLevel, ""); level != "" {
		cfg.LogLevel = level
	} else if level, ok := os.LookupEnv(EnvLogLevelFallback); ok && level != "" {
		cfg.LogLevel = level
	}
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)

	cfg.Server.ListenAddr = l.envString(EnvListen, cfg.Server.ListenAddr)
	cfg.Server.ReadTimeout = l.envDuration(EnvReadTimeout, cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration(EnvWriteTimeout, cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration(EnvIdleTimeout, cfg.Server.IdleTimeout)
	cfg.Server.MaxHeaderBytes = l.envInt(EnvMaxHeaderBytes, cfg.Server.MaxHeaderBytes)
	cfg.Server.ShutdownTimeout = l.envDuration(EnvShutdownTimeout, cfg.Server.ShutdownTimeout)
	cfg.Server.AssetsDir = l.envString(EnvAssetsDir, cfg.Server.AssetsDir)

	cfg.Metrics.Enabled = l.envBool(EnvMetricsEnabled, cfg.Metrics.Enabled)
	cfg.Metrics.ListenAddr = l.envString(EnvMetricsListen, cfg.Metrics.ListenAddr)

	cfg.Upstream.BaseURL = l.envString(EnvUpstreamURL, cfg.Upstream.BaseURL)
	cfg.Upstream.Timeout = l.envDuration(EnvUpstreamTimeout, cfg.Upstream.Timeout)

	cfg.Page.Author = l.envString(EnvPageAuthor, cfg.Page.Author)
	cfg.Page.Email = l.envString(EnvPageEmail, cfg.Page.Email)
	cfg.Page.Title = l.envString(EnvPageTitle, cfg.Page.Title)

	cfg.Telemetry.Enabled = l.envBool(EnvTelemetryEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvTelemetryExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvTelemetryEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvTelemetrySamplingRate, cfg.Telemetry.SamplingRate)
	cfg.Telemetry.Environment = l.envString(EnvTelemetryEnvironment, cfg.Telemetry.Environment)

	cfg.RateLimit.Enabled = l.envBool(EnvRateLimitEnabled, cfg.RateLimit.Enabled)
	cfg.RateLimit.RequestsPerMinute = l.envInt(EnvRateLimitRPM, cfg.RateLimit.RequestsPerMinute)
}
