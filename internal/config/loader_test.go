// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_DefaultsOnly(t *testing.T) {
	cfg, err := NewLoader("", "v1.0.0").Load()
	require.NoError(t, err)

	want := Defaults()
	want.Version = "v1.0.0"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Paul Burt", cfg.Page.Author)
	assert.Equal(t, "paul.burt@bbc.co.uk", cfg.Page.Email)
	assert.Equal(t, "Dagskrá RÚV", cfg.Page.Title)
	assert.Equal(t, "https://apis.is/tv/ruv", cfg.Upstream.BaseURL)
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logLevel: debug
server:
  listenAddr: ":3000"
  readTimeout: 5s
page:
  title: "Dagskrá"
upstream:
  timeout: 3s
`)

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":3000", cfg.Server.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "Dagskrá", cfg.Page.Title)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, defaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, DefaultPageAuthor, cfg.Page.Author)
	assert.Equal(t, DefaultAssetsDir, cfg.Server.AssetsDir)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yml", `
server:
  listenAddr: ":3000"
page:
  author: "From File"
metrics:
  enabled: false
`)
	t.Setenv(EnvListen, ":4000")
	t.Setenv(EnvPageAuthor, "From Env")
	t.Setenv(EnvMetricsEnabled, "true")
	t.Setenv(EnvMetricsListen, ":9191")
	t.Setenv(EnvUpstreamTimeout, "2s")
	t.Setenv(EnvTelemetrySamplingRate, "0.25")
	t.Setenv(EnvRateLimitRPM, "30")

	l := NewLoader(path, "test")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.ListenAddr)
	assert.Equal(t, "From Env", cfg.Page.Author)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 0.25, cfg.Telemetry.SamplingRate)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)

	assert.Contains(t, l.ConsumedEnvKeys, EnvListen)
	assert.Contains(t, l.ConsumedEnvKeys, EnvLogLevelFallback)
}

func TestLoader_LogLevelFallback(t *testing.T) {
	t.Setenv(EnvLogLevelFallback, "warn")

	cfg, err := NewLoader("", "test").Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv(EnvLogLevel, "error")
	cfg, err = NewLoader("", "test").Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "DAGSKRA_LOG_LEVEL wins over LOG_LEVEL")
}

func TestLoader_StrictUnknownField(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  listenAddr: ":3000"
  listenAdress: ":3001"
`)

	_, err := NewLoader(path, "test").Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownConfigField), "expected ErrUnknownConfigField, got: %v", err)
}

func TestLoader_RejectsMultipleDocuments(t *testing.T) {
	path := writeConfig(t, "config.yaml", "logLevel: info\n---\nlogLevel: debug\n")

	_, err := NewLoader(path, "test").Load()
	assert.ErrorIs(t, err, ErrMultipleDocuments)
}

func TestLoader_RejectsNonYAML(t *testing.T) {
	path := writeConfig(t, "config.json", `{"logLevel":"info"}`)

	_, err := NewLoader(path, "test").Load()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "")

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultListenAddr, cfg.Server.ListenAddr)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"), "test").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_InvalidValues(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logLevel: chatty
page:
  email: "not-an-email"
upstream:
  baseUrl: "ftp://apis.is/tv/ruv"
`)

	_, err := NewLoader(path, "test").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logLevel")
	assert.Contains(t, err.Error(), "page.email")
	assert.Contains(t, err.Error(), "upstream.baseUrl")
}

func TestLoader_BadDurationInFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
upstream:
  timeout: soon
`)
	_, err := NewLoader(path, "test").Load()
	assert.Error(t, err)
}

func TestServerConfigFor(t *testing.T) {
	cfg := Defaults()
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Server.MaxHeaderBytes = 0

	sc := ServerConfigFor(cfg)
	assert.Equal(t, minShutdownTimeout, sc.ShutdownTimeout)
	assert.Equal(t, defaultMaxHeaderBytes, sc.MaxHeaderBytes)
	assert.Equal(t, cfg.Server.ListenAddr, sc.ListenAddr)
	assert.Equal(t, cfg.Server.ReadTimeout, sc.ReadTimeout)
}

func TestMetricsAddr(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, MetricsAddr(cfg))

	cfg.Metrics.Enabled = true
	assert.Equal(t, DefaultMetricsListenAddr, MetricsAddr(cfg))
}
