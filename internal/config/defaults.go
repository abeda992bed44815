// SPDX-License-Identifier: MIT

package config

import "time"

const (
	DefaultListenAddr        = "127.0.0.1:8080"
	DefaultMetricsListenAddr = "127.0.0.1:9090"
	DefaultAssetsDir         = "./assets"
	DefaultUpstreamURL       = "https://apis.is/tv/ruv"
	DefaultUpstreamTimeout   = 10 * time.Second

	DefaultPageAuthor = "Paul Burt"
	DefaultPageEmail  = "paul.burt@bbc.co.uk"
	DefaultPageTitle  = "Dagskrá RÚV"

	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultMaxHeaderBytes  = 1 << 20 // 1 MB
	defaultShutdownTimeout = 15 * time.Second
	defaultRequestsPerMin  = 120
)

// Defaults returns the configuration used when neither a file nor the
// environment sets a value.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel:   "info",
		LogService: "dagskra",
		Server: ServerSettings{
			ListenAddr:      DefaultListenAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			MaxHeaderBytes:  defaultMaxHeaderBytes,
			ShutdownTimeout: defaultShutdownTimeout,
			AssetsDir:       DefaultAssetsDir,
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: DefaultMetricsListenAddr,
		},
		Upstream: UpstreamConfig{
			BaseURL: DefaultUpstreamURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Page: PageConfig{
			Author: DefaultPageAuthor,
			Email:  DefaultPageEmail,
			Title:  DefaultPageTitle,
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "production",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: defaultRequestsPerMin,
		},
	}
}
