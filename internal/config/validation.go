// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/dagskra/internal/metrics"
	"github.com/ManuGH/dagskra/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	if cfg.LogLevel != "" {
		if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
			v.AddError("logLevel", "must be one of trace, debug, info, warn, error", cfg.LogLevel)
		}
	}

	// Server
	v.ListenAddr("server.listenAddr", cfg.Server.ListenAddr)
	v.DurationRange("server.readTimeout", cfg.Server.ReadTimeout, time.Second, 5*time.Minute)
	v.DurationRange("server.writeTimeout", cfg.Server.WriteTimeout, time.Second, 5*time.Minute)
	v.DurationRange("server.idleTimeout", cfg.Server.IdleTimeout, time.Second, 30*time.Minute)
	v.Range("server.maxHeaderBytes", cfg.Server.MaxHeaderBytes, 4<<10, 16<<20)
	v.DurationRange("server.shutdownTimeout", cfg.Server.ShutdownTimeout, time.Second, 5*time.Minute)
	v.NotEmpty("server.assetsDir", cfg.Server.AssetsDir)

	// Metrics
	if cfg.Metrics.Enabled {
		v.ListenAddr("metrics.listenAddr", cfg.Metrics.ListenAddr)
		if cfg.Metrics.ListenAddr == cfg.Server.ListenAddr {
			v.AddError("metrics.listenAddr", "must differ from server.listenAddr", cfg.Metrics.ListenAddr)
		}
	}

	// Upstream
	v.URL("upstream.baseUrl", cfg.Upstream.BaseURL, []string{"http", "https"})
	v.DurationRange("upstream.timeout", cfg.Upstream.Timeout, 100*time.Millisecond, 2*time.Minute)
	// The fallback page has to be written before the write deadline.
	if cfg.Upstream.Timeout >= cfg.Server.WriteTimeout {
		v.AddError("upstream.timeout", "must be less than server.writeTimeout", cfg.Upstream.Timeout.String())
	}

	// Page
	v.NotEmpty("page.author", cfg.Page.Author)
	v.Email("page.email", cfg.Page.Email)
	v.NotEmpty("page.title", cfg.Page.Title)

	// Telemetry
	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
	}
	v.FloatRange("telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0, 1)

	// Rate limit
	if cfg.RateLimit.Enabled {
		v.Range("rateLimit.requestsPerMinute", cfg.RateLimit.RequestsPerMinute, 1, 100000)
	}

	if err := v.Err(); err != nil {
		metrics.IncConfigValidationError()
		return err
	}
	return nil
}
