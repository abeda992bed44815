// SPDX-License-Identifier: MIT

// Package daemon provides the core daemon bootstrapping and lifecycle management.
package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/dagskra/internal/api"
	"github.com/ManuGH/dagskra/internal/config"
	"github.com/ManuGH/dagskra/internal/health"
	"github.com/ManuGH/dagskra/internal/log"
	platformnet "github.com/ManuGH/dagskra/internal/platform/net"
	"github.com/ManuGH/dagskra/internal/ruv"
	"github.com/ManuGH/dagskra/internal/telemetry"
)

// Options holds the process-level inputs that do not come from the config file.
type Options struct {
	// ConfigPath is the path to the YAML config file; empty uses defaults and env only
	ConfigPath string

	// Version is the build version
	Version string

	// LogOutput overrides the log destination (defaults to stdout)
	LogOutput io.Writer
}

// NewFetcher returns the upstream schedule client for cfg. Hosts are
// normalized so internationalized names reach the resolver as punycode.
func NewFetcher(cfg config.AppConfig) api.ScheduleFetcher {
	base := cfg.Upstream.BaseURL
	if normalized, err := platformnet.NormalizeUpstreamURL(base); err == nil {
		base = normalized
	}
	return ruv.NewWithOptions(ruv.Options{
		BaseURL: base,
		Timeout: cfg.Upstream.Timeout,
	})
}

// Run loads configuration, wires every component and serves until ctx is
// cancelled or a server fails.
func Run(ctx context.Context, opts Options) error {
	loader := config.NewLoader(opts.ConfigPath, opts.Version)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Output:  opts.LogOutput,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger := log.WithComponent("daemon")

	logger.Info().
		Str("version", cfg.Version).
		Str(log.FieldConfigPath, opts.ConfigPath).
		Str("listen", cfg.Server.ListenAddr).
		Str(log.FieldBaseURL, platformnet.SanitizeURL(cfg.Upstream.BaseURL)).
		Msg("starting dagskra")

	tp, err := initTelemetry(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry initialization failed, continuing without tracing")
	}

	if err := health.PerformStartupChecks(cfg); err != nil {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		return fmt.Errorf("startup checks: %w", err)
	}

	tracker := &health.FetchTracker{}
	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewDirChecker("assets", cfg.Server.AssetsDir))
	hm.RegisterChecker(health.NewUpstreamChecker(tracker, 0))

	holder := config.NewConfigHolder(cfg, loader, opts.ConfigPath)
	srv := api.NewServer(holder, NewFetcher(cfg),
		api.WithHealthManager(hm),
		api.WithFetchObserver(tracker),
	)

	deps := Deps{
		Logger:      log.WithComponent("daemon"),
		APIHandler:  srv.Handler(),
		MetricsAddr: config.MetricsAddr(cfg),
	}
	if deps.MetricsAddr != "" {
		deps.MetricsHandler = promhttp.Handler()
	}

	mgr, err := NewManager(config.ServerConfigFor(cfg), deps)
	if err != nil {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		return fmt.Errorf("create manager: %w", err)
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)
	mgr.RegisterShutdownHook("config-watcher", func(context.Context) error {
		holder.Stop()
		return nil
	})

	return NewApp(logger, mgr, holder, srv, NewFetcher).Run(ctx)
}

// initTelemetry installs the tracer provider; a disabled config installs a noop.
func initTelemetry(ctx context.Context, cfg config.AppConfig) (*telemetry.Provider, error) {
	tc := cfg.Telemetry
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        tc.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    tc.Environment,
		ExporterType:   tc.Exporter,
		Endpoint:       tc.Endpoint,
		SamplingRate:   tc.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry init failed: %w", err)
	}
	if tc.Enabled {
		log.WithComponent("telemetry").Info().
			Str("exporter", tc.Exporter).
			Str("endpoint", tc.Endpoint).
			Float64("sampling_rate", tc.SamplingRate).
			Msg("telemetry initialized")
	}
	return provider, nil
}

// WaitForShutdown returns a context cancelled on interrupt or termination signals.
func WaitForShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
