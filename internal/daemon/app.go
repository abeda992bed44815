// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/dagskra/internal/api"
	"github.com/ManuGH/dagskra/internal/config"
	xglog "github.com/ManuGH/dagskra/internal/log"
	platformnet "github.com/ManuGH/dagskra/internal/platform/net"
)

// FetcherFactory builds a schedule source for the given configuration.
type FetcherFactory func(cfg config.AppConfig) api.ScheduleFetcher

// App owns the long-lived runtime lifecycle (config watcher and reload wiring)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	cfgHolder    *config.ConfigHolder
	apiServer    *api.Server
	newFetcher   FetcherFactory
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, cfgHolder *config.ConfigHolder, apiServer *api.Server, newFetcher FetcherFactory) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		cfgHolder:    cfgHolder,
		apiServer:    apiServer,
		newFetcher:   newFetcher,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	// Config watcher is best-effort: startup should not fail if watcher cannot be started.
	if a.cfgHolder != nil {
		if err := a.cfgHolder.StartWatcher(ctx); err != nil {
			a.logger.Warn().Err(err).Str(xglog.FieldEvent, "config.watcher_start_failed").Msg("failed to start config watcher")
		}
	}

	if a.cfgHolder != nil {
		applyCh := make(chan config.AppConfig, 1)
		a.cfgHolder.RegisterListener(applyCh)
		last := a.cfgHolder.Get()

		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-applyCh:
					// A full channel drops notifications, so the holder
					// is the source of truth and not the pushed value.
					last = a.syncConfig(last)
				}
			}
		})
	}

	// SIGHUP trigger for manual reload.
	if a.cfgHolder != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(xglog.FieldEvent, "config.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading config")

					if err := a.cfgHolder.Reload(ctx); err != nil {
						a.logger.Warn().
							Err(err).
							Str(xglog.FieldEvent, "config.reload_failed").
							Msg("config reload failed")
					}
				}
			}
		})
	}

	// Main server lifecycle.
	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}

// syncConfig applies the holder's current config on top of last and
// returns it as the new baseline.
func (a *App) syncConfig(last config.AppConfig) config.AppConfig {
	next := a.cfgHolder.Get()
	a.apply(last, next)
	return next
}

// apply pushes the reloadable parts of next into the running process.
// Listen addresses and timeouts need a restart; ConfigHolder warns about those.
func (a *App) apply(prev, next config.AppConfig) {
	if prev.LogLevel != next.LogLevel || prev.LogService != next.LogService {
		xglog.Configure(xglog.Config{
			Level:   next.LogLevel,
			Service: next.LogService,
			Version: next.Version,
		})
		a.logger.Info().
			Str(xglog.FieldEvent, "log.reconfigured").
			Str("level", xglog.Level().String()).
			Msg("log level updated")
	}

	if a.apiServer != nil && a.newFetcher != nil && prev.Upstream != next.Upstream {
		a.apiServer.SetFetcher(a.newFetcher(next))
		a.logger.Info().
			Str(xglog.FieldEvent, "upstream.reconfigured").
			Str(xglog.FieldBaseURL, platformnet.SanitizeURL(next.Upstream.BaseURL)).
			Dur("timeout", next.Upstream.Timeout).
			Msg("schedule source updated")
	}
}
