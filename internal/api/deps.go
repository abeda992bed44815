// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"context"

	"github.com/ManuGH/dagskra/internal/config"
	"github.com/ManuGH/dagskra/internal/epg"
)

// ScheduleFetcher retrieves the current schedule. Implemented by *ruv.Client.
type ScheduleFetcher interface {
	FetchSchedule(ctx context.Context) (epg.Schedule, error)
}

// ConfigSource exposes the current configuration snapshot.
// Implemented by *config.ConfigHolder.
type ConfigSource interface {
	Get() config.AppConfig
}

// FetchObserver is told the outcome of every schedule fetch.
// Implemented by *health.FetchTracker.
type FetchObserver interface {
	Observe(err error)
}

// staticConfig adapts a fixed AppConfig to ConfigSource.
type staticConfig config.AppConfig

func (c staticConfig) Get() config.AppConfig { return config.AppConfig(c) }

// StaticConfig returns a ConfigSource that always yields cfg.
func StaticConfig(cfg config.AppConfig) ConfigSource { return staticConfig(cfg) }
