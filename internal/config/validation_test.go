// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AppConfig)
		wantField string
	}{
		{name: "defaults are valid"},
		{
			name:      "bad listen addr",
			mutate:    func(c *AppConfig) { c.Server.ListenAddr = "localhost" },
			wantField: "server.listenAddr",
		},
		{
			name:      "upstream timeout too small",
			mutate:    func(c *AppConfig) { c.Upstream.Timeout = time.Millisecond },
			wantField: "upstream.timeout",
		},
		{
			name:      "upstream timeout outlives write deadline",
			mutate:    func(c *AppConfig) { c.Upstream.Timeout = time.Minute },
			wantField: "upstream.timeout",
		},
		{
			name: "upstream timeout equal to write deadline",
			mutate: func(c *AppConfig) {
				c.Server.WriteTimeout = 20 * time.Second
				c.Upstream.Timeout = 20 * time.Second
			},
			wantField: "upstream.timeout",
		},
		{
			name: "longer upstream timeout with longer write deadline",
			mutate: func(c *AppConfig) {
				c.Server.WriteTimeout = 2 * time.Minute
				c.Upstream.Timeout = time.Minute
			},
		},
		{
			name:      "empty title",
			mutate:    func(c *AppConfig) { c.Page.Title = " " },
			wantField: "page.title",
		},
		{
			name: "metrics on same address",
			mutate: func(c *AppConfig) {
				c.Metrics.Enabled = true
				c.Metrics.ListenAddr = c.Server.ListenAddr
			},
			wantField: "metrics.listenAddr",
		},
		{
			name:   "metrics address ignored when disabled",
			mutate: func(c *AppConfig) { c.Metrics.ListenAddr = "" },
		},
		{
			name: "unknown exporter",
			mutate: func(c *AppConfig) {
				c.Telemetry.Enabled = true
				c.Telemetry.Exporter = "zipkin"
			},
			wantField: "telemetry.exporter",
		},
		{
			name:      "sampling rate out of range",
			mutate:    func(c *AppConfig) { c.Telemetry.SamplingRate = 1.5 },
			wantField: "telemetry.samplingRate",
		},
		{
			name:      "rate limit zero",
			mutate:    func(c *AppConfig) { c.RateLimit.RequestsPerMinute = 0 },
			wantField: "rateLimit.requestsPerMinute",
		},
		{
			name: "rate limit ignored when disabled",
			mutate: func(c *AppConfig) {
				c.RateLimit.Enabled = false
				c.RateLimit.RequestsPerMinute = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := Validate(cfg)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantField)
			}
		})
	}
}
