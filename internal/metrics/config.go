// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dagskra_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})

	configReloadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagskra_config_reload_total",
		Help: "Configuration reload attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// IncConfigValidationError counts a rejected configuration.
func IncConfigValidationError() {
	configValidationErrors.Inc()
}

// IncConfigReload counts a reload attempt.
func IncConfigReload(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	configReloadTotal.WithLabelValues(outcome).Inc()
}
