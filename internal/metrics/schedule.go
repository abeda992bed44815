// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors for the schedule service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream fetch metrics
	scheduleFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagskra_schedule_fetch_total",
		Help: "Schedule fetches by outcome",
	}, []string{"outcome"}) // outcome=success|fetch|decode|field|unknown

	scheduleFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dagskra_schedule_fetch_duration_seconds",
		Help:    "Schedule fetch latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"outcome"})

	scheduleListings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dagskra_schedule_listings",
		Help: "Number of listings in the last successful fetch",
	})

	scheduleListingsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dagskra_schedule_listings_by_status",
		Help: "Listings per display status in the last successful fetch",
	}, []string{"status"}) // status=live|repeat|standard

	scheduleLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dagskra_schedule_last_success_timestamp_seconds",
		Help: "Unix time of the last successful schedule fetch",
	})

	// Page metrics
	scheduleFallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagskra_schedule_fallback_total",
		Help: "Pages rendered with an empty schedule because the fetch failed",
	}, []string{"kind"})

	templateRenderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagskra_template_render_errors_total",
		Help: "Template executions that failed",
	}, []string{"template"})

	staticDeniedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagskra_static_denied_total",
		Help: "Static asset requests refused by reason",
	}, []string{"reason"}) // reason=method|traversal|directory|not_found
)

// RecordScheduleFetch records one fetch attempt.
func RecordScheduleFetch(outcome string, d time.Duration) {
	scheduleFetchTotal.WithLabelValues(outcome).Inc()
	scheduleFetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordScheduleListings publishes the shape of the last successful schedule.
// byStatus is keyed by status name.
func RecordScheduleListings(total int, byStatus map[string]int) {
	scheduleListings.Set(float64(total))
	for status, n := range byStatus {
		scheduleListingsByStatus.WithLabelValues(status).Set(float64(n))
	}
	scheduleLastSuccess.SetToCurrentTime()
}

// IncScheduleFallback counts a page served with an empty schedule.
func IncScheduleFallback(kind string) {
	scheduleFallbackTotal.WithLabelValues(kind).Inc()
}

// IncTemplateRenderError counts a failed template execution.
func IncTemplateRenderError(template string) {
	templateRenderErrors.WithLabelValues(template).Inc()
}

// IncStaticDenied counts a refused static asset request.
func IncStaticDenied(reason string) {
	staticDeniedTotal.WithLabelValues(reason).Inc()
}
