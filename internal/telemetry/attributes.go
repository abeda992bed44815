// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPURLKey        = "http.url"

	// Schedule attributes
	ScheduleListingsKey = "schedule.listings"
	ScheduleLiveKey     = "schedule.live"
	ScheduleRepeatKey   = "schedule.repeat"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPClientAttributes creates span attributes for an outbound request.
func HTTPClientAttributes(method, url string, statusCode int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPURLKey, url),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int(HTTPStatusCodeKey, statusCode))
	}
	return attrs
}

// ScheduleAttributes creates schedule-related span attributes.
func ScheduleAttributes(listings, live, repeat int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ScheduleListingsKey, listings),
		attribute.Int(ScheduleLiveKey, live),
		attribute.Int(ScheduleRepeatKey, repeat),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
