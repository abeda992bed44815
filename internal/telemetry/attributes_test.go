// SPDX-License-Identifier: MIT

package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestHTTPClientAttributes(t *testing.T) {
	attrs := HTTPClientAttributes("GET", "https://apis.is/tv/ruv", 200)

	if len(attrs) != 3 {
		t.Fatalf("Expected 3 attributes, got %d", len(attrs))
	}

	verifyAttribute(t, attrs, HTTPMethodKey, "GET")
	verifyAttribute(t, attrs, HTTPURLKey, "https://apis.is/tv/ruv")
	verifyIntAttribute(t, attrs, HTTPStatusCodeKey, 200)
}

func TestHTTPClientAttributes_NoStatus(t *testing.T) {
	attrs := HTTPClientAttributes("GET", "https://apis.is/tv/ruv", 0)

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes without a status, got %d", len(attrs))
	}
}

func TestScheduleAttributes(t *testing.T) {
	attrs := ScheduleAttributes(12, 1, 4)

	verifyIntAttribute(t, attrs, ScheduleListingsKey, 12)
	verifyIntAttribute(t, attrs, ScheduleLiveKey, 1)
	verifyIntAttribute(t, attrs, ScheduleRepeatKey, 4)
}

func TestErrorAttributes(t *testing.T) {
	attrs := ErrorAttributes("decode")

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}
	verifyAttribute(t, attrs, ErrorTypeKey, "decode")

	for _, attr := range attrs {
		if string(attr.Key) == ErrorKey && !attr.Value.AsBool() {
			t.Error("Expected error attribute to be true")
		}
	}
}

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key, expectedValue string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != expectedValue {
				t.Errorf("Attribute %s: expected %q, got %q", key, expectedValue, attr.Value.AsString())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}

func verifyIntAttribute(t *testing.T, attrs []attribute.KeyValue, key string, expectedValue int) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsInt64() != int64(expectedValue) {
				t.Errorf("Attribute %s: expected %d, got %d", key, expectedValue, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
