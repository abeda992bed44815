// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func sampledSpanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	if err != nil {
		t.Fatal(err)
	}
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	if err != nil {
		t.Fatal(err)
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestContextWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		requestID string
		want      string
	}{
		{
			name:      "nil context",
			ctx:       nil,
			requestID: "test-id-123",
			want:      "test-id-123",
		},
		{
			name:      "background context",
			ctx:       context.Background(),
			requestID: "req-456",
			want:      "req-456",
		},
		{
			name:      "empty request ID",
			ctx:       context.Background(),
			requestID: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.requestID) //nolint:staticcheck // nil ctx is part of the contract
			if got := RequestIDFromContext(ctx); got != tt.want {
				t.Errorf("RequestIDFromContext() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
	if got := RequestIDFromContext(nil); got != "" { //nolint:staticcheck // nil ctx is part of the contract
		t.Errorf("expected empty request ID for nil context, got %q", got)
	}
}

func TestWithContext_AddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := ContextWithRequestID(sampledSpanContext(t), "req-123")
	WithContext(ctx, l).Info().Msg("hello")

	entry := decodeLine(t, &buf)
	if entry[FieldRequestID] != "req-123" {
		t.Errorf("expected request_id req-123, got %v", entry[FieldRequestID])
	}
	if entry[FieldTraceID] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("unexpected trace_id %v", entry[FieldTraceID])
	}
	if entry[FieldSpanID] != "00f067aa0ba902b7" {
		t.Errorf("unexpected span_id %v", entry[FieldSpanID])
	}
}

func TestWithContext_EmptyContextKeepsLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	WithContext(context.Background(), l).Info().Msg("hello")

	entry := decodeLine(t, &buf)
	if _, ok := entry[FieldRequestID]; ok {
		t.Error("did not expect request_id")
	}
	if _, ok := entry[FieldTraceID]; ok {
		t.Error("did not expect trace_id")
	}
}

func TestWithTraceContext(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Output: &buf, Level: "debug"})

	WithTraceContext(context.Background()).Info().Msg("no trace")
	entry := decodeLine(t, &buf)
	if _, ok := entry[FieldTraceID]; ok {
		t.Error("did not expect trace_id without a span")
	}

	buf.Reset()
	noopCtx, span := noop.NewTracerProvider().Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	WithTraceContext(noopCtx).Info().Msg("noop trace")
	entry = decodeLine(t, &buf)
	if _, ok := entry[FieldTraceID]; ok {
		t.Error("did not expect trace_id for a noop span")
	}

	buf.Reset()
	WithTraceContext(sampledSpanContext(t)).Info().Msg("with trace")
	entry = decodeLine(t, &buf)
	if traceID, ok := entry[FieldTraceID].(string); !ok || traceID == "" {
		t.Error("Expected trace_id in log output")
	}
	if spanID, ok := entry[FieldSpanID].(string); !ok || spanID == "" {
		t.Error("Expected span_id in log output")
	}
}

func TestWithComponentFromContext(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-9")
	l := WithComponentFromContext(ctx, "ruv")
	l.Info().Msg("x")

	entry := decodeLine(t, &buf)
	if entry[FieldComponent] != "ruv" {
		t.Errorf("expected component ruv, got %v", entry[FieldComponent])
	}
	if entry[FieldRequestID] != "req-9" {
		t.Errorf("expected request_id req-9, got %v", entry[FieldRequestID])
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(nil); l == nil { //nolint:staticcheck // nil ctx is part of the contract
		t.Fatal("expected base logger for nil context")
	}

	if l := FromContext(context.Background()); l.GetLevel() == zerolog.Disabled {
		t.Error("expected base logger when context carries none")
	}

	var buf bytes.Buffer
	stored := zerolog.New(&buf).With().Str("marker", "ctx").Logger()
	ctx := stored.WithContext(context.Background())
	FromContext(ctx).Info().Msg("x")

	entry := decodeLine(t, &buf)
	if entry["marker"] != "ctx" {
		t.Errorf("expected logger from context, got %v", entry)
	}
}
