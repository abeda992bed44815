// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package ruv fetches the RÚV television schedule from the apis.is feed.
package ruv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/dagskra/internal/epg"
	xglog "github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/metrics"
	"github.com/ManuGH/dagskra/internal/platform/httpx"
	platformnet "github.com/ManuGH/dagskra/internal/platform/net"
	"github.com/ManuGH/dagskra/internal/telemetry"
)

const (
	// DefaultBaseURL is the schedule feed endpoint.
	DefaultBaseURL = "https://apis.is/tv/ruv"

	// DefaultTimeout bounds a single fetch when no client is supplied.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
	opFetch      = "fetch"
	tracerName   = "github.com/ManuGH/dagskra/internal/ruv"
)

// Options configures a Client. The zero value targets DefaultBaseURL.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client retrieves the schedule. It holds no per-fetch state and is safe
// for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a client for DefaultBaseURL.
func New() *Client {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a client configured by opts.
func NewWithOptions(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = httpx.NewTracedClient(timeout)
	}

	l := xglog.WithComponent("ruv")
	if opts.Logger != nil {
		l = opts.Logger.With().Str(xglog.FieldComponent, "ruv").Logger()
	}

	return &Client{baseURL: base, http: hc, log: l}
}

// BaseURL returns the endpoint the client fetches from.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchSchedule performs one GET against the feed and returns the listings in
// upstream order. It never returns a partial schedule: any failure yields a
// nil schedule and an *Error wrapping ErrFetch, ErrDecode or ErrFieldParse.
func (c *Client) FetchSchedule(ctx context.Context) (epg.Schedule, error) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "ruv.FetchSchedule",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(telemetry.HTTPClientAttributes(http.MethodGet, c.baseURL, 0)...),
	)
	defer span.End()

	start := time.Now()
	sched, err := c.fetch(ctx, span)
	elapsed := time.Since(start)

	l := xglog.WithContext(ctx, c.log)
	if err != nil {
		kind := Kind(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		span.SetAttributes(telemetry.ErrorAttributes(kind)...)
		metrics.RecordScheduleFetch(kind, elapsed)
		l.Debug().
			Err(err).
			Str(xglog.FieldEvent, "schedule.fetch_failed").
			Str(xglog.FieldErrorKind, kind).
			Dur(xglog.FieldDurationMS, elapsed).
			Msg("schedule fetch failed")
		return nil, err
	}

	counts := sched.StatusCounts()
	byStatus := make(map[string]int, len(counts))
	for status, n := range counts {
		byStatus[status.String()] = n
	}
	metrics.RecordScheduleFetch("success", elapsed)
	metrics.RecordScheduleListings(sched.Len(), byStatus)
	span.SetAttributes(telemetry.ScheduleAttributes(sched.Len(), counts[epg.StatusLive], counts[epg.StatusRepeat])...)
	span.SetStatus(codes.Ok, "")

	l.Debug().
		Str(xglog.FieldEvent, "schedule.fetched").
		Int(xglog.FieldListings, sched.Len()).
		Dur(xglog.FieldDurationMS, elapsed).
		Msg("schedule fetched")
	return sched, nil
}

func (c *Client) fetch(ctx context.Context, span trace.Span) (epg.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, wrapError(opFetch, ErrFetch, 0, nil, err)
	}
	req.Header.Set("Accept", "application/json")

	xglog.WithContext(ctx, c.log).Debug().
		Str(xglog.FieldEvent, "schedule.fetch_start").
		Str(xglog.FieldBaseURL, platformnet.SanitizeURL(c.baseURL)).
		Msg("fetching schedule data")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(opFetch, ErrFetch, 0, nil, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(telemetry.HTTPClientAttributes(http.MethodGet, c.baseURL, resp.StatusCode)...)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return nil, wrapError(opFetch, ErrFetch, resp.StatusCode, body, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, wrapError(opFetch, ErrFetch, resp.StatusCode, nil, err)
	}
	if len(body) > maxBodyBytes {
		return nil, wrapError(opDecode, ErrDecode, resp.StatusCode, nil,
			fmt.Errorf("response exceeds %d bytes", maxBodyBytes))
	}

	return decodeSchedule(body)
}
