// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

// Package epg provides the programme listing model for the broadcaster schedule.
package epg

import (
	"fmt"
	"strings"
	"time"
)

const (
	// StartTimeLayout is the upstream wire format of a listing's start time.
	// The value carries no zone and is kept as naive wall-clock time.
	StartTimeLayout = "2006-01-02 15:04:05"

	dateLayout = "02.01.2006"
	timeLayout = "15:04"

	// repeatMarker terminates the description of a repeat broadcast.
	repeatMarker = " e."
)

// Status is the display status of a listing.
type Status int

const (
	StatusStandard Status = iota
	StatusRepeat
	StatusLive
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusRepeat:
		return "repeat"
	default:
		return "standard"
	}
}

// Listing is one scheduled programme entry. It is immutable once constructed.
type Listing struct {
	start       time.Time
	title       string
	description string
	live        bool
}

// NewListing builds a listing from already validated fields.
func NewListing(start time.Time, title, description string, live bool) Listing {
	return Listing{
		start:       start,
		title:       title,
		description: description,
		live:        live,
	}
}

// ParseStartTime parses a wire start time. The result is in UTC, which only
// acts as a carrier for the naive wall-clock value.
// Fractional seconds are rejected even though time.Parse tolerates them
// after a seconds field.
func ParseStartTime(s string) (time.Time, error) {
	if i := strings.IndexAny(s, ".,"); i >= 0 {
		return time.Time{}, fmt.Errorf("parsing start time %q: unexpected %q after seconds", s, s[i:])
	}
	return time.ParseInLocation(StartTimeLayout, s, time.UTC)
}

// StartTime returns the parsed start time.
func (l Listing) StartTime() time.Time { return l.start }

// Title returns the programme title without surrounding whitespace.
func (l Listing) Title() string { return strings.TrimSpace(l.title) }

// Date formats the start time as DD.MM.YYYY.
func (l Listing) Date() string { return l.start.Format(dateLayout) }

// Time formats the start time as HH:MM (24-hour).
func (l Listing) Time() string { return l.start.Format(timeLayout) }

// HasDescription reports whether the description has any non-whitespace content.
func (l Listing) HasDescription() bool {
	return strings.TrimSpace(l.description) != ""
}

// Description returns the trimmed description with the repeat marker removed.
func (l Listing) Description() string {
	d := strings.TrimSpace(l.description)
	for strings.HasSuffix(d, repeatMarker) {
		d = strings.TrimSpace(strings.TrimSuffix(d, repeatMarker))
	}
	return d
}

// IsLive reports whether the broadcast is a live transmission.
func (l Listing) IsLive() bool { return l.live }

// IsRepeat reports whether the description carries the repeat marker.
// It ignores the live flag; use Status for display decisions.
func (l Listing) IsRepeat() bool {
	return strings.HasSuffix(strings.TrimSpace(l.description), repeatMarker)
}

// Status derives the display status. Live always wins over repeat.
func (l Listing) Status() Status {
	switch {
	case l.live:
		return StatusLive
	case l.IsRepeat():
		return StatusRepeat
	default:
		return StatusStandard
	}
}

// Compare orders listings by start time, then title, then raw description,
// then the live flag (false first).
func (l Listing) Compare(other Listing) int {
	if c := l.start.Compare(other.start); c != 0 {
		return c
	}
	if c := strings.Compare(l.title, other.title); c != 0 {
		return c
	}
	if c := strings.Compare(l.description, other.description); c != 0 {
		return c
	}
	switch {
	case l.live == other.live:
		return 0
	case !l.live:
		return -1
	default:
		return 1
	}
}
