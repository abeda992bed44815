// SPDX-License-Identifier: MIT

package epg

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required listing key is absent or null.
	ErrMissingField = errors.New("required field missing")
	// ErrInvalidListing is returned when a listing is not a JSON object.
	ErrInvalidListing = errors.New("listing is not an object")
)

// FieldError describes a single listing that could not be decoded.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("epg: field %q (%q): %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("epg: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// wireListing mirrors one entry of the upstream "results" array.
// Pointers distinguish absent keys from zero values.
type wireListing struct {
	StartTime   *string `json:"startTime"`
	Title       *string `json:"title"`
	Description *string `json:"description,omitempty"`
	Live        *bool   `json:"live"`
}

// UnmarshalJSON decodes one upstream listing. startTime, title and live are
// required; description may be a string, null or omitted.
func (l *Listing) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return &FieldError{Field: "listing", Err: ErrInvalidListing}
	}

	var w wireListing
	if err := json.Unmarshal(data, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "listing"
			}
			return &FieldError{Field: field, Err: err}
		}
		return &FieldError{Field: "listing", Err: err}
	}

	if w.StartTime == nil {
		return &FieldError{Field: "startTime", Err: ErrMissingField}
	}
	if w.Title == nil {
		return &FieldError{Field: "title", Err: ErrMissingField}
	}
	if w.Live == nil {
		return &FieldError{Field: "live", Err: ErrMissingField}
	}

	start, err := ParseStartTime(*w.StartTime)
	if err != nil {
		return &FieldError{Field: "startTime", Value: *w.StartTime, Err: err}
	}

	var description string
	if w.Description != nil {
		description = *w.Description
	}

	*l = NewListing(start, *w.Title, description, *w.Live)
	return nil
}

// MarshalJSON encodes the listing in the upstream wire shape.
func (l Listing) MarshalJSON() ([]byte, error) {
	start := l.start.Format(StartTimeLayout)
	w := wireListing{
		StartTime: &start,
		Title:     &l.title,
		Live:      &l.live,
	}
	if l.description != "" {
		w.Description = &l.description
	}
	return json.Marshal(w)
}
