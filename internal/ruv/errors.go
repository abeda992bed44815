// SPDX-License-Identifier: MIT

package ruv

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrFetch covers transport failures, timeouts and non-2xx responses.
	ErrFetch = errors.New("ruv: schedule fetch failed")
	// ErrDecode means the body was not a JSON object with a results array.
	ErrDecode = errors.New("ruv: schedule response malformed")
	// ErrFieldParse means a listing inside results was invalid.
	ErrFieldParse = errors.New("ruv: listing field invalid")
)

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 256

// Error carries the failed operation, upstream status and a body excerpt
// alongside one of the sentinels above.
type Error struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // underlying cause (net.Error, *json.SyntaxError, *epg.FieldError, ...)
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Sentinel, e.Operation)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Sentinel != nil {
		errs = append(errs, e.Sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func wrapError(op string, sentinel error, status int, body []byte, err error) *Error {
	excerpt := string(body)
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		excerpt = string(body[:cut]) + "..."
	}
	return &Error{
		Sentinel:  sentinel,
		Operation: op,
		Status:    status,
		Body:      excerpt,
		Err:       err,
	}
}

// Kind classifies err as "fetch", "decode", "field" or "unknown" for logs
// and metric labels. A nil error has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrFieldParse):
		return "field"
	default:
		return "unknown"
	}
}
