// SPDX-License-Identifier: MIT

package ruv

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ManuGH/dagskra/internal/epg"
)

const opDecode = "decode"

var (
	errMissingResults = errors.New(`missing "results" array`)
	errResultsNotList = errors.New(`"results" is not an array`)
)

type envelope struct {
	Results *json.RawMessage `json:"results"`
}

// decodeSchedule turns a response body into a schedule, keeping the
// upstream order. Any invalid listing fails the whole schedule.
func decodeSchedule(body []byte) (epg.Schedule, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapError(opDecode, ErrDecode, 0, nil, err)
	}
	if env.Results == nil {
		return nil, wrapError(opDecode, ErrDecode, 0, nil, errMissingResults)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(*env.Results, &raw); err != nil {
		return nil, wrapError(opDecode, ErrDecode, 0, nil, fmt.Errorf("%w: %v", errResultsNotList, err))
	}

	sched := make(epg.Schedule, 0, len(raw))
	for i, item := range raw {
		var l epg.Listing
		if err := l.UnmarshalJSON(item); err != nil {
			return nil, wrapError(opDecode, ErrFieldParse, 0, nil, fmt.Errorf("results[%d]: %w", i, err))
		}
		sched = append(sched, l)
	}
	return sched, nil
}
