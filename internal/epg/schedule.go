// SPDX-License-Identifier: MIT

package epg

import (
	"slices"
	"time"
)

// Schedule is an ordered sequence of listings. The order is the upstream
// broadcast order; Sorted provides the natural ordering when needed.
type Schedule []Listing

// Len returns the number of listings.
func (s Schedule) Len() int { return len(s) }

// Sorted returns a copy ordered by Listing.Compare. The receiver is not modified.
func (s Schedule) Sorted() Schedule {
	out := slices.Clone(s)
	slices.SortStableFunc(out, Listing.Compare)
	return out
}

// StatusCounts tallies listings per display status.
func (s Schedule) StatusCounts() map[Status]int {
	counts := map[Status]int{
		StatusStandard: 0,
		StatusRepeat:   0,
		StatusLive:     0,
	}
	for _, l := range s {
		counts[l.Status()]++
	}
	return counts
}

// Today returns the date heading for the schedule: the first listing's date,
// or now formatted the same way when the schedule is empty.
func (s Schedule) Today(now time.Time) string {
	if len(s) > 0 {
		return s[0].Date()
	}
	return now.Format(dateLayout)
}
