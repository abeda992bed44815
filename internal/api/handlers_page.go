// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"

	"github.com/ManuGH/dagskra/internal/epg"
	"github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/metrics"
	"github.com/ManuGH/dagskra/internal/ruv"
)

// handleIndex renders the full page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.Get()
	sched := s.loadSchedule(r.Context())

	s.render(w, r, templateIndex, pageData{
		Author:   cfg.Page.Author,
		Email:    cfg.Page.Email,
		Title:    cfg.Page.Title,
		Today:    sched.Today(s.now()),
		Listings: sched,
	})
}

// handleSchedule renders only the listing table.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, templateSchedule, pageData{
		Listings: s.loadSchedule(r.Context()),
	})
}

// loadSchedule fetches the schedule under the configured upstream timeout.
// Any failure degrades to an empty schedule.
func (s *Server) loadSchedule(ctx context.Context) epg.Schedule {
	timeout := s.cfg.Get().Upstream.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sched, err := s.currentFetcher().FetchSchedule(ctx)
	if s.observer != nil {
		s.observer.Observe(err)
	}
	if err != nil {
		kind := ruv.Kind(err)
		metrics.IncScheduleFallback(kind)
		log.WithComponentFromContext(ctx, "api").Warn().
			Err(err).
			Str(log.FieldEvent, "schedule.fallback").
			Str(log.FieldErrorKind, kind).
			Msg("schedule unavailable, rendering empty schedule")
		return epg.Schedule{}
	}
	return sched
}
