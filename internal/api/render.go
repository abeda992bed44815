// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/ManuGH/dagskra/internal/epg"
	"github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/metrics"
)

const (
	templateIndex    = "index.html"
	templateSchedule = "schedule.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is the model handed to the page templates.
type pageData struct {
	Author   string
	Email    string
	Title    string
	Today    string
	Listings epg.Schedule
}

// render executes the named template into a buffer so a failure never
// leaves a half-written page on the wire.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		metrics.IncTemplateRenderError(name)
		log.WithComponentFromContext(r.Context(), "api").Error().
			Err(err).
			Str(log.FieldEvent, "template.render_failed").
			Str("template", name).
			Msg("failed to render template")

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to render template: " + err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
