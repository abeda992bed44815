// SPDX-License-Identifier: MIT

package ruv

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/ManuGH/dagskra/internal/epg"
)

// MockPath is the path the mock serves the schedule on.
const MockPath = "/tv/ruv"

// MockServer provides a configurable schedule feed for tests and local runs.
type MockServer struct {
	*httptest.Server

	mu         sync.RWMutex
	schedule   epg.Schedule
	rawBody    []byte
	status     int
	delay      time.Duration
	failures   int
	requests   int
	lastAccept string
}

// NewMockServer starts a mock feed preloaded with DefaultMockSchedule.
func NewMockServer() *MockServer {
	mock := &MockServer{}
	mock.Reset()

	mux := http.NewServeMux()
	mux.HandleFunc(MockPath, mock.handleSchedule)
	mock.Server = httptest.NewServer(mux)
	return mock
}

// BaseURL returns the URL a Client should be pointed at.
func (m *MockServer) BaseURL() string {
	return m.Server.URL + MockPath
}

// DefaultMockSchedule returns a realistic evening of listings.
func DefaultMockSchedule() epg.Schedule {
	at := func(h, min int) time.Time { return time.Date(2023, 5, 1, h, min, 0, 0, time.UTC) }
	return epg.Schedule{
		epg.NewListing(at(17, 30), "Táknmálsfréttir", "", false),
		epg.NewListing(at(18, 1), "KrakkaRÚV", "Barnaefni af ýmsu tagi.", false),
		epg.NewListing(at(19, 0), "Fréttir", "Fréttir og veður.", true),
		epg.NewListing(at(19, 35), "Kastljós", "Fréttaskýringaþáttur um málefni líðandi stundar.", false),
		epg.NewListing(at(20, 5), "Landinn", "Þáttur um mannlíf á landsbyggðinni. e.", false),
		epg.NewListing(at(21, 0), "Síðasti séns", "", false),
	}
}

// Reset restores the default schedule and clears failures, delays and counters.
func (m *MockServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = DefaultMockSchedule()
	m.rawBody = nil
	m.status = http.StatusOK
	m.delay = 0
	m.failures = 0
	m.requests = 0
	m.lastAccept = ""
}

// SetSchedule replaces the listings served under "results".
func (m *MockServer) SetSchedule(s epg.Schedule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = s
	m.rawBody = nil
}

// SetRawResponse serves body verbatim with the given status.
func (m *MockServer) SetRawResponse(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.rawBody = []byte(body)
}

// SetDelay delays every response by d, or until the request is cancelled.
func (m *MockServer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// SetFailures makes the next count requests fail with 503.
func (m *MockServer) SetFailures(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = count
}

// Requests returns the number of requests served.
func (m *MockServer) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests
}

// LastAccept returns the Accept header of the most recent request.
func (m *MockServer) LastAccept() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAccept
}

func (m *MockServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests++
	m.lastAccept = r.Header.Get("Accept")
	delay := m.delay
	fail := m.failures > 0
	if fail {
		m.failures--
	}
	status := m.status
	raw := m.rawBody
	schedule := m.schedule
	m.mu.Unlock()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if fail {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if raw != nil {
		w.WriteHeader(status)
		_, _ = w.Write(raw)
		return
	}

	if schedule == nil {
		schedule = epg.Schedule{}
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"results": schedule})
}
