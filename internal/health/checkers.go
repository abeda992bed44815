// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ManuGH/dagskra/internal/ruv"
)

// DirChecker checks that a directory exists and can be listed.
type DirChecker struct {
	name string
	path string
}

// NewDirChecker creates a checker for directory existence
func NewDirChecker(name, path string) *DirChecker {
	return &DirChecker{
		name: name,
		path: path,
	}
}

func (c *DirChecker) Name() string {
	return c.name
}

func (c *DirChecker) Check(_ context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "not configured (optional)",
		}
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{
				Status:  StatusUnhealthy,
				Error:   "directory not found",
				Message: c.path,
			}
		}
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}

	if !info.IsDir() {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "expected directory, got file",
		}
	}

	entries, err := os.ReadDir(c.path)
	if err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}
	if len(entries) == 0 {
		return CheckResult{
			Status:  StatusDegraded,
			Message: "directory is empty",
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Message: "directory exists and readable",
	}
}

// FetchTracker remembers the outcome of the most recent schedule fetch.
// The zero value is ready to use.
type FetchTracker struct {
	mu        sync.RWMutex
	lastOK    time.Time
	lastErr   string
	lastKind  string
	attempted bool
}

// Observe records a fetch outcome; a nil error marks a success.
func (t *FetchTracker) Observe(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempted = true
	if err != nil {
		t.lastErr = err.Error()
		t.lastKind = ruv.Kind(err)
		return
	}
	t.lastOK = time.Now()
	t.lastErr = ""
	t.lastKind = ""
}

// LastFetch returns the last success time, the last error (empty after a
// success) and whether any fetch has been observed.
func (t *FetchTracker) LastFetch() (lastOK time.Time, lastErr string, attempted bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastOK, t.lastErr, t.attempted
}

// UpstreamChecker reports the schedule feed state from a FetchTracker.
// A failing feed degrades the service but never makes it unready: pages
// still render with an empty schedule.
type UpstreamChecker struct {
	tracker  *FetchTracker
	staleAge time.Duration
}

// NewUpstreamChecker creates a checker over tracker. Successes older than
// staleAge are reported as degraded; zero disables the age check.
func NewUpstreamChecker(tracker *FetchTracker, staleAge time.Duration) *UpstreamChecker {
	return &UpstreamChecker{tracker: tracker, staleAge: staleAge}
}

func (c *UpstreamChecker) Name() string {
	return "upstream"
}

func (c *UpstreamChecker) Check(_ context.Context) CheckResult {
	lastOK, lastErr, attempted := c.tracker.LastFetch()

	if !attempted {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "no schedule fetch yet",
		}
	}

	if lastErr != "" {
		return CheckResult{
			Status:  StatusDegraded,
			Error:   lastErr,
			Message: "last schedule fetch failed",
		}
	}

	if c.staleAge > 0 && time.Since(lastOK) > c.staleAge {
		return CheckResult{
			Status:  StatusDegraded,
			Message: "last successful fetch is stale",
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Message: "last schedule fetch successful",
	}
}
