package sim

import (
	"log"
	"time"
)

// budgetWindow is how often PerfMonitor checks its rolling average
// against the tick budget, and perTickBudget is the per-tick budget
// itself: a warning is logged if the average tick exceeds 16.67ms over
// a 10s window.
const (
	budgetWindow = 10 * time.Second
	perTickBudget = time.Second / 60
)

// PerfMonitor tracks a rolling average tick duration and logs a warning
// once per window if the average exceeds the tick budget. It keeps a
// plain accumulate-then-reset-and-report average rather than a full
// histogram: nothing here needs percentile tracking.
type PerfMonitor struct {
	windowStart    time.Time
	total          time.Duration
	count          int
}

// NewPerfMonitor starts a fresh measurement window at now.
func NewPerfMonitor(now time.Time) *PerfMonitor {
	return &PerfMonitor{windowStart: now}
}

// Observe records one tick's duration and, if the window has elapsed,
// compares the rolling average to the budget and resets.
func (m *PerfMonitor) Observe(now time.Time, d time.Duration) {
	m.total += d
	m.count++

	if now.Sub(m.windowStart) < budgetWindow {
		return
	}

	avg := m.total / time.Duration(m.count)
	if avg > perTickBudget {
		log.Printf("sim: average tick time %v exceeds budget %v over last %v (%d ticks)", avg, perTickBudget, budgetWindow, m.count)
	}

	m.windowStart = now
	m.total = 0
	m.count = 0
}
