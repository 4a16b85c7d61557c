package task

import (
	"sync/atomic"
	"time"
)

// Stats counts worker activity. All methods are safe for concurrent use.
type Stats struct {
	cycles      atomic.Int64
	processed   atomic.Int64
	failed      atomic.Int64
	skipped     atomic.Int64
	fetchErrors atomic.Int64
	lastCycle   atomic.Int64 // unix nanoseconds
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Cycles      int64     `json:"cycles"`
	Processed   int64     `json:"processed"`
	Failed      int64     `json:"failed"`
	Skipped     int64     `json:"skipped"`
	FetchErrors int64     `json:"fetch_errors"`
	LastCycleAt time.Time `json:"last_cycle_at,omitzero"`
}

func (s *Stats) cycleStarted(now time.Time) {
	s.cycles.Add(1)
	s.lastCycle.Store(now.UnixNano())
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Cycles:      s.cycles.Load(),
		Processed:   s.processed.Load(),
		Failed:      s.failed.Load(),
		Skipped:     s.skipped.Load(),
		FetchErrors: s.fetchErrors.Load(),
	}
	if ns := s.lastCycle.Load(); ns != 0 {
		snap.LastCycleAt = time.Unix(0, ns).UTC()
	}
	return snap
}
