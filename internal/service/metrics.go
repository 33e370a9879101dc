package service

import "sync/atomic"

// Metrics tracks orchestrator counters. All methods are safe for
// concurrent use.
type Metrics struct {
	queries  atomic.Int64
	blocked  atomic.Int64
	failures atomic.Int64
}

func (m *Metrics) RecordQuery()   { m.queries.Add(1) }
func (m *Metrics) RecordBlock()   { m.blocked.Add(1) }
func (m *Metrics) RecordFailure() { m.failures.Add(1) }

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Queries  int64 `json:"queries_total"`
	Blocked  int64 `json:"queries_blocked"`
	Failures int64 `json:"queries_failed"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Queries:  m.queries.Load(),
		Blocked:  m.blocked.Load(),
		Failures: m.failures.Load(),
	}
}
