// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PhaseReport holds per-phase counters of a sync run.
type PhaseReport struct {
	// Phase is the human-readable phase name.
	Phase string
	// Pending is the number of work units found unresolved at phase start.
	Pending int
	// Committed counts units whose result was durably recorded.
	Committed int
	// Recovered counts units committed after a recognised remote error.
	Recovered int
	// Skipped counts units dropped because of a local (fatal) problem.
	Skipped int
	// Exhausted counts units dropped after running out of retries.
	Exhausted int
	// Deferred counts units that cannot be processed until an earlier phase
	// resolves them (e.g. a member photo that is not uploaded yet).
	Deferred int
}

// SyncReport aggregates the phase reports of one engine run.
type SyncReport struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Phases   []PhaseReport
}

// Duration returns the wall-clock duration of the run.
func (r SyncReport) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Committed returns the number of commits across all phases.
func (r SyncReport) Committed() int {
	total := 0
	for _, p := range r.Phases {
		total += p.Committed + p.Recovered
	}
	return total
}

// ItemStatus is the fate of one work unit within a phase.
type ItemStatus string

const (
	ItemCommitted ItemStatus = "committed"
	ItemRecovered ItemStatus = "recovered"
	ItemSkipped   ItemStatus = "skipped"
	ItemExhausted ItemStatus = "exhausted"
	ItemDeferred  ItemStatus = "deferred"
)

// ItemEvent reports the outcome of one work unit for progress output.
type ItemEvent struct {
	Phase  string
	ItemID string
	Status ItemStatus
	// Detail is a short human-readable note: the remote ID on commit, the
	// reason on skip.
	Detail string
}

// Count adds one unit with status s to the report.
func (r *PhaseReport) Count(s ItemStatus) {
	switch s {
	case ItemCommitted:
		r.Committed++
	case ItemRecovered:
		r.Recovered++
	case ItemSkipped:
		r.Skipped++
	case ItemExhausted:
		r.Exhausted++
	case ItemDeferred:
		r.Deferred++
	}
}
