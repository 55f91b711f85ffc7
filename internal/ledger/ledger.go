// Package ledger reconciles settled financial aid into display totals. All
// functions are pure aggregations over an immutable snapshot of care events;
// scheduled-but-undistributed amounts never enter any total.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one financial_aid care event as read from the store.
type Entry struct {
	EventID   uuid.UUID
	MemberID  uuid.UUID
	AidType   string
	Amount    float64
	GivenOn   time.Time
	Completed bool
	Ignored   bool
}

// TypeStats aggregates settled aid for one aid type.
type TypeStats struct {
	TotalAmount float64 `json:"total_amount"`
	Count       int     `json:"count"`
	Average     float64 `json:"average"`
}

// Summary is the reconciled ledger view returned by the summary endpoint.
type Summary struct {
	TotalAmount float64              `json:"total_amount"`
	TotalCount  int                  `json:"total_count"`
	ByType      map[string]TypeStats `json:"by_type"`
}

// Settled reports whether an entry counts toward totals: distributed and not
// ignored. Pending and ignored aid stays out of the ledger.
func (e Entry) Settled() bool {
	return e.Completed && !e.Ignored
}

// TotalGiven sums settled aid amounts across the snapshot.
func TotalGiven(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if e.Settled() {
			total += e.Amount
		}
	}
	return total
}

// Summarize computes total and per-type aggregates from the snapshot. Types
// with zero settled entries report an average of zero.
func Summarize(entries []Entry) Summary {
	summary := Summary{ByType: map[string]TypeStats{}}
	for _, e := range entries {
		if !e.Settled() {
			continue
		}
		summary.TotalAmount += e.Amount
		summary.TotalCount++

		stats := summary.ByType[e.AidType]
		stats.TotalAmount += e.Amount
		stats.Count++
		summary.ByType[e.AidType] = stats
	}
	for aidType, stats := range summary.ByType {
		if stats.Count > 0 {
			stats.Average = stats.TotalAmount / float64(stats.Count)
		}
		summary.ByType[aidType] = stats
	}
	return summary
}

// MemberTotals returns settled aid per member for roster views.
func MemberTotals(entries []Entry) map[uuid.UUID]float64 {
	totals := map[uuid.UUID]float64{}
	for _, e := range entries {
		if e.Settled() {
			totals[e.MemberID] += e.Amount
		}
	}
	return totals
}

// FilterRange keeps entries whose given date falls within [from, to]. A zero
// bound is open on that side.
func FilterRange(entries []Entry, from, to time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() && e.GivenOn.Before(from) {
			continue
		}
		if !to.IsZero() && e.GivenOn.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
