// Package stats holds the pure productivity computations: interval union,
// peak concurrency and per-day aggregation. Nothing here touches storage;
// callers load records and sessions and pass them in.
package stats

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) span of work.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Duration() time.Duration {
	if iv.End.Before(iv.Start) {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// MergeIntervals returns the union of in as disjoint intervals sorted by
// start. Intervals whose end precedes their start are dropped. Touching
// intervals (next.Start == current.End) stay separate; their union length
// is the same either way.
func MergeIntervals(in []Interval) []Interval {
	sorted := make([]Interval, 0, len(in))
	for _, iv := range in {
		if iv.End.Before(iv.Start) {
			continue
		}
		sorted = append(sorted, iv)
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start.Before(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// ActiveDuration is the total time covered by at least one interval.
func ActiveDuration(in []Interval) time.Duration {
	var total time.Duration
	for _, iv := range MergeIntervals(in) {
		total += iv.Duration()
	}
	return total
}

// SumDuration adds interval lengths without collapsing overlap.
func SumDuration(in []Interval) time.Duration {
	var total time.Duration
	for _, iv := range in {
		total += iv.Duration()
	}
	return total
}
