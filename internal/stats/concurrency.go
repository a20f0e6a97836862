package stats

import (
	"sort"
	"time"
)

type sweepEvent struct {
	at    time.Time
	delta int
}

// Peak describes the busiest moment found by MaxConcurrent.
type Peak struct {
	Count int
	// At is the first instant the peak count was reached.
	At time.Time
}

// MaxConcurrent returns the largest number of simultaneously open intervals.
// Starts are processed before ends at the same instant, so an interval
// ending exactly when another begins still counts as overlapping.
func MaxConcurrent(in []Interval) int {
	return PeakConcurrency(in).Count
}

// PeakConcurrency is MaxConcurrent plus the instant the peak began.
func PeakConcurrency(in []Interval) Peak {
	events := make([]sweepEvent, 0, len(in)*2)
	for _, iv := range in {
		if iv.End.Before(iv.Start) {
			continue
		}
		events = append(events, sweepEvent{at: iv.Start, delta: +1}, sweepEvent{at: iv.End, delta: -1})
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		return events[i].delta > events[j].delta
	})

	var peak Peak
	running := 0
	for _, ev := range events {
		running += ev.delta
		if running > peak.Count {
			peak.Count = running
			peak.At = ev.at
		}
	}
	return peak
}
