// Package perf records wall-clock durations of labelled operations.
package perf

import (
	"sort"
	"sync"
	"time"
)

// Stats summarises the recorded durations of one label.
type Stats struct {
	Count int           `json:"count"`
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
}

// Tracker accumulates durations per label. It is safe for concurrent use. A
// nil Tracker runs operations without timing them.
type Tracker struct {
	mu      sync.Mutex
	now     func() time.Time
	samples map[string][]time.Duration
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:     time.Now,
		samples: make(map[string][]time.Duration),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track runs fn and records its duration under label, whether or not fn
// fails. The error from fn is returned unchanged.
func (t *Tracker) Track(label string, fn func() error) error {
	_, err := Measure(t, label, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Measure runs fn and records its duration under label on t.
func Measure[T any](t *Tracker, label string, fn func() (T, error)) (T, error) {
	if t == nil {
		return fn()
	}
	start := t.now()
	defer func() {
		t.record(label, t.now().Sub(start))
	}()
	return fn()
}

func (t *Tracker) record(label string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples[label] = append(t.samples[label], d)
}

// Report returns per-label statistics.
func (t *Tracker) Report() map[string]Stats {
	report := make(map[string]Stats)
	if t == nil {
		return report
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for label, durations := range t.samples {
		if len(durations) == 0 {
			continue
		}
		stats := Stats{Count: len(durations), Min: durations[0], Max: durations[0]}
		var total time.Duration
		for _, d := range durations {
			total += d
			if d < stats.Min {
				stats.Min = d
			}
			if d > stats.Max {
				stats.Max = d
			}
		}
		stats.Avg = total / time.Duration(len(durations))
		report[label] = stats
	}
	return report
}

// Labels returns the recorded labels in sorted order.
func (t *Tracker) Labels() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	labels := make([]string, 0, len(t.samples))
	for label := range t.samples {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Reset discards all samples.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = make(map[string][]time.Duration)
}
