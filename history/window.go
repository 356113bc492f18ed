// Package history keeps the bounded sample window for a watch session
// and derives summary statistics from it. The window is owned by a
// single goroutine (the monitor model); it is not safe for concurrent
// use and does not need to be.
package history

import "gitlab.com/tinyland/lab/port-pulse/collectors"

// DefaultCapacity is the number of samples retained by a watch session.
// At the default 1s interval this covers the last minute.
const DefaultCapacity = 60

// Window is a fixed-capacity ring buffer of samples in insertion order.
// Pushing beyond capacity evicts the oldest sample.
type Window struct {
	samples []collectors.Sample
	head    int
	count   int
}

// NewWindow creates a Window with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{
		samples: make([]collectors.Sample, capacity),
	}
}

// Push appends a sample, evicting the oldest when the window is full.
func (w *Window) Push(s collectors.Sample) {
	w.samples[w.head] = s
	w.head = (w.head + 1) % len(w.samples)
	if w.count < len(w.samples) {
		w.count++
	}
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return w.count
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.samples)
}

// Values returns the samples oldest to newest. The returned slice is a
// copy; mutating it does not affect the window.
func (w *Window) Values() []collectors.Sample {
	if w.count == 0 {
		return nil
	}

	result := make([]collectors.Sample, w.count)
	if w.count < len(w.samples) {
		copy(result, w.samples[:w.count])
		return result
	}

	// Full ring: oldest sample sits at head.
	n := copy(result, w.samples[w.head:])
	copy(result[n:], w.samples[:w.head])
	return result
}

// Latest returns the most recent sample, if any.
func (w *Window) Latest() (collectors.Sample, bool) {
	if w.count == 0 {
		return collectors.Sample{}, false
	}
	idx := (w.head - 1 + len(w.samples)) % len(w.samples)
	return w.samples[idx], true
}

// CPUSeries returns the chronological CPU percentages of the last n
// samples (all of them when n <= 0 or n exceeds the count).
func (w *Window) CPUSeries(n int) []float64 {
	values := w.Values()
	values = tail(values, n)
	series := make([]float64, len(values))
	for i, s := range values {
		series[i] = s.CPUPercent
	}
	return series
}

// MemorySeries returns the chronological memory readings, in bytes, of
// the last n samples.
func (w *Window) MemorySeries(n int) []float64 {
	values := w.Values()
	values = tail(values, n)
	series := make([]float64, len(values))
	for i, s := range values {
		series[i] = float64(s.MemoryBytes)
	}
	return series
}

func tail(values []collectors.Sample, n int) []collectors.Sample {
	if n > 0 && n < len(values) {
		return values[len(values)-n:]
	}
	return values
}
