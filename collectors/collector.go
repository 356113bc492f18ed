// Package collectors defines the sampling contract for port-pulse.
// A sampler produces one measurement of a single process per call;
// the monitor loop owns scheduling and history.
package collectors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sample is one CPU/memory measurement of the monitored process.
// A Sample is immutable once created.
type Sample struct {
	// Timestamp records when the measurement completed.
	Timestamp time.Time `json:"timestamp"`

	// CPUPercent is the process CPU usage over the settle interval.
	// Always non-negative; the upper clamp depends on the sampler's
	// configured CPU scale.
	CPUPercent float64 `json:"cpu_percent"`

	// MemoryBytes is the resident set size at measurement time.
	MemoryBytes uint64 `json:"memory_bytes"`
}

// Sampler produces measurements for a single target process.
type Sampler interface {
	// Name returns the sampler's identifier (e.g. "procstat").
	Name() string

	// Sample takes one measurement. It may block for the sampler's
	// settle interval, so callers that need a responsive event loop
	// should run it off the main goroutine.
	//
	// A wrapped ErrProcessGone means the target vanished and the
	// session cannot continue. A *TransientError means this one
	// measurement failed but the next may succeed.
	Sample(ctx context.Context) (Sample, error)
}

// ErrProcessGone indicates the monitored process no longer exists.
// Fatal to the monitoring session; never retried.
var ErrProcessGone = errors.New("process no longer exists")

// TransientError wraps a single failed read that does not invalidate
// the session. The monitor loop logs it, skips the tick, and continues.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient measurement failure (%s): %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err represents a recoverable measurement
// failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
