// Package procstat samples CPU and memory usage of a single process.
// CPU percentage is derived from two cumulative CPU-time reads separated
// by a short settle interval; memory is the resident set size at the
// second read.
package procstat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
)

const (
	samplerName = "procstat"

	// DefaultSettleInterval is the pause between the two CPU-time reads.
	// A single cumulative read cannot yield a percentage; 200ms is long
	// enough for a stable delta and short enough to stay under typical
	// render intervals.
	DefaultSettleInterval = 200 * time.Millisecond
)

// CPUScale selects the upper clamp applied to CPU percentages.
type CPUScale string

const (
	// ScaleCores clamps at core_count x 100, the most the kernel can
	// report for a multi-threaded process.
	ScaleCores CPUScale = "cores"

	// ScaleSingle clamps at 100 regardless of core count.
	ScaleSingle CPUScale = "single"
)

// Config holds sampler construction parameters.
type Config struct {
	// PID is the target process identifier.
	PID int32

	// SettleInterval overrides DefaultSettleInterval when positive.
	SettleInterval time.Duration

	// CPUScale selects the percentage clamp. Defaults to ScaleCores.
	CPUScale CPUScale

	// Logger receives debug output. Nil means no logging.
	Logger *slog.Logger
}

// Sampler measures one process via gopsutil. It implements
// collectors.Sampler.
type Sampler struct {
	pid        int32
	name       string
	settle     time.Duration
	maxPercent float64
	logger     *slog.Logger

	// Overridable reads for testing.
	readCPUTime func(ctx context.Context) (float64, error)
	readMemory  func(ctx context.Context) (uint64, error)
	pidExists   func(ctx context.Context) (bool, error)
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

// New creates a Sampler for the given process. It fails with a wrapped
// collectors.ErrProcessGone if the process does not exist.
func New(cfg Config) (*Sampler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	settle := cfg.SettleInterval
	if settle <= 0 {
		settle = DefaultSettleInterval
	}

	proc, err := process.NewProcess(cfg.PID)
	if err != nil {
		return nil, fmt.Errorf("pid %d: %w", cfg.PID, collectors.ErrProcessGone)
	}

	name, err := proc.Name()
	if err != nil {
		// The process exists but its name is unreadable; keep going
		// with a placeholder rather than failing the whole session.
		logger.Warn("cannot read process name", "pid", cfg.PID, "error", err)
		name = fmt.Sprintf("pid-%d", cfg.PID)
	}

	maxPercent, err := resolveMaxPercent(cfg.CPUScale)
	if err != nil {
		return nil, err
	}

	s := &Sampler{
		pid:        cfg.PID,
		name:       name,
		settle:     settle,
		maxPercent: maxPercent,
		logger:     logger,
		readCPUTime: func(ctx context.Context) (float64, error) {
			t, err := proc.TimesWithContext(ctx)
			if err != nil {
				return 0, err
			}
			return t.User + t.System, nil
		},
		readMemory: func(ctx context.Context) (uint64, error) {
			mi, err := proc.MemoryInfoWithContext(ctx)
			if err != nil {
				return 0, err
			}
			return mi.RSS, nil
		},
		pidExists: func(ctx context.Context) (bool, error) {
			return process.PidExistsWithContext(ctx, cfg.PID)
		},
		now: time.Now,
		sleep: func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
	}

	return s, nil
}

// resolveMaxPercent maps a CPUScale to its numeric clamp.
func resolveMaxPercent(scale CPUScale) (float64, error) {
	switch scale {
	case ScaleSingle:
		return 100, nil
	case ScaleCores, "":
		n, err := cpu.Counts(true)
		if err != nil || n < 1 {
			// Core count unavailable: fall back to a single-core clamp.
			n = 1
		}
		return float64(n) * 100, nil
	default:
		return 0, fmt.Errorf("unknown cpu scale %q", scale)
	}
}

// Name implements collectors.Sampler.
func (s *Sampler) Name() string {
	return samplerName
}

// ProcessName returns the target's executable name, read at construction.
func (s *Sampler) ProcessName() string {
	return s.name
}

// PID returns the target process identifier.
func (s *Sampler) PID() int32 {
	return s.pid
}

// Sample implements collectors.Sampler. It blocks for the settle
// interval between the two CPU-time reads.
func (s *Sampler) Sample(ctx context.Context) (collectors.Sample, error) {
	start := s.now()

	t0, err := s.readCPUTime(ctx)
	if err != nil {
		return collectors.Sample{}, s.classify(ctx, "cpu time (first read)", err)
	}

	if err := s.sleep(ctx, s.settle); err != nil {
		return collectors.Sample{}, err
	}

	t1, err := s.readCPUTime(ctx)
	if err != nil {
		return collectors.Sample{}, s.classify(ctx, "cpu time (second read)", err)
	}

	memBytes, err := s.readMemory(ctx)
	if err != nil {
		return collectors.Sample{}, s.classify(ctx, "memory", err)
	}

	end := s.now()
	wall := end.Sub(start).Seconds()

	var pct float64
	if wall > 0 {
		pct = (t1 - t0) / wall * 100
	}
	if pct < 0 {
		pct = 0
	}
	if pct > s.maxPercent {
		pct = s.maxPercent
	}

	sample := collectors.Sample{
		Timestamp:   end,
		CPUPercent:  pct,
		MemoryBytes: memBytes,
	}

	s.logger.Debug("sampled process",
		"pid", s.pid,
		"cpu", fmt.Sprintf("%.2f%%", sample.CPUPercent),
		"memory_bytes", sample.MemoryBytes,
		"wall", end.Sub(start),
	)

	return sample, nil
}

// classify turns a failed read into ErrProcessGone when the target has
// vanished, or a TransientError when it still exists.
func (s *Sampler) classify(ctx context.Context, op string, err error) error {
	exists, existsErr := s.pidExists(ctx)
	if existsErr == nil && !exists {
		return fmt.Errorf("pid %d: %w", s.pid, collectors.ErrProcessGone)
	}
	return &collectors.TransientError{Op: op, Err: err}
}

// Compile-time interface compliance check.
var _ collectors.Sampler = (*Sampler)(nil)
