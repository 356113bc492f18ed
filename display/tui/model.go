// Package tui runs the live watch session: a Bubbletea program that
// samples one process on a fixed cadence, keeps a bounded history
// window, and draws the dashboard after every measurement.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
	"gitlab.com/tinyland/lab/port-pulse/history"
)

// DefaultInterval is the target cadence between samples.
const DefaultInterval = time.Second

// phase tracks where the session is in its measure/draw cycle. The
// model moves through sampling, aggregating, rendering and
// awaitingInput on every tick, and through terminating/terminated
// exactly once on the way out.
type phase int

const (
	phaseInit phase = iota
	phaseSampling
	phaseAggregating
	phaseRendering
	phaseAwaitingInput
	phaseTerminating
	phaseTerminated
)

// String returns a short name for the phase, used in debug logs.
func (p phase) String() string {
	switch p {
	case phaseInit:
		return "init"
	case phaseSampling:
		return "sampling"
	case phaseAggregating:
		return "aggregating"
	case phaseRendering:
		return "rendering"
	case phaseAwaitingInput:
		return "awaiting-input"
	case phaseTerminating:
		return "terminating"
	case phaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Messages driving the session state machine.
type (
	// tickMsg starts a new sampling cycle.
	tickMsg time.Time

	// sampleMsg carries the result of one measurement.
	sampleMsg struct {
		sample collectors.Sample
		err    error
	}

	// frameDrawnMsg follows the view pass after a successful sample.
	frameDrawnMsg struct{}

	// terminatedMsg finalizes shutdown after cleanup has been requested.
	terminatedMsg struct{}
)

// Config holds everything a watch session needs up front.
type Config struct {
	// Sampler measures the watched process.
	Sampler collectors.Sampler

	// Port and PID identify the watched process on screen.
	Port uint16
	PID  int32

	// ProcessName is the resolved executable name.
	ProcessName string

	// Interval is the target cadence between samples. Zero means
	// DefaultInterval.
	Interval time.Duration

	// MemoryScaleBytes is the reading at which the memory gauge
	// saturates.
	MemoryScaleBytes uint64

	// WindowSize caps the history window. Zero means the default.
	WindowSize int

	// Logger receives session diagnostics. Nil means no logging.
	Logger *slog.Logger
}

// Model is the Bubbletea model for a watch session.
type Model struct {
	sampler     collectors.Sampler
	port        uint16
	pid         int32
	processName string
	interval    time.Duration
	memoryScale uint64
	logger      *slog.Logger

	window *history.Window
	stats  history.Stats

	phase       phase
	tickStart   time.Time
	sampleCount int
	skipped     int
	err         error

	width  int
	height int
	ready  bool

	// now is injectable for cadence tests.
	now func() time.Time
}

var _ tea.Model = Model{}

// NewModel creates a watch session model from the given configuration.
func NewModel(cfg Config) Model {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return Model{
		sampler:     cfg.Sampler,
		port:        cfg.Port,
		pid:         cfg.PID,
		processName: cfg.ProcessName,
		interval:    interval,
		memoryScale: cfg.MemoryScaleBytes,
		logger:      logger,
		window:      history.NewWindow(cfg.WindowSize),
		phase:       phaseInit,
		now:         time.Now,
	}
}

// Err returns the error that ended the session, if any. A user quit is
// not an error.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model. It kicks off the first sampling cycle
// immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(m.now())
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && !m.shuttingDown() {
			m.logger.Info("quit requested", "samples", m.sampleCount)
			m.phase = phaseTerminating
			return m, terminate
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		if m.shuttingDown() {
			return m, nil
		}
		m.phase = phaseSampling
		m.tickStart = m.now()
		return m, m.sampleCmd()

	case sampleMsg:
		// A measurement that was in flight when shutdown started is
		// discarded, not processed.
		if m.shuttingDown() {
			return m, nil
		}
		return m.applySample(msg)

	case frameDrawnMsg:
		if m.shuttingDown() {
			return m, nil
		}
		m.phase = phaseAwaitingInput
		return m, m.scheduleNext()

	case terminatedMsg:
		m.phase = phaseTerminated
		return m, tea.Quit
	}

	return m, nil
}

// applySample folds one measurement result into the session.
func (m Model) applySample(msg sampleMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, collectors.ErrProcessGone) {
			m.logger.Info("watched process exited", "pid", m.pid)
			m.err = msg.err
			m.phase = phaseTerminating
			return m, terminate
		}

		// Transient failure: keep the window as is, skip this tick and
		// stay on cadence.
		m.logger.Warn("sample failed, skipping tick", "error", msg.err)
		m.skipped++
		m.phase = phaseAwaitingInput
		return m, m.scheduleNext()
	}

	m.phase = phaseAggregating
	m.window.Push(msg.sample)
	m.stats = history.Compute(m.window.Values())
	m.sampleCount++

	m.phase = phaseRendering
	return m, frameDrawn
}

// sampleCmd measures the process off the event loop so key presses
// stay responsive during the settle interval.
func (m Model) sampleCmd() tea.Cmd {
	sampler := m.sampler
	return func() tea.Msg {
		sample, err := sampler.Sample(context.Background())
		return sampleMsg{sample: sample, err: err}
	}
}

// scheduleNext arranges the next tick so that cycle starts stay
// interval apart. When a cycle overruns the interval, the next one
// starts immediately.
func (m Model) scheduleNext() tea.Cmd {
	remaining := m.interval - m.now().Sub(m.tickStart)
	if remaining <= 0 {
		return func() tea.Msg {
			return tickMsg(m.now())
		}
	}
	return tea.Tick(remaining, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) shuttingDown() bool {
	return m.phase == phaseTerminating || m.phase == phaseTerminated
}

func terminate() tea.Msg {
	return terminatedMsg{}
}

func frameDrawn() tea.Msg {
	return frameDrawnMsg{}
}
