// port-pulse watches the process behind a TCP port.
//
// It resolves the port to the PID listening on it, samples that
// process's CPU and memory usage, and either prints a one-shot
// snapshot or runs a live terminal dashboard with trends and
// statistics over the last minute.
//
// Usage:
//
//	port-pulse -port 8080 [flags]
//
// Flags:
//
//	-port, -p int      TCP port to watch (required)
//	-watch, -w         Run the live dashboard instead of a one-shot snapshot
//	-interval, -i int  Seconds between samples in watch mode (default 1)
//	-insights          Include an AI health assessment in the snapshot
//	-config string     Path to configuration file (default: ~/.config/port-pulse/config.yaml)
//	-verbose           Enable verbose logging
//	-man               Print man page to stdout in roff format
//	-version           Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
	"gitlab.com/tinyland/lab/port-pulse/collectors/procstat"
	"gitlab.com/tinyland/lab/port-pulse/config"
	"gitlab.com/tinyland/lab/port-pulse/display/tui"
	"gitlab.com/tinyland/lab/port-pulse/docs/manpage"
	"gitlab.com/tinyland/lab/port-pulse/port"
)

func main() {
	var (
		portFlag     = flag.Int("port", 0, "TCP port to watch (required)")
		watch        = flag.Bool("watch", false, "Run the live dashboard instead of a one-shot snapshot")
		intervalSecs = flag.Int("interval", 1, "Seconds between samples in watch mode")
		withInsights = flag.Bool("insights", false, "Include an AI health assessment in the snapshot")
		configPath   = flag.String("config", "", "Path to configuration file (default: ~/.config/port-pulse/config.yaml)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		showMan      = flag.Bool("man", false, "Print man page to stdout in roff format")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.IntVar(portFlag, "p", 0, "Shorthand for -port")
	flag.BoolVar(watch, "w", false, "Shorthand for -watch")
	flag.IntVar(intervalSecs, "i", 1, "Shorthand for -interval")
	flag.Parse()

	if *showVersion {
		fmt.Printf("port-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *showMan {
		fmt.Print(manpage.Generate(version, commit, date))
		os.Exit(0)
	}

	if err := run(*portFlag, *watch, *intervalSecs, *withInsights, *configPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "port-pulse: %v\n", err)
		os.Exit(1)
	}
}

func run(portFlag int, watch bool, intervalSecs int, withInsights bool, configPath string, verbose bool) error {
	if portFlag < 1 || portFlag > 65535 {
		return fmt.Errorf("a port between 1 and 65535 is required (-port)")
	}
	if intervalSecs < 1 {
		return fmt.Errorf("interval must be at least 1 second")
	}

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}

	logger, closeLog, err := newLogger(cfg, watch, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pid, err := port.NewResolver().Resolve(ctx, uint16(portFlag))
	if err != nil {
		if errors.Is(err, port.ErrNoListener) {
			return fmt.Errorf("no process is listening on port %d", portFlag)
		}
		return err
	}
	logger.Info("resolved port", "port", portFlag, "pid", pid)

	sampler, err := procstat.New(procstat.Config{
		PID:            pid,
		SettleInterval: cfg.SettleInterval(),
		CPUScale:       procstat.CPUScale(cfg.Sampling.CPUScale),
		Logger:         logger,
	})
	if err != nil {
		if errors.Is(err, collectors.ErrProcessGone) {
			return fmt.Errorf("process %d exited before monitoring could start", pid)
		}
		return err
	}

	if watch {
		return runWatch(ctx, cfg, sampler, uint16(portFlag), pid, intervalSecs, logger)
	}
	return runSnapshot(ctx, cfg, sampler, uint16(portFlag), pid, withInsights, logger)
}

// runWatch runs the live dashboard until the user quits or the watched
// process exits.
func runWatch(ctx context.Context, cfg *config.Config, sampler *procstat.Sampler, portNum uint16, pid int32, intervalSecs int, logger *slog.Logger) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("watch mode requires a terminal; use the one-shot snapshot instead")
	}

	model := tui.NewModel(tui.Config{
		Sampler:          sampler,
		Port:             portNum,
		PID:              pid,
		ProcessName:      sampler.ProcessName(),
		Interval:         time.Duration(intervalSecs) * time.Second,
		MemoryScaleBytes: cfg.MemoryScaleBytes(),
		Logger:           logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			// Interrupted by signal; the terminal has been restored.
			logger.Info("watch interrupted by signal")
			return nil
		}
		return fmt.Errorf("watch session: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		if errors.Is(m.Err(), collectors.ErrProcessGone) {
			return fmt.Errorf("process %d (%s) exited; monitoring stopped", pid, sampler.ProcessName())
		}
		return m.Err()
	}
	return nil
}

// newLogger builds the session logger. Watch mode logs to a file so the
// dashboard owns the terminal; snapshot mode logs to stderr when
// verbose, and is silent otherwise.
func newLogger(cfg *config.Config, watch, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	noop := func() {}

	if watch {
		if cfg.Logging.LogFile == "" {
			return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Logging.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	}

	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), noop, nil
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, nil
}
