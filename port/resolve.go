// Package port resolves a TCP port to the PID of the listening process.
// Resolution runs once per invocation, before monitoring starts.
package port

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrNoListener indicates no process is listening on the requested port.
var ErrNoListener = errors.New("no process is listening on the port")

// defaultTimeout bounds the lsof invocation.
const defaultTimeout = 5 * time.Second

// Resolver looks up listening PIDs via lsof.
type Resolver struct {
	timeout time.Duration

	// runner executes the lookup command; overridable for tests.
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewResolver creates a Resolver using the system lsof binary.
func NewResolver() *Resolver {
	return &Resolver{
		timeout: defaultTimeout,
		runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Resolve returns the PID of the process listening on the given TCP
// port. When several PIDs listen (e.g. pre-forked workers), the first
// reported one wins.
func (r *Resolver) Resolve(ctx context.Context, port uint16) (int32, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.runner(ctx, "lsof", "-i", fmt.Sprintf(":%d", port), "-sTCP:LISTEN", "-t")
	if err != nil {
		// lsof exits non-zero when nothing matches.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, fmt.Errorf("port %d: %w", port, ErrNoListener)
		}
		return 0, fmt.Errorf("lsof lookup for port %d: %w", port, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if line == "" {
		return 0, fmt.Errorf("port %d: %w", port, ErrNoListener)
	}

	pid, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse PID from lsof output %q: %w", line, err)
	}

	return int32(pid), nil
}
