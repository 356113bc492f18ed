package port

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func newTestResolver(out []byte, err error) *Resolver {
	return &Resolver{
		timeout: time.Second,
		runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return out, err
		},
	}
}

func TestResolve_SinglePID(t *testing.T) {
	r := newTestResolver([]byte("12345\n"), nil)

	pid, err := r.Resolve(context.Background(), 8080)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if pid != 12345 {
		t.Errorf("pid = %d, want 12345", pid)
	}
}

func TestResolve_FirstOfMultiplePIDs(t *testing.T) {
	r := newTestResolver([]byte("100\n200\n300\n"), nil)

	pid, err := r.Resolve(context.Background(), 3000)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if pid != 100 {
		t.Errorf("pid = %d, want first listed 100", pid)
	}
}

func TestResolve_NothingListening(t *testing.T) {
	// lsof exits 1 when no file matches the filter.
	r := newTestResolver(nil, &exec.ExitError{})

	_, err := r.Resolve(context.Background(), 9999)
	if !errors.Is(err, ErrNoListener) {
		t.Errorf("expected ErrNoListener, got %v", err)
	}
}

func TestResolve_EmptyOutput(t *testing.T) {
	r := newTestResolver([]byte("  \n"), nil)

	_, err := r.Resolve(context.Background(), 8080)
	if !errors.Is(err, ErrNoListener) {
		t.Errorf("expected ErrNoListener for empty output, got %v", err)
	}
}

func TestResolve_LsofMissing(t *testing.T) {
	r := newTestResolver(nil, errors.New(`exec: "lsof": executable file not found in $PATH`))

	_, err := r.Resolve(context.Background(), 8080)
	if err == nil {
		t.Fatal("expected error when lsof cannot run")
	}
	if errors.Is(err, ErrNoListener) {
		t.Error("a missing lsof binary is not a no-listener condition")
	}
}

func TestResolve_GarbageOutput(t *testing.T) {
	r := newTestResolver([]byte("not-a-pid\n"), nil)

	if _, err := r.Resolve(context.Background(), 8080); err == nil {
		t.Error("expected parse error for non-numeric output")
	}
}

func TestResolve_PassesPortArgument(t *testing.T) {
	var gotArgs []string
	r := &Resolver{
		timeout: time.Second,
		runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)
			return []byte("1\n"), nil
		},
	}

	if _, err := r.Resolve(context.Background(), 8443); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := []string{"lsof", "-i", ":8443", "-sTCP:LISTEN", "-t"}
	if len(gotArgs) != len(want) {
		t.Fatalf("command = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, gotArgs[i], want[i])
		}
	}
}
