// Package shell runs a command string through the system shell with the
// caller's standard streams attached.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/alexander-akhmetov/cmdseq/internal/debug"
)

// DefaultShell is used when Exec.Shell is empty.
const DefaultShell = "sh"

// ErrStart matches any *StartError.
var ErrStart = errors.New("cannot start command")

// StartError means the shell process could not be spawned at all.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %q: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

func (e *StartError) Is(target error) bool { return target == ErrStart }

// ExitError means the command ran but did not exit cleanly.
type ExitError struct {
	Command string
	Code    int // -1 when terminated by a signal
	Err     error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("command %q terminated: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner executes a command synchronously.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// Exec is the default Runner. Nil Stdout and Stderr fall back to the
// process's own streams. A nil Stdin reads from the null device: the child runs
// in a background process group and would be stopped by SIGTTIN on a terminal read.
type Exec struct {
	Shell  string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes `<shell> -c command` and blocks until it exits. Cancelling ctx
// terminates the command's whole process group.
func (e *Exec) Run(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return &StartError{Command: command, Err: fmt.Errorf("context already canceled: %w", err)}
	}

	sh := e.Shell
	if sh == "" {
		sh = DefaultShell
	}

	// exec.Command (not CommandContext): cancellation is handled per process group
	cmd := exec.Command(sh, "-c", command) //nolint:gosec // command comes from the user's own arguments
	cmd.Dir = e.Dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = orWriter(e.Stdout, os.Stdout)
	cmd.Stderr = orWriter(e.Stderr, os.Stderr)

	setupProcessGroup(cmd)

	debug.Logf("shell: %s -c %q", sh, command)
	if err := cmd.Start(); err != nil {
		return &StartError{Command: command, Err: err}
	}

	cleanup := newProcessGroupCleanup(cmd, ctx.Done())
	err := cleanup.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: command, Code: exitErr.ExitCode(), Err: err}
	}
	return &ExitError{Command: command, Code: -1, Err: err}
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
