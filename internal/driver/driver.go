// Package driver runs one step of a schedule: it loads the stored position,
// resolves the command for it, runs the command and persists the next position.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexander-akhmetov/cmdseq/internal/cycle"
	"github.com/alexander-akhmetov/cmdseq/internal/debug"
	"github.com/alexander-akhmetov/cmdseq/internal/position"
	"github.com/alexander-akhmetov/cmdseq/internal/schedule"
	"github.com/alexander-akhmetov/cmdseq/internal/shell"
)

// ErrInterrupted is returned when the invocation was cancelled while the
// command was running. The position is left untouched so the command runs
// again next time.
var ErrInterrupted = errors.New("interrupted")

// Result describes what one invocation did.
type Result struct {
	Position uint64 // position loaded from the store
	Index    uint64 // index of the command that ran
	Next     uint64 // position computed for the next invocation
	Command  string
	Advanced bool  // Next was saved
	RunErr   error // non-nil when the command ran but failed
}

// Driver wires a position store to a command runner.
type Driver struct {
	Store  position.Store
	Runner shell.Runner

	// AdvanceOnFailure saves the next position even when the command exits
	// non-zero. A command that could not be started never advances.
	AdvanceOnFailure bool
}

// Run executes one step of s.
func (d *Driver) Run(ctx context.Context, s schedule.Schedule) (Result, error) {
	pos, err := d.Store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("load position: %w", err)
	}

	index, next, err := cycle.Resolve(s.Repetitions, pos)
	if err != nil {
		return Result{Position: pos}, fmt.Errorf("resolve position: %w", err)
	}

	res := Result{
		Position: pos,
		Index:    index,
		Next:     next,
		Command:  s.Commands[index],
	}
	debug.Logf("driver: position %d -> command #%d %q, next %d", pos, index, res.Command, next)

	if err := d.Runner.Run(ctx, res.Command); err != nil {
		if errors.Is(err, shell.ErrStart) {
			return res, fmt.Errorf("run command: %w", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			debug.Logf("driver: interrupted, keeping position %d", pos)
			return res, fmt.Errorf("run command: %w: %w", ErrInterrupted, ctxErr)
		}
		res.RunErr = err
		if !d.AdvanceOnFailure {
			debug.Logf("driver: command failed, keeping position %d: %v", pos, err)
			return res, nil
		}
	}

	if err := d.Store.Save(next); err != nil {
		return res, fmt.Errorf("save position: %w", err)
	}
	res.Advanced = true
	return res, nil
}
