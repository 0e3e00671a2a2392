// Package schedule turns count/command argument pairs into a Schedule.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/alexander-akhmetov/cmdseq/internal/cycle"
)

var (
	// ErrNoCommands is returned when no count/command pair is given.
	ErrNoCommands = errors.New("at least one <count> <command> pair is required")
	// ErrOddArguments is returned when a count has no command after it.
	ErrOddArguments = errors.New("arguments must come in <count> <command> pairs")
	// ErrZeroWidth is returned when every count is 0.
	ErrZeroWidth = errors.New("at least one count must be greater than 0")
)

// CountError reports a repetition count that is not a non-negative integer,
// or one that pushes the cycle length past the uint64 range.
type CountError struct {
	Value string
	Err   error
}

func (e *CountError) Error() string {
	if errors.Is(e.Err, cycle.ErrWidthOverflow) {
		return fmt.Sprintf("invalid count %q: counts add up to more than %d", e.Value, uint64(math.MaxUint64))
	}
	return fmt.Sprintf("invalid count %q: must be a non-negative integer", e.Value)
}

func (e *CountError) Unwrap() error { return e.Err }

// Schedule pairs repetition counts with commands positionally.
type Schedule struct {
	Repetitions []uint64
	Commands    []string
}

// Width returns the number of invocations in one full cycle.
func (s Schedule) Width() uint64 { return cycle.Width(s.Repetitions) }

// ParseCount parses a single repetition count.
func ParseCount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &CountError{Value: s, Err: err}
	}
	return n, nil
}

// Parse reads args as alternating counts and commands.
func Parse(args []string) (Schedule, error) {
	if len(args) == 0 {
		return Schedule{}, ErrNoCommands
	}
	if len(args)%2 != 0 {
		return Schedule{}, ErrOddArguments
	}

	s := Schedule{
		Repetitions: make([]uint64, 0, len(args)/2),
		Commands:    make([]string, 0, len(args)/2),
	}
	var width, carry uint64
	for i := 0; i < len(args); i += 2 {
		n, err := ParseCount(args[i])
		if err != nil {
			return Schedule{}, err
		}
		width, carry = bits.Add64(width, n, 0)
		if carry != 0 {
			return Schedule{}, &CountError{Value: args[i], Err: cycle.ErrWidthOverflow}
		}
		s.Repetitions = append(s.Repetitions, n)
		s.Commands = append(s.Commands, args[i+1])
	}

	if width == 0 {
		return Schedule{}, ErrZeroWidth
	}
	return s, nil
}
