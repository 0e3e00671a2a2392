// Package cycle maps a repetition schedule and a position to the command
// that should run at that position.
package cycle

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrEmptySchedule is returned when the repetitions sum to zero.
var ErrEmptySchedule = errors.New("schedule has no runnable entries")

// ErrWidthOverflow is returned when the repetitions add up to more than a uint64 holds.
var ErrWidthOverflow = errors.New("cycle width overflows uint64")

// ErrOutOfRange matches any *OutOfRangeError.
var ErrOutOfRange = errors.New("position out of range")

// OutOfRangeError reports a position that does not fit the schedule. It usually
// means the state file is corrupt or the schedule changed underneath it.
type OutOfRangeError struct {
	Position uint64
	Width    uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range for cycle of width %d", e.Position, e.Width)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Width returns the length of one full cycle. It wraps on overflow; callers
// that accept arbitrary counts must check with CheckedWidth.
func Width(reps []uint64) uint64 {
	var sum uint64
	for _, r := range reps {
		sum += r
	}
	return sum
}

// CheckedWidth is Width that reports ErrWidthOverflow instead of wrapping.
func CheckedWidth(reps []uint64) (uint64, error) {
	var sum, carry uint64
	for _, r := range reps {
		sum, carry = bits.Add64(sum, r, 0)
		if carry != 0 {
			return 0, ErrWidthOverflow
		}
	}
	return sum, nil
}

// Resolve returns the index of the entry owning pos and the position to use
// on the next invocation. Entries with a count of 0 are never selected.
//
//	Resolve([]uint64{3, 2, 1}, 0) -> (0, 1)
//	Resolve([]uint64{3, 2, 1}, 3) -> (1, 4)
//	Resolve([]uint64{3, 2, 1}, 5) -> (2, 0)
func Resolve(reps []uint64, pos uint64) (index, next uint64, err error) {
	width, err := CheckedWidth(reps)
	if err != nil {
		return 0, 0, err
	}
	if width == 0 {
		return 0, 0, ErrEmptySchedule
	}
	if pos >= width {
		return 0, 0, &OutOfRangeError{Position: pos, Width: width}
	}

	next = pos + 1
	if next == width {
		next = 0
	}

	var sum uint64
	for i, r := range reps {
		sum += r
		if pos < sum {
			return uint64(i), next, nil
		}
	}

	// unreachable: pos < width == final sum
	return 0, 0, &OutOfRangeError{Position: pos, Width: width}
}
