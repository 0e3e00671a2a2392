package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/cmdseq/internal/cycle"
)

func TestParse(t *testing.T) {
	s, err := Parse([]string{"3", "echo a", "0", "echo b", "1", "echo c"})
	require.NoError(t, err)

	assert.Equal(t, []uint64{3, 0, 1}, s.Repetitions)
	assert.Equal(t, []string{"echo a", "echo b", "echo c"}, s.Commands)
	assert.Equal(t, uint64(4), s.Width())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "empty", args: nil, wantErr: ErrNoCommands},
		{name: "odd", args: []string{"3", "echo hi", "2"}, wantErr: ErrOddArguments},
		{name: "all zero", args: []string{"0", "echo a", "0", "echo b"}, wantErr: ErrZeroWidth},
		{name: "sum overflows", args: []string{"18446744073709551615", "a", "2", "b"}, wantErr: cycle.ErrWidthOverflow},
		{name: "sum wraps to zero", args: []string{"18446744073709551615", "a", "1", "b"}, wantErr: cycle.ErrWidthOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParse_InvalidCount(t *testing.T) {
	for _, count := range []string{"x", "-1", "1.5", ""} {
		t.Run(count, func(t *testing.T) {
			_, err := Parse([]string{count, "echo hi"})
			require.Error(t, err)

			var countErr *CountError
			require.ErrorAs(t, err, &countErr)
			assert.Equal(t, count, countErr.Value)
		})
	}
}

func TestParse_MaxCountAlone(t *testing.T) {
	s, err := Parse([]string{"18446744073709551615", "a", "0", "b"})
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), s.Width())
}

func TestParse_OverflowMessage(t *testing.T) {
	_, err := Parse([]string{"18446744073709551615", "a", "1", "b"})

	var countErr *CountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, "1", countErr.Value)
	assert.Contains(t, err.Error(), "add up to more than")
	assert.NotErrorIs(t, err, ErrZeroWidth)
}
