package partition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/parsum/internal/errors"
)

func TestSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		workers int
		want    []Range
	}{
		{
			name:    "even split",
			n:       6,
			workers: 3,
			want:    []Range{{0, 2}, {2, 4}, {4, 6}},
		},
		{
			name:    "remainder goes to the last range",
			n:       10,
			workers: 3,
			want:    []Range{{0, 3}, {3, 6}, {6, 10}},
		},
		{
			name:    "single worker takes everything",
			n:       5,
			workers: 1,
			want:    []Range{{0, 5}},
		},
		{
			name:    "more workers than elements",
			n:       3,
			workers: 5,
			want:    []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 3}},
		},
		{
			name:    "empty sequence",
			n:       0,
			workers: 4,
			want:    []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Split(tt.n, tt.workers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, Validate(got, tt.n))
		})
	}
}

func TestSplit_MoreWorkersThanElements(t *testing.T) {
	t.Parallel()
	ranges, err := Split(3, 10)
	require.NoError(t, err)
	require.Len(t, ranges, 10)

	empty := 0
	for _, r := range ranges {
		if r.Empty() {
			empty++
		}
	}
	assert.Equal(t, 9, empty, "base length is 0 so only the last range is populated")
	assert.Equal(t, Range{Start: 0, End: 3}, ranges[9])
}

func TestSplit_InvalidArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		workers int
		field   string
	}{
		{"zero workers", 10, 0, "workers"},
		{"negative workers", 10, -3, "workers"},
		{"negative length", -1, 2, "n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ranges, err := Split(tt.n, tt.workers)
			require.Error(t, err)
			assert.Nil(t, ranges)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))

			var invalid apperrors.InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestValidate_DetectsBrokenTilings(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		ranges []Range
		n      int
		worker int
	}{
		{"gap", []Range{{0, 2}, {3, 6}}, 6, 1},
		{"overlap", []Range{{0, 4}, {3, 6}}, 6, 1},
		{"inverted", []Range{{0, 2}, {2, 1}}, 2, 1},
		{"past the end", []Range{{0, 3}, {3, 7}}, 6, 1},
		{"short coverage", []Range{{0, 2}, {2, 4}}, 6, 1},
		{"does not start at zero", []Range{{1, 6}}, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.ranges, tt.n)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrWorkerFault))

			var fault apperrors.WorkerFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, tt.worker, fault.Worker)
		})
	}
}

func TestRange_Accessors(t *testing.T) {
	t.Parallel()
	r := Range{Start: 2, End: 7}
	assert.Equal(t, 5, r.Len())
	assert.False(t, r.Empty())
	assert.Equal(t, "[2, 7)", r.String())
	assert.True(t, Range{Start: 4, End: 4}.Empty())
}
