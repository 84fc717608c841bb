package cover

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/gomapper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("ClampedFinalInterval", func(t *testing.T) {
		cov, err := Build([]Range{{Min: 0, Max: 10}}, []float64{3}, []float64{1})
		require.NoError(t, err)
		require.Equal(t, 1, cov.Dim())

		assert.Equal(t, []model.Interval{
			{Low: 0, High: 3},
			{Low: 2, High: 5},
			{Low: 4, High: 7},
			{Low: 6, High: 9},
			{Low: 8, High: 10},
		}, cov[0])
	})

	t.Run("ExactFit", func(t *testing.T) {
		cov, err := Build([]Range{{Min: 0, Max: 4}}, []float64{2}, []float64{0})
		require.NoError(t, err)
		assert.Equal(t, []model.Interval{{Low: 0, High: 2}, {Low: 2, High: 4}}, cov[0])
	})

	t.Run("LengthBeyondRange", func(t *testing.T) {
		cov, err := Build([]Range{{Min: 0, Max: 1}}, []float64{5}, []float64{2})
		require.NoError(t, err)
		assert.Equal(t, []model.Interval{{Low: 0, High: 1}}, cov[0])
	})

	t.Run("FractionalBoundsDoNotDrift", func(t *testing.T) {
		cov, err := Build([]Range{{Min: -1.3, Max: 1.3}}, []float64{0.3}, []float64{0.1})
		require.NoError(t, err)

		ivs := cov[0]
		require.Len(t, ivs, 13)
		assert.Equal(t, -1.3, ivs[0].Low)
		assert.Equal(t, -1.0, ivs[0].High)
		assert.Equal(t, -1.1, ivs[1].Low)
		assert.Equal(t, 1.3, ivs[len(ivs)-1].High)
		for i := 0; i < len(ivs)-1; i++ {
			assert.InDelta(t, 0.3, ivs[i].Len(), 1e-9)
			assert.InDelta(t, 0.1, ivs[i].High-ivs[i+1].Low, 1e-9)
		}
	})

	t.Run("TooManyCells", func(t *testing.T) {
		const dims = 20
		ranges := make([]Range, dims)
		lengths := make([]float64, dims)
		overlaps := make([]float64, dims)
		for d := range ranges {
			ranges[d] = Range{Min: 0, Max: 10}
			lengths[d] = 1
		}

		_, err := Build(ranges, lengths, overlaps)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyCells)

		var pe *ParamError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, -1, pe.Dimension)
	})

	t.Run("MultiDimensional", func(t *testing.T) {
		cov, err := Build(
			[]Range{{Min: 0, Max: 10}, {Min: -1, Max: 1}},
			[]float64{3, 1},
			[]float64{1, 0.5},
		)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 3}, cov.Sizes())
	})
}

func TestBuild_CoversRangeWithoutGaps(t *testing.T) {
	cases := []struct {
		r       Range
		length  float64
		overlap float64
	}{
		{Range{0, 10}, 3, 1},
		{Range{-5, 5}, 2.5, 0},
		{Range{0, 1}, 0.15, 0.05},
		{Range{100, 101}, 0.7, 0.69},
		{Range{-1.3, 1.3}, 0.3, 0.1},
	}

	for _, tc := range cases {
		cov, err := Build([]Range{tc.r}, []float64{tc.length}, []float64{tc.overlap})
		require.NoError(t, err)

		ivs := cov[0]
		assert.Equal(t, tc.r.Min, ivs[0].Low)
		assert.Equal(t, tc.r.Max, ivs[len(ivs)-1].High)
		for i := 1; i < len(ivs); i++ {
			assert.Greater(t, ivs[i].Low, ivs[i-1].Low, "intervals increase")
			assert.LessOrEqual(t, ivs[i].Low, ivs[i-1].High, "no gap between %v and %v", ivs[i-1], ivs[i])
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	ranges := []Range{{Min: -2, Max: 3.7}, {Min: 0, Max: 1}}
	lengths := []float64{0.9, 0.33}
	overlaps := []float64{0.2, 0.1}

	a, err := Build(ranges, lengths, overlaps)
	require.NoError(t, err)
	b, err := Build(ranges, lengths, overlaps)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuild_InvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		ranges   []Range
		lengths  []float64
		overlaps []float64
		dim      int
	}{
		{"NoDimensions", nil, nil, nil, -1},
		{"MismatchedLengths", []Range{{0, 1}}, []float64{1, 2}, []float64{0}, -1},
		{"MismatchedOverlaps", []Range{{0, 1}}, []float64{1}, nil, -1},
		{"LengthEqualsOverlap", []Range{{0, 10}}, []float64{1}, []float64{1}, 0},
		{"LengthBelowOverlap", []Range{{0, 10}}, []float64{1}, []float64{2}, 0},
		{"NegativeOverlap", []Range{{0, 10}}, []float64{1}, []float64{-0.5}, 0},
		{"EmptyRange", []Range{{0, 1}, {3, 3}}, []float64{1, 1}, []float64{0, 0}, 1},
		{"InvertedRange", []Range{{5, 1}}, []float64{1}, []float64{0}, 0},
		{"InfiniteRange", []Range{{0, math.Inf(1)}}, []float64{1}, []float64{0}, 0},
		{"NaNLength", []Range{{0, 1}}, []float64{math.NaN()}, []float64{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.ranges, tt.lengths, tt.overlaps)
			require.Error(t, err)

			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.dim, pe.Dimension)
		})
	}
}
