package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointKey(t *testing.T) {
	t.Run("EqualValues", func(t *testing.T) {
		a := Point{1, 2.5}
		b := Point{1, 2.5}
		assert.Equal(t, a.Key(), b.Key())
		assert.True(t, a.Equal(b))
	})

	t.Run("DifferentValues", func(t *testing.T) {
		assert.NotEqual(t, Point{1, 2}.Key(), Point{2, 1}.Key())
		assert.NotEqual(t, Point{1}.Key(), Point{1, 0}.Key())
	})

	t.Run("NegativeZero", func(t *testing.T) {
		negZero := math.Copysign(0, -1)
		assert.Equal(t, Point{0, 1}.Key(), Point{negZero, 1}.Key())
	})
}

func TestPointClone(t *testing.T) {
	p := Point{1, 2}
	c := p.Clone()
	c[0] = 9
	assert.Equal(t, 1.0, p[0])
	assert.Nil(t, Point(nil).Clone())
}

func TestDatasetValidate(t *testing.T) {
	idx, err := Dataset{{1, 2}, {3, 4}}.Validate()
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	idx, err = Dataset{{1, 2}, {3}}.Validate()
	require.Error(t, err)
	assert.Equal(t, 1, idx)

	assert.Equal(t, 0, Dataset{}.Dim())
}

func TestCellContains(t *testing.T) {
	c := Cell{{Low: 0, High: 3}, {Low: 2, High: 5}}

	assert.True(t, c.Contains([]float64{0, 5}), "bounds are inclusive")
	assert.True(t, c.Contains([]float64{1.5, 3}))
	assert.False(t, c.Contains([]float64{3.01, 3}))
	assert.False(t, c.Contains([]float64{1}))
	assert.Equal(t, "[0, 3] x [2, 5]", c.String())
}
