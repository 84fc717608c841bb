package lens

import (
	"testing"

	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjection(t *testing.T) {
	l := Project(2, 0)
	assert.Equal(t, 2, l.Dim())
	assert.Equal(t, 3, l.MinPointDim())
	assert.Equal(t, []float64{3, 1}, l.Apply(model.Point{1, 2, 3}))
}

func TestCompose(t *testing.T) {
	l := Compose(
		func(p model.Point) float64 { return p[0] + p[1] },
		func(p model.Point) float64 { return p[0] * p[1] },
	)
	assert.Equal(t, 2, l.Dim())
	assert.Equal(t, []float64{5, 6}, l.Apply(model.Point{2, 3}))
}

func TestNorm(t *testing.T) {
	assert.Equal(t, []float64{5}, Norm{}.Apply(model.Point{3, 4}))
	assert.Equal(t, []float64{5}, Norm{Center: model.Point{1, 1}}.Apply(model.Point{4, 5}))
}

func TestInclusive(t *testing.T) {
	pred := Inclusive(Project(1))

	low := model.Cell{{Low: 0, High: 3}}
	high := model.Cell{{Low: 2, High: 5}}

	t.Run("OverlapRegionInBoth", func(t *testing.T) {
		p := model.Point{100, 2.5}
		assert.True(t, pred(p, low))
		assert.True(t, pred(p, high))
	})

	t.Run("BoundaryInBoth", func(t *testing.T) {
		p := model.Point{0, 3}
		assert.True(t, pred(p, low))
		assert.True(t, pred(p, high))
	})

	t.Run("Outside", func(t *testing.T) {
		assert.False(t, pred(model.Point{0, 5.5}, low))
		assert.False(t, pred(model.Point{0, 5.5}, high))
	})
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(Project(0, 1), 2))
	assert.Error(t, Check(Project(0, 2), 2))
	assert.Error(t, Check(nil, 2))
	assert.Error(t, Check(NewFunc(0, nil), 2))
	require.NoError(t, Check(Norm{}, 5))
}

func TestBounds(t *testing.T) {
	data := model.Dataset{{1, -2}, {4, 0}, {-3, 7}}

	ranges, err := Bounds(data, Project(0, 1))
	require.NoError(t, err)
	assert.Equal(t, []cover.Range{{Min: -3, Max: 4}, {Min: -2, Max: 7}}, ranges)

	_, err = Bounds(nil, Project(0))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	bad := NewFunc(2, func(model.Point) []float64 { return []float64{1} })
	_, err = Bounds(data, bad)
	assert.Error(t, err)
}
