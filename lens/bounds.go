package lens

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/model"
)

// ErrEmptyDataset is returned by Bounds for a dataset without points.
var ErrEmptyDataset = errors.New("lens: empty dataset")

// Bounds returns the per-dimension [min, max] of lens values over data.
// It can seed cover.Build when the lens codomain is not known upfront.
func Bounds(data model.Dataset, l Lens) ([]cover.Range, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}

	dim := l.Dim()
	ranges := make([]cover.Range, dim)
	for i := range ranges {
		ranges[i] = cover.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	}

	for idx, p := range data {
		vals := l.Apply(p)
		if len(vals) != dim {
			return nil, fmt.Errorf("lens: point %d produced %d values, expected %d", idx, len(vals), dim)
		}
		for i, v := range vals {
			ranges[i].Min = math.Min(ranges[i].Min, v)
			ranges[i].Max = math.Max(ranges[i].Max, v)
		}
	}
	return ranges, nil
}
