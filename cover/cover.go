package cover

import (
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/gomapper/model"
)

// Precision is the number of decimal places interval bounds are rounded to.
const Precision = 10

var precisionScale = math.Pow10(Precision)

// Range is the [Min, Max] extent of one lens dimension.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Cover is one ordered interval list per lens dimension.
type Cover [][]model.Interval

// Dim returns the number of lens dimensions.
func (c Cover) Dim() int { return len(c) }

// Sizes returns the number of intervals per dimension.
func (c Cover) Sizes() []int {
	sizes := make([]int, len(c))
	for i, ivs := range c {
		sizes[i] = len(ivs)
	}
	return sizes
}

// Build returns the uniform cover for the given per-dimension ranges,
// interval lengths and overlaps.
//
// All three slices must have the same non-zero length. For each dimension
// Min < Max and Length > Overlap >= 0 must hold, and all values must be
// finite. Violations are reported as *ParamError before any work is done.
// A cover whose cell count overflows an int is rejected with a *ParamError
// wrapping ErrTooManyCells.
func Build(ranges []Range, lengths, overlaps []float64) (Cover, error) {
	if err := Validate(ranges, lengths, overlaps); err != nil {
		return nil, err
	}

	cov := make(Cover, len(ranges))
	for i, r := range ranges {
		cov[i] = buildDimension(r, lengths[i], overlaps[i])
	}
	if _, err := cov.CheckedCount(); err != nil {
		return nil, &ParamError{Dimension: -1, Reason: "too many cells: " + strings.Join(sizeStrings(cov.Sizes()), " x "), err: err}
	}
	return cov, nil
}

// Validate checks cover parameters without building the cover.
func Validate(ranges []Range, lengths, overlaps []float64) error {
	if len(ranges) == 0 {
		return paramErrorf(-1, "at least one dimension is required")
	}
	if len(lengths) != len(ranges) || len(overlaps) != len(ranges) {
		return paramErrorf(-1, "dimension count mismatch: %d ranges, %d lengths, %d overlaps",
			len(ranges), len(lengths), len(overlaps))
	}

	for i, r := range ranges {
		length, overlap := lengths[i], overlaps[i]
		switch {
		case !finite(r.Min) || !finite(r.Max):
			return paramErrorf(i, "range [%g, %g] is not finite", r.Min, r.Max)
		case r.Min >= r.Max:
			return paramErrorf(i, "empty range: min %g must be below max %g", r.Min, r.Max)
		case !finite(length) || !finite(overlap):
			return paramErrorf(i, "length %g and overlap %g must be finite", length, overlap)
		case overlap < 0:
			return paramErrorf(i, "overlap %g must not be negative", overlap)
		case length <= overlap:
			return paramErrorf(i, "non-positive step: length %g must exceed overlap %g", length, overlap)
		}
	}
	return nil
}

// buildDimension emits intervals [min + k*step, min + k*step + length]
// until the upper bound reaches max, where the final interval is clamped.
func buildDimension(r Range, length, overlap float64) []model.Interval {
	step := length - overlap

	var out []model.Interval
	for k := 0; ; k++ {
		low := r.Min + float64(k)*step
		high := low + length
		if round(high) >= r.Max {
			out = append(out, model.Interval{Low: round(low), High: r.Max})
			return out
		}
		out = append(out, model.Interval{Low: round(low), High: round(high)})
	}
}

func sizeStrings(sizes []int) []string {
	out := make([]string, len(sizes))
	for i, n := range sizes {
		out[i] = strconv.Itoa(n)
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*precisionScale) / precisionScale
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
