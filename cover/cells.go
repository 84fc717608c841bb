package cover

import (
	"errors"
	"iter"
	"math"
	"math/bits"

	"github.com/hupe1980/gomapper/model"
)

// ErrTooManyCells is returned when the number of cells does not fit in an int.
var ErrTooManyCells = errors.New("cover: cell count overflows int")

// CheckedCount returns the number of cells, the product of per-dimension
// sizes, or ErrTooManyCells if the product overflows. An empty cover has
// zero cells.
func (c Cover) CheckedCount() (int, error) {
	if len(c) == 0 {
		return 0, nil
	}
	for _, ivs := range c {
		if len(ivs) == 0 {
			return 0, nil
		}
	}
	n := uint64(1)
	for _, ivs := range c {
		hi, lo := bits.Mul64(n, uint64(len(ivs)))
		if hi != 0 || lo > math.MaxInt {
			return 0, ErrTooManyCells
		}
		n = lo
	}
	return int(n), nil
}

// Count returns the number of cells, or -1 if it overflows an int.
// Covers returned by Build never overflow.
func (c Cover) Count() int {
	n, err := c.CheckedCount()
	if err != nil {
		return -1
	}
	return n
}

// Cells returns an iterator over every cell with its linear index.
//
// The order is row-major: dimension 0 varies slowest and the last
// dimension fastest. A fresh Cell slice is yielded on each step.
func (c Cover) Cells() iter.Seq2[int, model.Cell] {
	return func(yield func(int, model.Cell) bool) {
		total := c.Count()
		if total <= 0 {
			return
		}

		digits := make([]int, len(c))
		for idx := 0; idx < total; idx++ {
			if !yield(idx, c.cellFor(digits)) {
				return
			}
			// odometer increment, last dimension first
			for d := len(digits) - 1; d >= 0; d-- {
				digits[d]++
				if digits[d] < len(c[d]) {
					break
				}
				digits[d] = 0
			}
		}
	}
}

// CellAt returns the cell with the given linear index, as produced by Cells.
// It panics if idx is out of range.
func (c Cover) CellAt(idx int) model.Cell {
	return c.cellFor(c.Digits(idx))
}

// Digits decomposes a linear cell index into one interval index per
// dimension. It panics if idx is out of range.
func (c Cover) Digits(idx int) []int {
	if idx < 0 || idx >= c.Count() {
		panic("cover: cell index out of range")
	}
	digits := make([]int, len(c))
	for d := len(c) - 1; d >= 0; d-- {
		n := len(c[d])
		digits[d] = idx % n
		idx /= n
	}
	return digits
}

func (c Cover) cellFor(digits []int) model.Cell {
	cell := make(model.Cell, len(c))
	for d, i := range digits {
		cell[d] = c[d][i]
	}
	return cell
}
