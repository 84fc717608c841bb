// Package cover builds overlapping covers of a lens codomain and enumerates
// their cells.
//
// A Cover holds one ordered interval list per lens dimension. Build produces
// the uniform cover used by Mapper: fixed-length intervals that advance by
// (length - overlap), with the last interval clamped to the range maximum.
//
//	cov, _ := cover.Build(
//	    []cover.Range{{Min: 0, Max: 10}},
//	    []float64{3},
//	    []float64{1},
//	)
//	// cov[0] = [0,3] [2,5] [4,7] [6,9] [8,10]
//
// Cells are the Cartesian product of the per-dimension lists. They are
// enumerated with an iterative mixed-radix counter, dimension 0 varying
// slowest, so the linear cell index is stable and reproducible:
//
//	for i, cell := range cov.Cells() {
//	    _ = cov.CellAt(i) // same cell
//	}
package cover
