package lens

import (
	"fmt"
	"math"

	"github.com/hupe1980/gomapper/model"
)

// Lens maps a point to a vector of lens values, one per lens dimension.
// Implementations must be deterministic and free of side effects.
type Lens interface {
	// Dim returns the number of lens dimensions.
	Dim() int
	// Apply returns the lens values of p. The result has length Dim().
	Apply(p model.Point) []float64
}

// PointDimRequirer is implemented by lenses that read specific coordinates
// and therefore need points of at least MinPointDim coordinates.
type PointDimRequirer interface {
	MinPointDim() int
}

// Predicate decides whether a point belongs to a cell.
type Predicate func(p model.Point, c model.Cell) bool

// Inclusive returns the canonical predicate for l: every lens value must
// lie within the matching cell interval, bounds included.
func Inclusive(l Lens) Predicate {
	return func(p model.Point, c model.Cell) bool {
		return c.Contains(l.Apply(p))
	}
}

// Func adapts a function with a fixed output dimension to a Lens.
type Func struct {
	dim int
	fn  func(model.Point) []float64
}

// NewFunc returns a Lens of dimension dim backed by fn.
func NewFunc(dim int, fn func(model.Point) []float64) *Func {
	return &Func{dim: dim, fn: fn}
}

// Dim implements Lens.
func (f *Func) Dim() int { return f.dim }

// Apply implements Lens.
func (f *Func) Apply(p model.Point) []float64 { return f.fn(p) }

// Scalar is a one-dimensional filter function.
type Scalar func(model.Point) float64

// Compose builds a vector lens from one scalar function per dimension.
func Compose(fns ...Scalar) Lens {
	return NewFunc(len(fns), func(p model.Point) []float64 {
		out := make([]float64, len(fns))
		for i, fn := range fns {
			out[i] = fn(p)
		}
		return out
	})
}

// Projection selects coordinates of the point as lens values.
type Projection struct {
	coords []int
}

// Project returns a Projection onto the given coordinate indices.
func Project(coords ...int) *Projection {
	c := make([]int, len(coords))
	copy(c, coords)
	return &Projection{coords: c}
}

// Dim implements Lens.
func (p *Projection) Dim() int { return len(p.coords) }

// Apply implements Lens.
func (p *Projection) Apply(pt model.Point) []float64 {
	out := make([]float64, len(p.coords))
	for i, c := range p.coords {
		out[i] = pt[c]
	}
	return out
}

// MinPointDim implements PointDimRequirer.
func (p *Projection) MinPointDim() int {
	m := 0
	for _, c := range p.coords {
		if c+1 > m {
			m = c + 1
		}
	}
	return m
}

// Norm is the one-dimensional lens giving the Euclidean distance to a
// fixed center (the origin when Center is nil).
type Norm struct {
	Center model.Point
}

// Dim implements Lens.
func (Norm) Dim() int { return 1 }

// Apply implements Lens.
func (n Norm) Apply(p model.Point) []float64 {
	var sum float64
	for i, v := range p {
		if i < len(n.Center) {
			v -= n.Center[i]
		}
		sum += v * v
	}
	return []float64{math.Sqrt(sum)}
}

// MinPointDim implements PointDimRequirer.
func (n Norm) MinPointDim() int { return len(n.Center) }

// Check verifies that l can be applied to points of dimension pointDim.
func Check(l Lens, pointDim int) error {
	if l == nil {
		return fmt.Errorf("lens: nil lens")
	}
	if l.Dim() < 1 {
		return fmt.Errorf("lens: dimension must be positive, got %d", l.Dim())
	}
	if r, ok := l.(PointDimRequirer); ok && r.MinPointDim() > pointDim {
		return fmt.Errorf("lens: needs points of dimension >= %d, got %d", r.MinPointDim(), pointDim)
	}
	return nil
}
