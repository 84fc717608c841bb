package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Point is an ordered sequence of coordinates.
type Point []float64

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p) }

// Clone returns a copy of p.
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and q have identical coordinates.
// It agrees with Key: p.Equal(q) iff p.Key() == q.Key().
func (p Point) Equal(q Point) bool {
	return p.Key() == q.Key()
}

// Key returns the value identity of p.
//
// Coordinates are encoded as little-endian IEEE-754 bits. Negative zero is
// folded into positive zero so that values comparing equal share a key.
func (p Point) Key() Key {
	buf := make([]byte, 8*len(p))
	for i, v := range p {
		if v == 0 {
			v = 0 // folds -0 into +0
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return Key(buf)
}

// String returns a string representation of the Point.
func (p Point) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Key is a comparable identity for a Point value.
type Key string

// Dataset is an ordered sequence of points sharing one dimension.
type Dataset []Point

// Dim returns the dimension of the first point, or 0 for an empty dataset.
func (d Dataset) Dim() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Validate checks that every point has the same dimension as the first.
// It returns the index of the first offending point with an error.
func (d Dataset) Validate() (int, error) {
	dim := d.Dim()
	for i, p := range d {
		if len(p) != dim {
			return i, fmt.Errorf("point %d has dimension %d, expected %d", i, len(p), dim)
		}
	}
	return -1, nil
}

// Interval is a closed range [Low, High] along one lens dimension.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies in the closed interval.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

// Len returns High - Low.
func (iv Interval) Len() float64 { return iv.High - iv.Low }

// String returns a string representation of the Interval.
func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Low, iv.High)
}

// Cell is one interval per lens dimension.
type Cell []Interval

// Dim returns the number of lens dimensions the cell spans.
func (c Cell) Dim() int { return len(c) }

// Contains reports whether every coordinate of v lies in the matching interval.
// v must have the same length as c.
func (c Cell) Contains(v []float64) bool {
	if len(v) != len(c) {
		return false
	}
	for i, iv := range c {
		if !iv.Contains(v[i]) {
			return false
		}
	}
	return true
}

// String returns a string representation of the Cell.
func (c Cell) String() string {
	parts := make([]string, len(c))
	for i, iv := range c {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " x ")
}
