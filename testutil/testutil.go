package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/gomapper/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points with coordinates uniform in [lo, hi).
func (r *RNG) UniformPoints(num, dim int, lo, hi float64) model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make(model.Dataset, num)
	for i := range data {
		p := make(model.Point, dim)
		for j := range p {
			p[j] = lo + r.rand.Float64()*(hi-lo)
		}
		data[i] = p
	}
	return data
}

// Circles generates two concentric circles in the plane: num/2 points on
// the unit circle and the rest on a circle of radius factor, each with
// gaussian noise of the given standard deviation.
func (r *RNG) Circles(num int, noise, factor float64) model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	outer := num / 2
	inner := num - outer

	data := make(model.Dataset, 0, num)
	for i := 0; i < outer; i++ {
		a := 2 * math.Pi * float64(i) / float64(outer)
		data = append(data, model.Point{
			math.Cos(a) + r.rand.NormFloat64()*noise,
			math.Sin(a) + r.rand.NormFloat64()*noise,
		})
	}
	for i := 0; i < inner; i++ {
		a := 2 * math.Pi * float64(i) / float64(inner)
		data = append(data, model.Point{
			factor*math.Cos(a) + r.rand.NormFloat64()*noise,
			factor*math.Sin(a) + r.rand.NormFloat64()*noise,
		})
	}
	return data
}

// Blobs generates num points around centers gaussian blobs. Centers are
// uniform in [-10, 10)^dim; points are assigned round-robin.
func (r *RNG) Blobs(num, dim, centers int, spread float64) model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs := make([]model.Point, centers)
	for c := range cs {
		p := make(model.Point, dim)
		for j := range p {
			p[j] = -10 + r.rand.Float64()*20
		}
		cs[c] = p
	}

	data := make(model.Dataset, num)
	for i := range data {
		center := cs[i%centers]
		p := make(model.Point, dim)
		for j := range p {
			p[j] = center[j] + r.rand.NormFloat64()*spread
		}
		data[i] = p
	}
	return data
}
