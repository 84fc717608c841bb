package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/gomapper/distance"
	"github.com/hupe1980/gomapper/model"
)

// KMeansOptions configures a KMeans backend.
type KMeansOptions struct {
	// MaxIter bounds the number of Lloyd iterations. Defaults to 100.
	MaxIter int
	// Seed drives centroid initialisation. Equal seeds give equal labels.
	Seed int64
	// Metric used for assignment. Defaults to SquaredL2.
	Metric distance.Metric
}

// KMeans partitions every subset into exactly K clusters.
// Subsets with fewer than K points fail with ErrTooFewPoints.
type KMeans struct {
	k    int
	opts KMeansOptions
	dist distance.Func
}

// NewKMeans creates a KMeans backend.
func NewKMeans(k int, optFns ...func(*KMeansOptions)) (*KMeans, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidParameter, k)
	}

	opts := KMeansOptions{MaxIter: 100, Metric: distance.MetricSquaredL2}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIter < 1 {
		return nil, fmt.Errorf("%w: max iterations must be >= 1, got %d", ErrInvalidParameter, opts.MaxIter)
	}

	dist, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &KMeans{k: k, opts: opts, dist: dist}, nil
}

// Fit implements Backend using Lloyd's algorithm.
func (km *KMeans) Fit(ctx context.Context, points []model.Point) ([]int, error) {
	n := len(points)
	if n < km.k {
		return nil, fmt.Errorf("%w: k-means needs %d points, got %d", ErrTooFewPoints, km.k, n)
	}
	dim := len(points[0])
	k := km.k

	// Fresh generator per call keeps Fit deterministic and goroutine-safe.
	rng := rand.New(rand.NewSource(km.opts.Seed)) // nolint gosec

	centroids := make([][]float64, k)
	perm := rng.Perm(n)
	for j := 0; j < k; j++ {
		centroids[j] = append([]float64(nil), points[perm[j]]...)
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)
	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for iter := 0; iter < km.opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed := false

		// Assignment step
		for i, p := range points {
			best := 0
			minDist := math.Inf(1)
			for j, c := range centroids {
				if d := km.dist(p, c); d < minDist {
					minDist = d
					best = j
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Update step
		for j := range sums {
			counts[j] = 0
			for d := range sums[j] {
				sums[j][d] = 0
			}
		}
		for i, p := range points {
			c := assignments[i]
			for d, v := range p {
				sums[c][d] += v
			}
			counts[c]++
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				// Re-seed an empty cluster with a random point.
				copy(centroids[j], points[rng.Intn(n)])
				continue
			}
			scale := 1 / float64(counts[j])
			for d := range centroids[j] {
				centroids[j][d] = sums[j][d] * scale
			}
		}
	}

	return assignments, nil
}
