package cluster

import (
	"context"
	"fmt"

	"github.com/hupe1980/gomapper/distance"
	"github.com/hupe1980/gomapper/model"
)

// DBSCANOptions configures a DBSCAN backend.
type DBSCANOptions struct {
	// Metric used for the eps neighbourhood. Defaults to Euclidean.
	Metric distance.Metric
}

// DBSCAN is a density-based backend.
//
// A point with at least MinSamples neighbours within Eps (itself included)
// is a core point. Clusters grow from core points; unreachable points are
// labelled Noise. Labels start at 0.
type DBSCAN struct {
	eps        float64
	minSamples int
	dist       distance.Func
}

// NewDBSCAN creates a DBSCAN backend.
func NewDBSCAN(eps float64, minSamples int, optFns ...func(*DBSCANOptions)) (*DBSCAN, error) {
	if eps <= 0 {
		return nil, fmt.Errorf("%w: eps must be positive, got %g", ErrInvalidParameter, eps)
	}
	if minSamples < 1 {
		return nil, fmt.Errorf("%w: min samples must be >= 1, got %d", ErrInvalidParameter, minSamples)
	}

	opts := DBSCANOptions{Metric: distance.MetricEuclidean}
	for _, fn := range optFns {
		fn(&opts)
	}

	dist, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return &DBSCAN{eps: eps, minSamples: minSamples, dist: dist}, nil
}

const unvisited = -2

// Fit implements Backend.
func (db *DBSCAN) Fit(ctx context.Context, points []model.Point) ([]int, error) {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		neighbors := db.rangeQuery(points, i)
		if len(neighbors) < db.minSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = clusterID

		seed := make([]int, 0, len(neighbors))
		for _, j := range neighbors {
			if j != i {
				seed = append(seed, j)
			}
		}

		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if labels[q] == Noise {
				// border point
				labels[q] = clusterID
			}
			if labels[q] != unvisited {
				continue
			}
			labels[q] = clusterID

			qNeighbors := db.rangeQuery(points, q)
			if len(qNeighbors) >= db.minSamples {
				seed = append(seed, qNeighbors...)
			}
		}

		clusterID++
	}

	return labels, nil
}

func (db *DBSCAN) rangeQuery(points []model.Point, idx int) []int {
	var result []int
	q := points[idx]
	for i, p := range points {
		if db.dist(q, p) <= db.eps {
			result = append(result, i)
		}
	}
	return result
}
