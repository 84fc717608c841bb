package cluster

import (
	"context"
	"errors"

	"github.com/hupe1980/gomapper/model"
)

// Noise is the reserved label for points that belong to no cluster.
const Noise = -1

var (
	// ErrTooFewPoints is returned by backends that cannot label a subset
	// smaller than their internal minimum.
	ErrTooFewPoints = errors.New("cluster: too few points")

	// ErrInvalidParameter is returned for invalid backend configuration.
	ErrInvalidParameter = errors.New("cluster: invalid parameter")
)

// Backend labels a non-empty collection of equal-dimension points.
//
// Fit returns one label per point, in input order. Implementations must
// not retain or mutate points.
type Backend interface {
	Fit(ctx context.Context, points []model.Point) ([]int, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, points []model.Point) ([]int, error)

// Fit implements Backend.
func (f BackendFunc) Fit(ctx context.Context, points []model.Point) ([]int, error) {
	return f(ctx, points)
}

// Single puts every point into one cluster.
type Single struct{}

// Fit implements Backend.
func (Single) Fit(_ context.Context, points []model.Point) ([]int, error) {
	return make([]int, len(points)), nil
}

// minSize relabels clusters smaller than n as noise.
type minSize struct {
	inner Backend
	n     int
}

// MinClusterSize wraps b so that clusters with fewer than n distinct
// points are reported as noise.
func MinClusterSize(b Backend, n int) Backend {
	return &minSize{inner: b, n: n}
}

// Fit implements Backend.
func (m *minSize) Fit(ctx context.Context, points []model.Point) ([]int, error) {
	labels, err := m.inner.Fit(ctx, points)
	if err != nil {
		return nil, err
	}
	if len(labels) != len(points) {
		return labels, nil
	}

	members := make(map[int]map[model.Key]struct{})
	for i, l := range labels {
		if l == Noise {
			continue
		}
		if members[l] == nil {
			members[l] = make(map[model.Key]struct{})
		}
		members[l][points[i].Key()] = struct{}{}
	}

	out := make([]int, len(labels))
	for i, l := range labels {
		if l != Noise && len(members[l]) < m.n {
			l = Noise
		}
		out[i] = l
	}
	return out, nil
}
