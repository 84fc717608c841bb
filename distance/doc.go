// Package distance provides point distance calculations for clustering
// backends.
//
// Kernels are backed by gonum's floats package.
//
// # Supported Metrics
//
//   - MetricEuclidean: Euclidean (L2) distance (default)
//   - MetricSquaredL2: Squared Euclidean distance
//   - MetricManhattan: L1 distance
//   - MetricChebyshev: L-infinity distance
//   - MetricCosine: Cosine distance (1 - cosine similarity)
//
// # Usage
//
//	fn, _ := distance.Provider(distance.MetricEuclidean)
//	d := fn(a, b)
package distance
