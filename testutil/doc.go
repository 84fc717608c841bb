// Package testutil provides seeded point-cloud generators for tests,
// examples, and benchmarks.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, 2, -1, 1)    // uniform box
//	ring := rng.Circles(1000, 0.03, 0.3)       // two noisy concentric circles
//	blobs := rng.Blobs(300, 2, 3, 0.1)         // gaussian blobs
//
// Generators are deterministic for a given seed.
package testutil
