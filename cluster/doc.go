// Package cluster defines the clustering backend contract used inside
// cover cells, plus a few standard backends.
//
// A Backend labels every point of a non-empty subset. Points sharing a
// label form one cluster; the reserved Noise label excludes a point from
// every cluster. Label values carry no meaning beyond equality.
//
// # Built-in Backends
//
//   - DBSCAN: density clustering with eps / min samples
//   - KMeans: Lloyd's algorithm with seeded initialisation
//   - Single: every point in one cluster
//
// Group turns labels into deduplicated point-sets.
package cluster
