// Package nerve assembles the Mapper graph from clusters.
//
// Every cluster becomes a node annotated with its cardinality; two nodes
// are joined by an edge iff their clusters share at least one point, where
// points are compared by value. Edges are unordered pairs stored as
// (From, To) with From < To, sorted lexicographically.
//
// Two strategies produce identical graphs:
//
//   - StrategyIndexed (default): a roaring inverted index from point to
//     cluster ids, near-linear in the total membership count.
//   - StrategyPairwise: roaring intersection tests over all pairs i < j,
//     fanned out over a bounded worker group.
package nerve
