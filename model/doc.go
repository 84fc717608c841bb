// Package model defines core types used throughout gomapper.
//
// # Data Types
//
//   - Point: fixed-length coordinate vector, compared by value
//   - Dataset: ordered, read-only sequence of equal-dimension points
//   - Key: hashable value identity of a Point (used for set semantics)
//
// # Cover Types
//
//   - Interval: one closed bin [Low, High] along a lens dimension
//   - Cell: one interval per lens dimension (a hyper-rectangle)
//
// Points are treated as immutable once handed to the engine. Use
// Point.Clone when a private copy is needed.
package model
