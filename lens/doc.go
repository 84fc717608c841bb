// Package lens provides filter functions (lenses) and the membership
// predicates that assign points to cover cells.
//
// A Lens maps a point to one value per lens dimension. The canonical
// predicate, Inclusive, accepts a point for a cell when every lens value
// lies inside the matching interval with closed bounds. A point sitting
// exactly on a shared boundary therefore belongs to both neighbouring
// cells, which is what lets overlapping cells produce nerve edges.
package lens
