package mapper

import (
	"time"

	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/model"
	"github.com/hupe1980/gomapper/nerve"
)

// Cluster is one node of the Mapper graph.
type Cluster struct {
	// ID is the node index, stable for a given input and configuration.
	ID int
	// Cell is the linear index of the cover cell the cluster came from.
	Cell int
	// Points holds distinct point values in dataset order. Read-only.
	Points []model.Point
}

// Size returns the cardinality of the cluster.
func (c Cluster) Size() int { return len(c.Points) }

// CellFailure records a cell dropped because its backend failed.
type CellFailure struct {
	Index  int
	Cell   model.Cell
	Points int
	Err    error
}

// Result summarises one clustering run.
type Result struct {
	RunID string
	Cover cover.Cover

	// Cells is the number of enumerated cells.
	Cells int
	// EmptyCells is the number of cells no point fell into.
	EmptyCells int
	// ClusteredCells is the number of cells the backend labelled successfully.
	ClusteredCells int

	Clusters []Cluster
	Failures []CellFailure

	// Graph is set by Run; MakeClusters leaves it nil.
	Graph *nerve.Graph

	Duration time.Duration
}

// FailedCells returns the indices of cells dropped by backend failures.
func (r *Result) FailedCells() []int {
	out := make([]int, len(r.Failures))
	for i, f := range r.Failures {
		out[i] = f.Index
	}
	return out
}

// Sets returns the point-sets of all clusters in node order.
func (r *Result) Sets() [][]model.Point {
	return clusterSets(r.Clusters)
}

func clusterSets(clusters []Cluster) [][]model.Point {
	sets := make([][]model.Point, len(clusters))
	for i, c := range clusters {
		sets[i] = c.Points
	}
	return sets
}
