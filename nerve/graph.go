package nerve

import (
	"fmt"
	"sort"
	"sync"
)

// Node is one cluster in the graph.
type Node struct {
	ID   int `json:"id"`
	Size int `json:"size"`
}

// Edge joins two clusters that share points. From < To.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// String returns a string representation of the Edge.
func (e Edge) String() string { return fmt.Sprintf("(%d,%d)", e.From, e.To) }

// Graph is the nerve of a cluster collection.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	adjOnce sync.Once
	adj     [][]int
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// HasEdge reports whether nodes i and j are adjacent.
func (g *Graph) HasEdge(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	k := sort.Search(len(g.Edges), func(k int) bool {
		e := g.Edges[k]
		return e.From > i || (e.From == i && e.To >= j)
	})
	return k < len(g.Edges) && g.Edges[k] == Edge{From: i, To: j}
}

// Neighbors returns the nodes adjacent to i in ascending order.
func (g *Graph) Neighbors(i int) []int {
	g.buildAdjacency()
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	return g.adj[i]
}

// Degree returns the number of neighbours of i.
func (g *Graph) Degree(i int) int { return len(g.Neighbors(i)) }

// Components returns the connected components, each sorted ascending and
// ordered by their smallest node.
func (g *Graph) Components() [][]int {
	g.buildAdjacency()

	seen := make([]bool, len(g.Nodes))
	var comps [][]int
	for start := range g.Nodes {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []int{start}
		for q := 0; q < len(comp); q++ {
			for _, n := range g.adj[comp[q]] {
				if !seen[n] {
					seen[n] = true
					comp = append(comp, n)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

func (g *Graph) buildAdjacency() {
	g.adjOnce.Do(g.computeAdjacency)
}

func (g *Graph) computeAdjacency() {
	adj := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for _, a := range adj {
		sort.Ints(a)
	}
	g.adj = adj
}
