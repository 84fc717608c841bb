package export

import (
	"fmt"
	"time"

	mapper "github.com/hupe1980/gomapper"
	"github.com/hupe1980/gomapper/model"
	"github.com/hupe1980/gomapper/nerve"
)

// FormatVersion is incremented on incompatible document changes.
const FormatVersion = 1

// EdgeColor is the hint colour of every edge.
const EdgeColor = "#ffdd00"

// Node is an exported cluster with rendering hints.
type Node struct {
	ID   int `json:"id"`
	Cell int `json:"cell"`
	Size int `json:"size"`
	// RelSize is Size divided by the number of nodes.
	RelSize float64 `json:"rel_size"`
	// Color runs from yellow (smallest) to red (largest node).
	Color  string     `json:"color"`
	Title  string     `json:"title"`
	Bounds model.Cell `json:"bounds,omitempty"`
}

// Edge is an exported nerve edge.
type Edge struct {
	nerve.Edge
	Color string `json:"color"`
}

// Failure describes a cell dropped by a backend failure.
type Failure struct {
	Cell   int    `json:"cell"`
	Points int    `json:"points"`
	Error  string `json:"error"`
}

// Document is the portable form of a Mapper graph.
type Document struct {
	Version    int       `json:"version"`
	RunID      string    `json:"run_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Points     int       `json:"points"`
	Cells      int       `json:"cells"`
	EmptyCells int       `json:"empty_cells"`
	Nodes      []Node    `json:"nodes"`
	Edges      []Edge    `json:"edges"`
	Failures   []Failure `json:"failures,omitempty"`
}

// FromResult builds a document from a completed Run. points is the size
// of the dataset the run was computed on.
func FromResult(res *mapper.Result, points int) (*Document, error) {
	if res == nil || res.Graph == nil {
		return nil, fmt.Errorf("export: result has no graph")
	}
	if len(res.Graph.Nodes) != len(res.Clusters) {
		return nil, fmt.Errorf("export: graph has %d nodes for %d clusters", len(res.Graph.Nodes), len(res.Clusters))
	}

	doc := &Document{
		Version:    FormatVersion,
		RunID:      res.RunID,
		CreatedAt:  time.Now().UTC(),
		Points:     points,
		Cells:      res.Cells,
		EmptyCells: res.EmptyCells,
		Nodes:      make([]Node, len(res.Graph.Nodes)),
		Edges:      make([]Edge, len(res.Graph.Edges)),
	}

	maxSize := 0
	for _, n := range res.Graph.Nodes {
		maxSize = max(maxSize, n.Size)
	}

	for i, n := range res.Graph.Nodes {
		c := res.Clusters[i]
		node := Node{
			ID:      n.ID,
			Cell:    c.Cell,
			Size:    n.Size,
			RelSize: float64(n.Size) / float64(len(res.Graph.Nodes)),
			Color:   NodeColor(n.Size, maxSize),
			Title:   fmt.Sprintf("Contains %d elements", n.Size),
		}
		if res.Cover != nil {
			node.Bounds = res.Cover.CellAt(c.Cell)
		}
		doc.Nodes[i] = node
	}

	for i, e := range res.Graph.Edges {
		doc.Edges[i] = Edge{Edge: e, Color: EdgeColor}
	}

	for _, f := range res.Failures {
		doc.Failures = append(doc.Failures, Failure{
			Cell:   f.Index,
			Points: f.Points,
			Error:  f.Err.Error(),
		})
	}

	return doc, nil
}

// NodeColor returns the hint colour of a node of the given size:
// #ffXX00 where XX falls from ff to 00 as size approaches maxSize.
func NodeColor(size, maxSize int) string {
	green := 255
	if maxSize > 0 {
		green = 255 - int(float64(size)/float64(maxSize)*255)
	}
	return fmt.Sprintf("#%02x%02x%02x", 255, green, 0)
}

// Graph rebuilds the nerve graph from the document.
func (d *Document) Graph() *nerve.Graph {
	g := &nerve.Graph{
		Nodes: make([]nerve.Node, len(d.Nodes)),
		Edges: make([]nerve.Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		g.Nodes[i] = nerve.Node{ID: n.ID, Size: n.Size}
	}
	for i, e := range d.Edges {
		g.Edges[i] = e.Edge
	}
	return g
}
