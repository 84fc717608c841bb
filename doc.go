// Package mapper implements the Mapper algorithm from topological data
// analysis: it summarises the shape of a point cloud as a graph whose nodes
// are local clusters and whose edges join clusters that share points.
//
// # Pipeline
//
//	cover.Build      per-dimension overlapping intervals
//	Cover.Cells      Cartesian product of intervals (hyper-rectangles)
//	lens.Predicate   selects the points of each cell
//	cluster.Backend  labels each non-empty cell subset
//	nerve.Build      one node per cluster, edges for shared points
//
// # Quick Start
//
//	m, _ := mapper.New(points, mapper.WithWorkers(4))
//
//	db, _ := cluster.NewDBSCAN(0.1, 3)
//	res, _ := m.Run(ctx, mapper.RunConfig{
//	    Lens:     lens.Project(1),
//	    Ranges:   []cover.Range{{Min: -1.3, Max: 1.3}},
//	    Lengths:  []float64{0.3},
//	    Overlaps: []float64{0.1},
//	    Backend:  db,
//	})
//
//	for _, e := range res.Graph.Edges {
//	    fmt.Println(e.From, e.To)
//	}
//
// # Fault Isolation
//
// Configuration and dimension errors are returned before any clustering
// work. A backend failing on one cell (error, panic, or malformed labels)
// only drops that cell; it is reported in Result.Failures and the run
// completes. Context cancellation is honoured between cells.
//
// # Determinism
//
// Cells are processed concurrently but their clusters are merged in cell
// enumeration order (dimension 0 slowest), so node indices are stable
// across runs for the same input, cover, and deterministic backend.
package mapper
