package mapper

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see the metric package for a ready-made adapter).
type MetricsCollector interface {
	// RecordCell is called after the backend ran on one non-empty cell.
	// points is the subset size, clusters the number of clusters kept,
	// err is non-nil if the backend failed.
	RecordCell(points, clusters int, duration time.Duration, err error)

	// RecordRun is called after each completed clustering run.
	RecordRun(cells, empty, failed, clusters int, duration time.Duration)

	// RecordGraph is called after each nerve construction.
	RecordGraph(nodes, edges int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCell(int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordRun(int, int, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordGraph(int, int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CellCount       atomic.Int64
	CellErrors      atomic.Int64
	CellPoints      atomic.Int64
	CellTotalNanos  atomic.Int64
	ClusterCount    atomic.Int64
	RunCount        atomic.Int64
	RunEmptyCells   atomic.Int64
	RunFailedCells  atomic.Int64
	RunTotalNanos   atomic.Int64
	GraphCount      atomic.Int64
	GraphErrors     atomic.Int64
	GraphEdges      atomic.Int64
	GraphTotalNanos atomic.Int64
}

// RecordCell implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCell(points, clusters int, duration time.Duration, err error) {
	b.CellCount.Add(1)
	b.CellPoints.Add(int64(points))
	b.CellTotalNanos.Add(duration.Nanoseconds())
	b.ClusterCount.Add(int64(clusters))
	if err != nil {
		b.CellErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(cells, empty, failed, clusters int, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunEmptyCells.Add(int64(empty))
	b.RunFailedCells.Add(int64(failed))
	b.RunTotalNanos.Add(duration.Nanoseconds())
}

// RecordGraph implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGraph(nodes, edges int, duration time.Duration, err error) {
	b.GraphCount.Add(1)
	b.GraphTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GraphErrors.Add(1)
		return
	}
	b.GraphEdges.Add(int64(edges))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CellCount:     b.CellCount.Load(),
		CellErrors:    b.CellErrors.Load(),
		CellPoints:    b.CellPoints.Load(),
		CellAvgNanos:  avg(b.CellTotalNanos.Load(), b.CellCount.Load()),
		ClusterCount:  b.ClusterCount.Load(),
		RunCount:      b.RunCount.Load(),
		RunEmptyCells: b.RunEmptyCells.Load(),
		RunFailed:     b.RunFailedCells.Load(),
		RunAvgNanos:   avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		GraphCount:    b.GraphCount.Load(),
		GraphErrors:   b.GraphErrors.Load(),
		GraphEdges:    b.GraphEdges.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CellCount     int64
	CellErrors    int64
	CellPoints    int64
	CellAvgNanos  int64
	ClusterCount  int64
	RunCount      int64
	RunEmptyCells int64
	RunFailed     int64
	RunAvgNanos   int64
	GraphCount    int64
	GraphErrors   int64
	GraphEdges    int64
}
