package metric

import (
	"time"

	mapper "github.com/hupe1980/gomapper"
	"github.com/prometheus/client_golang/prometheus"
)

var _ mapper.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements mapper.MetricsCollector with Prometheus
// counters and histograms.
type PrometheusCollector struct {
	opLatency   *prometheus.HistogramVec
	cellPoints  prometheus.Histogram
	clusters    prometheus.Counter
	cells       *prometheus.CounterVec
	runs        prometheus.Counter
	graphEdges  prometheus.Histogram
	lastRunSize prometheus.Gauge
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mapper_operation_latency_seconds",
			Help:    "Latency of mapper operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		cellPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mapper_cell_points",
			Help:    "Number of points per clustered cell",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		clusters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mapper_clusters_total",
			Help: "Total clusters produced by backends",
		}),
		cells: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mapper_cells_total",
			Help: "Total cells processed by outcome",
		}, []string{"outcome"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mapper_runs_total",
			Help: "Total completed clustering runs",
		}),
		graphEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mapper_graph_edges",
			Help:    "Number of edges per built graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		lastRunSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mapper_last_run_clusters",
			Help: "Number of clusters in the latest run",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.opLatency, c.cellPoints, c.clusters, c.cells, c.runs, c.graphEdges, c.lastRunSize,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordCell implements mapper.MetricsCollector.
func (c *PrometheusCollector) RecordCell(points, clusters int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("cell", status(err)).Observe(d.Seconds())
	c.cellPoints.Observe(float64(points))
	c.clusters.Add(float64(clusters))
}

// RecordRun implements mapper.MetricsCollector.
func (c *PrometheusCollector) RecordRun(cells, empty, failed, clusters int, d time.Duration) {
	c.opLatency.WithLabelValues("run", "success").Observe(d.Seconds())
	c.runs.Inc()
	c.cells.WithLabelValues("empty").Add(float64(empty))
	c.cells.WithLabelValues("failed").Add(float64(failed))
	c.cells.WithLabelValues("clustered").Add(float64(cells - empty - failed))
	c.lastRunSize.Set(float64(clusters))
}

// RecordGraph implements mapper.MetricsCollector.
func (c *PrometheusCollector) RecordGraph(nodes, edges int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("graph", status(err)).Observe(d.Seconds())
	if err == nil {
		c.graphEdges.Observe(float64(edges))
	}
}
