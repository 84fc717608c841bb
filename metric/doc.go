// Package metric exports Mapper run metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	pc, err := metric.NewPrometheusCollector(reg)
//	m, _ := mapper.New(points, mapper.WithMetricsCollector(pc))
package metric
