package metric

import (
	"context"
	"testing"

	mapper "github.com/hupe1980/gomapper"
	"github.com/hupe1980/gomapper/cluster"
	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/lens"
	"github.com/hupe1980/gomapper/model"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func counterByLabel(mf *dto.MetricFamily, value string) float64 {
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return -1
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	m, err := mapper.New(model.Dataset{{0}, {1}, {9}, {10}}, mapper.WithMetricsCollector(pc))
	require.NoError(t, err)

	_, err = m.Run(context.Background(), mapper.RunConfig{
		Lens:     lens.Project(0),
		Ranges:   []cover.Range{{Min: 0, Max: 10}},
		Lengths:  []float64{3},
		Overlaps: []float64{1},
		Backend:  cluster.Single{},
	})
	require.NoError(t, err)

	mfs := gather(t, reg)

	require.Contains(t, mfs, "mapper_runs_total")
	assert.Equal(t, 1.0, mfs["mapper_runs_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 3.0, mfs["mapper_clusters_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 3.0, mfs["mapper_last_run_clusters"].GetMetric()[0].GetGauge().GetValue())

	cells := mfs["mapper_cells_total"]
	assert.Equal(t, 2.0, counterByLabel(cells, "empty"))
	assert.Equal(t, 3.0, counterByLabel(cells, "clustered"))
	assert.Equal(t, 0.0, counterByLabel(cells, "failed"))

	assert.Equal(t, uint64(3), mfs["mapper_cell_points"].GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, uint64(1), mfs["mapper_graph_edges"].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestPrometheusCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg)
	assert.Error(t, err)
}
