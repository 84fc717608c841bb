package mapper

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/gomapper/cluster"
	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/internal/resource"
	"github.com/hupe1980/gomapper/lens"
	"github.com/hupe1980/gomapper/model"
	"github.com/hupe1980/gomapper/nerve"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/hupe1980/gomapper"

// bytesPerMember estimates the per-point working set of a cell: one slice
// header in the subset plus one label.
const bytesPerMember = 32

// Mapper runs the cover-and-cluster pipeline over a fixed dataset.
//
// A Mapper is safe for concurrent use. Each completed MakeClusters call
// replaces the stored clusters; Graph always reflects the latest run.
type Mapper struct {
	data   model.Dataset
	opts   options
	rc     *resource.Controller
	tracer trace.Tracer

	mu        sync.RWMutex
	clusters  []Cluster
	clustered bool
}

// New creates a Mapper over data. The dataset is not copied and must not be
// mutated while the Mapper is in use.
//
// All points must share one dimension, otherwise *ErrDimensionMismatch is
// returned.
func New(data model.Dataset, optFns ...Option) (*Mapper, error) {
	if idx, err := data.Validate(); err != nil {
		return nil, &ErrDimensionMismatch{
			Subject:  fmt.Sprintf("point %d", idx),
			Expected: data.Dim(),
			Actual:   len(data[idx]),
			cause:    err,
		}
	}

	o := applyOptions(optFns)

	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Mapper{
		data: data,
		opts: o,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: o.memoryLimit,
			MaxWorkers:       int64(o.workers),
		}),
		tracer: tp.Tracer(tracerName),
	}, nil
}

// Data returns the dataset the Mapper was created with.
func (m *Mapper) Data() model.Dataset { return m.data }

// BuildCover returns the uniform cover for the given parameters.
// Malformed parameters yield *ErrInvalidCover.
func BuildCover(ranges []cover.Range, lengths, overlaps []float64) (cover.Cover, error) {
	cov, err := cover.Build(ranges, lengths, overlaps)
	return cov, translateError(err)
}

// cellOutcome is the result of one non-empty cell.
type cellOutcome struct {
	idx     int
	sets    [][]model.Point
	failure *CellFailure
}

// MakeClusters partitions the dataset by the cells of cov using pred,
// clusters every non-empty subset with backend and stores the clusters.
//
// Cells are processed concurrently; their clusters are concatenated in
// cell enumeration order. Backend failures drop only the affected cell
// and are reported in Result.Failures. On error the previously stored
// clusters are kept.
func (m *Mapper) MakeClusters(ctx context.Context, cov cover.Cover, pred lens.Predicate, backend cluster.Backend) (*Result, error) {
	if err := validateCover(cov); err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, ErrNilPredicate
	}
	if backend == nil {
		return nil, ErrNilBackend
	}

	start := time.Now()
	runID := uuid.NewString()
	log := m.opts.logger.WithRunID(runID)
	total := cov.Count()

	ctx, span := m.tracer.Start(ctx, "mapper.MakeClusters",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("points", len(m.data)),
			attribute.Int("cells", total),
		),
	)
	defer span.End()

	log.LogRunStart(ctx, len(m.data), total, m.rc.MaxWorkers())

	// Only non-empty cells are buffered; the cell count may far exceed
	// the number of points.
	var (
		outMu    sync.Mutex
		outcomes []cellOutcome
	)

	g, gctx := errgroup.WithContext(ctx)
	for idx, cell := range cov.Cells() {
		if err := m.rc.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer m.rc.ReleaseWorker()
			out, err := m.processCell(gctx, log, idx, cell, pred, backend)
			if err != nil || out == nil {
				return err
			}
			outMu.Lock()
			outcomes = append(outcomes, *out)
			outMu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		err = translateError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.LogRun(ctx, nil, err)
		return nil, err
	}

	slices.SortFunc(outcomes, func(a, b cellOutcome) int { return cmp.Compare(a.idx, b.idx) })

	res := &Result{
		RunID:      runID,
		Cover:      cov,
		Cells:      total,
		EmptyCells: total - len(outcomes),
	}
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			res.Failures = append(res.Failures, *o.failure)
			log.LogCellFailure(ctx, *o.failure)
		default:
			res.ClusteredCells++
			for _, set := range o.sets {
				res.Clusters = append(res.Clusters, Cluster{
					ID:     len(res.Clusters),
					Cell:   o.idx,
					Points: set,
				})
			}
		}
	}
	res.Duration = time.Since(start)

	m.mu.Lock()
	m.clusters = res.Clusters
	m.clustered = true
	m.mu.Unlock()

	span.SetAttributes(
		attribute.Int("clusters", len(res.Clusters)),
		attribute.Int("empty_cells", res.EmptyCells),
		attribute.Int("failed_cells", len(res.Failures)),
	)
	m.opts.metricsCollector.RecordRun(res.Cells, res.EmptyCells, len(res.Failures), len(res.Clusters), res.Duration)
	log.LogRun(ctx, res, nil)

	return res, nil
}

// processCell filters and clusters one cell. It returns a nil outcome for
// an empty cell.
func (m *Mapper) processCell(ctx context.Context, log *Logger, idx int, cell model.Cell, pred lens.Predicate, backend cluster.Backend) (*cellOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subset := selectPoints(m.data, pred, cell)
	if len(subset) == 0 {
		log.LogEmptyCell(ctx, idx)
		return nil, nil
	}

	reserved := int64(len(subset)) * bytesPerMember
	if err := m.rc.AcquireMemory(ctx, reserved); err != nil {
		if errors.Is(err, resource.ErrMemoryLimitExceeded) {
			return nil, fmt.Errorf("cell %d: %w", idx, err)
		}
		return nil, err
	}
	defer m.rc.ReleaseMemory(reserved)

	start := time.Now()
	sets, err := fitCell(ctx, backend, subset)
	m.opts.metricsCollector.RecordCell(len(subset), len(sets), time.Since(start), err)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return &cellOutcome{
			idx: idx,
			failure: &CellFailure{
				Index:  idx,
				Cell:   cell,
				Points: len(subset),
				Err:    &ErrBackend{Cell: idx, cause: err},
			},
		}, nil
	}

	return &cellOutcome{idx: idx, sets: sets}, nil
}

// selectPoints returns the points of data accepted by pred for cell,
// preserving dataset order.
func selectPoints(data model.Dataset, pred lens.Predicate, cell model.Cell) []model.Point {
	var subset []model.Point
	for _, p := range data {
		if pred(p, cell) {
			subset = append(subset, p)
		}
	}
	return subset
}

// fitCell runs the backend and groups its labels. Panics inside the
// backend are converted into errors.
func fitCell(ctx context.Context, backend cluster.Backend, points []model.Point) (sets [][]model.Point, err error) {
	defer func() {
		if r := recover(); r != nil {
			sets, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()

	labels, err := backend.Fit(ctx, points)
	if err != nil {
		return nil, err
	}
	return cluster.Group(points, labels)
}

func validateCover(cov cover.Cover) error {
	if cov.Dim() == 0 {
		return &ErrInvalidCover{Dimension: -1, Reason: "cover has no dimensions"}
	}
	if _, err := cov.CheckedCount(); err != nil {
		return &ErrInvalidCover{Dimension: -1, Reason: "too many cells", cause: err}
	}
	for d, ivs := range cov {
		if len(ivs) == 0 {
			return &ErrInvalidCover{Dimension: d, Reason: "no intervals"}
		}
		for _, iv := range ivs {
			if iv.Low > iv.High {
				return &ErrInvalidCover{Dimension: d, Reason: fmt.Sprintf("interval %v has low above high", iv)}
			}
		}
	}
	return nil
}

// Clusters returns the clusters of the latest completed run.
func (m *Mapper) Clusters() []Cluster {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Cluster, len(m.clusters))
	copy(out, m.clusters)
	return out
}

// Graph builds the nerve of the latest clusters.
// It returns ErrNoClusters if MakeClusters has not completed yet.
func (m *Mapper) Graph(ctx context.Context) (*nerve.Graph, error) {
	m.mu.RLock()
	clusters, ok := m.clusters, m.clustered
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNoClusters
	}
	return m.graph(ctx, clusters)
}

func (m *Mapper) graph(ctx context.Context, clusters []Cluster) (*nerve.Graph, error) {
	ctx, span := m.tracer.Start(ctx, "mapper.Graph",
		trace.WithAttributes(
			attribute.Int("nodes", len(clusters)),
			attribute.String("strategy", m.opts.nerveStrategy.String()),
		),
	)
	defer span.End()

	start := time.Now()
	g, err := nerve.Build(ctx, clusterSets(clusters), func(o *nerve.Options) {
		o.Strategy = m.opts.nerveStrategy
		o.Workers = m.opts.workers
	})
	d := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.opts.metricsCollector.RecordGraph(len(clusters), 0, d, err)
		m.opts.logger.LogGraph(ctx, len(clusters), 0, d, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("edges", g.NumEdges()))
	m.opts.metricsCollector.RecordGraph(g.NumNodes(), g.NumEdges(), d, nil)
	m.opts.logger.LogGraph(ctx, g.NumNodes(), g.NumEdges(), d, nil)
	return g, nil
}
