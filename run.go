package mapper

import (
	"context"
	"errors"

	"github.com/hupe1980/gomapper/cluster"
	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/lens"
)

// RunConfig describes a complete Mapper run.
type RunConfig struct {
	// Lens maps points into the space the cover lives in.
	Lens lens.Lens
	// Predicate overrides the membership test. Defaults to lens.Inclusive(Lens).
	Predicate lens.Predicate
	// Ranges bound each lens dimension. When nil they are derived from the
	// data with lens.Bounds.
	Ranges []cover.Range
	// Lengths and Overlaps hold the interval length and overlap per dimension.
	Lengths  []float64
	Overlaps []float64
	// Backend clusters the points of each cell.
	Backend cluster.Backend
}

// Run builds the cover, clusters every cell and assembles the nerve.
// The returned Result carries the graph.
func (m *Mapper) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	cov, pred, err := m.prepare(cfg)
	if err != nil {
		return nil, err
	}

	res, err := m.MakeClusters(ctx, cov, pred, cfg.Backend)
	if err != nil {
		return nil, err
	}

	g, err := m.graph(ctx, res.Clusters)
	if err != nil {
		return nil, err
	}
	res.Graph = g

	return res, nil
}

func (m *Mapper) prepare(cfg RunConfig) (cover.Cover, lens.Predicate, error) {
	pred := cfg.Predicate

	if cfg.Lens == nil {
		if pred == nil {
			return nil, nil, ErrNilPredicate
		}
		if cfg.Ranges == nil {
			return nil, nil, &ErrInvalidCover{Dimension: -1, Reason: "ranges are required without a lens"}
		}
	} else {
		if err := m.checkLens(cfg.Lens, len(cfg.Lengths)); err != nil {
			return nil, nil, err
		}
		if pred == nil {
			pred = lens.Inclusive(cfg.Lens)
		}
	}

	ranges := cfg.Ranges
	if ranges == nil {
		r, err := lens.Bounds(m.data, cfg.Lens)
		if err != nil {
			if errors.Is(err, lens.ErrEmptyDataset) {
				return nil, nil, &ErrInvalidCover{Dimension: -1, Reason: "ranges are required for an empty dataset", cause: err}
			}
			return nil, nil, &ErrInvalidCover{Dimension: -1, Reason: "cannot derive ranges", cause: err}
		}
		ranges = r
	}

	cov, err := BuildCover(ranges, cfg.Lengths, cfg.Overlaps)
	if err != nil {
		return nil, nil, err
	}
	return cov, pred, nil
}

func (m *Mapper) checkLens(l lens.Lens, coverDim int) error {
	if l.Dim() != coverDim {
		return &ErrDimensionMismatch{Subject: "cover", Expected: l.Dim(), Actual: coverDim}
	}
	if len(m.data) == 0 {
		return nil
	}
	if err := lens.Check(l, m.data.Dim()); err != nil {
		need := l.Dim()
		if r, ok := l.(lens.PointDimRequirer); ok {
			need = r.MinPointDim()
		}
		return &ErrDimensionMismatch{Subject: "lens input", Expected: need, Actual: m.data.Dim(), cause: err}
	}
	// Lenses are pure, so the first point tells the output width.
	if n := len(l.Apply(m.data[0])); n != l.Dim() {
		return &ErrDimensionMismatch{Subject: "lens output", Expected: l.Dim(), Actual: n}
	}
	return nil
}
