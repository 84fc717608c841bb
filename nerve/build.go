package nerve

import (
	"context"
	"fmt"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/gomapper/model"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how pairwise intersections are found.
type Strategy int

const (
	// StrategyIndexed walks a point -> clusters inverted index.
	StrategyIndexed Strategy = iota
	// StrategyPairwise tests every pair of cluster bitmaps.
	StrategyPairwise
)

func (s Strategy) String() string {
	switch s {
	case StrategyIndexed:
		return "indexed"
	case StrategyPairwise:
		return "pairwise"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Options configures Build.
type Options struct {
	Strategy Strategy
	// Workers bounds StrategyPairwise fan-out. Defaults to GOMAXPROCS.
	Workers int
}

// Build returns the nerve of sets.
//
// Node i corresponds to sets[i]; its Size is the number of distinct point
// values in the set. The result does not depend on the strategy.
func Build(ctx context.Context, sets [][]model.Point, optFns ...func(*Options)) (*Graph, error) {
	opts := Options{Strategy: StrategyIndexed}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	members, universe := intern(sets)

	g := &Graph{
		Nodes: make([]Node, len(sets)),
		Edges: []Edge{},
	}
	for i, bm := range members {
		g.Nodes[i] = Node{ID: i, Size: int(bm.GetCardinality())}
	}

	var (
		edges []Edge
		err   error
	)
	switch opts.Strategy {
	case StrategyIndexed:
		edges, err = indexedEdges(ctx, members, universe)
	case StrategyPairwise:
		edges, err = pairwiseEdges(ctx, members, opts.Workers)
	default:
		return nil, fmt.Errorf("nerve: unsupported strategy %v", opts.Strategy)
	}
	if err != nil {
		return nil, err
	}
	if edges != nil {
		g.Edges = edges
	}
	return g, nil
}

// intern assigns a dense id to every distinct point value and returns one
// membership bitmap per set together with the number of distinct values.
func intern(sets [][]model.Point) ([]*roaring.Bitmap, int) {
	ids := make(map[model.Key]uint32)
	members := make([]*roaring.Bitmap, len(sets))
	for i, set := range sets {
		bm := roaring.New()
		for _, p := range set {
			k := p.Key()
			id, ok := ids[k]
			if !ok {
				id = uint32(len(ids))
				ids[k] = id
			}
			bm.Add(id)
		}
		members[i] = bm
	}
	return members, len(ids)
}

func indexedEdges(ctx context.Context, members []*roaring.Bitmap, universe int) ([]Edge, error) {
	postings := make([]*roaring.Bitmap, universe)
	for c, bm := range members {
		it := bm.Iterator()
		for it.HasNext() {
			id := it.Next()
			if postings[id] == nil {
				postings[id] = roaring.New()
			}
			postings[id].Add(uint32(c))
		}
	}

	var edges []Edge
	lists := make([]*roaring.Bitmap, 0, 16)
	for i, bm := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lists = lists[:0]
		it := bm.Iterator()
		for it.HasNext() {
			lists = append(lists, postings[it.Next()])
		}
		if len(lists) == 0 {
			continue
		}

		neighbors := roaring.FastOr(lists...)
		nit := neighbors.Iterator()
		nit.AdvanceIfNeeded(uint32(i + 1))
		for nit.HasNext() {
			edges = append(edges, Edge{From: i, To: int(nit.Next())})
		}
	}
	return edges, nil
}

func pairwiseEdges(ctx context.Context, members []*roaring.Bitmap, workers int) ([]Edge, error) {
	rows := make([][]Edge, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range members {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < len(members); j++ {
				if members[i].Intersects(members[j]) {
					rows[i] = append(rows[i], Edge{From: i, To: j})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var edges []Edge
	for _, row := range rows {
		edges = append(edges, row...)
	}
	return edges, nil
}
