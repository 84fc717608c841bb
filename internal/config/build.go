package config

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/gomapper/cluster"
	"github.com/hupe1980/gomapper/codec"
	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/distance"
	"github.com/hupe1980/gomapper/export"
	"github.com/hupe1980/gomapper/lens"
	"github.com/hupe1980/gomapper/nerve"
)

// BuildLens returns the configured lens.
func (c *Config) BuildLens() (lens.Lens, error) {
	switch c.Lens.Type {
	case "projection":
		return lens.Project(c.Lens.Coordinates...), nil
	case "norm":
		return lens.Norm{Center: c.Lens.Center}, nil
	default:
		return nil, fmt.Errorf("config: unknown lens %q", c.Lens.Type)
	}
}

// BuildRanges returns the configured ranges, or nil when they should be
// derived from the data.
func (c *Config) BuildRanges() []cover.Range {
	if c.Cover.Ranges == nil {
		return nil
	}
	ranges := make([]cover.Range, len(c.Cover.Ranges))
	for i, r := range c.Cover.Ranges {
		ranges[i] = cover.Range{Min: r[0], Max: r[1]}
	}
	return ranges
}

// BuildBackend returns the configured clustering backend.
func (c *Config) BuildBackend() (cluster.Backend, error) {
	cc := c.Clustering

	metric, err := distance.ParseMetric(cc.Metric)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var b cluster.Backend
	switch cc.Algorithm {
	case "dbscan":
		b, err = cluster.NewDBSCAN(cc.Eps, cc.MinSamples, func(o *cluster.DBSCANOptions) {
			o.Metric = metric
		})
	case "kmeans":
		b, err = cluster.NewKMeans(cc.K, func(o *cluster.KMeansOptions) {
			if cc.MaxIter > 0 {
				o.MaxIter = cc.MaxIter
			}
			o.Seed = cc.Seed
			if cc.Metric != "" {
				o.Metric = metric
			}
		})
	case "single":
		b = cluster.Single{}
	default:
		return nil, fmt.Errorf("config: unknown algorithm %q", cc.Algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cc.MinClusterSize > 1 {
		b = cluster.MinClusterSize(b, cc.MinClusterSize)
	}
	return b, nil
}

// BuildNerveStrategy returns the configured nerve strategy.
func (c *Config) BuildNerveStrategy() nerve.Strategy {
	if c.Nerve == "pairwise" {
		return nerve.StrategyPairwise
	}
	return nerve.StrategyIndexed
}

// BuildLogLevel returns the configured slog level.
func (c *Config) BuildLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// BuildExportOptions returns the configured export options.
func (c *Config) BuildExportOptions() ([]export.Option, error) {
	indent := ""
	if c.Output.Pretty {
		indent = "  "
	}
	cd, err := codec.Lookup(c.Output.Codec, indent)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	comp, err := export.ParseCompression(c.Output.Compression)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []export.Option{
		export.WithCodec(cd),
		export.WithCompression(comp),
		export.WithRateLimit(c.Output.RateLimit),
	}, nil
}
