package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	mapper "github.com/hupe1980/gomapper"
	"github.com/hupe1980/gomapper/blobstore"
	minioblob "github.com/hupe1980/gomapper/blobstore/minio"
	s3blob "github.com/hupe1980/gomapper/blobstore/s3"
	"github.com/hupe1980/gomapper/dataset"
	"github.com/hupe1980/gomapper/export"
	"github.com/hupe1980/gomapper/internal/config"
	"github.com/hupe1980/gomapper/metric"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		output      string
		workers     int
		dumpMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a Mapper graph from a YAML configuration",
		Example: `  mapper run --config mapper.yaml
  mapper run --config mapper.yaml --output - --metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Output.Path = output
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			return runMapper(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), dumpMetrics)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "mapper.yaml", "path to the run configuration")
	cmd.Flags().StringVarP(&output, "output", "o", "", "override output.path; - writes to stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "override the worker count")
	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print Prometheus metrics to stderr after the run")

	return cmd
}

func runMapper(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, dumpMetrics bool) error {
	data, err := dataset.Load(cfg.Input)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Input, err)
	}

	l, err := cfg.BuildLens()
	if err != nil {
		return err
	}
	backend, err := cfg.BuildBackend()
	if err != nil {
		return err
	}
	exportOpts, err := cfg.BuildExportOptions()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	pc, err := metric.NewPrometheusCollector(reg)
	if err != nil {
		return err
	}

	logger := mapper.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.BuildLogLevel()}))

	m, err := mapper.New(data,
		mapper.WithWorkers(cfg.Workers),
		mapper.WithMemoryLimit(cfg.MemoryLimit),
		mapper.WithNerveStrategy(cfg.BuildNerveStrategy()),
		mapper.WithLogger(logger),
		mapper.WithMetricsCollector(pc),
	)
	if err != nil {
		return err
	}

	res, err := m.Run(ctx, mapper.RunConfig{
		Lens:     l,
		Ranges:   cfg.BuildRanges(),
		Lengths:  cfg.Cover.Lengths,
		Overlaps: cfg.Cover.Overlaps,
		Backend:  backend,
	})
	if err != nil {
		return err
	}

	doc, err := export.FromResult(res, len(data))
	if err != nil {
		return err
	}

	if cfg.Output.Path == "-" {
		err = export.EncodeTo(ctx, stdout, doc, exportOpts...)
	} else {
		var (
			store blobstore.Store
			name  string
		)
		store, name, err = openStore(ctx, cfg.Output)
		if err != nil {
			return err
		}
		err = export.Write(ctx, store, name, doc, exportOpts...)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "run %s: %d points, %d cells, %d nodes, %d edges, %d failed cells\n",
		res.RunID, len(data), res.Cells, res.Graph.NumNodes(), res.Graph.NumEdges(), len(res.Failures))

	if dumpMetrics {
		mfs, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(stderr, mf); err != nil {
				return err
			}
		}
	}
	return nil
}

// openStore returns the store and blob name for the configured output.
func openStore(ctx context.Context, out config.OutputConfig) (blobstore.Store, string, error) {
	switch out.Store {
	case "s3":
		store, err := s3blob.New(ctx, out.Bucket,
			s3blob.WithPrefix(out.Prefix),
			s3blob.WithRegion(out.Region),
		)
		if err != nil {
			return nil, "", err
		}
		return store, out.Path, nil
	case "minio":
		client, err := minio.New(out.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(out.AccessKey, out.SecretKey, ""),
			Secure: out.Secure,
			Region: out.Region,
		})
		if err != nil {
			return nil, "", err
		}
		return minioblob.NewStore(client, out.Bucket, out.Prefix), out.Path, nil
	default:
		abs, err := filepath.Abs(out.Path)
		if err != nil {
			return nil, "", err
		}
		return blobstore.NewLocalStore(filepath.Dir(abs)), filepath.Base(abs), nil
	}
}
