package main

import (
	"fmt"
	"strconv"
	"strings"

	mapper "github.com/hupe1980/gomapper"
	"github.com/hupe1980/gomapper/cover"
	"github.com/spf13/cobra"
)

func newCoverCmd() *cobra.Command {
	var (
		ranges   []string
		lengths  []float64
		overlaps []float64
		cells    bool
	)

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Print the intervals of a uniform cover",
		Example: `  mapper cover --range 0:10 --length 3 --overlap 1
  mapper cover --range -1:1 --range -1:1 --length 0.5,0.5 --overlap 0.1,0.1 --cells`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs := make([]cover.Range, len(ranges))
			for i, s := range ranges {
				r, err := parseRange(s)
				if err != nil {
					return err
				}
				rs[i] = r
			}

			cov, err := mapper.BuildCover(rs, lengths, overlaps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for d, ivs := range cov {
				fmt.Fprintf(out, "dimension %d (%d intervals)\n", d, len(ivs))
				for _, iv := range ivs {
					fmt.Fprintf(out, "  %v\n", iv)
				}
			}
			fmt.Fprintf(out, "%d cells\n", cov.Count())

			if cells {
				for idx, cell := range cov.Cells() {
					fmt.Fprintf(out, "%6d  %v\n", idx, cell)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ranges, "range", nil, "lens range min:max, once per dimension")
	cmd.Flags().Float64SliceVar(&lengths, "length", nil, "interval length per dimension")
	cmd.Flags().Float64SliceVar(&overlaps, "overlap", nil, "interval overlap per dimension")
	cmd.Flags().BoolVar(&cells, "cells", false, "list every cell")
	_ = cmd.MarkFlagRequired("range")
	_ = cmd.MarkFlagRequired("length")
	_ = cmd.MarkFlagRequired("overlap")

	return cmd
}

func parseRange(s string) (cover.Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return cover.Range{}, fmt.Errorf("invalid range %q: want min:max", s)
	}
	minV, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return cover.Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	maxV, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return cover.Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return cover.Range{Min: minV, Max: maxV}, nil
}
