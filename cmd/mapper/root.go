package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mapper",
		Short: "Summarise the shape of a point cloud as a graph",
		Long: `mapper covers the image of a lens with overlapping hyper-rectangles,
clusters the points of every cell, and links clusters that share points.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newCoverCmd())

	return root
}
