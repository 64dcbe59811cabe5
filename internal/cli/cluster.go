package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/cluster"
	morphio "github.com/viewmorph/viewmorph/pkg/io"
	"github.com/viewmorph/viewmorph/pkg/render/dendro"
	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// formatDOT is the raw Graphviz source format.
const formatDOT = "dot"

// validDendroFormats is the set of supported cluster output formats.
var validDendroFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true, formatPDF: true}

// clusterOpts holds the command-line flags for the cluster command.
type clusterOpts struct {
	dims         string  // dimensions to cluster over (default all)
	targetCount  int     // stop merging at this many clusters
	targetRadius float64 // stop merging at this mean radius
	detailed     bool    // label merge nodes with distances
	format       string  // output format: dot, svg, png, pdf
	output       string  // output file path
	scale        float64 // raster scale for png
}

// clusterCommand creates the cluster command for dendrogram rendering.
func (c *CLI) clusterCommand() *cobra.Command {
	opts := clusterOpts{targetCount: 1, format: formatSVG, scale: 2.0}

	cmd := &cobra.Command{
		Use:   "cluster [dataset.json]",
		Short: "Render the merge dendrogram for a dataset",
		Long: `Render the merge dendrogram for a dataset.

The cluster command runs hierarchical clustering over the dataset's
normalized coordinates and renders the merge sequence as a dendrogram.
The spline strategy uses the same clustering to route grouped points
together, so the dendrogram shows which points would travel as a group.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validDendroFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'png', or 'pdf')", opts.format)
			}
			return c.runCluster(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dims, "dims", "", "dimensions to cluster over (comma-separated, default all)")
	cmd.Flags().IntVar(&opts.targetCount, "target-count", opts.targetCount, "stop merging at this many clusters (0 disables)")
	cmd.Flags().Float64Var(&opts.targetRadius, "target-radius", 0, "stop merging at this mean cluster radius (0 disables)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label merge nodes with centroid distances")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from input)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale for png output")

	return cmd
}

// runCluster clusters the dataset and writes the dendrogram.
func (c *CLI) runCluster(ctx context.Context, input string, opts *clusterOpts) error {
	if morphio.IsURL(input) {
		printInfo("Fetching %s", StyleHighlight.Render(input))
	}

	ds, err := morphio.Import(ctx, input)
	if err != nil {
		return err
	}

	dims, err := selectDimensions(ds, opts.dims)
	if err != nil {
		return err
	}

	points := ds.Points()
	leaves := make([]string, len(points))
	for i, p := range points {
		leaves[i] = p.ID
	}

	h := cluster.Hierarchical{TargetCount: opts.targetCount, TargetRadius: opts.targetRadius}
	part, merges, err := h.PartitionWithMerges(scatter.Packed(points, dims), len(dims))
	if err != nil {
		return err
	}

	dot, err := dendro.ToDOT(leaves, merges, dendro.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		data, err = dendro.RenderSVG(dot)
	case formatPNG:
		data, err = dendro.RenderPNG(dot, opts.scale)
	case formatPDF:
		data, err = dendro.RenderPDF(dot)
	}
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = basePath("", input) + "_dendro." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Dendrogram generated")
	printKeyValue("Points", fmt.Sprintf("%d", len(points)))
	printKeyValue("Merges", fmt.Sprintf("%d", len(merges)))
	printKeyValue("Clusters", fmt.Sprintf("%d", len(part)))
	printFile(out)
	return nil
}

// selectDimensions resolves the --dims flag, defaulting to all dataset
// dimensions.
func selectDimensions(ds *scatter.Dataset, dimsStr string) ([]scatter.Dimension, error) {
	if dimsStr == "" {
		return ds.Dimensions(), nil
	}
	names := strings.Split(dimsStr, ",")
	dims := make([]scatter.Dimension, len(names))
	for i, name := range names {
		d, err := ds.Dimension(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		dims[i] = d
	}
	return dims, nil
}
