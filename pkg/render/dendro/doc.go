// Package dendro renders hierarchical clustering runs as dendrograms.
//
// # Overview
//
// Hierarchical clustering records its merge sequence as it runs. This
// package replays that sequence into a tree and renders it with Graphviz:
// leaves are the clustered points, every internal node is one merge, and
// the root (when merging ran to completion) is the final cluster.
//
// # Usage
//
// Record merges while clustering, then convert to DOT and render:
//
//	h := cluster.Hierarchical{TargetCount: 1}
//	_, merges, err := h.PartitionWithMerges(packed, dims)
//	dot, err := dendro.ToDOT(ids, merges, dendro.Options{Detailed: true})
//	svg, err := dendro.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := dendro.RenderPDF(dot)
//	png, err := dendro.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, merge nodes are labeled with their centroid
//     distance. When false, merges render as junction points.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package dendro
