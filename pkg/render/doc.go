// Package render provides debug visualization for transition geometry.
//
// # Overview
//
// This package contains the renderers that turn sampled animations and
// prepared spline geometry into inspectable images. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Animation frame and curve rendering (in [anim] subpackage)
//   - Clustering dendrograms (in [dendro] subpackage)
//
// Rendering is diagnostic tooling: the engine itself only produces
// positions, and nothing here feeds back into animation output.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the anim and dendro renderers.
//
//	svg := anim.FrameSVG(frame, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Animation Frames and Curves
//
// The [anim] subpackage renders sampled frames as scatter plots and draws
// every bezier of a prepared spline transition as a polyline overlay, so
// path construction can be inspected segment by segment.
//
// # Dendrograms
//
// The [dendro] subpackage renders the merge sequence of hierarchical
// clustering as a dendrogram using Graphviz.
//
//	dot, err := dendro.ToDOT(ids, merges, dendro.Options{})
//	svg, err := dendro.RenderSVG(dot)
//
// [anim]: github.com/viewmorph/viewmorph/pkg/render/anim
// [dendro]: github.com/viewmorph/viewmorph/pkg/render/dendro
package render
