// Package anim renders sampled animation frames and spline debug curves as SVG.
//
// # Overview
//
// Two renderers share one coordinate mapping from the engine's normalized
// [0, 1] space to screen pixels:
//
//   - [FrameSVG] draws one sampled frame as a scatter of circles.
//   - [CurvesSVG] draws every bezier of a prepared spline transition as a
//     polyline, alternating stroke color per segment so join points are
//     visible.
//
// Normalized y grows upward while SVG y grows downward, so the mapping
// flips the vertical axis.
//
// # Usage
//
//	svg := anim.FrameSVG(frame, anim.WithSize(1024, 768), anim.WithLabels())
//	svg, err := anim.CurvesSVG(spline)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := anim.FramePDF(frame)
//	png, err := anim.FramePNG(frame, anim.WithScale(2.0))
//
// # Options
//
//   - [WithSize]: canvas size in pixels (default 800x600)
//   - [WithMargin]: padding around the unit square (default 40)
//   - [WithPointRadius]: circle radius for frame points (default 5)
//   - [WithLabels]: annotate each point with its ID
//
// PDF and PNG conversion requires librsvg (rsvg-convert).
package anim
