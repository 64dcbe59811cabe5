package anim

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/pipeline"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  float64
	height float64
	margin float64
	radius float64
	labels bool
}

// WithSize sets the canvas size in pixels.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithMargin sets the padding between the canvas edge and the unit square.
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) { r.margin = m }
}

// WithPointRadius sets the circle radius used for frame points.
func WithPointRadius(radius float64) SVGOption {
	return func(r *svgRenderer) { r.radius = radius }
}

// WithLabels annotates each frame point with its ID.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = true }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: 800, height: 600, margin: 40, radius: 5}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// mapToScreen converts a normalized position to screen pixels, flipping
// the vertical axis.
func (r svgRenderer) mapToScreen(v geom.Vec2) geom.Vec2 {
	return geom.Vec2{
		X: r.margin + v.X*(r.width-2*r.margin),
		Y: r.height - r.margin - v.Y*(r.height-2*r.margin),
	}
}

func (r svgRenderer) open(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
}

// FrameSVG renders one sampled frame as a scatter of circles. Points keep
// the order they carry in the frame, which [pipeline.Sample] emits in
// dataset order.
func FrameSVG(f pipeline.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf)

	for _, p := range f.Positions {
		s := r.mapToScreen(geom.Vec2{X: p.X, Y: p.Y})
		fmt.Fprintf(&buf, `  <circle id="pt-%s" cx="%.2f" cy="%.2f" r="%.1f" fill="steelblue" fill-opacity="0.85"/>`+"\n",
			p.ID, s.X, s.Y, r.radius)
	}
	if r.labels {
		for _, p := range f.Positions {
			s := r.mapToScreen(geom.Vec2{X: p.X, Y: p.Y})
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="10" fill="#333">%s</text>`+"\n",
				s.X+r.radius+3, s.Y+3, p.ID)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// segmentStrokes alternate per segment index so join points stand out.
var segmentStrokes = [...]string{"steelblue", "indianred"}

// CurvesSVG renders every bezier of a prepared spline transition as a
// polyline. Returns [transition.ErrNotReady] when the spline has not been
// prepared yet.
func CurvesSVG(sp *transition.Spline, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf)

	sink := curveWriter{buf: &buf}
	if err := sp.DrawDebug(&sink, r.mapToScreen); err != nil {
		return nil, err
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// curveWriter streams polylines into the SVG body as [Spline.DrawDebug]
// visits them.
type curveWriter struct {
	buf *bytes.Buffer
}

func (w *curveWriter) Curve(pointID string, segment int, samples []geom.Vec2) {
	coords := make([]string, len(samples))
	for i, v := range samples {
		coords[i] = fmt.Sprintf("%.2f,%.2f", v.X, v.Y)
	}
	stroke := segmentStrokes[segment%len(segmentStrokes)]
	fmt.Fprintf(w.buf, `  <polyline id="curve-%s-%d" points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		pointID, segment, strings.Join(coords, " "), stroke)
}
