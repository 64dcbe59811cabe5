package transition

import (
	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// PathGuide carries one cluster's shared path data: its centroid position
// in every view, a tangent per centroid, and the bundling control points
// per view pair. Guides are immutable once preparation finishes.
type PathGuide struct {
	// Centroids is the cluster centroid in each view, in view order.
	Centroids []geom.Vec2

	// Tangents holds one unit tangent per centroid, the normalized sum of
	// the normalized inbound and outbound directions. The first and last
	// are zero so member paths start and end without overshoot.
	Tangents []geom.Vec2

	// Bundling lists, per view pair, the control points pulling member
	// paths toward the cluster centerline: the segment midpoint repeated
	// bundling-strength times.
	Bundling [][]geom.Vec2
}

// PathSegment is one bezier span of a point's path together with its
// arc-length table and the cluster timing it animates under.
type PathSegment struct {
	Curve  geom.Curve
	Table  *geom.Table
	Retime tween.RetimeInfo
}

// Path is a point's full route across the view path: one segment per
// adjacent view pair, or a single long segment when intermediates are
// loose. A path always has at least one segment.
type Path struct {
	Segments []*PathSegment
}

// Eval returns the position at global time t. The active segment is chosen
// by time slice; its local time is staggered by retime (nil skips), shaped
// by ease, and converted through the arc-length table so traversal speed is
// uniform along the curve regardless of control-point spacing.
func (p *Path) Eval(t float64, ease tween.Ease, retime tween.RetimeFunc) geom.Vec2 {
	i, local := segmentFor(t, len(p.Segments))
	seg := p.Segments[i]
	if retime != nil {
		local = retime(local, seg.Retime)
	}
	eased := ease.Apply(local)
	return seg.Curve.Eval(seg.Table.Param(eased * seg.Table.Total()))
}
