package transition

import (
	"context"
	"math"
	"slices"

	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// Near and far planes shared by both projections. The unit cube sits
// centered at camera distance, so the defaults keep it between the planes.
const (
	rotationNear = 0.1
	rotationFar  = 1.5
)

// Rotation animates between views that share an axis by rotating a cube
// whose front and back faces are the old and new out-of-plane dimensions.
// A path across more than two views decomposes into one single-rotation
// segment per adjacent pair.
type Rotation struct {
	views    []scatter.View
	segments []*singleRotation
}

var _ Transition = (*Rotation)(nil)

// NewRotation builds a rotation transition across the given view path.
// Adjacent views must keep one dimension on the same axis; the parameters
// are clamped into their working ranges first.
func NewRotation(views []scatter.View, params RotationParams) (*Rotation, error) {
	if err := ValidateViews(StrategyRotation, views); err != nil {
		return nil, err
	}
	params = params.clamped()
	segments := make([]*singleRotation, len(views)-1)
	for i := range segments {
		segments[i] = newSingleRotation(views[i], views[i+1], params)
	}
	return &Rotation{views: slices.Clone(views), segments: segments}, nil
}

// Views returns the view path in order.
func (r *Rotation) Views() []scatter.View {
	return slices.Clone(r.views)
}

// IsReady always reports true.
func (r *Rotation) IsReady() bool { return true }

// HasMeaningfulIntermediates always reports true: every segment boundary
// shows its view exactly.
func (r *Rotation) HasMeaningfulIntermediates() bool { return true }

// Prepare is a no-op.
func (r *Rotation) Prepare(ctx context.Context) error { return nil }

// X returns the horizontal position of p at time t.
func (r *Rotation) X(t float64, p scatter.Point) (float64, error) {
	i, local := segmentFor(t, len(r.segments))
	return r.segments[i].at(local, p).X, nil
}

// Y returns the vertical position of p at time t.
func (r *Rotation) Y(t float64, p scatter.Point) (float64, error) {
	i, local := segmentFor(t, len(r.segments))
	return r.segments[i].at(local, p).Y, nil
}

type rotationAxis int

const (
	axisX rotationAxis = iota
	axisY
)

// singleRotation is one adjacent view pair of a rotation transition. The
// rotation axis is x when both views share their x dimension, y otherwise;
// the dimension entering the plane supplies the z coordinate.
type singleRotation struct {
	from   scatter.View
	axis   rotationAxis
	outOf  scatter.Dimension
	params RotationParams

	ortho  geom.Mat4
	persp  geom.Mat4
	camera geom.Mat4

	// Single-slot cache so the X and Y queries of one frame rebuild the
	// matrix once. Not synchronized; queries are assumed to come from one
	// animation loop.
	lastT   float64
	lastSet bool
	last    geom.Mat4
}

func newSingleRotation(from, to scatter.View, params RotationParams) *singleRotation {
	axis := axisY
	outOf := to.XDim
	if from.XDim.Equal(to.XDim) {
		axis = axisX
		outOf = to.YDim
	}
	return &singleRotation{
		from:   from,
		axis:   axis,
		outOf:  outOf,
		params: params,
		ortho:  geom.Ortho(-0.5, 0.5, -0.5, 0.5, rotationNear, rotationFar),
		persp:  geom.Perspective(params.FOV*math.Pi/180, 1, rotationNear, rotationFar),
		camera: geom.Translation(-0.5, -0.5, -params.CameraDistance),
	}
}

// at projects the point at segment-local time t: lift it to a homogeneous
// 3D position, rotate, project, perspective-divide, and map the clip range
// [-1,1] back to [0,1] screen coordinates.
func (s *singleRotation) at(t float64, p scatter.Point) geom.Vec2 {
	m := s.matrixAt(t)
	v := geom.Vec4{
		X: s.from.X(p),
		Y: s.from.Y(p),
		Z: s.outOf.Normalize(p.Get(s.outOf.Name)),
		W: 1,
	}
	ndc := m.Apply(v).Project()
	return geom.Vec2{X: (ndc.X + 1) / 2, Y: (ndc.Y + 1) / 2}
}

func (s *singleRotation) matrixAt(t float64) geom.Mat4 {
	if s.lastSet && t == s.lastT {
		return s.last
	}
	rotFrac, blend := s.progress(t)
	angle := rotFrac * math.Pi / 2
	var rot geom.Mat4
	if s.axis == axisX {
		// The x rotation runs negative so both axes spin the same
		// apparent direction on screen.
		rot = geom.RotationX(-angle)
	} else {
		rot = geom.RotationY(angle)
	}
	rot = geom.Translation(0.5, 0.5, 0.5).Mul(rot).Mul(geom.Translation(-0.5, -0.5, -0.5))
	proj := s.ortho.Blend(s.persp, blend)
	m := proj.Mul(s.camera).Mul(rot)
	s.lastT, s.lastSet, s.last = t, true, m
	return m
}

// progress maps segment time to a rotation fraction and a perspective
// blend factor, both in [0,1].
//
// Staged runs split the segment into zoom-in, rotate, and zoom-out phases:
// the blend eases up to full perspective before any rotation starts and
// eases back down after it ends. Unstaged runs blend along a fixed bump
// curve over the whole segment while the rotation advances with a mix of
// linear and eased progress weighted by the perspective amount.
func (s *singleRotation) progress(t float64) (rotFrac, blend float64) {
	t = tween.Clamp01(t)
	p := s.params
	if p.Staged && p.Perspective > 0 {
		if span := p.ZoomTime * p.Perspective; span > 0 {
			switch {
			case t < span:
				return 0, p.Ease.Apply(t / span)
			case t > 1-span:
				return 1, p.Ease.Apply((1 - t) / span)
			default:
				return p.Ease.Apply((t - span) / (1 - 2*span)), 1
			}
		}
	}
	blend = p.Perspective * perspectiveBump(t)
	rotFrac = (1-p.Perspective)*t + p.Perspective*p.Ease.Apply(t)
	return rotFrac, blend
}

// perspectiveBump is the fixed blend shape for unstaged runs: a circular
// arc segment scaled to reach just under 1 at the middle and exactly 0 at
// both ends. The 2.41 coefficient is tuned, not derived; keep it.
func perspectiveBump(t float64) float64 {
	u := 2*t - 1
	return 2.41 * (math.Sqrt(2-u*u) - 1)
}
