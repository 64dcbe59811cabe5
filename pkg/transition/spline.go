package transition

import (
	"context"
	"fmt"
	"slices"

	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// Spline routes every point along a bezier path that follows its cluster's
// centroid trajectory across the views. Building the paths requires a
// [Spline.Prepare] call; until it succeeds the transition is not ready.
type Spline struct {
	views  []scatter.View
	params SplineParams
	ds     *scatter.Dataset
	retime tween.RetimeFunc

	ready   bool
	prepErr error
	guides  []PathGuide
	paths   map[string]*Path
}

var _ Transition = (*Spline)(nil)

// NewSpline builds a spline transition for the dataset across the given
// view path. The dataset supplies the points that will be clustered and
// routed; points queried later must come from it.
func NewSpline(ds *scatter.Dataset, views []scatter.View, params SplineParams) (*Spline, error) {
	if err := ValidateViews(StrategySpline, views); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, ErrNoData
	}
	if params.BundlingStrength < 0 {
		params.BundlingStrength = 0
	}
	return &Spline{
		views:  slices.Clone(views),
		params: params,
		ds:     ds,
		retime: params.retimeFunc(),
	}, nil
}

// Views returns the view path in order.
func (s *Spline) Views() []scatter.View {
	return slices.Clone(s.views)
}

// IsReady reports whether preparation has completed successfully.
func (s *Spline) IsReady() bool { return s.ready }

// HasMeaningfulIntermediates reports whether each intermediate view is hit
// exactly at its time stop. Loose intermediates trade that exactness for
// one smooth curve over the whole path.
func (s *Spline) HasMeaningfulIntermediates() bool {
	return !s.params.LooseIntermediates
}

// Prepare clusters the dataset and builds the per-point paths on a worker
// goroutine, then installs the result. Cancelling ctx abandons the
// exchange and leaves the transition not ready; the worker's eventual
// response is discarded. A worker failure is permanent: every later
// Prepare returns the same error, wrapped as [ErrPreparation], and the
// caller must discard the transition and build a new one.
func (s *Spline) Prepare(ctx context.Context) error {
	if s.ready {
		return nil
	}
	if s.prepErr != nil {
		return s.prepErr
	}
	res, err := prepare(ctx, newPrepareRequest(s.ds, s.views, s.params))
	if err != nil {
		return err
	}
	if res.err != nil {
		s.prepErr = fmt.Errorf("%w: %w", ErrPreparation, res.err)
		return s.prepErr
	}
	s.guides = res.guides
	s.paths = res.paths
	s.ready = true
	return nil
}

// X returns the horizontal position of p at time t.
func (s *Spline) X(t float64, p scatter.Point) (float64, error) {
	v, err := s.at(t, p)
	return v.X, err
}

// Y returns the vertical position of p at time t.
func (s *Spline) Y(t float64, p scatter.Point) (float64, error) {
	v, err := s.at(t, p)
	return v.Y, err
}

func (s *Spline) at(t float64, p scatter.Point) (geom.Vec2, error) {
	if !s.ready {
		return geom.Vec2{}, ErrNotReady
	}
	path, ok := s.paths[p.ID]
	if !ok {
		return geom.Vec2{}, fmt.Errorf("%w: %q", ErrUnknownPoint, p.ID)
	}
	return path.Eval(t, s.params.Ease, s.retime), nil
}

// Guides returns the per-cluster path guides, in cluster order. Only valid
// once the transition is ready.
func (s *Spline) Guides() []PathGuide {
	return slices.Clone(s.guides)
}

// PathOf returns the prepared path for a point ID, for rendering layers
// that draw trajectories rather than sampled positions.
func (s *Spline) PathOf(id string) (*Path, bool) {
	p, ok := s.paths[id]
	return p, ok
}
