package transition

import (
	"context"
	"slices"

	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// Straight interpolates each axis independently between adjacent views.
// It needs no preparation and hits every intermediate view exactly.
type Straight struct {
	views []scatter.View
}

var _ Transition = (*Straight)(nil)

// NewStraight builds a straight transition across the given view path.
func NewStraight(views ...scatter.View) (*Straight, error) {
	if err := ValidateViews(StrategyStraight, views); err != nil {
		return nil, err
	}
	return &Straight{views: slices.Clone(views)}, nil
}

// Views returns the view path in order.
func (s *Straight) Views() []scatter.View {
	return slices.Clone(s.views)
}

// IsReady always reports true.
func (s *Straight) IsReady() bool { return true }

// HasMeaningfulIntermediates always reports true.
func (s *Straight) HasMeaningfulIntermediates() bool { return true }

// Prepare is a no-op.
func (s *Straight) Prepare(ctx context.Context) error { return nil }

// X returns the horizontal position of p at time t.
func (s *Straight) X(t float64, p scatter.Point) (float64, error) {
	i, frac := segmentFor(t, len(s.views)-1)
	return geom.Lerp(s.views[i].X(p), s.views[i+1].X(p), frac), nil
}

// Y returns the vertical position of p at time t.
func (s *Straight) Y(t float64, p scatter.Point) (float64, error) {
	i, frac := segmentFor(t, len(s.views)-1)
	return geom.Lerp(s.views[i].Y(p), s.views[i+1].Y(p), frac), nil
}
