package transition

import (
	"context"
	"fmt"
	"math"

	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// Strategy selects how points travel between views.
type Strategy int

const (
	// StrategyStraight interpolates each axis linearly.
	StrategyStraight Strategy = iota

	// StrategyRotation rotates the out-of-plane dimension into view.
	StrategyRotation

	// StrategySpline routes points along cluster-following bezier paths.
	StrategySpline
)

var strategyNames = map[Strategy]string{
	StrategyStraight: "straight",
	StrategyRotation: "rotation",
	StrategySpline:   "spline",
}

// String returns the strategy name used in parameter files and CLI flags.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "straight"
}

// ParseStrategy resolves a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for st, name := range strategyNames {
		if name == s {
			return st, nil
		}
	}
	return StrategyStraight, fmt.Errorf("unknown strategy %q", s)
}

// StrategyNames lists the accepted strategy names in declaration order.
func StrategyNames() []string {
	return []string{"straight", "rotation", "spline"}
}

// Capabilities describes which view chains a strategy accepts.
type Capabilities struct {
	// RequiresCommonDimensions demands that adjacent views keep at least
	// one dimension on the same axis.
	RequiresCommonDimensions bool

	// CanSwapDimensions permits a dimension to move between the x and y
	// axis across adjacent views.
	CanSwapDimensions bool
}

// Capabilities returns the chaining rules for the strategy. Rotation needs
// a shared axis to act as the hinge and cannot follow an axis swap; the
// other strategies move points freely.
func (s Strategy) Capabilities() Capabilities {
	if s == StrategyRotation {
		return Capabilities{RequiresCommonDimensions: true}
	}
	return Capabilities{CanSwapDimensions: true}
}

// Transition is the contract every strategy satisfies. X and Y report the
// point's normalized screen position at time t in [0,1]; times outside the
// range clamp. Both may only be called once IsReady reports true.
type Transition interface {
	// Views returns the view path in order.
	Views() []scatter.View

	// IsReady reports whether X and Y may be queried.
	IsReady() bool

	// HasMeaningfulIntermediates reports whether intermediate views are
	// hit exactly at their time stops, letting playback snap to them.
	// When false only t=0 and t=1 show an exact view.
	HasMeaningfulIntermediates() bool

	// Prepare performs any construction work the strategy needs before
	// positions can be queried. It is a no-op for strategies that are
	// ready immediately.
	Prepare(ctx context.Context) error

	// X returns the horizontal position of p at time t.
	X(t float64, p scatter.Point) (float64, error)

	// Y returns the vertical position of p at time t.
	Y(t float64, p scatter.Point) (float64, error)
}

// New builds a transition of the given strategy from raw parameter values,
// normalizing them against the strategy's schema. The dataset is only
// required by the spline strategy; the others ignore it.
func New(s Strategy, ds *scatter.Dataset, views []scatter.View, values map[string]any) (Transition, error) {
	switch s {
	case StrategyRotation:
		p, err := RotationParamsFromValues(values)
		if err != nil {
			return nil, err
		}
		return NewRotation(views, p)
	case StrategySpline:
		p, err := SplineParamsFromValues(values)
		if err != nil {
			return nil, err
		}
		return NewSpline(ds, views, p)
	default:
		return NewStraight(views...)
	}
}

// ValidateViews checks a view path against the strategy's capabilities.
// The returned error wraps [ErrTooFewViews] or [ErrIncompatibleViews].
func ValidateViews(s Strategy, views []scatter.View) error {
	if len(views) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewViews, len(views))
	}
	caps := s.Capabilities()
	for i := 0; i < len(views)-1; i++ {
		from, to := views[i], views[i+1]
		if caps.RequiresCommonDimensions && !from.SharesAxis(to) {
			return fmt.Errorf("%w: %s cannot chain %s to %s: no shared axis", ErrIncompatibleViews, s, from, to)
		}
		if !caps.CanSwapDimensions && from.SwapsAxis(to) {
			return fmt.Errorf("%w: %s cannot chain %s to %s: dimensions swap axes", ErrIncompatibleViews, s, from, to)
		}
	}
	return nil
}

// segmentFor maps a global time across n consecutive segments to the
// active segment index and the local time within it. The final segment
// owns local time 1 so the path end is reached exactly.
func segmentFor(t float64, n int) (int, float64) {
	scaled := tween.Clamp01(t) * float64(n)
	i := int(math.Floor(scaled))
	if i >= n {
		i = n - 1
	}
	return i, scaled - float64(i)
}
