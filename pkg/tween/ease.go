// Package tween provides the time-shaping primitives transitions apply to
// their progress values: easing curves and per-cluster retiming.
package tween

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownEase is returned when an easing name cannot be parsed.
var ErrUnknownEase = errors.New("unknown easing")

// Ease selects one of the built-in easing curves. All curves map [0,1] to
// [0,1] with exact endpoints: Apply(0) == 0 and Apply(1) == 1.
type Ease int

const (
	// EaseLinear leaves progress unchanged.
	EaseLinear Ease = iota

	// EaseQuadratic accelerates and decelerates with t².
	EaseQuadratic

	// EaseCubic accelerates and decelerates with t³.
	EaseCubic

	// EaseExponential accelerates and decelerates with 2^(±10t), rescaled
	// so the endpoints land exactly on 0 and 1.
	EaseExponential
)

var easeNames = map[Ease]string{
	EaseLinear:      "linear",
	EaseQuadratic:   "quadratic",
	EaseCubic:       "cubic",
	EaseExponential: "exponential",
}

// String returns the easing name used in parameter schemas and CLI flags.
func (e Ease) String() string {
	if name, ok := easeNames[e]; ok {
		return name
	}
	return "linear"
}

// ParseEase converts an easing name to an [Ease]. The empty string parses
// as [EaseLinear].
func ParseEase(s string) (Ease, error) {
	switch s {
	case "", "linear":
		return EaseLinear, nil
	case "quadratic":
		return EaseQuadratic, nil
	case "cubic":
		return EaseCubic, nil
	case "exponential":
		return EaseExponential, nil
	}
	return EaseLinear, fmt.Errorf("%w: %q", ErrUnknownEase, s)
}

// EaseNames returns every easing name in declaration order, for parameter
// schemas.
func EaseNames() []string {
	return []string{"linear", "quadratic", "cubic", "exponential"}
}

// Apply maps progress through the easing curve. Input is clamped to [0,1].
// All curves are symmetric in/out shapes.
func (e Ease) Apply(t float64) float64 {
	t = Clamp01(t)
	switch e {
	case EaseQuadratic:
		if t <= 0.5 {
			return 2 * t * t
		}
		u := 1 - t
		return 1 - 2*u*u
	case EaseCubic:
		if t <= 0.5 {
			return 4 * t * t * t
		}
		u := 1 - t
		return 1 - 4*u*u*u
	case EaseExponential:
		return expInOut(t)
	default:
		return t
	}
}

// expInOut rescales the classic 2^(10(t−1)) exponential so that the curve
// passes exactly through (0,0), (0.5,0.5) and (1,1).
func expInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	t *= 2
	if t <= 1 {
		return expRamp(1-t) / 2
	}
	return (2 - expRamp(t-1)) / 2
}

// expRamp is 2^(−10x) shifted and scaled to hit 1 at x=0 and 0 at x=1.
func expRamp(x float64) float64 {
	const floor = 1.0 / 1024 // 2^-10
	return (math.Pow(2, -10*x) - floor) / (1 - floor)
}

// Clamp01 clamps t to [0,1]. NaN clamps to 0.
func Clamp01(t float64) float64 {
	if t >= 1 {
		return 1
	}
	if t > 0 {
		return t
	}
	return 0
}
