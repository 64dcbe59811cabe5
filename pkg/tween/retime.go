package tween

import (
	"errors"
	"fmt"
)

// ErrUnknownRetime is returned when a retime mode name cannot be parsed.
var ErrUnknownRetime = errors.New("unknown retime mode")

// RetimeInfo locates one cluster within the staggering scheme: its index,
// the total cluster count, and every cluster's point count.
type RetimeInfo struct {
	Index int
	Total int
	Sizes []int
}

// RetimeFunc remaps a segment-local time so clusters animate in sequence
// rather than simultaneously. Inputs outside a cluster's window clamp to
// its endpoints.
type RetimeFunc func(t float64, info RetimeInfo) float64

// RetimeMode selects how cluster animation is staggered.
type RetimeMode int

const (
	// RetimeNone applies no staggering.
	RetimeNone RetimeMode = iota

	// RetimeEqual gives each cluster an equal, non-overlapping 1/total
	// slice of the animation window.
	RetimeEqual

	// RetimeProportional sizes each cluster's slice proportionally to its
	// point count.
	RetimeProportional
)

var retimeNames = map[RetimeMode]string{
	RetimeNone:         "none",
	RetimeEqual:        "equal",
	RetimeProportional: "proportional",
}

// String returns the mode name used in parameter schemas and CLI flags.
func (m RetimeMode) String() string {
	if name, ok := retimeNames[m]; ok {
		return name
	}
	return "none"
}

// ParseRetimeMode converts a mode name to a [RetimeMode]. The empty string
// parses as [RetimeNone].
func ParseRetimeMode(s string) (RetimeMode, error) {
	switch s {
	case "", "none":
		return RetimeNone, nil
	case "equal":
		return RetimeEqual, nil
	case "proportional":
		return RetimeProportional, nil
	}
	return RetimeNone, fmt.Errorf("%w: %q", ErrUnknownRetime, s)
}

// RetimeModeNames returns every mode name in declaration order.
func RetimeModeNames() []string {
	return []string{"none", "equal", "proportional"}
}

// Func returns the retime function for the mode.
func (m RetimeMode) Func() RetimeFunc {
	switch m {
	case RetimeEqual:
		return EqualCascade
	case RetimeProportional:
		return ProportionalCascade
	default:
		return Identity
	}
}

// Identity returns t clamped to [0,1] with no staggering.
func Identity(t float64, _ RetimeInfo) float64 {
	return Clamp01(t)
}

// LegacyOffset shifts each cluster's [0,1] window by index/total − 0.5,
// clamping outside the window. The middle cluster animates unshifted;
// earlier clusters run ahead, later ones lag.
func LegacyOffset(t float64, info RetimeInfo) float64 {
	if info.Total <= 0 {
		return Clamp01(t)
	}
	offset := float64(info.Index)/float64(info.Total) - 0.5
	return Clamp01(t - offset)
}

// EqualCascade maps cluster i of n onto the window [i/n, (i+1)/n]: global
// t == i/n becomes local 0, global t == (i+1)/n becomes local 1, and times
// outside the window clamp.
func EqualCascade(t float64, info RetimeInfo) float64 {
	if info.Total <= 0 {
		return Clamp01(t)
	}
	n := float64(info.Total)
	start := float64(info.Index) / n
	return Clamp01((t - start) * n)
}

// ProportionalCascade is [EqualCascade] with window widths proportional to
// cluster point counts instead of equal.
func ProportionalCascade(t float64, info RetimeInfo) float64 {
	sum := 0
	for _, s := range info.Sizes {
		sum += s
	}
	if sum <= 0 || info.Index < 0 || info.Index >= len(info.Sizes) {
		return EqualCascade(t, info)
	}
	before := 0
	for _, s := range info.Sizes[:info.Index] {
		before += s
	}
	width := float64(info.Sizes[info.Index]) / float64(sum)
	if width <= 0 {
		if t < float64(before)/float64(sum) {
			return 0
		}
		return 1
	}
	start := float64(before) / float64(sum)
	return Clamp01((t - start) / width)
}
