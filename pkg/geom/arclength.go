package geom

import (
	"math"
	"sort"
)

const (
	// targetSpacing is the largest allowed distance between consecutive
	// arc-length samples, in normalized view units.
	targetSpacing = 0.01

	// initialStep is the parameter step the sampler starts from before
	// adaptive halving.
	initialStep = 0.05

	// minStep bounds the halving so degenerate curves cannot demand an
	// unbounded number of samples.
	minStep = 1e-5
)

// Table is the arc-length lookup for one curve: cumulative lengths at
// uniformly spaced parameter samples. Entry i holds the length of the
// curve from parameter 0 to parameter i/(len−1); the sequence is
// monotonically non-decreasing.
type Table struct {
	lengths []float64
}

// NewTable measures the curve. The parameter step starts at a coarse value
// and is halved until consecutive samples lie within 0.01 normalized units
// of each other; if halving would underflow past the minimum step, the step
// is clamped there instead.
func NewTable(c Curve) *Table {
	step := initialStep
	for {
		samples := sampleUniform(c, segmentsFor(step))
		if maxSpacing(samples) <= targetSpacing {
			return tableFrom(samples)
		}
		next := step / 2
		if next == 0 || next < minStep || math.IsNaN(next) || math.IsInf(next, 0) {
			return tableFrom(sampleUniform(c, segmentsFor(minStep)))
		}
		step = next
	}
}

func segmentsFor(step float64) int {
	return int(math.Ceil(1 / step))
}

func sampleUniform(c Curve, segments int) []Vec2 {
	samples := make([]Vec2, segments+1)
	for i := 0; i <= segments; i++ {
		samples[i] = c.Eval(float64(i) / float64(segments))
	}
	return samples
}

func maxSpacing(samples []Vec2) float64 {
	spacing := 0.0
	for i := 1; i < len(samples); i++ {
		spacing = math.Max(spacing, samples[i].Distance(samples[i-1]))
	}
	return spacing
}

func tableFrom(samples []Vec2) *Table {
	lengths := make([]float64, len(samples))
	total := 0.0
	for i := 1; i < len(samples); i++ {
		total += samples[i].Distance(samples[i-1])
		lengths[i] = total
	}
	return &Table{lengths: lengths}
}

// Total returns the measured curve length.
func (t *Table) Total() float64 {
	if len(t.lengths) == 0 {
		return 0
	}
	return t.lengths[len(t.lengths)-1]
}

// Samples returns the number of table entries.
func (t *Table) Samples() int {
	return len(t.lengths)
}

// Param converts a target arc length into the curve parameter reaching it:
// binary-search for the bracketing entries and linearly interpolate the
// parameter between them, returning the exact grid parameter when the
// length matches an entry. Lengths at or past the total return 1; zero or
// negative lengths return 0.
func (t *Table) Param(length float64) float64 {
	n := len(t.lengths) - 1
	if n <= 0 || length <= 0 {
		return 0
	}
	if length >= t.Total() {
		return 1
	}
	i := sort.SearchFloat64s(t.lengths, length)
	if t.lengths[i] == length {
		return float64(i) / float64(n)
	}
	lo, hi := t.lengths[i-1], t.lengths[i]
	frac := (length - lo) / (hi - lo)
	return (float64(i-1) + frac) / float64(n)
}
