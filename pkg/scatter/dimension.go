package scatter

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by dimension and dataset construction.
var (
	// ErrInvertedDomain is returned when a domain's minimum exceeds its maximum.
	ErrInvertedDomain = errors.New("inverted domain")

	// ErrUnknownMapping is returned when a mapping name cannot be parsed.
	ErrUnknownMapping = errors.New("unknown mapping")

	// ErrUnknownDimension is returned when a dataset lookup names a
	// dimension that does not exist.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrDuplicateDimension is returned when a dataset declares the same
	// dimension name twice.
	ErrDuplicateDimension = errors.New("duplicate dimension")

	// ErrDuplicatePoint is returned when a dataset contains two points with
	// the same ID.
	ErrDuplicatePoint = errors.New("duplicate point")
)

// Mapping selects how a dimension translates between domain values and
// normalized [0,1] coordinates.
type Mapping int

const (
	// Linear maps values proportionally across the domain.
	Linear Mapping = iota

	// Log compresses large values:
	// normalize(v) = ln(v - min + 1) / ln(max - min + 1).
	// Domain values must keep v - min > -1.
	Log
)

// String returns the mapping name used in dataset files and CLI flags.
func (m Mapping) String() string {
	if m == Log {
		return "log"
	}
	return "linear"
}

// ParseMapping converts a mapping name to a [Mapping]. The empty string
// parses as [Linear].
func ParseMapping(s string) (Mapping, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "log":
		return Log, nil
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownMapping, s)
}

// Dimension is a named axis with a domain [Min, Max] and a mapping kind.
// Dimensions are value-like: copy and compare them freely.
type Dimension struct {
	Name    string
	Min     float64
	Max     float64
	Mapping Mapping
}

// NewDimension builds a dimension, rejecting inverted domains.
func NewDimension(name string, min, max float64, mapping Mapping) (Dimension, error) {
	if min > max {
		return Dimension{}, fmt.Errorf("dimension %q [%v, %v]: %w", name, min, max, ErrInvertedDomain)
	}
	return Dimension{Name: name, Min: min, Max: max, Mapping: mapping}, nil
}

// FromData computes a linear dimension whose domain is the extent of the
// finite values that points carry for name. Points without a finite value
// are ignored; when none remain, the domain defaults to [0, 0]. A non-zero
// padding expands the domain by padding times the data range on each side.
func FromData(name string, points []Point, padding float64) Dimension {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		v, ok := p.Value(name)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	if padding != 0 {
		pad := (hi - lo) * padding
		lo -= pad
		hi += pad
	}
	return Dimension{Name: name, Min: lo, Max: hi}
}

// Normalize maps a domain value to [0,1] under the dimension's mapping.
// Values outside the domain extrapolate beyond [0,1] rather than clamp.
// A degenerate domain (Min == Max) normalizes every value to 0.
func (d Dimension) Normalize(v float64) float64 {
	span := d.Max - d.Min
	if d.Mapping == Log {
		den := math.Log(span + 1)
		if den == 0 {
			return 0
		}
		return math.Log(v-d.Min+1) / den
	}
	if span == 0 {
		return 0
	}
	return (v - d.Min) / span
}

// Expand inverts [Dimension.Normalize], mapping a normalized coordinate
// back to a domain value.
func (d Dimension) Expand(n float64) float64 {
	span := d.Max - d.Min
	if d.Mapping == Log {
		return math.Expm1(n*math.Log(span+1)) + d.Min
	}
	return d.Min + n*span
}

// Equal reports whether two dimensions describe the same axis: identical
// name and identical domain bounds. The mapping kind does not participate,
// matching how views decide whether they share an axis.
func (d Dimension) Equal(o Dimension) bool {
	return d.Name == o.Name && d.Min == o.Min && d.Max == o.Max
}

// String returns the dimension in "name [min, max]" form.
func (d Dimension) String() string {
	return fmt.Sprintf("%s [%v, %v]", d.Name, d.Min, d.Max)
}
