package scatter

import "math"

// Point is one data row: an identifier plus a mapping from dimension name
// to value. Points are created when data is loaded and never mutated by the
// engine afterwards.
type Point struct {
	ID     string
	values map[string]float64
}

// NewPoint builds a point from a value map. The map is copied so later
// mutation by the caller cannot leak into the engine.
func NewPoint(id string, values map[string]float64) Point {
	vs := make(map[string]float64, len(values))
	for k, v := range values {
		vs[k] = v
	}
	return Point{ID: id, values: vs}
}

// Value returns the point's value for the named dimension and whether the
// point carries one.
func (p Point) Value(name string) (float64, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Get returns the point's value for the named dimension, or NaN when the
// point has none. NaN propagates through normalization, which keeps missing
// values visible instead of silently placing the point at zero.
func (p Point) Get(name string) float64 {
	if v, ok := p.values[name]; ok {
		return v
	}
	return math.NaN()
}

// Values returns a copy of the point's value map.
func (p Point) Values() map[string]float64 {
	vs := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		vs[k] = v
	}
	return vs
}
