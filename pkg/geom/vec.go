// Package geom provides the small geometry kit the transition strategies
// share: 2D vectors, homogeneous 4×4 transforms, bezier curves, and
// arc-length lookup tables.
package geom

import "math"

// Vec2 is a position or direction in normalized view space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v − o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// Normalized returns v scaled to unit length. The zero vector (and any
// vector with a non-finite length) normalizes to the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates a → b as a·(1−t) + b·t. Written so that t=0 returns a
// exactly and t=1 returns b exactly, which path evaluation relies on.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// LerpVec interpolates two vectors component-wise with the same endpoint
// guarantees as [Lerp].
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Mid returns the midpoint of a and b.
func Mid(a, b Vec2) Vec2 {
	return LerpVec(a, b, 0.5)
}
