package geom

// Curve is a bezier curve of arbitrary order: an ordered sequence of
// control points. One control point is a stationary curve; two are a line.
type Curve []Vec2

// Start returns the first control point, or the zero vector for an empty
// curve.
func (c Curve) Start() Vec2 {
	if len(c) == 0 {
		return Vec2{}
	}
	return c[0]
}

// End returns the last control point, or the zero vector for an empty
// curve.
func (c Curve) End() Vec2 {
	if len(c) == 0 {
		return Vec2{}
	}
	return c[len(c)-1]
}

// Eval evaluates the curve at parameter t using De Casteljau's algorithm:
// repeated linear interpolation of adjacent control points until one point
// remains. Works for any control-point count; t=0 yields Start() exactly
// and t=1 yields End() exactly.
func (c Curve) Eval(t float64) Vec2 {
	switch len(c) {
	case 0:
		return Vec2{}
	case 1:
		return c[0]
	case 2:
		return LerpVec(c[0], c[1], t)
	}
	work := append(Curve(nil), c...)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = LerpVec(work[i], work[i+1], t)
		}
	}
	return work[0]
}
