package geom

import (
	"math"
	"testing"
)

func TestCurve_EvalEndpointsExact(t *testing.T) {
	c := Curve{{0.1, 0.2}, {0.4, 0.9}, {0.35, 0.1}, {0.8, 0.6}}

	if got := c.Eval(0); got != c[0] {
		t.Errorf("Eval(0) = %v, want first control point %v exactly", got, c[0])
	}
	if got := c.Eval(1); got != c[3] {
		t.Errorf("Eval(1) = %v, want last control point %v exactly", got, c[3])
	}
}

func TestCurve_EvalQuadratic(t *testing.T) {
	// Midpoint of a quadratic bezier: (p0 + 2·p1 + p2) / 4.
	c := Curve{{0, 0}, {1, 2}, {2, 0}}
	got := c.Eval(0.5)
	want := Vec2{1, 1}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("Eval(0.5) = %v, want %v", got, want)
	}
}

func TestCurve_EvalLine(t *testing.T) {
	c := Curve{{0, 0}, {10, 10}}
	got := c.Eval(0.3)
	if math.Abs(got.X-3) > 1e-12 || math.Abs(got.Y-3) > 1e-12 {
		t.Errorf("Eval(0.3) on a line = %v, want {3 3}", got)
	}
}

func TestCurve_EvalDegenerate(t *testing.T) {
	if got := (Curve{}).Eval(0.5); got != (Vec2{}) {
		t.Errorf("empty curve Eval() = %v, want zero", got)
	}

	single := Curve{{0.3, 0.7}}
	if got := single.Eval(0.9); got != single[0] {
		t.Errorf("single-point curve Eval() = %v, want %v", got, single[0])
	}
}

func TestCurve_EvalDoesNotMutate(t *testing.T) {
	c := Curve{{0, 0}, {1, 2}, {2, 0}}
	c.Eval(0.5)
	if c[1] != (Vec2{1, 2}) {
		t.Errorf("Eval mutated control points: %v", c)
	}
}
