package geom

import (
	"math"
	"testing"
)

func TestNewTable_LineLength(t *testing.T) {
	c := Curve{{0, 0}, {0.6, 0.8}}
	tab := NewTable(c)

	if got := tab.Total(); math.Abs(got-1) > 1e-9 {
		t.Errorf("Total() = %v, want 1", got)
	}
}

func TestNewTable_SpacingRefined(t *testing.T) {
	// A long curve forces the sampler to halve its step: with the initial
	// 0.05 step a curve of length 4 has ~0.2 spacing between samples.
	c := Curve{{0, 0}, {4, 0}}
	tab := NewTable(c)

	if tab.Samples() < 401 {
		t.Errorf("Samples() = %d, want at least 401 for spacing <= 0.01", tab.Samples())
	}
}

func TestTable_Monotonic(t *testing.T) {
	c := Curve{{0, 0}, {0.5, 1}, {1, 0}}
	tab := NewTable(c)

	prev := -1.0
	for i := 0; i < tab.Samples(); i++ {
		l := tab.lengths[i]
		if l < prev {
			t.Fatalf("lengths[%d] = %v decreases below %v", i, l, prev)
		}
		prev = l
	}
}

func TestTable_ParamEndpoints(t *testing.T) {
	c := Curve{{0, 0}, {0.3, 0.4}, {1, 1}}
	tab := NewTable(c)

	if got := tab.Param(0); got != 0 {
		t.Errorf("Param(0) = %v, want 0", got)
	}
	if got := tab.Param(-0.5); got != 0 {
		t.Errorf("Param(negative) = %v, want 0", got)
	}
	if got := tab.Param(tab.Total()); got != 1 {
		t.Errorf("Param(Total) = %v, want 1", got)
	}
	if got := tab.Param(tab.Total() + 1); got != 1 {
		t.Errorf("Param(past end) = %v, want 1", got)
	}
}

func TestTable_ParamUniformSpeedOnLine(t *testing.T) {
	// On a straight line, arc length is proportional to the parameter, so
	// Param(half the length) must be 0.5.
	c := Curve{{0, 0}, {1, 0}}
	tab := NewTable(c)

	if got := tab.Param(tab.Total() / 2); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Param(Total/2) = %v, want 0.5", got)
	}
	if got := tab.Param(tab.Total() / 4); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Param(Total/4) = %v, want 0.25", got)
	}
}

func TestTable_ParamExactEntry(t *testing.T) {
	c := Curve{{0, 0}, {1, 0}}
	tab := NewTable(c)

	// Length at a known grid entry maps back to the exact grid parameter.
	n := tab.Samples() - 1
	i := n / 2
	got := tab.Param(tab.lengths[i])
	want := float64(i) / float64(n)
	if got != want {
		t.Errorf("Param(lengths[%d]) = %v, want %v exactly", i, got, want)
	}
}

func TestNewTable_DegeneratePointCurve(t *testing.T) {
	c := Curve{{0.5, 0.5}}
	tab := NewTable(c)

	if got := tab.Total(); got != 0 {
		t.Errorf("Total() of a stationary curve = %v, want 0", got)
	}
	if got := tab.Param(0); got != 0 {
		t.Errorf("Param(0) = %v, want 0", got)
	}
}
