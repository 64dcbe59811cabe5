package transition

import (
	"errors"
	"math"
	"testing"

	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

func TestRotation_OrthoEndpointsExact(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	from := scatter.NewView(a, b)
	to := scatter.NewView(a, c)
	tr, err := NewRotation([]scatter.View{from, to}, RotationParams{Perspective: 0})
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	if !tr.IsReady() || !tr.HasMeaningfulIntermediates() {
		t.Fatal("rotation transition must be ready with meaningful intermediates")
	}

	for _, p := range ds.Points() {
		checks := []struct {
			name string
			time float64
			fn   func(float64, scatter.Point) (float64, error)
			want float64
		}{
			{"X(0)", 0, tr.X, from.X(p)},
			{"Y(0)", 0, tr.Y, from.Y(p)},
			{"X(1)", 1, tr.X, to.X(p)},
			{"Y(1)", 1, tr.Y, to.Y(p)},
		}
		for _, ck := range checks {
			got, err := ck.fn(ck.time, p)
			if err != nil {
				t.Fatalf("%s: %v", ck.name, err)
			}
			if math.Abs(got-ck.want) > 1e-12 {
				t.Errorf("%s for %s = %v, want %v", ck.name, p.ID, got, ck.want)
			}
		}
	}
}

// With zero perspective the halfway point of a segment is a 45 degree
// orthographic rotation, so the screen position can be computed by hand:
// x stays put while y averages the in-plane and out-of-plane coordinates
// around the cube center, scaled by cos(45).
func TestRotation_MatchesManualOrthographicProjection(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	tr, err := NewRotation(
		[]scatter.View{scatter.NewView(a, b), scatter.NewView(a, c)},
		RotationParams{Perspective: 0, Ease: tween.EaseCubic},
	)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}

	for _, p := range ds.Points() {
		yn := b.Normalize(p.Get("b"))
		zn := c.Normalize(p.Get("c"))
		wantX := a.Normalize(p.Get("a"))
		wantY := 0.5 + ((yn-0.5)+(zn-0.5))*math.Sqrt2/2

		gotX, _ := tr.X(0.5, p)
		gotY, _ := tr.Y(0.5, p)
		if math.Abs(gotX-wantX) > 1e-12 {
			t.Errorf("X(0.5, %s) = %v, want %v", p.ID, gotX, wantX)
		}
		if math.Abs(gotY-wantY) > 1e-12 {
			t.Errorf("Y(0.5, %s) = %v, want %v", p.ID, gotY, wantY)
		}
	}
}

func TestRotation_YAxisBringsNewXIntoView(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	from := scatter.NewView(a, c)
	to := scatter.NewView(b, c)
	tr, err := NewRotation([]scatter.View{from, to}, RotationParams{Perspective: 0})
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	p := ds.Points()[0]
	if got, _ := tr.X(0, p); math.Abs(got-from.X(p)) > 1e-12 {
		t.Errorf("X(0) = %v, want %v", got, from.X(p))
	}
	if got, _ := tr.X(1, p); math.Abs(got-to.X(p)) > 1e-12 {
		t.Errorf("X(1) = %v, want %v", got, to.X(p))
	}
	if got, _ := tr.Y(1, p); math.Abs(got-to.Y(p)) > 1e-12 {
		t.Errorf("Y(1) = %v, want %v", got, to.Y(p))
	}
}

func TestRotation_StagedEndpointsExact(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	from := scatter.NewView(a, b)
	to := scatter.NewView(a, c)
	params := RotationParams{Perspective: 0.8, Staged: true, ZoomTime: 0.2, Ease: tween.EaseCubic}
	tr, err := NewRotation([]scatter.View{from, to}, params)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	for _, p := range ds.Points() {
		if got, _ := tr.X(0, p); math.Abs(got-from.X(p)) > 1e-12 {
			t.Errorf("X(0, %s) = %v, want %v", p.ID, got, from.X(p))
		}
		if got, _ := tr.Y(0, p); math.Abs(got-from.Y(p)) > 1e-12 {
			t.Errorf("Y(0, %s) = %v, want %v", p.ID, got, from.Y(p))
		}
		if got, _ := tr.X(1, p); math.Abs(got-to.X(p)) > 1e-12 {
			t.Errorf("X(1, %s) = %v, want %v", p.ID, got, to.X(p))
		}
		if got, _ := tr.Y(1, p); math.Abs(got-to.Y(p)) > 1e-12 {
			t.Errorf("Y(1, %s) = %v, want %v", p.ID, got, to.Y(p))
		}
	}
}

func TestRotation_StagedPhasesAreContinuous(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	params := RotationParams{Perspective: 0.8, Staged: true, ZoomTime: 0.2, Ease: tween.EaseQuadratic}
	tr, err := NewRotation([]scatter.View{scatter.NewView(a, b), scatter.NewView(a, c)}, params)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	p := ds.Points()[2]
	span := params.ZoomTime * params.Perspective
	for _, boundary := range []float64{span, 1 - span} {
		before, _ := tr.Y(boundary-1e-7, p)
		after, _ := tr.Y(boundary+1e-7, p)
		if math.Abs(before-after) > 1e-3 {
			t.Errorf("position jumps across phase boundary %v: %v vs %v", boundary, before, after)
		}
	}
}

// The cube center projects to the screen center under any rotation angle
// and any orthographic/perspective mix.
func TestRotation_CenterPointStable(t *testing.T) {
	a, b, c := testDims(t)
	center := scatter.NewPoint("center", map[string]float64{"a": 5, "b": 5, "c": 5})
	views := []scatter.View{scatter.NewView(a, b), scatter.NewView(a, c)}

	for _, params := range []RotationParams{
		{Perspective: 0.7},
		{Perspective: 0.7, Staged: true, ZoomTime: 0.2},
		{Perspective: 1, Ease: tween.EaseExponential},
	} {
		tr, err := NewRotation(views, params)
		if err != nil {
			t.Fatalf("NewRotation: %v", err)
		}
		for i := 0; i <= 10; i++ {
			tt := float64(i) / 10
			gotX, _ := tr.X(tt, center)
			gotY, _ := tr.Y(tt, center)
			if math.Abs(gotX-0.5) > 1e-9 || math.Abs(gotY-0.5) > 1e-9 {
				t.Errorf("center at t=%v, params %+v: (%v, %v), want (0.5, 0.5)", tt, params, gotX, gotY)
			}
		}
	}
}

func TestRotation_PerspectiveBlendVanishesAtEndpoints(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	from := scatter.NewView(a, b)
	to := scatter.NewView(a, c)
	tr, err := NewRotation([]scatter.View{from, to}, RotationParams{Perspective: 1})
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	p := ds.Points()[3]
	if got, _ := tr.X(0, p); math.Abs(got-from.X(p)) > 1e-12 {
		t.Errorf("X(0) = %v, want %v", got, from.X(p))
	}
	if got, _ := tr.Y(1, p); math.Abs(got-to.Y(p)) > 1e-12 {
		t.Errorf("Y(1) = %v, want %v", got, to.Y(p))
	}
}

func TestRotation_ChainShowsMiddleViewExactly(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	mid := scatter.NewView(a, c)
	views := []scatter.View{scatter.NewView(a, b), mid, scatter.NewView(b, c)}
	tr, err := NewRotation(views, RotationParams{Perspective: 0.5})
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	p := ds.Points()[0]
	if got, _ := tr.X(0.5, p); math.Abs(got-mid.X(p)) > 1e-12 {
		t.Errorf("X(0.5) = %v, want middle view x %v", got, mid.X(p))
	}
	if got, _ := tr.Y(0.5, p); math.Abs(got-mid.Y(p)) > 1e-12 {
		t.Errorf("Y(0.5) = %v, want middle view y %v", got, mid.Y(p))
	}
}

func TestRotation_CacheSurvivesScrubbing(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	tr, err := NewRotation(
		[]scatter.View{scatter.NewView(a, b), scatter.NewView(a, c)},
		RotationParams{Perspective: 0.6},
	)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	p := ds.Points()[1]
	first, _ := tr.X(0.3, p)
	if _, err := tr.X(0.7, p); err != nil {
		t.Fatalf("X(0.7): %v", err)
	}
	again, _ := tr.X(0.3, p)
	if first != again {
		t.Errorf("X(0.3) changed after scrubbing: %v vs %v", first, again)
	}
}

func TestRotation_RejectsIncompatibleViews(t *testing.T) {
	a, b, c := testDims(t)
	_, err := NewRotation(
		[]scatter.View{scatter.NewView(a, b), scatter.NewView(b, c)},
		DefaultRotationParams(),
	)
	if !errors.Is(err, ErrIncompatibleViews) {
		t.Errorf("NewRotation() error = %v, want ErrIncompatibleViews", err)
	}
}
