package transition

import (
	"errors"
	"strings"
	"testing"

	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// testDims returns three linear dimensions over [0, 10], the fixture most
// tests share.
func testDims(t *testing.T) (a, b, c scatter.Dimension) {
	t.Helper()
	var err error
	if a, err = scatter.NewDimension("a", 0, 10, scatter.Linear); err != nil {
		t.Fatalf("NewDimension(a): %v", err)
	}
	if b, err = scatter.NewDimension("b", 0, 10, scatter.Linear); err != nil {
		t.Fatalf("NewDimension(b): %v", err)
	}
	if c, err = scatter.NewDimension("c", 0, 10, scatter.Linear); err != nil {
		t.Fatalf("NewDimension(c): %v", err)
	}
	return a, b, c
}

// testDataset returns four points over dimensions a, b, c with values
// chosen so normalized coordinates come out as round numbers.
func testDataset(t *testing.T) *scatter.Dataset {
	t.Helper()
	a, b, c := testDims(t)
	points := []scatter.Point{
		scatter.NewPoint("p0", map[string]float64{"a": 2, "b": 5, "c": 10}),
		scatter.NewPoint("p1", map[string]float64{"a": 0, "b": 10, "c": 5}),
		scatter.NewPoint("p2", map[string]float64{"a": 7.5, "b": 2.5, "c": 0}),
		scatter.NewPoint("p3", map[string]float64{"a": 10, "b": 0, "c": 7.5}),
	}
	ds, err := scatter.NewDataset([]scatter.Dimension{a, b, c}, points)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return ds
}

func TestValidateViews(t *testing.T) {
	a, b, c := testDims(t)
	ab := scatter.NewView(a, b)
	ac := scatter.NewView(a, c)
	bc := scatter.NewView(b, c)
	ba := scatter.NewView(b, a)

	tests := []struct {
		name     string
		strategy Strategy
		views    []scatter.View
		wantErr  error
	}{
		{"straight two views", StrategyStraight, []scatter.View{ab, bc}, nil},
		{"straight swap allowed", StrategyStraight, []scatter.View{ab, ba}, nil},
		{"spline swap allowed", StrategySpline, []scatter.View{ab, bc}, nil},
		{"rotation shared x", StrategyRotation, []scatter.View{ab, ac}, nil},
		{"rotation shared y", StrategyRotation, []scatter.View{ac, bc}, nil},
		{"rotation chain", StrategyRotation, []scatter.View{ab, ac, bc}, nil},
		{"rotation no shared axis", StrategyRotation, []scatter.View{ab, bc}, ErrIncompatibleViews},
		{"rotation full swap", StrategyRotation, []scatter.View{ab, ba}, ErrIncompatibleViews},
		{"one view", StrategyStraight, []scatter.View{ab}, ErrTooFewViews},
		{"no views", StrategySpline, nil, ErrTooFewViews},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViews(tt.strategy, tt.views)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateViews() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateViews_ErrorNamesViewsAndStrategy(t *testing.T) {
	a, b, c := testDims(t)
	err := ValidateViews(StrategyRotation, []scatter.View{scatter.NewView(a, b), scatter.NewView(b, c)})
	if err == nil {
		t.Fatal("ValidateViews() = nil, want error")
	}
	for _, want := range []string{"rotation", "(a, b)", "(b, c)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestStrategy_Capabilities(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     Capabilities
	}{
		{StrategyStraight, Capabilities{CanSwapDimensions: true}},
		{StrategyRotation, Capabilities{RequiresCommonDimensions: true}},
		{StrategySpline, Capabilities{CanSwapDimensions: true}},
	}
	for _, tt := range tests {
		if got := tt.strategy.Capabilities(); got != tt.want {
			t.Errorf("%s.Capabilities() = %+v, want %+v", tt.strategy, got, tt.want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, name := range StrategyNames() {
		s, err := ParseStrategy(name)
		if err != nil {
			t.Fatalf("ParseStrategy(%q): %v", name, err)
		}
		if s.String() != name {
			t.Errorf("ParseStrategy(%q).String() = %q", name, s)
		}
	}
	if _, err := ParseStrategy("warp"); err == nil {
		t.Error("ParseStrategy(warp) = nil error, want failure")
	}
}

func TestNew(t *testing.T) {
	ds := testDataset(t)
	a, b, c := testDims(t)
	ab := scatter.NewView(a, b)
	ac := scatter.NewView(a, c)
	bc := scatter.NewView(b, c)

	t.Run("straight ignores dataset and params", func(t *testing.T) {
		tr, err := New(StrategyStraight, nil, []scatter.View{ab, bc}, map[string]any{"ease": "cubic"})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, ok := tr.(*Straight); !ok {
			t.Errorf("New(straight) = %T, want *Straight", tr)
		}
	})

	t.Run("rotation takes schema values", func(t *testing.T) {
		tr, err := New(StrategyRotation, nil, []scatter.View{ab, ac}, map[string]any{"perspective": 0.9})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, ok := tr.(*Rotation); !ok {
			t.Errorf("New(rotation) = %T, want *Rotation", tr)
		}
	})

	t.Run("spline needs a dataset", func(t *testing.T) {
		if _, err := New(StrategySpline, nil, []scatter.View{ab, bc}, nil); !errors.Is(err, ErrNoData) {
			t.Errorf("New(spline, nil dataset) error = %v, want ErrNoData", err)
		}
		tr, err := New(StrategySpline, ds, []scatter.View{ab, bc}, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, ok := tr.(*Spline); !ok {
			t.Errorf("New(spline) = %T, want *Spline", tr)
		}
	})

	t.Run("bad param values reject", func(t *testing.T) {
		if _, err := New(StrategyRotation, nil, []scatter.View{ab, ac}, map[string]any{"ease": "warp"}); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("New(bad ease) error = %v, want ErrInvalidParam", err)
		}
	})
}
