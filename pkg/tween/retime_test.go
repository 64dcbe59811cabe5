package tween

import (
	"math"
	"testing"
)

func TestEqualCascade_WindowMapping(t *testing.T) {
	// Cluster i of n maps global i/n to local 0 and (i+1)/n to local 1.
	for total := 1; total <= 5; total++ {
		for i := 0; i < total; i++ {
			info := RetimeInfo{Index: i, Total: total}
			lo := float64(i) / float64(total)
			hi := float64(i+1) / float64(total)

			if got := EqualCascade(lo, info); math.Abs(got) > 1e-12 {
				t.Errorf("EqualCascade(%v, %d/%d) = %v, want 0", lo, i, total, got)
			}
			if got := EqualCascade(hi, info); math.Abs(got-1) > 1e-12 {
				t.Errorf("EqualCascade(%v, %d/%d) = %v, want 1", hi, i, total, got)
			}
		}
	}
}

func TestEqualCascade_Clamps(t *testing.T) {
	info := RetimeInfo{Index: 1, Total: 3}
	if got := EqualCascade(0.1, info); got != 0 {
		t.Errorf("EqualCascade before window = %v, want 0", got)
	}
	if got := EqualCascade(0.9, info); got != 1 {
		t.Errorf("EqualCascade after window = %v, want 1", got)
	}
}

func TestProportionalCascade_Windows(t *testing.T) {
	// Sizes 1 and 3: windows [0, 0.25] and [0.25, 1].
	sizes := []int{1, 3}

	first := RetimeInfo{Index: 0, Total: 2, Sizes: sizes}
	if got := ProportionalCascade(0.25, first); got != 1 {
		t.Errorf("ProportionalCascade(0.25, first) = %v, want 1", got)
	}
	if got := ProportionalCascade(0.125, first); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("ProportionalCascade(0.125, first) = %v, want 0.5", got)
	}

	second := RetimeInfo{Index: 1, Total: 2, Sizes: sizes}
	if got := ProportionalCascade(0.25, second); got != 0 {
		t.Errorf("ProportionalCascade(0.25, second) = %v, want 0", got)
	}
	if got := ProportionalCascade(1, second); got != 1 {
		t.Errorf("ProportionalCascade(1, second) = %v, want 1", got)
	}
	if got := ProportionalCascade(0.625, second); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("ProportionalCascade(0.625, second) = %v, want 0.5", got)
	}
}

func TestProportionalCascade_FallsBackWithoutSizes(t *testing.T) {
	info := RetimeInfo{Index: 1, Total: 2}
	if got, want := ProportionalCascade(0.75, info), EqualCascade(0.75, info); got != want {
		t.Errorf("ProportionalCascade without sizes = %v, want EqualCascade value %v", got, want)
	}
}

func TestLegacyOffset(t *testing.T) {
	// The middle cluster of an even split animates unshifted.
	mid := RetimeInfo{Index: 2, Total: 4}
	if got := LegacyOffset(0.3, mid); got != 0.3 {
		t.Errorf("LegacyOffset middle cluster = %v, want 0.3", got)
	}

	// Cluster 0 runs ahead by 0.5, clamped at the end of its window.
	first := RetimeInfo{Index: 0, Total: 4}
	if got := LegacyOffset(0.2, first); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("LegacyOffset first cluster = %v, want 0.7", got)
	}
	if got := LegacyOffset(0.8, first); got != 1 {
		t.Errorf("LegacyOffset first cluster late = %v, want 1", got)
	}

	// The last cluster lags and clamps at 0 early on.
	last := RetimeInfo{Index: 3, Total: 4}
	if got := LegacyOffset(0.2, last); got != 0 {
		t.Errorf("LegacyOffset last cluster early = %v, want 0", got)
	}
}

func TestIdentity(t *testing.T) {
	if got := Identity(0.42, RetimeInfo{}); got != 0.42 {
		t.Errorf("Identity(0.42) = %v, want 0.42", got)
	}
	if got := Identity(1.5, RetimeInfo{}); got != 1 {
		t.Errorf("Identity(1.5) = %v, want 1", got)
	}
}

func TestRetimeMode_Func(t *testing.T) {
	info := RetimeInfo{Index: 0, Total: 2}
	if got := RetimeEqual.Func()(0.25, info); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("RetimeEqual.Func()(0.25) = %v, want 0.5", got)
	}
	if got := RetimeNone.Func()(0.25, info); got != 0.25 {
		t.Errorf("RetimeNone.Func()(0.25) = %v, want 0.25", got)
	}
}

func TestParseRetimeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RetimeMode
		wantErr bool
	}{
		{"none", RetimeNone, false},
		{"equal", RetimeEqual, false},
		{"proportional", RetimeProportional, false},
		{"", RetimeNone, false},
		{"random", RetimeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseRetimeMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRetimeMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseRetimeMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
