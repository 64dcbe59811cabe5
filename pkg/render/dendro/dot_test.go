package dendro

import (
	"strings"
	"testing"

	"github.com/viewmorph/viewmorph/pkg/cluster"
)

func TestToDOT_Basic(t *testing.T) {
	merges := []cluster.Merge{
		{A: 0, B: 1, Distance: 0.1},
		{A: 0, B: 1, Distance: 0.8},
	}

	dot, err := ToDOT([]string{"a", "b", "c"}, merges, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, leaf := range []string{`"a"`, `"b"`, `"c"`} {
		if !strings.Contains(dot, leaf) {
			t.Errorf("ToDOT() output missing leaf %s", leaf)
		}
	}
	if !strings.Contains(dot, `"merge#0" -> "a"`) || !strings.Contains(dot, `"merge#0" -> "b"`) {
		t.Error("ToDOT() first merge should join a and b")
	}
	if !strings.Contains(dot, `"merge#1" -> "merge#0"`) || !strings.Contains(dot, `"merge#1" -> "c"`) {
		t.Error("ToDOT() second merge should join the first merge and c")
	}
}

func TestToDOT_ReplaysShrinkingPositions(t *testing.T) {
	// Positions refer to the cluster list as it stood at merge time:
	// after (0,1) joins a and b, position 1 is c and position 2 is d.
	merges := []cluster.Merge{
		{A: 0, B: 1, Distance: 0.1},
		{A: 1, B: 2, Distance: 0.1},
		{A: 0, B: 1, Distance: 1.3},
	}

	dot, err := ToDOT([]string{"a", "b", "c", "d"}, merges, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	for _, edge := range []string{
		`"merge#0" -> "a"`, `"merge#0" -> "b"`,
		`"merge#1" -> "c"`, `"merge#1" -> "d"`,
		`"merge#2" -> "merge#0"`, `"merge#2" -> "merge#1"`,
	} {
		if !strings.Contains(dot, edge) {
			t.Errorf("ToDOT() missing edge %s", edge)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	merges := []cluster.Merge{{A: 0, B: 1, Distance: 0.25}}

	dot, err := ToDOT([]string{"a", "b"}, merges, Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.Contains(dot, "d = 0.25") {
		t.Errorf("ToDOT() detailed output missing distance label: %s", dot)
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() detailed merge node missing lightgrey fill")
	}
}

func TestToDOT_JunctionPointsByDefault(t *testing.T) {
	merges := []cluster.Merge{{A: 0, B: 1, Distance: 0.25}}

	dot, err := ToDOT([]string{"a", "b"}, merges, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.Contains(dot, "shape=point") {
		t.Error("ToDOT() merge node should render as a point by default")
	}
	if strings.Contains(dot, "d = ") {
		t.Error("ToDOT() should not label distances by default")
	}
}

func TestToDOT_InvalidMerge(t *testing.T) {
	tests := []struct {
		name   string
		merges []cluster.Merge
	}{
		{"out of range", []cluster.Merge{{A: 0, B: 5}}},
		{"self merge", []cluster.Merge{{A: 1, B: 1}}},
		{"negative", []cluster.Merge{{A: -1, B: 0}}},
		{"stale position", []cluster.Merge{{A: 0, B: 1}, {A: 0, B: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToDOT([]string{"a", "b"}, tt.merges, Options{}); err == nil {
				t.Error("ToDOT() should reject invalid merge positions")
			}
		})
	}
}

func TestToDOT_NoMerges(t *testing.T) {
	dot, err := ToDOT([]string{"a", "b"}, nil, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.Contains(dot, `"a"`) || !strings.Contains(dot, `"b"`) {
		t.Error("ToDOT() without merges should still declare leaves")
	}
	if strings.Contains(dot, "merge#") {
		t.Error("ToDOT() without merges should not emit merge nodes")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	dot := `not valid DOT {{{`
	if _, err := RenderSVG(dot); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
