package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/viewmorph/viewmorph/pkg/pipeline"
)

const testDatasetJSON = `{
	"dimensions": [
		{"name": "gdp", "min": 0, "max": 10},
		{"name": "life", "min": 0, "max": 100},
		{"name": "co2", "min": 0, "max": 50}
	],
	"points": [
		{"id": "usa", "values": {"gdp": 8, "life": 79, "co2": 40}},
		{"id": "chn", "values": {"gdp": 6, "life": 77, "co2": 30}},
		{"id": "deu", "values": {"gdp": 7, "life": 81, "co2": 20}}
	]
}`

// writeTestDataset writes the shared fixture dataset into a temp dir.
func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.json")
	if err := os.WriteFile(path, []byte(testDatasetJSON), 0o644); err != nil {
		t.Fatalf("write dataset failed: %v", err)
	}
	return path
}

// testCLI creates a CLI whose log output goes to a buffer.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	var buf bytes.Buffer
	return New(&buf, log.ErrorLevel)
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"json", "svg", "png", "pdf"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) failed: %v", f, err)
		}
	}
	if err := validateFormat("gif"); err == nil {
		t.Error("validateFormat should reject gif")
	}
	if err := validateFormat(""); err == nil {
		t.Error("validateFormat should reject an empty format")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:   "empty output strips input extension",
			output: "",
			input:  "data/countries.json",
			want:   "data/countries",
		},
		{
			name:   "output with format extension",
			output: "out/frames.svg",
			input:  "countries.json",
			want:   "out/frames",
		},
		{
			name:   "output without extension",
			output: "out/frames",
			input:  "countries.json",
			want:   "out/frames",
		},
		{
			name:   "output with unrelated extension",
			output: "out/frames.bak",
			input:  "countries.json",
			want:   "out/frames.bak",
		},
		{
			name:   "url input keeps the last segment",
			output: "",
			input:  "https://example.com/data/countries.json",
			want:   "countries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestFrameFilename(t *testing.T) {
	if got := frameFilename("out/anim", 7, "svg"); got != "out/anim_frame_007.svg" {
		t.Errorf("frameFilename = %q, want out/anim_frame_007.svg", got)
	}
	if got := frameFilename("base", 120, "png"); got != "base_frame_120.png" {
		t.Errorf("frameFilename = %q, want base_frame_120.png", got)
	}
}

func TestRunAnimateJSON(t *testing.T) {
	input := writeTestDataset(t)
	output := filepath.Join(t.TempDir(), "frames.json")

	c := testCLI(t)
	opts := animateOpts{
		pipelineFlags: pipelineFlags{
			viewsStr: "gdp:life,gdp:co2",
			frames:   5,
			noCache:  true,
		},
		output: output,
		format: formatJSON,
		width:  defaultWidth,
		height: defaultHeight,
	}

	if err := c.runAnimate(context.Background(), input, &opts); err != nil {
		t.Fatalf("runAnimate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}

	var fs pipeline.FrameSet
	if err := json.Unmarshal(data, &fs); err != nil {
		t.Fatalf("unmarshal frames failed: %v", err)
	}

	if len(fs.Frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(fs.Frames))
	}
	for _, f := range fs.Frames {
		if len(f.Positions) != 3 {
			t.Fatalf("expected 3 positions per frame, got %d", len(f.Positions))
		}
	}

	// The first frame shows the first view, the last frame the second.
	first := fs.Frames[0].Positions[0]
	last := fs.Frames[len(fs.Frames)-1].Positions[0]
	if first.ID != "usa" {
		t.Fatalf("expected usa first, got %s", first.ID)
	}
	if math.Abs(first.Y-0.79) > 1e-9 {
		t.Errorf("expected first frame usa y 0.79, got %g", first.Y)
	}
	if math.Abs(last.Y-0.8) > 1e-9 {
		t.Errorf("expected last frame usa y 0.8, got %g", last.Y)
	}
}

func TestRunAnimateSVGFrames(t *testing.T) {
	input := writeTestDataset(t)
	base := filepath.Join(t.TempDir(), "anim")

	c := testCLI(t)
	opts := animateOpts{
		pipelineFlags: pipelineFlags{
			viewsStr: "gdp:life,gdp:co2",
			frames:   3,
			noCache:  true,
		},
		output: base,
		format: formatSVG,
		width:  200,
		height: 150,
	}

	if err := c.runAnimate(context.Background(), input, &opts); err != nil {
		t.Fatalf("runAnimate failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		path := frameFilename(base, i, "svg")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s failed: %v", path, err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("%s should contain an svg element", path)
		}
	}
}

func TestRunAnimateInvalidViews(t *testing.T) {
	input := writeTestDataset(t)

	c := testCLI(t)
	opts := animateOpts{
		pipelineFlags: pipelineFlags{viewsStr: "gdp:life,gdp:nope", noCache: true},
		format:        formatJSON,
	}

	if err := c.runAnimate(context.Background(), input, &opts); err == nil {
		t.Fatal("runAnimate should fail for an unknown dimension")
	}
}
