package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseViews(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "two views",
			input: "gdp:life,gdp:co2",
			want:  2,
		},
		{
			name:  "three views with spaces",
			input: "gdp:life, gdp:co2 ,life:co2",
			want:  3,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing y dimension",
			input:   "gdp:life,gdp",
			wantErr: true,
		},
		{
			name:    "empty x dimension",
			input:   ":life",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := parseViews(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseViews(%q) should have failed", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseViews(%q) failed: %v", tt.input, err)
			}
			if len(views) != tt.want {
				t.Errorf("expected %d views, got %d", tt.want, len(views))
			}
		})
	}
}

func TestParseViewsDimensions(t *testing.T) {
	views, err := parseViews("gdp:life,gdp:co2")
	if err != nil {
		t.Fatalf("parseViews failed: %v", err)
	}

	if views[0].X != "gdp" || views[0].Y != "life" {
		t.Errorf("expected first view gdp:life, got %s:%s", views[0].X, views[0].Y)
	}
	if views[1].X != "gdp" || views[1].Y != "co2" {
		t.Errorf("expected second view gdp:co2, got %s:%s", views[1].X, views[1].Y)
	}
}

func TestParamValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"true", true},
		{"false", false},
		{"0.5", 0.5},
		{"42", 42.0},
		{"-3", -3.0},
		{"quadratic", "quadratic"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := paramValue(tt.raw); got != tt.want {
				t.Errorf("paramValue(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoadParamsFlagsOnly(t *testing.T) {
	params, err := loadParams("", []string{"ease=cubic", "stagger=true", "clustering.method=hierarchical"})
	if err != nil {
		t.Fatalf("loadParams failed: %v", err)
	}

	if params["ease"] != "cubic" {
		t.Errorf("expected ease cubic, got %v", params["ease"])
	}
	if params["stagger"] != true {
		t.Errorf("expected stagger true, got %v", params["stagger"])
	}

	group, ok := params["clustering"].(map[string]any)
	if !ok {
		t.Fatalf("expected clustering to be a nested map, got %T", params["clustering"])
	}
	if group["method"] != "hierarchical" {
		t.Errorf("expected clustering.method hierarchical, got %v", group["method"])
	}
}

func TestLoadParamsInvalidFlag(t *testing.T) {
	if _, err := loadParams("", []string{"no-equals-sign"}); err == nil {
		t.Fatal("loadParams should reject a flag without key=value form")
	}
	if _, err := loadParams("", []string{"=value"}); err == nil {
		t.Fatal("loadParams should reject an empty key")
	}
}

func TestLoadParamsEmpty(t *testing.T) {
	params, err := loadParams("", nil)
	if err != nil {
		t.Fatalf("loadParams failed: %v", err)
	}
	if params != nil {
		t.Errorf("expected nil params, got %v", params)
	}
}

func TestLoadParamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	content := `ease = "cubic"
bundlingStrength = 2.0

[clustering]
method = "hierarchical"
targetCount = 4.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write params file failed: %v", err)
	}

	params, err := loadParams(path, nil)
	if err != nil {
		t.Fatalf("loadParams failed: %v", err)
	}

	if params["ease"] != "cubic" {
		t.Errorf("expected ease cubic, got %v", params["ease"])
	}
	if params["bundlingStrength"] != 2.0 {
		t.Errorf("expected bundlingStrength 2, got %v", params["bundlingStrength"])
	}
	group, ok := params["clustering"].(map[string]any)
	if !ok {
		t.Fatalf("expected clustering table, got %T", params["clustering"])
	}
	if group["method"] != "hierarchical" {
		t.Errorf("expected clustering.method hierarchical, got %v", group["method"])
	}
}

func TestLoadParamsFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte(`ease = "cubic"`), 0o644); err != nil {
		t.Fatalf("write params file failed: %v", err)
	}

	params, err := loadParams(path, []string{"ease=linear"})
	if err != nil {
		t.Fatalf("loadParams failed: %v", err)
	}

	if params["ease"] != "linear" {
		t.Errorf("flag should override file, got %v", params["ease"])
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	if _, err := loadParams(filepath.Join(t.TempDir(), "absent.toml"), nil); err == nil {
		t.Fatal("loadParams should fail for a missing file")
	}
}
