package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/pkg/pipeline"
)

// pipelineFlags collects the flags shared by commands that run the
// animation pipeline over a dataset file.
type pipelineFlags struct {
	viewsStr   string
	strategy   string
	frames     int
	params     []string
	paramsFile string
	noCache    bool
	refresh    bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.viewsStr, "views", "", "view path as x:y pairs (comma-separated, e.g. gdp:life,gdp:co2)")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "transition strategy: straight (default), rotation, spline")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "strategy parameter as key=value (repeatable, dotted keys nest)")
	cmd.Flags().StringVar(&f.paramsFile, "params-file", "", "TOML file with strategy parameters")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// registerFrames adds the sampling flag for commands that sample frames.
func (f *pipelineFlags) registerFrames(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.frames, "frames", 0, "number of frames to sample (default 60)")
}

// options builds pipeline options from the flags and the dataset path.
func (f *pipelineFlags) options(input string) (pipeline.Options, error) {
	views, err := parseViews(f.viewsStr)
	if err != nil {
		return pipeline.Options{}, err
	}
	params, err := loadParams(f.paramsFile, f.params)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		DatasetPath: input,
		Strategy:    f.strategy,
		Views:       views,
		Params:      params,
		Frames:      f.frames,
		Refresh:     f.refresh,
	}, nil
}

// parseViews parses the --views flag into view specs.
func parseViews(s string) ([]pipeline.ViewSpec, error) {
	if s == "" {
		return nil, fmt.Errorf("at least two views are required (--views x1:y1,x2:y2)")
	}
	parts := strings.Split(s, ",")
	views := make([]pipeline.ViewSpec, len(parts))
	for i, part := range parts {
		x, y, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || x == "" || y == "" {
			return nil, fmt.Errorf("view %q: want x:y", part)
		}
		views[i] = pipeline.ViewSpec{X: x, Y: y}
	}
	return views, nil
}

// loadParams merges a TOML params file with individual --param overrides.
// Flag values win over file values.
func loadParams(file string, flags []string) (map[string]any, error) {
	params := map[string]any{}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read params file: %w", err)
		}
		if err := toml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("parse params file %s: %w", file, err)
		}
	}
	for _, kv := range flags {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("param %q: want key=value", kv)
		}
		setParam(params, strings.TrimSpace(key), paramValue(strings.TrimSpace(raw)))
	}
	if len(params) == 0 {
		return nil, nil
	}
	return params, nil
}

// paramValue infers bools and numbers; anything else stays a string.
func paramValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}

// setParam writes a value at a dotted path, creating nested maps as
// needed.
func setParam(params map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	m := params
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
