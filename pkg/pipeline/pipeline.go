// Package pipeline provides the core animation pipeline for Viewmorph.
//
// This package implements the complete load → prepare → sample pipeline
// that can be used by CLI and service components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a dataset from a file or inline JSON
//  2. Prepare: Build the transition and run its preparation work
//  3. Sample: Evaluate positions for a fixed number of frames
//
// Each stage can be run independently or as part of the complete pipeline.
// Prepared spline geometry and sampled frame sets are cached; straight and
// rotation transitions are ready immediately and never cached.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetPath: "countries.json",
//	    Strategy:    "spline",
//	    Views:       []pipeline.ViewSpec{{X: "gdp", Y: "life"}, {X: "gdp", Y: "co2"}},
//	    Frames:      120,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	frames := result.Frames
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/viewmorph/viewmorph/pkg/cache"
	apperrors "github.com/viewmorph/viewmorph/pkg/errors"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultFrames is the number of frames sampled when the caller does
	// not ask for a specific count.
	DefaultFrames = 60

	// DefaultStrategy is used when no strategy is named.
	DefaultStrategy = "straight"

	// FormatFrames is the wire encoding of cached frame sets. It feeds the
	// frames cache key so a future encoding change cannot read old entries.
	FormatFrames = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// ViewSpec names the two dimensions of one view in a view path.
type ViewSpec struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Options contains all configuration for the animation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of path or inline JSON must be set; the
	// inline form takes precedence when both are.
	DatasetPath string `json:"dataset_path,omitempty"`
	DatasetJSON []byte `json:"dataset_json,omitempty"`

	// Prepare options
	Strategy string         `json:"strategy,omitempty"`
	Views    []ViewSpec     `json:"views"`
	Params   map[string]any `json:"params,omitempty"`

	// Sample options
	Frames int `json:"frames,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded dataset.
	Dataset *scatter.Dataset

	// DatasetHash is the content hash of the dataset's canonical JSON form.
	DatasetHash string

	// Transition is the prepared transition, ready to evaluate at any t.
	Transition transition.Transition

	// Frames is the sampled frame set.
	Frames *FrameSet

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount     int
	DimensionCount int
	LoadTime       time.Duration
	PrepareTime    time.Duration
	SampleTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GeometryHit bool // Whether prepared geometry came from cache
	FramesHit   bool // Whether the frame set came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForPrepare(); err != nil {
		return err
	}
	if err := o.ValidateForSample(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a dataset.
func (o *Options) ValidateForLoad() error {
	if o.DatasetPath == "" && len(o.DatasetJSON) == 0 {
		return fmt.Errorf("dataset path or inline dataset is required")
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForPrepare checks the transition configuration and applies the
// strategy default.
func (o *Options) ValidateForPrepare() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if _, err := transition.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if len(o.Views) < 2 {
		return fmt.Errorf("at least two views are required, got %d", len(o.Views))
	}
	for i, v := range o.Views {
		if v.X == "" || v.Y == "" {
			return fmt.Errorf("view %d: both dimensions are required", i)
		}
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForSample validates the sampling configuration and applies the
// frame count default.
func (o *Options) ValidateForSample() error {
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if err := apperrors.ValidateFrameCount(o.Frames); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ParsedStrategy resolves the strategy name. Only valid after one of the
// validate methods has run.
func (o *Options) ParsedStrategy() transition.Strategy {
	s, _ := transition.ParseStrategy(o.Strategy)
	return s
}

// ResolveViews maps the view specs onto the dataset's dimensions.
func (o *Options) ResolveViews(ds *scatter.Dataset) ([]scatter.View, error) {
	views := make([]scatter.View, len(o.Views))
	for i, v := range o.Views {
		view, err := ds.View(v.X, v.Y)
		if err != nil {
			return nil, fmt.Errorf("view %d: %w", i, err)
		}
		views[i] = view
	}
	return views, nil
}

// GeometryKeyOpts returns cache key options for prepared geometry.
func (o *Options) GeometryKeyOpts() cache.GeometryKeyOpts {
	views := make([]string, len(o.Views))
	for i, v := range o.Views {
		views[i] = v.X + "/" + v.Y
	}
	return cache.GeometryKeyOpts{
		Strategy: o.Strategy,
		Views:    views,
		Params:   o.Params,
	}
}

// FramesKeyOpts returns cache key options for sampled frames.
func (o *Options) FramesKeyOpts() cache.FramesKeyOpts {
	return cache.FramesKeyOpts{
		Frames: o.Frames,
		Format: FormatFrames,
	}
}
