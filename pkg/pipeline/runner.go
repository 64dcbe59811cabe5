package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/viewmorph/viewmorph/pkg/cache"
	"github.com/viewmorph/viewmorph/pkg/httputil"
	"github.com/viewmorph/viewmorph/pkg/observability"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// Cache key types reported to the observability hooks.
const (
	keyTypeGeometry = "geometry"
	keyTypeFrames   = "frames"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and service can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → prepare → sample pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PointCount = ds.Len()
	result.Stats.DimensionCount = len(ds.Dimensions())

	// Compute dataset hash for cache keys and API responses
	if hash, err := DatasetHash(ds); err == nil {
		result.DatasetHash = hash
	}

	r.Logger.Info("loaded dataset",
		"points", result.Stats.PointCount,
		"dimensions", result.Stats.DimensionCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Prepare
	prepareStart := time.Now()
	tr, geometryHit, err := r.PrepareWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	result.Transition = tr
	result.Stats.PrepareTime = time.Since(prepareStart)
	result.CacheInfo.GeometryHit = geometryHit

	r.Logger.Info("prepared transition",
		"strategy", opts.Strategy,
		"views", len(opts.Views),
		"duration", result.Stats.PrepareTime)

	// Stage 3: Sample
	sampleStart := time.Now()
	frames, framesHit, err := r.SampleWithCacheInfo(ctx, tr, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	result.Frames = frames
	result.Stats.SampleTime = time.Since(sampleStart)
	result.CacheInfo.FramesHit = framesHit

	r.Logger.Info("sampled frames",
		"frames", opts.Frames,
		"duration", result.Stats.SampleTime)

	return result, nil
}

// Load reads the dataset with stage hooks. The data itself is never
// cached: datasets are inputs, not derived data.
func (r *Runner) Load(ctx context.Context, opts Options) (*scatter.Dataset, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	source := opts.DatasetPath
	if len(opts.DatasetJSON) > 0 {
		source = "inline"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	ds, err := Load(ctx, opts)
	points := 0
	if ds != nil {
		points = ds.Len()
	}
	hooks.OnLoadComplete(ctx, source, points, time.Since(start), err)
	return ds, err
}

// PrepareWithCacheInfo builds and prepares the transition, restoring
// prepared spline geometry from cache when available, and returns cache
// hit info. Straight and rotation transitions carry no prepared state, so
// they are never cached and always report a miss-free false.
func (r *Runner) PrepareWithCacheInfo(ctx context.Context, ds *scatter.Dataset, opts Options) (transition.Transition, bool, error) {
	if err := opts.ValidateForPrepare(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	tr, err := buildTransition(ds, opts)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnPrepareStart(ctx, opts.Strategy, ds.Len())
	start := time.Now()

	spline, cacheable := tr.(*transition.Spline)
	if !cacheable {
		err := tr.Prepare(ctx)
		hooks.OnPrepareComplete(ctx, opts.Strategy, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		return tr, false, nil
	}

	datasetHash, err := DatasetHash(ds)
	if err != nil {
		return nil, false, err
	}
	geometryKey := r.Keyer.GeometryKey(datasetHash, opts.GeometryKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, geometryKey); ok {
			if err := spline.UnmarshalBinary(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeGeometry)
				hooks.OnPrepareComplete(ctx, opts.Strategy, time.Since(start), nil)
				return spline, true, nil
			}
			// Invalid cached geometry falls through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeGeometry)
	}

	prepErr := spline.Prepare(ctx)
	hooks.OnPrepareComplete(ctx, opts.Strategy, time.Since(start), prepErr)
	if prepErr != nil {
		return nil, false, prepErr
	}

	// Cache the result
	if data, err := spline.MarshalBinary(); err == nil {
		_ = r.Cache.Set(ctx, geometryKey, data, cache.TTLGeometry)
		observability.Cache().OnCacheSet(ctx, keyTypeGeometry, len(data))
	}

	return spline, false, nil
}

// Prepare is a convenience wrapper that calls PrepareWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Prepare(ctx context.Context, ds *scatter.Dataset, opts Options) (transition.Transition, error) {
	tr, _, err := r.PrepareWithCacheInfo(ctx, ds, opts)
	return tr, err
}

// SampleWithCacheInfo samples the prepared transition with caching and
// returns cache hit info. The frames key chains off the geometry key, so
// any change to the dataset or transition configuration invalidates the
// frames with it.
func (r *Runner) SampleWithCacheInfo(ctx context.Context, tr transition.Transition, ds *scatter.Dataset, opts Options) (*FrameSet, bool, error) {
	if err := opts.ValidateForPrepare(); err != nil {
		return nil, false, err
	}
	if err := opts.ValidateForSample(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	datasetHash, err := DatasetHash(ds)
	if err != nil {
		return nil, false, err
	}
	geometryKey := r.Keyer.GeometryKey(datasetHash, opts.GeometryKeyOpts())
	framesKey := r.Keyer.FramesKey(geometryKey, opts.FramesKeyOpts())

	hooks := observability.Pipeline()
	hooks.OnSampleStart(ctx, opts.Frames)
	start := time.Now()

	// Try cache first
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, framesKey); ok {
			if fs, err := UnmarshalFrames(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeFrames)
				hooks.OnSampleComplete(ctx, opts.Frames, time.Since(start), nil)
				return fs, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeFrames)
	}

	fs, sampleErr := Sample(tr, ds, opts.Frames)
	hooks.OnSampleComplete(ctx, opts.Frames, time.Since(start), sampleErr)
	if sampleErr != nil {
		return nil, false, sampleErr
	}

	// Cache the result
	if data, err := MarshalFrames(fs); err == nil {
		_ = r.Cache.Set(ctx, framesKey, data, cache.TTLFrames)
		observability.Cache().OnCacheSet(ctx, keyTypeFrames, len(data))
	}

	return fs, false, nil
}

// Sample is a convenience wrapper that calls SampleWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Sample(ctx context.Context, tr transition.Transition, ds *scatter.Dataset, opts Options) (*FrameSet, error) {
	fs, _, err := r.SampleWithCacheInfo(ctx, tr, ds, opts)
	return fs, err
}

// cacheGet reads a key, retrying transient backend failures. Misses and
// errors both report false so callers fall through to recompute.
func (r *Runner) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	var data []byte
	var hit bool
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil || !hit {
		return nil, false
	}
	return data, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
