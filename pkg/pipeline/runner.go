package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roomml/roomml/pkg/cache"
	"github.com/roomml/roomml/pkg/codec"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/observability"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/scene"
	"github.com/roomml/roomml/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// CLI, server and watcher all use it to avoid duplicating caching logic.
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

// Execute runs the complete pipeline with caching.
//
// The returned error is reserved for invalid options, cancellation and
// render failures. A malformed or invalid document yields a result whose
// Issues explain the problem.
func (r *Runner) Execute(ctx context.Context, source []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		SourceHash: cache.Hash(source),
		Artifacts:  make(map[string][]byte),
	}

	// Stages 1-3: Parse, Validate, Layout
	a, hit, err := r.AnalyzeWithCacheInfo(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	result.Root = a.Root
	result.Issues = a.Issues
	result.Box = a.Box
	result.CacheInfo.AnalysisHit = hit
	result.Stats.ParseTime = a.ParseTime
	result.Stats.ValidateTime = a.ValidateTime
	result.Stats.LayoutTime = a.LayoutTime
	result.Stats.Errors, result.Stats.Warnings = validate.Count(a.Issues)

	if !a.Parsed() {
		opts.Logger.Warn("parse failed", "source", opts.Source, "error", a.Issues[0].Message)
		return result, nil
	}
	fillCounts(&result.Stats, a)

	opts.Logger.Info("analyzed document",
		"source", opts.Source,
		"nodes", result.Stats.Nodes,
		"errors", result.Stats.Errors,
		"warnings", result.Stats.Warnings,
		"cached", hit)

	if result.Blocked() {
		if len(opts.Formats) > 0 {
			opts.Logger.Warn("rendering blocked by validation errors", "errors", result.Stats.Errors)
		}
		return result, nil
	}
	if len(opts.Formats) == 0 {
		return result, nil
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, s, renderHit, err := r.RenderWithCacheInfo(ctx, a, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Scene = s
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime,
		"cached", renderHit)

	return result, nil
}

// AnalyzeWithCacheInfo runs parse, validate and layout with caching and
// returns cache hit info. Parse failures are not cached.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, source []byte, opts Options) (*Analysis, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(cache.Hash(source), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if a, ok := r.loadAnalysis(ctx, cacheKey, opts.Logger); ok {
			return a, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "analysis")

	a := Analyze(ctx, source, opts)
	if !a.Parsed() {
		return a, false, nil
	}

	data, err := codec.Marshal(a)
	if err != nil {
		return nil, false, fmt.Errorf("encode analysis: %w", err)
	}
	a.Hash = cache.Hash(data)
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
		opts.Logger.Debug("cache write failed", "key", cache.Describe(cacheKey), "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "analysis", len(data))
	}
	return a, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, source []byte, opts Options) (*Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, source, opts)
	return a, err
}

func (r *Runner) loadAnalysis(ctx context.Context, key string, logger *log.Logger) (*Analysis, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var a Analysis
	if err := codec.Unmarshal(data, &a); err != nil || a.Root == nil || a.Box == nil {
		logger.Debug("discarding unreadable cache entry", "key", cache.Describe(key))
		return nil, false
	}
	if err := layout.Attach(a.Box, a.Root); err != nil {
		logger.Debug("discarding cache entry", "key", cache.Describe(key), "error", err)
		return nil, false
	}
	a.Hash = cache.Hash(data)
	observability.Cache().OnCacheHit(ctx, "analysis")
	return &a, true
}

// RenderWithCacheInfo builds the scene and generates artifacts with caching
// and returns cache hit info. It fails with [scene.ErrBlocked] when the
// analysis has errors.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a *Analysis, opts Options) (map[string][]byte, *scene.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, false, err
	}

	s, err := scene.Build(a.Box, a.Issues)
	if err != nil {
		return nil, nil, false, err
	}

	hash := a.Hash
	if hash == "" {
		data, err := codec.Marshal(a)
		if err != nil {
			return nil, nil, false, fmt.Errorf("encode analysis for cache key: %w", err)
		}
		hash = cache.Hash(data)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, nil, false, err
		}

		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		allCached = false
		observability.Cache().OnCacheMiss(ctx, "artifact")

		data, err := RenderFormat(ctx, format, a, s, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, s, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, a *Analysis, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, a, opts)
	return artifacts, err
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

func fillCounts(st *Stats, a *Analysis) {
	counts := a.Root.Count()
	for t, n := range counts {
		st.Nodes += n
		if t.IsOpening() {
			st.Openings += n
		}
	}
	st.Rooms = counts[roomml.TypeRoom]
	st.Furniture = counts[roomml.TypeFurniture]
	st.Boxes = a.Box.Count()
}
