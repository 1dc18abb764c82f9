package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlenz/rosette/pkg/cache"
	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating the caching logic.
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

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc rose.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "invalid options")
	}

	result := &Result{
		Document:  doc,
		Artifacts: make(map[string][]byte),
	}

	if data, err := rose.MarshalDocument(doc); err == nil {
		result.DocHash = cache.Hash(data)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	lf, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = lf
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Bins = lf.Layout.Bins
	result.Stats.Warnings = lf.Layout.Warnings
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"bins", lf.Layout.Bins,
		"warnings", len(lf.Layout.Warnings),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, lf, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc rose.Document, opts Options) (rose.LayoutFile, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	docData, err := rose.MarshalDocument(doc)
	if err != nil {
		return rose.LayoutFile{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(docData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := rose.UnmarshalLayout(data)
			if err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	lf, err := BuildLayout(doc, opts)
	if err != nil {
		return rose.LayoutFile{}, false, err
	}

	// Cache the result
	if data, err := rose.MarshalLayout(lf); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
	}

	return lf, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc rose.Document, opts Options) (rose.LayoutFile, error) {
	lf, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return lf, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, lf rose.LayoutFile, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := rose.MarshalLayout(lf)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	rendered, err := RenderFromLayout(lf, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, lf rose.LayoutFile, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, lf, opts)
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
