package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/karyoviz/karyoplot/pkg/cache"
	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/feature"
	"github.com/karyoviz/karyoplot/pkg/genome"
	"github.com/karyoviz/karyoplot/pkg/observability"
	"github.com/karyoviz/karyoplot/pkg/plot/compose"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, opts.Input)
	pr, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, opts.Input, len(pr.features), result.Stats.ParseTime, err)
	if err != nil {
		return nil, err
	}
	result.Features = pr.features
	result.Stats.FeatureCount = len(pr.features)
	result.CacheInfo.ParseHit = parseHit

	if data, err := marshalFeatures(pr.features); err == nil {
		result.FeatureHash = cache.Hash(data)
	}

	r.Logger.Info("parsed features",
		"run_id", result.RunID,
		"features", len(pr.features),
		"cache_hit", parseHit,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout + composition
	asm, err := genome.LoadAssembly(opts.Assembly)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	tracks := BuildTracks(pr.features, asm, r.Logger)
	markerCount := 0
	for _, t := range tracks {
		markerCount += len(t.Markers)
	}
	hooks.OnLayoutStart(ctx, len(tracks), markerCount)

	var key []compose.KeyEntry
	if !opts.NoKey {
		key = keyEntries(pr.rules, pr.features)
	}
	fig, err := composeFigure(tracks, opts.Geometry, key)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, len(tracks), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Tracks = tracks
	result.Figure = fig
	result.Stats.TrackCount = len(tracks)
	result.Stats.MarkerCount = markerCount

	r.Logger.Info("placed markers",
		"run_id", result.RunID,
		"tracks", len(tracks),
		"markers", markerCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCache(ctx, fig, tracks, asm, opts, result.FeatureHash)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"run_id", result.RunID,
		"formats", opts.Formats,
		"cache_hit", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses and classifies the input with caching and
// reports whether the result came from cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (parseResult, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return parseResult{}, false, err
	}
	r.applyLogger(&opts)
	cacheHooks := observability.Cache()

	rules, rulesHash, err := loadRules(opts)
	if err != nil {
		return parseResult{}, false, err
	}
	data, sourceHash, err := readInput(opts.Input)
	if err != nil {
		return parseResult{}, false, err
	}

	res := parseResult{rules: rules, sourceHash: sourceHash, rulesHash: rulesHash}
	cacheKey := r.Keyer.FeatureKey(sourceHash, opts.FeatureKeyOpts(rulesHash))

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if features, err := unmarshalFeatures(cached); err == nil {
				cacheHooks.OnCacheHit(ctx, "features")
				res.features = features
				return res, true, nil
			}
		}
		cacheHooks.OnCacheMiss(ctx, "features")
	}

	res.features, err = parseData(opts.Input, data, rules)
	if err != nil {
		return parseResult{}, false, err
	}

	if encoded, err := marshalFeatures(res.features); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, encoded, cache.TTLFeatures)
		cacheHooks.OnCacheSet(ctx, "features", len(encoded))
	}
	return res, false, nil
}

// Parse is a convenience wrapper that returns just the classified features.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]feature.Classified, []feature.ClassRule, error) {
	res, _, err := r.ParseWithCacheInfo(ctx, opts)
	return res.features, res.rules, err
}

// renderWithCache renders all requested formats, reusing cached artifacts
// when the feature set and render parameters are unchanged.
func (r *Runner) renderWithCache(ctx context.Context, fig *compose.Figure, tracks []*layout.Track,
	asm *genome.Assembly, opts Options, featureHash string) (map[string][]byte, bool, error) {

	if featureHash == "" {
		return nil, false, errors.New(errors.ErrCodeInternal, "missing feature hash for artifact cache")
	}
	cacheHooks := observability.Cache()
	paramsHash := renderParamsHash(opts, asm)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(featureHash, opts.ArtifactKeyOpts(format, paramsHash))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	rendered, err := renderArtifacts(fig, tracks, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(featureHash, opts.ArtifactKeyOpts(format, paramsHash))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// renderParamsHash fingerprints the non-feature inputs that shape the figure.
func renderParamsHash(opts Options, asm *genome.Assembly) string {
	data, _ := json.Marshal(struct {
		Geometry layout.Geometry     `json:"geometry"`
		Assembly []genome.Chromosome `json:"assembly"`
		NoKey    bool                `json:"no_key"`
	}{opts.Geometry, asm.Chromosomes, opts.NoKey})
	return cache.Hash(data)
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
