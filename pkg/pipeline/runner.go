package pipeline

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/heatmap/pkg/cache"
	"github.com/matzehuels/heatmap/pkg/chart"
	"github.com/matzehuels/heatmap/pkg/dataset"
	"github.com/matzehuels/heatmap/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state, so one Runner may serve concurrent
// Execute calls with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *dataset.Loader
	Clock  clockwork.Clock
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses [cache.DefaultKeyer].
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
		Loader: dataset.NewLoader(),
		Clock:  clockwork.NewRealClock(),
	}
}

// Execute runs load → build → render. Load and build failures abort the
// run before any format is rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	start := r.Clock.Now()
	hooks.OnLoadStart(ctx, opts.Source)
	raw, ds, hit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = r.Clock.Since(start)
	hooks.OnLoadComplete(ctx, opts.Source, ds.Len(), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.DatasetHash = cache.Hash(raw)
	result.Stats.Records = ds.Len()
	result.CacheInfo.DatasetHit = hit

	opts.Logger.Info("loaded dataset",
		"source", opts.Source,
		"records", ds.Len(),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	start = r.Clock.Now()
	hooks.OnBuildStart(ctx, ds.Len())
	c, err := r.Build(ds, result.DatasetHash, opts)
	result.Stats.BuildTime = r.Clock.Since(start)
	cells := 0
	if c != nil {
		cells = len(c.Cells)
	}
	hooks.OnBuildComplete(ctx, cells, result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.Cells = cells

	opts.Logger.Info("built chart",
		"cells", cells,
		"years", c.MaxYear-c.MinYear+1,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	start = r.Clock.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, result.DatasetHash, opts)
	result.Stats.RenderTime = r.Clock.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo fetches and decodes the dataset, consulting the cache
// unless opts.Refresh is set. It returns the raw bytes for hashing.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]byte, dataset.Dataset, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, dataset.Dataset{}, false, err
	}
	r.applyLogger(&opts)
	key := r.Keyer.DatasetKey(opts.Source)

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, key, cache.KeyTypeDataset, opts.Logger); ok {
			ds, err := dataset.Decode(bytes.NewReader(data))
			if err == nil {
				return data, ds, true, nil
			}
			opts.Logger.Warn("discarding undecodable cached dataset", "key", key, "error", err)
		}
	}

	data, err := r.Loader.Fetch(ctx, opts.Source)
	if err != nil {
		return nil, dataset.Dataset{}, false, err
	}
	ds, err := dataset.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, dataset.Dataset{}, false, err
	}
	r.cacheSet(ctx, key, cache.KeyTypeDataset, data, cache.DatasetTTL, opts.Logger)
	return data, ds, false, nil
}

// Load is LoadWithCacheInfo without the cache details.
func (r *Runner) Load(ctx context.Context, opts Options) (dataset.Dataset, error) {
	_, ds, _, err := r.LoadWithCacheInfo(ctx, opts)
	return ds, err
}

// Build normalizes ds and lays out the chart. The chart ID is derived from
// datasetHash so identical inputs render byte-identical output; an empty
// hash yields a random ID.
func (r *Runner) Build(ds dataset.Dataset, datasetHash string, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	id := ""
	if len(datasetHash) >= 12 {
		id = "heatmap-" + datasetHash[:12]
	}
	return chart.Build(dataset.Normalize(ds), opts.RenderContext(id))
}

// RenderWithCacheInfo renders every requested format, serving cached
// artifacts where possible. The bool reports whether all formats were
// cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *chart.Chart, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		hits      int
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
			data, ok := r.cacheGet(gctx, key, cache.KeyTypeArtifact, opts.Logger)
			if !ok {
				var err error
				if data, err = RenderFormat(gctx, c, format, opts); err != nil {
					return err
				}
				r.cacheSet(gctx, key, cache.KeyTypeArtifact, data, cache.ArtifactTTL, opts.Logger)
			}
			mu.Lock()
			defer mu.Unlock()
			artifacts[format] = data
			if ok {
				hits++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return artifacts, hits == len(opts.Formats), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet treats backend errors as misses.
func (r *Runner) cacheGet(ctx context.Context, key, keyType string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on opts if the caller left the
// default discard logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}
