package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rdpishibashi/revision-management/pkg/cache"
	"github.com/rdpishibashi/revision-management/pkg/graph"
	"github.com/rdpishibashi/revision-management/pkg/ledger"
	"github.com/rdpishibashi/revision-management/pkg/observability"
	"github.com/rdpishibashi/revision-management/pkg/render/dot"
	"github.com/rdpishibashi/revision-management/pkg/render/network"
)

// Runner executes the load → build → render pipeline with caching.
// A Runner is safe for concurrent use; every Execute call works on its
// own table and result.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching; a
// nil logger discards log output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Execute runs the full pipeline over workbook bytes and returns the
// constructed graph plus the requested artifacts. Identical workbooks
// with identical options are served from the artifact cache within the
// TTL.
func (r *Runner) Execute(ctx context.Context, workbook []byte, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return Result{}, err
	}

	hash := cache.Hash(workbook)
	res := Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	if g, ok := r.cachedResult(ctx, hash, opts, &res); ok {
		r.logger.Debugf("Pipeline served from cache (workbook %s)", hash[:12])
		res.Graph = g
		res.Cached = true
		return res, nil
	}

	g, err := r.build(ctx, workbook, hash, opts)
	if err != nil {
		return Result{}, err
	}
	res.Graph = g

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		if _, done := res.Artifacts[format]; done {
			continue
		}
		data, err := r.renderFormat(ctx, g, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return Result{}, err
		}
		res.Artifacts[format] = data
		r.storeArtifact(ctx, hash, format, data, opts)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)

	return res, nil
}

// RenderGraph renders artifacts for an already-constructed graph, e.g.
// one read back from a JSON file. No caching is involved.
func (r *Runner) RenderGraph(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, error) {
	opts = opts.withDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// build loads the table, runs the construction engine, and caches the
// serialized graph.
func (r *Runner) build(ctx context.Context, workbook []byte, hash string, opts Options) (graph.Graph, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, hash)

	table, err := ledger.Load(bytes.NewReader(workbook), ledger.Options{Sheet: opts.Sheet})
	observability.Pipeline().OnLoadComplete(ctx, hash, len(table.Rows), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, err
	}
	r.logger.Debugf("Loaded table: %d rows, %d dynamic columns", len(table.Rows), len(table.DynamicColumns()))

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(table.Rows))
	g := graph.Build(table)

	roots := 0
	for _, n := range g.Nodes {
		if n.Root {
			roots++
		}
	}
	observability.Pipeline().OnBuildComplete(ctx, len(g.Nodes), len(g.Edges), roots, time.Since(buildStart))
	r.logger.Infof("Built graph: %d nodes, %d edges, %d roots", len(g.Nodes), len(g.Edges), roots)

	if data, err := graph.MarshalGraph(g); err == nil {
		r.storeKey(ctx, graphKey(hash, opts), data, opts.TTL)
	}
	return g, nil
}

// cachedResult fills res.Artifacts from the cache and reports whether
// every requested artifact plus the graph was present.
func (r *Runner) cachedResult(ctx context.Context, hash string, opts Options, res *Result) (graph.Graph, bool) {
	data, hit, err := r.cache.Get(ctx, graphKey(hash, opts))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "graph")
		return graph.Graph{}, false
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return graph.Graph{}, false
	}
	observability.Cache().OnCacheHit(ctx, "graph")

	for _, format := range opts.Formats {
		data, hit, err := r.cache.Get(ctx, artifactKey(hash, format, opts))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return g, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		res.Artifacts[format] = data
	}
	return g, true
}

func (r *Runner) renderFormat(ctx context.Context, g graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalGraph(g)
	case FormatDOT:
		return []byte(dot.ToDOT(g, dot.Options{FontName: opts.FontName})), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{FontName: opts.FontName}))
	case FormatPDF:
		return dot.RenderPDF(ctx, dot.ToDOT(g, dot.Options{FontName: opts.FontName}))
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(g, dot.Options{FontName: opts.FontName}), opts.PNGScale)
	case FormatHTML:
		return network.Render(g, network.Options{Title: opts.Title})
	default:
		// ValidateFormats runs before dispatch; this is unreachable.
		return nil, ValidateFormats([]string{format})
	}
}

func (r *Runner) storeArtifact(ctx context.Context, hash, format string, data []byte, opts Options) {
	r.storeKey(ctx, artifactKey(hash, format, opts), data, opts.TTL)
}

// storeKey writes through to the cache; failures are logged, not fatal.
func (r *Runner) storeKey(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.cache.Set(ctx, key, data, ttl); err != nil {
		r.logger.Warnf("cache write failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}
