package pipeline

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/layout"
	"github.com/matzehuels/relgraph/pkg/render"
	"github.com/matzehuels/relgraph/pkg/scene"
)

// Runner runs the pipeline with caching.
//
// The Runner holds no pipeline results, so multiple goroutines can share
// one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// uses the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Load reads a graph file and prepares it.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*Prepared, error) {
	start := time.Now()
	g, err := graph.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)
	r.Logger.Info("loaded graph", "path", path, "nodes", len(g.Nodes), "edges", len(g.Edges), "duration", loadTime)

	p, err := r.Prepare(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	p.Stats.LoadTime = loadTime
	return p, nil
}

// Prepare lays out g when it has no positions and fills in missing node
// colors. g itself is not modified.
func (r *Runner) Prepare(ctx context.Context, g *graph.Graph, opts Options) (*Prepared, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	work := g.Clone()
	p := &Prepared{
		Graph: work,
		Stats: Stats{NodeCount: len(work.Nodes), EdgeCount: len(work.Edges)},
	}

	if !work.HasPositions() {
		start := time.Now()
		hit, err := r.layout(ctx, work, opts.Engine)
		if err != nil {
			return nil, err
		}
		p.LayoutHit = hit
		p.Stats.LayoutTime = time.Since(start)
		r.Logger.Info("computed layout", "engine", opts.Engine, "cached", hit, "duration", p.Stats.LayoutTime)
	}

	work.AssignColors(opts.Theme, rand.New(rand.NewPCG(opts.Seed, opts.Seed)))

	data, err := graph.Marshal(work)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	p.Hash = cache.Hash(data)
	return p, nil
}

// layout positions g, reusing cached positions for identical input.
func (r *Runner) layout(ctx context.Context, g *graph.Graph, engine string) (bool, error) {
	data, err := graph.Marshal(g)
	if err != nil {
		return false, err
	}
	key := cache.LayoutKey(cache.Hash(data), engine)

	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var pos map[string][2]float64
		if json.Unmarshal(cached, &pos) == nil && applyPositions(g, pos) {
			return true, nil
		}
		r.Logger.Debug("discarding stale layout", "key", key)
	}

	if err := layout.Apply(ctx, g, layout.Options{Engine: engine}); err != nil {
		return false, err
	}

	pos := make(map[string][2]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		pos[n.ID] = [2]float64{n.X, n.Y}
	}
	if data, err := json.Marshal(pos); err == nil {
		if err := r.Cache.Set(ctx, key, data, 0); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		}
	}
	return false, nil
}

func applyPositions(g *graph.Graph, pos map[string][2]float64) bool {
	for _, n := range g.Nodes {
		if _, ok := pos[n.ID]; !ok {
			return false
		}
	}
	for i := range g.Nodes {
		p := pos[g.Nodes[i].ID]
		g.Nodes[i].X, g.Nodes[i].Y = p[0], p[1]
	}
	return true
}

// Scene builds the scene that frames of p are drawn on.
func (r *Runner) Scene(p *Prepared, opts Options) *scene.Scene {
	opts.SetDefaults()
	sopts := []scene.Option{
		scene.WithTheme(opts.Theme),
		scene.WithSize(opts.Width, opts.Height),
	}
	if opts.LabelThreshold > 0 {
		sopts = append(sopts, scene.WithLabelThreshold(opts.LabelThreshold))
	}
	if opts.Settings.LabelSize > 0 {
		sopts = append(sopts, scene.WithSettings(opts.Settings))
	}
	return scene.New(p.Graph, sopts...)
}

// Frame draws one frame of p. The camera snaps to the node the state
// targets. The second return reports a cache hit.
func (r *Runner) Frame(ctx context.Context, p *Prepared, req FrameRequest, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if req.Hovered != "" {
		if _, ok := p.Graph.Node(req.Hovered); !ok {
			return nil, false, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", req.Hovered)
		}
	}

	sc := r.Scene(p, opts)
	inst := req.State.Instruction()
	sc.Camera.Follow(inst.Target, false)
	state := scene.FrameState{Hovered: req.Hovered, Highlighted: inst.Target}

	scale := opts.Scale
	if req.Format != render.PNG {
		scale = 0
	}
	key := cache.FrameKey(cache.FrameKeyOpts{
		GraphVersion: p.Hash,
		Format:       string(req.Format),
		Theme:        string(opts.Theme),
		Width:        opts.Width,
		Height:       opts.Height,
		Scale:        scale,
		Hovered:      state.Hovered,
		Highlighted:  state.Highlighted,
		CameraX:      sc.Camera.X,
		CameraY:      sc.Camera.Y,
		CameraRatio:  sc.Camera.Ratio,
		Labels:       opts.labels(),
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		r.Logger.Debug("frame cache hit", "format", req.Format, "target", inst.Target)
		return data, true, nil
	}

	start := time.Now()
	data, err := render.Render(ctx, sc, state, req.Format, render.WithScale(scale))
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered frame", "format", req.Format, "bytes", len(data), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		r.Logger.Warn("cache frame", "error", err)
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
