package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/cache"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/render"
)

// mapCache is an in-memory cache that counts traffic.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, log.New(io.Discard))
}

func positioned() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "ada", Label: "Ada Lovelace", X: 0, Y: 0},
			{ID: "babbage", Label: "Charles Babbage", X: 100, Y: 40},
			{ID: "menabrea", Label: "Menabrea", X: 60, Y: 120, Color: "#336699"},
		},
		Edges: []graph.Edge{
			{From: "ada", To: "babbage", Label: "corresponds"},
			{From: "menabrea", To: "babbage", Type: graph.EdgeCurved},
		},
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Engine != "neato" {
		t.Errorf("Engine = %v, want neato", o.Engine)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want %vx%v", o.Width, o.Height, DefaultWidth, DefaultHeight)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}
	if o.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", o.TTL, DefaultTTL)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown engine", Options{Engine: "dot"}},
		{"huge frame", Options{Width: 1e6}},
		{"huge scale", Options{Scale: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	r := quietRunner(nil)
	g := positioned()

	p, err := r.Prepare(context.Background(), g, Options{Seed: 7})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.Stats.NodeCount != 3 || p.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v, want 3 nodes 2 edges", p.Stats)
	}
	if p.LayoutHit || p.Stats.LayoutTime != 0 {
		t.Error("positioned graph should skip layout")
	}
	for _, n := range p.Graph.Nodes {
		if n.Color == "" {
			t.Errorf("node %q has no color", n.ID)
		}
	}
	if n, _ := p.Graph.Node("menabrea"); n.Color != "#336699" {
		t.Errorf("file color = %q, want #336699", n.Color)
	}
	if g.Nodes[0].Color != "" {
		t.Error("Prepare modified the input graph")
	}

	again, _ := r.Prepare(context.Background(), g, Options{Seed: 7})
	if again.Hash != p.Hash {
		t.Error("same seed should give the same hash")
	}
	other, _ := r.Prepare(context.Background(), g, Options{Seed: 8})
	if other.Hash == p.Hash {
		t.Error("different seed should recolor and change the hash")
	}
}

func TestPrepareInvalidGraph(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}},
		Edges: []graph.Edge{{From: "a", To: "missing"}},
	}
	_, err := quietRunner(nil).Prepare(context.Background(), g, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidGraph)
	}
}

func TestPrepareCachedLayout(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
	data, err := graph.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	c := newMapCache()
	pos, _ := json.Marshal(map[string][2]float64{"a": {1, 2}, "b": {30, 40}})
	c.data[cache.LayoutKey(cache.Hash(data), "neato")] = pos

	p, err := quietRunner(c).Prepare(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !p.LayoutHit {
		t.Error("LayoutHit = false, want true")
	}
	b, _ := p.Graph.Node("b")
	if b.X != 30 || b.Y != 40 {
		t.Errorf("b = (%v, %v), want (30, 40)", b.X, b.Y)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteFile(positioned(), path); err != nil {
		t.Fatal(err)
	}
	p, err := quietRunner(nil).Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Graph.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(p.Graph.Nodes))
	}
	if p.Hash == "" {
		t.Error("Hash is empty")
	}

	_, err = quietRunner(nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestFrameCache(t *testing.T) {
	c := newMapCache()
	r := quietRunner(c)
	ctx := context.Background()
	p, err := r.Prepare(ctx, positioned(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	req := FrameRequest{Format: render.SVG}

	first, hit, err := r.Frame(ctx, p, req, Options{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if hit {
		t.Error("first frame should miss")
	}
	second, hit, err := r.Frame(ctx, p, req, Options{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !hit {
		t.Error("second frame should hit")
	}
	if !bytes.Equal(first, second) {
		t.Error("cached frame differs")
	}

	req.State = interaction.State{}.Select("ada")
	selected, hit, err := r.Frame(ctx, p, req, Options{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if hit {
		t.Error("selection should change the cache key")
	}
	if bytes.Equal(first, selected) {
		t.Error("selected frame should differ")
	}
	if !bytes.Contains(selected, []byte("Ada Lovelace")) {
		t.Error("selected frame should draw the hover label")
	}
}

func TestFrameUnknownHover(t *testing.T) {
	r := quietRunner(nil)
	p, err := r.Prepare(context.Background(), positioned(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = r.Frame(context.Background(), p, FrameRequest{Hovered: "ghost", Format: render.SVG}, Options{})
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeNodeNotFound)
	}
}

func TestFramePNG(t *testing.T) {
	r := quietRunner(nil)
	p, err := r.Prepare(context.Background(), positioned(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, _, err := r.Frame(context.Background(), p, FrameRequest{Format: render.PNG}, Options{Width: 120, Height: 80, Scale: 1})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
