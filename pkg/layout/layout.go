package layout

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/observability"
)

// Layout engines.
const (
	EngineNeato = "neato"
	EngineFDP   = "fdp"
	EngineSFDP  = "sfdp"
	EngineCirco = "circo"
)

// DefaultEngine is used when Options.Engine is empty.
const DefaultEngine = EngineNeato

var engines = map[string]graphviz.Layout{
	EngineNeato: graphviz.NEATO,
	EngineFDP:   graphviz.FDP,
	EngineSFDP:  graphviz.SFDP,
	EngineCirco: graphviz.CIRCO,
}

// formatPlain is Graphviz's line-oriented position output.
const formatPlain graphviz.Format = "plain"

// Options configures Apply.
type Options struct {
	// Engine is one of the Engine constants. Defaults to neato.
	Engine string
}

// Engines returns the supported engine names.
func Engines() []string {
	return []string{EngineNeato, EngineFDP, EngineSFDP, EngineCirco}
}

// Apply lays out g and writes the resulting positions into its nodes.
func Apply(ctx context.Context, g *graph.Graph, opts Options) (err error) {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	algo, ok := engines[engine]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout engine %q", engine)
	}
	if len(g.Nodes) == 0 {
		return nil
	}

	hooks := observability.Render()
	hooks.OnLayoutStart(ctx, engine, len(g.Nodes))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, engine, time.Since(start), err) }()

	plain, err := run(ctx, ToDOT(g), algo)
	if err != nil {
		return err
	}
	pos, err := parsePlain(plain)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read %s layout", engine)
	}
	for i := range g.Nodes {
		p, ok := pos[g.Nodes[i].ID]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "%s layout lost node %q", engine, g.Nodes[i].ID)
		}
		g.Nodes[i].X, g.Nodes[i].Y = p.X, p.Y
	}
	return nil
}

func run(ctx context.Context, dot string, algo graphviz.Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(algo)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, formatPlain, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
