// Package pkg holds the relgraph libraries.
//
// # Overview
//
// relgraph draws node-link relationship graphs and drives an interactive
// viewer for them. Hovering a node or picking it from search moves a camera
// to it and reveals its label. The libraries split into:
//
//  1. [graph] - graph model, JSON I/O and label search
//  2. [interaction] - selection/focus state and the camera coordinator
//  3. [layout] - Graphviz force layout for graphs without positions
//  4. [scene], [draw], [canvas], [render] - camera, hover labels and output
//  5. [cache], [session], [config] - storage and configuration
//  6. [pipeline] - orchestration (load → layout → color → frame)
//
// # Architecture
//
//	graph JSON
//	     ↓
//	[graph] (validate, search)
//	     ↓
//	[layout] (positions, when missing)
//	     ↓
//	[scene] ← [interaction] (camera target, hovered node)
//	     ↓
//	[render] (PNG, SVG, PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/relgraph/pkg/interaction"
//	    "github.com/matzehuels/relgraph/pkg/pipeline"
//	    "github.com/matzehuels/relgraph/pkg/render"
//	)
//
//	runner := pipeline.NewRunner(nil, logger)
//	p, err := runner.Load(ctx, "graph.json", pipeline.Options{})
//	svg, _, err := runner.Frame(ctx, p, pipeline.FrameRequest{
//	    State:  interaction.State{Selected: "ada"},
//	    Format: render.SVG,
//	}, pipeline.Options{})
//
// Commands live in cmd/relgraph; the viewer server in internal/server.
package pkg
