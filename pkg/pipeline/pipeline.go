// Package pipeline provides the load → layout → render pipeline for relgraph.
//
// The CLI and the server both go through a [Runner], so a graph file is
// prepared the same way everywhere and rendered frames share one cache.
//
// # Stages
//
//  1. Load: read and validate a graph file
//  2. Layout: position nodes with Graphviz when the file has no coordinates
//  3. Frame: draw the graph for an interaction state in PNG, SVG or PDF
//
// # Usage
//
//	runner := pipeline.NewRunner(c, logger)
//	p, err := runner.Load(ctx, "graph.json", pipeline.Options{Engine: "neato"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png, _, err := runner.Frame(ctx, p, pipeline.FrameRequest{Format: render.PNG}, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/interaction"
	"github.com/matzehuels/relgraph/pkg/layout"
	"github.com/matzehuels/relgraph/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultWidth  = 960.0
	DefaultHeight = 640.0
	DefaultScale  = 2.0
	DefaultTTL    = time.Hour
)

// Options configures preparation and rendering. Zero values take defaults.
type Options struct {
	// Layout
	Engine string
	Seed   uint64 // seeds colors for nodes the file leaves uncolored

	// Style
	Theme          colors.Mode
	Settings       draw.Settings // zero LabelSize keeps the scene defaults
	LabelThreshold float64

	// Frame
	Width  float64
	Height float64
	Scale  float64 // PNG only

	// Cache
	TTL time.Duration
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = layout.DefaultEngine
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	known := false
	for _, e := range layout.Engines() {
		if e == o.Engine {
			known = true
			break
		}
	}
	if !known {
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout engine %q", o.Engine)
	}
	if o.Width > 1e5 || o.Height > 1e5 {
		return errors.New(errors.ErrCodeInvalidInput, "frame %gx%g is too large", o.Width, o.Height)
	}
	if o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g is too large (max 8)", o.Scale)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// labels identifies the label style for frame cache keys.
func (o *Options) labels() string {
	s := o.Settings
	return fmt.Sprintf("%g|%s|%s|%s|%g", s.LabelSize, s.LabelFont, s.LabelWeight, s.LabelColor.Color, o.LabelThreshold)
}

// Prepared is a graph ready to render.
type Prepared struct {
	Graph *graph.Graph
	// Hash identifies the prepared graph content, positions and colors
	// included. Frame cache keys use it as the graph version.
	Hash  string
	Stats Stats
	// LayoutHit reports whether positions came from the cache.
	LayoutHit bool
}

// Stats holds timing and size information.
type Stats struct {
	LoadTime   time.Duration
	LayoutTime time.Duration
	NodeCount  int
	EdgeCount  int
}

// FrameRequest is one frame to draw.
type FrameRequest struct {
	// State decides the highlighted node and where the camera points.
	State interaction.State
	// Hovered is the node under the pointer, if any.
	Hovered string
	Format  render.Format
}
