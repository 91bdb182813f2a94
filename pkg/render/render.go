package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/relgraph/pkg/canvas"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/observability"
	"github.com/matzehuels/relgraph/pkg/scene"
)

// Format is an output format.
type Format string

// Output formats.
const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{PNG, SVG, PDF}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case PNG, SVG, PDF:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be png, svg or pdf)", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case SVG:
		return "image/svg+xml"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	scale float64
}

// WithScale overrides the scene's pixel ratio for raster output
// (2 for 2x resolution). Vector formats ignore it.
func WithScale(s float64) Option {
	return func(r *renderer) { r.scale = s }
}

// Render draws one frame of sc in the given format.
func Render(ctx context.Context, sc *scene.Scene, state scene.FrameState, format Format, opts ...Option) (out []byte, err error) {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(format), len(sc.Graph.Nodes))
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, string(format), len(out), time.Since(start), err) }()

	switch format {
	case PNG:
		return renderPNG(sc, state, r.scale)
	case SVG:
		return renderSVG(sc, state)
	case PDF:
		svg, err := renderSVG(sc, state)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

func renderPNG(sc *scene.Scene, state scene.FrameState, scale float64) ([]byte, error) {
	if scale > 0 && scale != sc.PixelRatio {
		scaled := *sc
		scaled.PixelRatio = scale
		sc = &scaled
	}
	w, h := sc.PixelSize()
	surface := canvas.NewRaster(w, h)
	sc.Frame(surface, state)
	if err := surface.Err(); err != nil {
		return nil, fmt.Errorf("draw png: %w", err)
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSVG draws in CSS pixels; the document scales without loss.
func renderSVG(sc *scene.Scene, state scene.FrameState) ([]byte, error) {
	if sc.PixelRatio != 1 {
		flat := *sc
		flat.PixelRatio = 1
		sc = &flat
	}
	surface := canvas.NewSVG(sc.Width, sc.Height)
	sc.Frame(surface, state)
	if err := surface.Err(); err != nil {
		return nil, fmt.Errorf("draw svg: %w", err)
	}
	return surface.Bytes(), nil
}
