package scene

import (
	"math"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/graph"
)

const (
	defaultWidth     = 800
	defaultHeight    = 600
	defaultThreshold = 6
	margin           = 40
	defaultNodeColor = "#999999"
	arrowLength      = 6
	edgeLabelSize    = 10
	curvature        = 0.25
)

// Scene draws one graph.
type Scene struct {
	Graph          *graph.Graph
	Settings       draw.Settings
	Theme          colors.Mode
	Width, Height  float64
	PixelRatio     float64
	LabelThreshold float64
	DrawLabel      draw.Func
	DrawHover      draw.Func
	Camera         *Camera

	customLabelColor bool
}

// FrameState is the per-frame interaction input.
type FrameState struct {
	// Hovered is the node under the pointer.
	Hovered string
	// Highlighted is the camera target, drawn with the hover treatment.
	Highlighted string
}

// Option configures a Scene.
type Option func(*Scene)

// WithTheme sets the color theme.
func WithTheme(m colors.Mode) Option { return func(s *Scene) { s.Theme = m } }

// WithSize sets the viewport in CSS pixels.
func WithSize(w, h float64) Option { return func(s *Scene) { s.Width, s.Height = w, h } }

// WithPixelRatio scales output pixels per CSS pixel.
func WithPixelRatio(r float64) Option { return func(s *Scene) { s.PixelRatio = r } }

// WithLabelThreshold sets the minimum on-screen node size for labels.
func WithLabelThreshold(px float64) Option { return func(s *Scene) { s.LabelThreshold = px } }

// WithSettings replaces the label settings. A non-empty label color
// overrides the theme color.
func WithSettings(st draw.Settings) Option {
	return func(s *Scene) {
		s.Settings = st
		s.customLabelColor = st.LabelColor.Color != ""
	}
}

// WithDrawLabel replaces the label hook.
func WithDrawLabel(f draw.Func) Option { return func(s *Scene) { s.DrawLabel = f } }

// WithDrawHover replaces the hover hook.
func WithDrawHover(f draw.Func) Option { return func(s *Scene) { s.DrawHover = f } }

// New returns a scene for g with the camera centered on the graph.
func New(g *graph.Graph, opts ...Option) *Scene {
	s := &Scene{
		Graph:          g,
		Settings:       draw.DefaultSettings(),
		Theme:          colors.Light,
		Width:          defaultWidth,
		Height:         defaultHeight,
		PixelRatio:     1,
		LabelThreshold: defaultThreshold,
		DrawLabel:      draw.DrawLabel,
		DrawHover:      draw.DrawHover,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.customLabelColor {
		s.Settings.LabelColor = draw.ColorSetting{Color: colors.LabelColor(s.Theme)}
	}
	b := bounds(g)
	s.Camera = NewCamera(b.cx(), b.cy(), s.locate)
	return s
}

// SetGraph swaps the graph, keeping camera and settings.
func (s *Scene) SetGraph(g *graph.Graph) { s.Graph = g }

// PixelSize returns the output size in device pixels.
func (s *Scene) PixelSize() (int, int) {
	return int(math.Ceil(s.Width * s.PixelRatio)), int(math.Ceil(s.Height * s.PixelRatio))
}

func (s *Scene) locate(id string) (float64, float64, bool) {
	n, ok := s.Graph.Node(id)
	if !ok {
		return 0, 0, false
	}
	return n.X, n.Y, true
}

// viewport maps graph coordinates to device pixels for one frame.
type viewport struct {
	w, h     float64
	scale    float64
	camX     float64
	camY     float64
	sizeMul  float64
	pixelMul float64
}

func (s *Scene) viewport() viewport {
	w, h := s.PixelSize()
	b := bounds(s.Graph)
	pr := s.PixelRatio
	fit := math.Min(
		(float64(w)-2*margin*pr)/math.Max(b.w(), 1),
		(float64(h)-2*margin*pr)/math.Max(b.h(), 1),
	)
	if fit <= 0 {
		fit = pr
	}
	ratio := s.Camera.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	return viewport{
		w:        float64(w),
		h:        float64(h),
		scale:    fit / ratio,
		camX:     s.Camera.X,
		camY:     s.Camera.Y,
		sizeMul:  pr / math.Sqrt(ratio),
		pixelMul: pr,
	}
}

func (v viewport) project(x, y float64) (float64, float64) {
	return v.w/2 + (x-v.camX)*v.scale, v.h/2 + (y-v.camY)*v.scale
}

// Display returns n's attributes in device pixels.
func (s *Scene) Display(n *graph.Node) draw.NodeDisplay {
	return s.display(s.viewport(), n)
}

func (s *Scene) display(v viewport, n *graph.Node) draw.NodeDisplay {
	d := n.Display()
	d.X, d.Y = v.project(n.X, n.Y)
	d.Size = n.NodeSize() * v.sizeMul
	if d.Color == "" {
		d.Color = defaultNodeColor
	}
	if d.LabelSize > 0 {
		d.LabelSize *= v.pixelMul
	}
	return d
}

func (s *Scene) settings(v viewport) draw.Settings {
	st := s.Settings
	st.LabelSize *= v.pixelMul
	return st
}

func (v viewport) visible(d draw.NodeDisplay) bool {
	return d.X+d.Size >= 0 && d.X-d.Size <= v.w && d.Y+d.Size >= 0 && d.Y-d.Size <= v.h
}

// Frame draws one frame: background, edges, node discs, labels for nodes at
// least LabelThreshold pixels large, then the hover layer for the
// highlighted and hovered nodes.
func (s *Scene) Frame(surface draw.Surface, f FrameState) {
	v := s.viewport()
	st := s.settings(v)

	surface.SetShadow(draw.NoShadow)
	surface.SetFillStyle(colors.Background(s.Theme))
	fillRect(surface, 0, 0, v.w, v.h)

	displays := make([]draw.NodeDisplay, len(s.Graph.Nodes))
	for i := range s.Graph.Nodes {
		displays[i] = s.display(v, &s.Graph.Nodes[i])
	}

	s.drawEdges(surface, v, displays)

	for _, d := range displays {
		if v.visible(d) {
			drawDisc(surface, d)
		}
	}

	threshold := s.LabelThreshold * v.pixelMul
	for _, d := range displays {
		if v.visible(d) && d.Size >= threshold {
			s.DrawLabel(surface, d, st)
		}
	}

	for _, id := range hoverLayer(f) {
		n, ok := s.Graph.Node(id)
		if !ok {
			continue
		}
		d := s.display(v, n)
		s.DrawHover(surface, d, st)
		drawDisc(surface, d)
	}
}

// hoverLayer lists the nodes drawn with the hover treatment, highlighted
// first so the pointer's node ends up on top.
func hoverLayer(f FrameState) []string {
	var ids []string
	if f.Highlighted != "" {
		ids = append(ids, f.Highlighted)
	}
	if f.Hovered != "" && f.Hovered != f.Highlighted {
		ids = append(ids, f.Hovered)
	}
	return ids
}

func (s *Scene) drawEdges(surface draw.Surface, v viewport, displays []draw.NodeDisplay) {
	if len(s.Graph.Edges) == 0 {
		return
	}
	stroke := colors.EdgeColor(s.Theme)
	surface.SetStrokeStyle(stroke)
	surface.SetFillStyle(stroke)
	surface.SetLineWidth(v.pixelMul)

	at := make(map[string]int, len(s.Graph.Nodes))
	for i, n := range s.Graph.Nodes {
		at[n.ID] = i
	}

	type edgeLabel struct {
		text string
		x, y float64
	}
	var labels []edgeLabel

	for _, e := range s.Graph.Edges {
		i, ok1 := at[e.From]
		j, ok2 := at[e.To]
		if !ok1 || !ok2 || i == j {
			continue
		}
		src, dst := displays[i], displays[j]
		dx, dy := dst.X-src.X, dst.Y-src.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}

		var mx, my float64
		if e.IsCurved() {
			cx := (src.X+dst.X)/2 - dy*curvature
			cy := (src.Y+dst.Y)/2 + dx*curvature
			surface.BeginPath()
			surface.MoveTo(src.X, src.Y)
			surface.QuadraticCurveTo(cx, cy, dst.X, dst.Y)
			surface.Stroke()
			mx = 0.25*src.X + 0.5*cx + 0.25*dst.X
			my = 0.25*src.Y + 0.5*cy + 0.25*dst.Y
		} else {
			ux, uy := dx/length, dy/length
			tipX, tipY := dst.X-ux*dst.Size, dst.Y-uy*dst.Size
			surface.BeginPath()
			surface.MoveTo(src.X, src.Y)
			surface.LineTo(tipX, tipY)
			surface.Stroke()
			drawArrow(surface, tipX, tipY, ux, uy, arrowLength*v.pixelMul)
			mx, my = (src.X+dst.X)/2, (src.Y+dst.Y)/2
		}
		if e.Label != "" {
			labels = append(labels, edgeLabel{text: e.Label, x: mx, y: my})
		}
	}

	if len(labels) == 0 {
		return
	}
	size := edgeLabelSize * v.pixelMul
	surface.SetFont(draw.Font(s.Settings, size))
	surface.SetFillStyle(stroke)
	for _, l := range labels {
		w := surface.MeasureText(l.text)
		surface.FillText(l.text, l.x-w/2, l.y+size/3)
	}
}

func drawArrow(s draw.Surface, x, y, ux, uy, length float64) {
	half := length / 2
	bx, by := x-ux*length, y-uy*length
	s.BeginPath()
	s.MoveTo(x, y)
	s.LineTo(bx-uy*half, by+ux*half)
	s.LineTo(bx+uy*half, by-ux*half)
	s.ClosePath()
	s.Fill()
}

func drawDisc(s draw.Surface, d draw.NodeDisplay) {
	s.SetFillStyle(d.Color)
	s.BeginPath()
	s.Arc(d.X, d.Y, d.Size, 0, 2*math.Pi)
	s.ClosePath()
	s.Fill()
}

func fillRect(s draw.Surface, x, y, w, h float64) {
	s.BeginPath()
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
	s.Fill()
}

type box struct{ minX, minY, maxX, maxY float64 }

func (b box) w() float64  { return b.maxX - b.minX }
func (b box) h() float64  { return b.maxY - b.minY }
func (b box) cx() float64 { return (b.minX + b.maxX) / 2 }
func (b box) cy() float64 { return (b.minY + b.maxY) / 2 }

func bounds(g *graph.Graph) box {
	if len(g.Nodes) == 0 {
		return box{}
	}
	b := box{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, n := range g.Nodes {
		b.minX = math.Min(b.minX, n.X)
		b.minY = math.Min(b.minY, n.Y)
		b.maxX = math.Max(b.maxX, n.X)
		b.maxY = math.Max(b.maxY, n.Y)
	}
	return b
}
