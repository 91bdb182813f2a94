package draw

import "math"

const (
	// Padding is the gap between a node's disc and its hover outline.
	Padding = 2

	labelOffset  = 3
	boxTextExtra = 5
	hoverFill    = "#FFF"
)

// HoverShadow is the drop shadow drawn under hover shapes.
var HoverShadow = Shadow{Blur: 8, Color: "#000"}

// DrawLabel draws n's label to the right of the node. Nodes without a label
// draw nothing.
func DrawLabel(s Surface, n NodeDisplay, settings Settings) {
	if n.Label == "" {
		return
	}
	size := labelSize(n, settings)

	s.SetShadow(NoShadow)
	s.SetFillStyle(labelColor(n, settings))
	s.SetFont(Font(settings, size))
	s.FillText(n.Label, n.X+n.Size+labelOffset, n.Y+size/3)
}

// DrawHover draws the hovered state of n: a shadowed capsule that contains
// the node and its label, or a shadowed halo when there is nothing to show,
// then the label on top.
func DrawHover(s Surface, n NodeDisplay, settings Settings) {
	size := labelSize(n, settings)
	if n.Label == "" {
		n.Label = n.HoverLabel
	}

	s.SetFont(Font(settings, size))
	s.SetFillStyle(hoverFill)
	s.SetShadow(HoverShadow)

	if n.Label != "" {
		g := ComputeHoverGeometry(s.MeasureText(n.Label), size, n.Size)
		halfH := g.BoxHeight / 2
		right := n.X + g.Radius + g.BoxWidth

		s.BeginPath()
		s.MoveTo(n.X+g.XDelta, n.Y+halfH)
		s.LineTo(right, n.Y+halfH)
		s.LineTo(right, n.Y-halfH)
		s.LineTo(n.X+g.XDelta, n.Y-halfH)
		s.Arc(n.X, n.Y, g.Radius, g.Angle, -g.Angle)
		s.ClosePath()
		s.Fill()
	} else {
		s.BeginPath()
		s.Arc(n.X, n.Y, n.Size+Padding, 0, 2*math.Pi)
		s.ClosePath()
		s.Fill()
	}

	s.SetShadow(NoShadow)
	DrawLabel(s, n, settings)
}

// HoverGeometry holds the measurements of a hover capsule.
type HoverGeometry struct {
	BoxWidth  float64
	BoxHeight float64
	Radius    float64
	Angle     float64 // half-angle of the chord where the box meets the circle
	XDelta    float64 // horizontal offset of that chord from the node center

	// Clamped is set when the box is taller than the circle. Angle is then
	// π/2 and XDelta is 0.
	Clamped bool
}

// ComputeHoverGeometry lays out a hover capsule for a label of textWidth
// pixels drawn at fontSize next to a node of nodeSize.
func ComputeHoverGeometry(textWidth, fontSize, nodeSize float64) HoverGeometry {
	g := HoverGeometry{
		BoxWidth:  math.Round(textWidth + boxTextExtra),
		BoxHeight: math.Round(fontSize + 2*Padding),
		Radius:    math.Max(nodeSize, fontSize/2) + Padding,
	}
	halfH := g.BoxHeight / 2

	ratio := halfH / g.Radius
	if ratio > 1 {
		// The box no longer meets the circle: join it at the node center and
		// keep the left half of the disc.
		g.Angle = math.Pi / 2
		g.Clamped = true
		return g
	}
	g.Angle = math.Asin(ratio)
	g.XDelta = math.Sqrt(math.Abs(g.Radius*g.Radius - halfH*halfH))
	return g
}
