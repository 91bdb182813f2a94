package draw

// Surface is the subset of a canvas 2D context the draw hooks use.
//
// Colors and fonts are CSS strings ("#FFF", "bold 14px Go"). Arc sweeps
// clockwise from start to end, connecting the current point to the arc start
// with a straight line as canvas does.
type Surface interface {
	SetFillStyle(color string)
	SetStrokeStyle(color string)
	SetLineWidth(w float64)
	SetFont(font string)
	SetShadow(sh Shadow)

	// MeasureText returns the advance width of text in the current font.
	MeasureText(text string) float64
	FillText(text string, x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	Arc(x, y, radius, start, end float64)
	ClosePath()
	Fill()
	Stroke()
}

// Shadow mirrors the canvas shadowOffsetX/Y, shadowBlur and shadowColor
// properties.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   string
}

// NoShadow disables shadow rendering.
var NoShadow = Shadow{}

// IsZero reports whether the shadow draws nothing.
func (s Shadow) IsZero() bool {
	return s.Blur == 0 && s.OffsetX == 0 && s.OffsetY == 0
}

// Func is the signature of a node draw hook.
type Func func(s Surface, n NodeDisplay, settings Settings)
