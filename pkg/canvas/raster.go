package canvas

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/fonts"
)

// Raster is a draw.Surface that paints into an RGBA image.
type Raster struct {
	dc *gg.Context
	w  int
	h  int

	fill      color.Color
	stroke    color.Color
	lineWidth float64
	font      fonts.Spec
	face      font.Face
	shadow    draw.Shadow
	shadowCol color.Color

	path path
	err  error
}

var _ draw.Surface = (*Raster)(nil)

// NewRaster returns a transparent w×h surface with canvas defaults: black
// fill and stroke, 1px lines, "10px" font, no shadow.
func NewRaster(w, h int) *Raster {
	r := &Raster{
		dc:        gg.NewContext(w, h),
		w:         w,
		h:         h,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		shadowCol: color.Transparent,
	}
	r.SetFont("normal 10px " + fonts.FontFamily)
	return r
}

// Image returns the painted image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Err returns the first style error (unparseable color or font). Drawing
// continues with the previous value when one occurs.
func (r *Raster) Err() error { return r.err }

func (r *Raster) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Raster) parseColor(s string) (color.Color, bool) {
	c, err := colors.Parse(s)
	if err != nil {
		r.setErr(err)
		return nil, false
	}
	return c, true
}

func (r *Raster) SetFillStyle(s string) {
	if c, ok := r.parseColor(s); ok {
		r.fill = c
	}
}

func (r *Raster) SetStrokeStyle(s string) {
	if c, ok := r.parseColor(s); ok {
		r.stroke = c
	}
}

func (r *Raster) SetLineWidth(w float64) {
	if w > 0 {
		r.lineWidth = w
	}
}

func (r *Raster) SetFont(css string) {
	spec, err := fonts.ParseSpec(css)
	if err != nil {
		r.setErr(err)
		return
	}
	face, err := fonts.Face(spec)
	if err != nil {
		r.setErr(err)
		return
	}
	r.font, r.face = spec, face
}

func (r *Raster) SetShadow(sh draw.Shadow) {
	r.shadow = sh
	r.shadowCol = color.Transparent
	if sh.IsZero() || sh.Color == "" {
		return
	}
	if c, ok := r.parseColor(sh.Color); ok {
		r.shadowCol = c
	}
}

func (r *Raster) MeasureText(text string) float64 {
	w, err := fonts.Measure(r.font, text)
	if err != nil {
		r.setErr(err)
		return 0
	}
	return w
}

func (r *Raster) FillText(text string, x, y float64) {
	r.withShadow(func(dc *gg.Context) {
		dc.SetFontFace(r.face)
		dc.DrawString(text, x, y)
	})
	r.dc.SetFontFace(r.face)
	r.dc.SetColor(r.fill)
	r.dc.DrawString(text, x, y)
}

func (r *Raster) BeginPath()                            { r.path.reset() }
func (r *Raster) MoveTo(x, y float64)                   { r.path.moveTo(x, y) }
func (r *Raster) LineTo(x, y float64)                   { r.path.lineTo(x, y) }
func (r *Raster) QuadraticCurveTo(cx, cy, x, y float64) { r.path.quadTo(cx, cy, x, y) }
func (r *Raster) Arc(x, y, radius, start, end float64)  { r.path.arc(x, y, radius, start, end) }
func (r *Raster) ClosePath()                            { r.path.closePath() }

func (r *Raster) Fill() {
	r.withShadow(func(dc *gg.Context) {
		r.replay(dc)
		dc.Fill()
	})
	r.dc.SetColor(r.fill)
	r.replay(r.dc)
	r.dc.Fill()
}

func (r *Raster) Stroke() {
	r.withShadow(func(dc *gg.Context) {
		dc.SetLineWidth(r.lineWidth)
		r.replay(dc)
		dc.Stroke()
	})
	r.dc.SetColor(r.stroke)
	r.dc.SetLineWidth(r.lineWidth)
	r.replay(r.dc)
	r.dc.Stroke()
}

// withShadow paints the shadow of whatever paint draws: paint runs on a
// transparent layer in the shadow color, the layer is blurred and
// composited at the shadow offset.
func (r *Raster) withShadow(paint func(dc *gg.Context)) {
	if r.shadow.IsZero() {
		return
	}
	if _, _, _, a := r.shadowCol.RGBA(); a == 0 {
		return
	}
	layer := gg.NewContext(r.w, r.h)
	layer.SetColor(r.shadowCol)
	paint(layer)

	var img image.Image = layer.Image()
	if r.shadow.Blur > 0 {
		img = imaging.Blur(img, r.shadow.Blur/2)
	}
	r.dc.DrawImage(img, int(math.Round(r.shadow.OffsetX)), int(math.Round(r.shadow.OffsetY)))
}

func (r *Raster) replay(dc *gg.Context) {
	dc.ClearPath()
	for _, s := range r.path.segs {
		switch s.kind {
		case segMove:
			dc.MoveTo(s.x, s.y)
		case segLine:
			dc.LineTo(s.x, s.y)
		case segQuad:
			dc.QuadraticTo(s.cx, s.cy, s.x, s.y)
		case segArc:
			dc.DrawArc(s.cx, s.cy, s.r, s.start, s.end)
		case segClose:
			dc.ClosePath()
		}
	}
}
