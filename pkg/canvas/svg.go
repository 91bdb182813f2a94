package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/relgraph/pkg/colors"
	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/fonts"
)

// SVG is a draw.Surface that records drawing as SVG elements.
type SVG struct {
	w, h float64

	body    bytes.Buffer
	defs    bytes.Buffer
	filters map[draw.Shadow]string

	fill      string
	stroke    string
	lineWidth float64
	font      fonts.Spec
	shadow    draw.Shadow

	path path
	err  error
}

var _ draw.Surface = (*SVG)(nil)

// NewSVG returns an empty w×h document with canvas defaults.
func NewSVG(w, h float64) *SVG {
	s := &SVG{
		w:         w,
		h:         h,
		filters:   make(map[draw.Shadow]string),
		fill:      "#000",
		stroke:    "#000",
		lineWidth: 1,
	}
	s.font, _ = fonts.ParseSpec("normal 10px " + fonts.FontFamily)
	return s
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.w), num(s.h), num(s.w), num(s.h))
	if s.defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(s.defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Err returns the first style error. See [Raster.Err].
func (s *SVG) Err() error { return s.err }

func (s *SVG) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *SVG) validColor(c string) bool {
	if _, err := colors.Parse(c); err != nil {
		s.setErr(err)
		return false
	}
	return true
}

func (s *SVG) SetFillStyle(c string) {
	if s.validColor(c) {
		s.fill = c
	}
}

func (s *SVG) SetStrokeStyle(c string) {
	if s.validColor(c) {
		s.stroke = c
	}
}

func (s *SVG) SetLineWidth(w float64) {
	if w > 0 {
		s.lineWidth = w
	}
}

func (s *SVG) SetFont(css string) {
	spec, err := fonts.ParseSpec(css)
	if err != nil {
		s.setErr(err)
		return
	}
	s.font = spec
}

func (s *SVG) SetShadow(sh draw.Shadow) {
	if !sh.IsZero() && !s.validColor(sh.Color) {
		sh = draw.NoShadow
	}
	s.shadow = sh
}

func (s *SVG) MeasureText(text string) float64 {
	w, err := fonts.Measure(s.font, text)
	if err != nil {
		s.setErr(err)
		return 0
	}
	return w
}

func (s *SVG) FillText(text string, x, y float64) {
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%s" fill="%s"%s>`,
		num(x), num(y), fonts.FallbackFontFamily, num(s.font.Size), s.font.Weight, escapeAttr(s.fill), s.filterAttr())
	xml.EscapeText(&s.body, []byte(text))
	s.body.WriteString("</text>\n")
}

func (s *SVG) BeginPath()                            { s.path.reset() }
func (s *SVG) MoveTo(x, y float64)                   { s.path.moveTo(x, y) }
func (s *SVG) LineTo(x, y float64)                   { s.path.lineTo(x, y) }
func (s *SVG) QuadraticCurveTo(cx, cy, x, y float64) { s.path.quadTo(cx, cy, x, y) }
func (s *SVG) Arc(x, y, radius, start, end float64)  { s.path.arc(x, y, radius, start, end) }
func (s *SVG) ClosePath()                            { s.path.closePath() }

func (s *SVG) Fill() {
	d := s.pathData()
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"%s/>`+"\n", d, escapeAttr(s.fill), s.filterAttr())
}

func (s *SVG) Stroke() {
	d := s.pathData()
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		d, escapeAttr(s.stroke), num(s.lineWidth), s.filterAttr())
}

// filterAttr returns the filter reference for the current shadow, adding a
// feDropShadow definition the first time a shadow is used.
func (s *SVG) filterAttr() string {
	if s.shadow.IsZero() {
		return ""
	}
	id, ok := s.filters[s.shadow]
	if !ok {
		id = fmt.Sprintf("shadow-%d", len(s.filters))
		s.filters[s.shadow] = id
		fmt.Fprintf(&s.defs, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+
			`<feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s"/></filter>`+"\n",
			id, num(s.shadow.OffsetX), num(s.shadow.OffsetY), num(s.shadow.Blur/2), escapeAttr(s.shadow.Color))
	}
	return fmt.Sprintf(` filter="url(#%s)"`, id)
}

func (s *SVG) pathData() string {
	var buf bytes.Buffer
	for _, seg := range s.path.segs {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		switch seg.kind {
		case segMove:
			fmt.Fprintf(&buf, "M%s %s", num(seg.x), num(seg.y))
		case segLine:
			fmt.Fprintf(&buf, "L%s %s", num(seg.x), num(seg.y))
		case segQuad:
			fmt.Fprintf(&buf, "Q%s %s %s %s", num(seg.cx), num(seg.cy), num(seg.x), num(seg.y))
		case segArc:
			writeArc(&buf, seg)
		case segClose:
			buf.WriteByte('Z')
		}
	}
	return buf.String()
}

// writeArc emits seg as SVG elliptical arc commands. The path is already at
// the arc start. A full turn is split in two since a single SVG arc cannot
// end where it starts.
func writeArc(buf *bytes.Buffer, seg segment) {
	sweep := seg.end - seg.start
	if sweep <= 0 {
		return
	}
	at := func(a float64) (string, string) {
		return num(seg.cx + seg.r*math.Cos(a)), num(seg.cy + seg.r*math.Sin(a))
	}
	if sweep >= 2*math.Pi-1e-9 {
		mx, my := at(seg.start + math.Pi)
		ex, ey := at(seg.start)
		fmt.Fprintf(buf, "A%s %s 0 0 1 %s %s A%s %s 0 0 1 %s %s",
			num(seg.r), num(seg.r), mx, my, num(seg.r), num(seg.r), ex, ey)
		return
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	ex, ey := at(seg.end)
	fmt.Fprintf(buf, "A%s %s 0 %d 1 %s %s", num(seg.r), num(seg.r), large, ex, ey)
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeAttr(v string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(v))
	return buf.String()
}
