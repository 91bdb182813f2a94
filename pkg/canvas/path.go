package canvas

import "math"

type segKind int

const (
	segMove segKind = iota
	segLine
	segQuad
	segArc
	segClose
)

// segment is one path instruction in canvas terms. Arcs keep their center
// form so each backend can emit its native arc primitive.
type segment struct {
	kind       segKind
	x, y       float64
	cx, cy     float64
	r          float64
	start, end float64
}

// path accumulates the current path between BeginPath and Fill/Stroke.
type path struct {
	segs       []segment
	hasCurrent bool
	curX, curY float64
	subX, subY float64
}

func (p *path) reset() {
	p.segs = p.segs[:0]
	p.hasCurrent = false
}

func (p *path) moveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, x: x, y: y})
	p.hasCurrent = true
	p.curX, p.curY = x, y
	p.subX, p.subY = x, y
}

func (p *path) lineTo(x, y float64) {
	if !p.hasCurrent {
		p.moveTo(x, y)
		return
	}
	p.segs = append(p.segs, segment{kind: segLine, x: x, y: y})
	p.curX, p.curY = x, y
}

func (p *path) quadTo(cx, cy, x, y float64) {
	if !p.hasCurrent {
		p.moveTo(cx, cy)
	}
	p.segs = append(p.segs, segment{kind: segQuad, cx: cx, cy: cy, x: x, y: y})
	p.curX, p.curY = x, y
}

// arc appends a clockwise arc. Like canvas, a line joins the current point
// to the arc start, or the arc start opens a new subpath.
func (p *path) arc(x, y, r, start, end float64) {
	end = clockwiseEnd(start, end)
	sx, sy := x+r*math.Cos(start), y+r*math.Sin(start)
	if p.hasCurrent {
		p.lineTo(sx, sy)
	} else {
		p.moveTo(sx, sy)
	}
	p.segs = append(p.segs, segment{kind: segArc, cx: x, cy: y, r: r, start: start, end: end})
	p.curX, p.curY = x+r*math.Cos(end), y+r*math.Sin(end)
}

func (p *path) closePath() {
	if !p.hasCurrent {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose})
	p.curX, p.curY = p.subX, p.subY
}

// clockwiseEnd normalises end so that the sweep from start is in (0, 2π],
// matching canvas arc() with anticlockwise=false.
func clockwiseEnd(start, end float64) float64 {
	const tau = 2 * math.Pi
	if end-start >= tau {
		return start + tau
	}
	for end < start {
		end += tau
	}
	return end
}
