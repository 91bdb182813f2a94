package scene

import (
	"math"
	"time"
)

// DefaultDuration is the length of an animated camera move.
const DefaultDuration = 600 * time.Millisecond

// Camera is the view center in graph units plus a zoom ratio (1 shows the
// whole graph, smaller values zoom in).
type Camera struct {
	X, Y     float64
	Ratio    float64
	Duration time.Duration

	locate func(id string) (x, y float64, ok bool)

	fromX, fromY float64
	toX, toY     float64
	elapsed      time.Duration
	animating    bool
}

// NewCamera returns a camera centered at (x, y). locate resolves follow
// targets to graph positions.
func NewCamera(x, y float64, locate func(id string) (float64, float64, bool)) *Camera {
	return &Camera{X: x, Y: y, Ratio: 1, Duration: DefaultDuration, locate: locate}
}

// Follow centers the camera on target. Without animation the camera jumps;
// otherwise it starts a move that Advance plays out. Empty or unknown
// targets leave the camera where it is.
func (c *Camera) Follow(target string, animate bool) {
	if target == "" || c.locate == nil {
		return
	}
	x, y, ok := c.locate(target)
	if !ok {
		return
	}
	if !animate || c.Duration <= 0 {
		c.X, c.Y = x, y
		c.animating = false
		return
	}
	c.fromX, c.fromY = c.X, c.Y
	c.toX, c.toY = x, y
	c.elapsed = 0
	c.animating = true
}

// Advance moves an animation forward by dt.
func (c *Camera) Advance(dt time.Duration) {
	if !c.animating {
		return
	}
	c.elapsed += dt
	t := math.Min(1, float64(c.elapsed)/float64(c.Duration))
	e := quadInOut(t)
	c.X = c.fromX + (c.toX-c.fromX)*e
	c.Y = c.fromY + (c.toY-c.fromY)*e
	if t >= 1 {
		c.animating = false
	}
}

// Settle finishes any running animation.
func (c *Camera) Settle() {
	if c.animating {
		c.Advance(c.Duration - c.elapsed)
	}
}

// Animating reports whether a move is in progress.
func (c *Camera) Animating() bool { return c.animating }

func quadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}
