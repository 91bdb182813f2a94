package draw

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Command is one recorded Surface call.
type Command struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
}

// String formats the command as op(args) for logs and golden output.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	if c.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Text))
	}
	for _, a := range c.Args {
		parts = append(parts, fmt.Sprintf("%g", a))
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder is a Surface that records every call instead of drawing.
// Text is measured with Measure when set, otherwise with a fixed advance of
// 0.6em per rune in the current font size.
type Recorder struct {
	Commands []Command
	Measure  func(font, text string) float64

	font string
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder using the fixed-advance measure.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset drops recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.font = ""
}

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the recorded commands with the given op.
func (r *Recorder) Find(op string) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) add(op, text string, args ...float64) {
	r.Commands = append(r.Commands, Command{Op: op, Text: text, Args: args})
}

func (r *Recorder) SetFillStyle(color string)   { r.add("fillStyle", color) }
func (r *Recorder) SetStrokeStyle(color string) { r.add("strokeStyle", color) }
func (r *Recorder) SetLineWidth(w float64)      { r.add("lineWidth", "", w) }

func (r *Recorder) SetFont(font string) {
	r.font = font
	r.add("font", font)
}

func (r *Recorder) SetShadow(sh Shadow) {
	r.add("shadow", sh.Color, sh.OffsetX, sh.OffsetY, sh.Blur)
}

func (r *Recorder) MeasureText(text string) float64 {
	w := r.measure(text)
	r.add("measureText", text, w)
	return w
}

func (r *Recorder) measure(text string) float64 {
	if r.Measure != nil {
		return r.Measure(r.font, text)
	}
	size := 10.0
	for _, field := range strings.Fields(r.font) {
		if v, ok := strings.CutSuffix(field, "px"); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				size = f
				break
			}
		}
	}
	return float64(utf8.RuneCountInString(text)) * size * 0.6
}

func (r *Recorder) FillText(text string, x, y float64) { r.add("fillText", text, x, y) }
func (r *Recorder) BeginPath()                         { r.add("beginPath", "") }
func (r *Recorder) MoveTo(x, y float64)                { r.add("moveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64)                { r.add("lineTo", "", x, y) }

func (r *Recorder) QuadraticCurveTo(cx, cy, x, y float64) {
	r.add("quadraticCurveTo", "", cx, cy, x, y)
}

func (r *Recorder) Arc(x, y, radius, start, end float64) {
	r.add("arc", "", x, y, radius, start, end)
}

func (r *Recorder) ClosePath() { r.add("closePath", "") }
func (r *Recorder) Fill()      { r.add("fill", "") }
func (r *Recorder) Stroke()    { r.add("stroke", "") }
