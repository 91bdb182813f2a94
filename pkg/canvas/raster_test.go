package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/relgraph/pkg/draw"
	"github.com/matzehuels/relgraph/pkg/errors"
)

func rgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
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

func TestRasterFill(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillStyle("#ff0000")
	fillRect(r, 0, 0, 10, 10)

	if got := rgba(r.Image().At(5, 5)); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := rgba(r.Image().At(15, 15)); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestRasterArcFillsDisc(t *testing.T) {
	r := NewRaster(40, 40)
	r.SetFillStyle("#00f")
	r.BeginPath()
	r.Arc(20, 20, 10, 0, 2*math.Pi)
	r.Fill()

	if got := rgba(r.Image().At(20, 20)); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("center = %v, want blue", got)
	}
	if got := rgba(r.Image().At(2, 2)); got.A != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}
}

func TestRasterClockwiseHalfArc(t *testing.T) {
	// 0 → π clockwise in y-down space covers the lower half.
	r := NewRaster(40, 40)
	r.SetFillStyle("#000")
	r.BeginPath()
	r.Arc(20, 20, 10, 0, math.Pi)
	r.ClosePath()
	r.Fill()

	if got := rgba(r.Image().At(20, 26)); got.A == 0 {
		t.Error("lower half should be filled")
	}
	if got := rgba(r.Image().At(20, 14)); got.A != 0 {
		t.Errorf("upper half = %v, want transparent", got)
	}
}

func TestRasterShadow(t *testing.T) {
	r := NewRaster(40, 40)
	r.SetShadow(draw.Shadow{OffsetX: 20, OffsetY: 20, Color: "#00ff00"})
	r.SetFillStyle("#ff0000")
	fillRect(r, 0, 0, 10, 10)

	if got := rgba(r.Image().At(25, 25)); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("shadow = %v, want green", got)
	}
	if got := rgba(r.Image().At(5, 5)); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("shape = %v, want red", got)
	}
}

func TestRasterBadColor(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetFillStyle("#00ff00")
	r.SetFillStyle("not-a-color")
	fillRect(r, 0, 0, 10, 10)

	if !errors.Is(r.Err(), errors.ErrCodeInvalidColor) {
		t.Errorf("Err() = %v, want %v", r.Err(), errors.ErrCodeInvalidColor)
	}
	if got := rgba(r.Image().At(5, 5)); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("fill = %v, want previous green", got)
	}
}

func TestRasterText(t *testing.T) {
	r := NewRaster(100, 30)
	r.SetFont("bold 16px Go")
	if w := r.MeasureText("hello"); w <= 0 {
		t.Fatalf("MeasureText = %v, want > 0", w)
	}
	r.SetFillStyle("#000")
	r.FillText("hello", 2, 20)

	painted := false
	for y := 0; y < 30 && !painted; y++ {
		for x := 0; x < 100; x++ {
			if rgba(r.Image().At(x, y)).A > 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("FillText painted nothing")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(8, 4)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
}
