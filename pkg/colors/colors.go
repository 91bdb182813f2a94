// Package colors provides theme-aware node colors and CSS color parsing.
//
// [RandomColor] produces muted node colors biased by theme: mid tones on
// light backgrounds, light tones on dark ones. [Parse] converts the CSS color
// strings used by the draw hooks into [color.Color] values for raster
// surfaces.
package colors

import (
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// Mode is the UI theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

const (
	lightBase = 75
	darkBase  = 175
	variation = 55
)

// ParseMode parses "light" or "dark". An empty string means Light.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidTheme, "invalid theme: %s (must be 'light' or 'dark')", s)
	}
}

// RandomColor returns a random "#rrggbb" color for mode. Each channel is
// base + [0, 55), clamped to 255, with base 75 for light and 175 for dark.
// A nil rng uses the package-level source.
func RandomColor(mode Mode, rng *rand.Rand) string {
	base := lightBase
	if mode == Dark {
		base = darkBase
	}
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	channel := func() float64 {
		return float64(min(255, base+intn(variation))) / 255
	}
	return colorful.Color{R: channel(), G: channel(), B: channel()}.Hex()
}

// LabelColor returns the label color for mode: white on dark, black on light.
func LabelColor(mode Mode) string {
	if mode == Dark {
		return "white"
	}
	return "black"
}

// Background returns the canvas background for mode.
func Background(mode Mode) string {
	if mode == Dark {
		return "#0a0a0a"
	}
	return "#ffffff"
}

// EdgeColor returns the default edge stroke for mode.
func EdgeColor(mode Mode) string {
	if mode == Dark {
		return "#5c5c5c"
	}
	return "#cccccc"
}

var named = map[string]color.NRGBA{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"lightgrey":   {211, 211, 211, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// Parse converts a CSS color ("#rgb", "#rrggbb", "#rrggbbaa" or a basic
// named color) into a color.Color.
func Parse(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, errors.New(errors.ErrCodeInvalidColor, "unsupported color: %q", s)
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid color length: %q", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
