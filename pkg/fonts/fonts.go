// Package fonts resolves CSS font shorthands to truetype faces.
//
// The draw hooks describe fonts the way a canvas does ("bold 14px Go").
// Raster and SVG surfaces both need real metrics for those strings, so this
// package parses them and serves faces built from the Go font family bundled
// with golang.org/x/image, making text measurement identical across surfaces
// and independent of the fonts installed on the host.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// FontFamily is the family name of the bundled fonts.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font-family list written into SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// DefaultSize is used when a shorthand has no pixel size.
const DefaultSize = 10

// Spec is a parsed font shorthand.
type Spec struct {
	Weight string
	Size   float64
	Family string
}

// String formats s as "<weight> <size>px <family>".
func (s Spec) String() string {
	return fmt.Sprintf("%s %gpx %s", s.Weight, s.Size, s.Family)
}

// Bold reports whether the weight maps to the bold face.
func (s Spec) Bold() bool {
	switch s.Weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Medium reports whether the weight maps to the medium face.
func (s Spec) Medium() bool {
	return s.Weight == "500"
}

// ParseSpec parses a CSS font shorthand of the form
// "[style] [weight] <size>px <family>". Missing parts get defaults.
func ParseSpec(css string) (Spec, error) {
	spec := Spec{Weight: "normal", Size: DefaultSize, Family: FontFamily}
	fields := strings.Fields(css)
	if len(fields) == 0 {
		return spec, errors.New(errors.ErrCodeInvalidFont, "empty font")
	}

	sizeAt := -1
	for i, f := range fields {
		v, ok := strings.CutSuffix(f, "px")
		if !ok {
			continue
		}
		size, err := strconv.ParseFloat(v, 64)
		if err != nil || size <= 0 {
			return spec, errors.New(errors.ErrCodeInvalidFont, "invalid font size %q in %q", f, css)
		}
		spec.Size = size
		sizeAt = i
		break
	}
	if sizeAt < 0 {
		return spec, errors.New(errors.ErrCodeInvalidFont, "font %q has no pixel size", css)
	}

	for _, f := range fields[:sizeAt] {
		switch f {
		case "italic", "oblique":
		default:
			spec.Weight = f
		}
	}
	if family := strings.Join(fields[sizeAt+1:], " "); family != "" {
		spec.Family = strings.Trim(family, `"'`)
	}
	return spec, nil
}

var (
	parsed    map[string]*truetype.Font
	parsedErr error
	parseOnce sync.Once
	facesMu   sync.Mutex
	faces     = map[faceKey]font.Face{}
	measureMu sync.Mutex
)

type faceKey struct {
	name string
	size float64
}

func loadFonts() {
	parsed = map[string]*truetype.Font{}
	for name, data := range map[string][]byte{
		"regular": goregular.TTF,
		"medium":  gomedium.TTF,
		"bold":    gobold.TTF,
	} {
		f, err := truetype.Parse(data)
		if err != nil {
			parsedErr = fmt.Errorf("parse %s font: %w", name, err)
			return
		}
		parsed[name] = f
	}
}

func faceName(s Spec) string {
	switch {
	case s.Bold():
		return "bold"
	case s.Medium():
		return "medium"
	default:
		return "regular"
	}
}

// Face returns a cached face for spec. Faces are shared between callers and
// must not be closed.
func Face(spec Spec) (font.Face, error) {
	parseOnce.Do(loadFonts)
	if parsedErr != nil {
		return nil, parsedErr
	}

	key := faceKey{name: faceName(spec), size: spec.Size}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	f := truetype.NewFace(parsed[key.name], &truetype.Options{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	faces[key] = f
	return f, nil
}

// Measure returns the advance width of text in pixels.
func Measure(spec Spec, text string) (float64, error) {
	face, err := Face(spec)
	if err != nil {
		return 0, err
	}
	// truetype faces keep a glyph cache and are not safe for concurrent use.
	measureMu.Lock()
	defer measureMu.Unlock()
	adv := font.MeasureString(face, text)
	return float64(adv) / 64, nil
}
