package colors

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/matzehuels/relgraph/pkg/errors"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestRandomColor_Range(t *testing.T) {
	tests := []struct {
		mode Mode
		min  int
	}{
		{Light, 75},
		{Dark, 175},
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for _, tt := range tests {
		for i := 0; i < 500; i++ {
			c := RandomColor(tt.mode, rng)
			if !hexColorRegex.MatchString(c) {
				t.Fatalf("RandomColor(%s) = %q, not #rrggbb", tt.mode, c)
			}

			var r, g, b int
			if _, err := fmt.Sscanf(c, "#%02x%02x%02x", &r, &g, &b); err != nil {
				t.Fatalf("failed to parse color %q: %v", c, err)
			}
			for _, v := range []int{r, g, b} {
				if v < tt.min || v > 255 {
					t.Errorf("RandomColor(%s) = %q channel %d outside [%d, 255]", tt.mode, c, v, tt.min)
				}
			}
		}
	}
}

func TestRandomColor_Deterministic(t *testing.T) {
	a := RandomColor(Light, rand.New(rand.NewPCG(7, 7)))
	b := RandomColor(Light, rand.New(rand.NewPCG(7, 7)))
	if a != b {
		t.Errorf("RandomColor() with same seed = %q and %q", a, b)
	}
}

func TestRandomColor_NilRand(t *testing.T) {
	if c := RandomColor(Dark, nil); !hexColorRegex.MatchString(c) {
		t.Errorf("RandomColor(Dark, nil) = %q", c)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", Light, false},
		{"light", Light, false},
		{"DARK", Dark, false},
		{" dark ", Dark, false},
		{"sepia", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLabelColor(t *testing.T) {
	if got := LabelColor(Dark); got != "white" {
		t.Errorf("LabelColor(Dark) = %q, want white", got)
	}
	if got := LabelColor(Light); got != "black" {
		t.Errorf("LabelColor(Light) = %q, want black", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FFF", color.NRGBA{255, 255, 255, 255}, false},
		{"#000", color.NRGBA{0, 0, 0, 255}, false},
		{"#4b7f9a", color.NRGBA{0x4b, 0x7f, 0x9a, 255}, false},
		{"#4B7F9A80", color.NRGBA{0x4b, 0x7f, 0x9a, 0x80}, false},
		{"white", color.NRGBA{255, 255, 255, 255}, false},
		{" Black ", color.NRGBA{0, 0, 0, 255}, false},
		{"transparent", color.NRGBA{0, 0, 0, 0}, false},

		{"", color.NRGBA{}, true},
		{"#12", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"rgb(1,2,3)", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidColor)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
