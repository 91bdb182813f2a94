package fonts

import (
	"testing"

	"github.com/matzehuels/relgraph/pkg/errors"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		input   string
		want    Spec
		wantErr bool
	}{
		{"normal 14px Go", Spec{"normal", 14, "Go"}, false},
		{"bold 9.5px Arial", Spec{"bold", 9.5, "Arial"}, false},
		{"12px sans-serif", Spec{"normal", 12, "sans-serif"}, false},
		{"italic 600 20px 'Helvetica Neue'", Spec{"600", 20, "Helvetica Neue"}, false},
		{"16px", Spec{"normal", 16, "Go"}, false},

		{"", Spec{}, true},
		{"bold Go", Spec{}, true},
		{"bold -3px Go", Spec{}, true},
		{"bold abcpx Go", Spec{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSpec(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpec(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFont) {
					t.Errorf("ParseSpec(%q) code = %v", tt.input, errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSpecString(t *testing.T) {
	s := Spec{Weight: "bold", Size: 14, Family: "Go"}
	if got := s.String(); got != "bold 14px Go" {
		t.Errorf("String() = %q", got)
	}
	back, err := ParseSpec(s.String())
	if err != nil || back != s {
		t.Errorf("ParseSpec(String()) = %+v, %v", back, err)
	}
}

func TestMeasure(t *testing.T) {
	spec := Spec{Weight: "normal", Size: 14, Family: FontFamily}

	empty, err := Measure(spec, "")
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if empty != 0 {
		t.Errorf("Measure(\"\") = %g, want 0", empty)
	}

	short, _ := Measure(spec, "node")
	long, _ := Measure(spec, "node label")
	if short <= 0 || long <= short {
		t.Errorf("Measure() short = %g long = %g, want 0 < short < long", short, long)
	}

	big, _ := Measure(Spec{Weight: "normal", Size: 28, Family: FontFamily}, "node")
	if big <= short {
		t.Errorf("Measure() at 28px = %g, want more than %g", big, short)
	}

	again, _ := Measure(spec, "node")
	if again != short {
		t.Errorf("Measure() not deterministic: %g vs %g", again, short)
	}
}

func TestFaceCached(t *testing.T) {
	spec := Spec{Weight: "bold", Size: 12, Family: FontFamily}
	a, err := Face(spec)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	b, _ := Face(spec)
	if a != b {
		t.Error("Face() should return the cached face")
	}
}
