package render

import (
	"bytes"
	"context"
	"image/png"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/observability"
	"github.com/matzehuels/relgraph/pkg/scene"
)

func testScene() *scene.Scene {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "ada", Label: "Ada", X: 0, Y: 0, Color: "#d46f4d"},
			{ID: "babbage", Label: "Babbage", X: 50, Y: 30},
		},
		Edges: []graph.Edge{{From: "ada", To: "babbage"}},
	}
	return scene.New(g, scene.WithSize(200, 100))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"SVG", SVG, false},
		{" pdf ", PDF, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	if got := SVG.ContentType(); got != "image/svg+xml" {
		t.Errorf("SVG.ContentType() = %q", got)
	}
	if got := Format("x").ContentType(); got != "application/octet-stream" {
		t.Errorf("unknown ContentType() = %q", got)
	}
}

func TestRenderPNG(t *testing.T) {
	sc := testScene()
	data, err := Render(context.Background(), sc, scene.FrameState{Hovered: "ada"}, PNG, WithScale(2))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 400x200", b)
	}
	if sc.PixelRatio != 1 {
		t.Errorf("WithScale mutated the scene: PixelRatio = %v", sc.PixelRatio)
	}
}

func TestRenderSVG(t *testing.T) {
	data, err := Render(context.Background(), testScene(), scene.FrameState{Highlighted: "babbage"}, SVG, WithScale(3))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(data)
	for _, want := range []string{`width="200" height="100"`, ">Babbage</text>", "feDropShadow"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := Render(context.Background(), testScene(), scene.FrameState{}, PDF)
	if _, lookErr := exec.LookPath("rsvg-convert"); lookErr != nil {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("Render(pdf) without librsvg error = %v, want %v", err, errors.ErrCodeUnsupported)
		}
		return
	}
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	_, err := Render(context.Background(), testScene(), scene.FrameState{}, Format("gif"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

type recordingHooks struct {
	observability.NoopRenderHooks
	started  []string
	finished []int
}

func (h *recordingHooks) OnRenderStart(_ context.Context, format string, _ int) {
	h.started = append(h.started, format)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, _ error) {
	h.finished = append(h.finished, size)
}

func TestRenderHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetRenderHooks(h)
	t.Cleanup(observability.Reset)

	data, err := Render(context.Background(), testScene(), scene.FrameState{}, SVG)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.started) != 1 || h.started[0] != "svg" {
		t.Errorf("started = %v, want [svg]", h.started)
	}
	if len(h.finished) != 1 || h.finished[0] != len(data) {
		t.Errorf("finished = %v, want [%d]", h.finished, len(data))
	}
}
