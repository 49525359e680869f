package ebitenrender

import (
	"errors"
	"image/color"
	"testing"

	"github.com/phanxgames/arbor"
)

func TestToColor(t *testing.T) {
	tests := []struct {
		in   arbor.Color
		want color.NRGBA
	}{
		{arbor.ColorBlack, color.NRGBA{A: 255}},
		{arbor.ColorWhite, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{arbor.Color{R: 1, A: 0.5}, color.NRGBA{R: 255, A: 128}},
	}
	for _, tt := range tests {
		if got := toColor(tt.in); got != tt.want {
			t.Errorf("toColor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRendererWithoutTargetIsInert(t *testing.T) {
	r := New()
	r.BeginFrame(arbor.Rect{Width: 10, Height: 10})
	r.BeginClip()
	r.FillRect(arbor.Rect{Width: 5, Height: 5}, arbor.ColorBlack)
	r.StrokeRect(arbor.Rect{Width: 5, Height: 5}, arbor.ColorBlack)
	r.EndClip()
	r.EndFrame()
	if r.target != nil {
		t.Error("target should stay nil without SetTarget")
	}
}

type otherRenderer struct{ arbor.RenderStack }

func (otherRenderer) BeginClip() {}
func (otherRenderer) EndClip() {}
func (otherRenderer) FillRect(arbor.Rect, arbor.Color) {}
func (otherRenderer) StrokeRect(arbor.Rect, arbor.Color) {}
func (otherRenderer) DrawText(arbor.FormattedText, arbor.Point, arbor.Color) {}
func (otherRenderer) CreateFormattedText(string, arbor.Font) arbor.FormattedText {
	return nil
}

func TestRunRejectsForeignRenderer(t *testing.T) {
	c := arbor.NewCanvas(&otherRenderer{}, arbor.DefaultOptions())
	if err := Run(c, RunConfig{}); !errors.Is(err, ErrWrongRenderer) {
		t.Errorf("Run = %v, want ErrWrongRenderer", err)
	}
}

func TestCreateFormattedTextCachesFaces(t *testing.T) {
	r := New()
	a := r.CreateFormattedText("abc", arbor.DefaultFont)
	b := r.CreateFormattedText("abcdef", arbor.DefaultFont)
	if len(r.faces) != 1 || len(r.sources) != 1 {
		t.Errorf("faces = %d, sources = %d, want 1 and 1", len(r.faces), len(r.sources))
	}
	if b.Size().Width <= a.Size().Width {
		t.Errorf("width = %v, want more than %v", b.Size().Width, a.Size().Width)
	}
}
