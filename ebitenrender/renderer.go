// Package ebitenrender draws arbor visual trees with Ebitengine and runs a
// window whose mouse and keyboard input is fed into a Canvas.
package ebitenrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/fontdata"
)

// Renderer implements arbor.Renderer and arbor.FrameRenderer on an
// *ebiten.Image. Call SetTarget with the screen before Canvas.Render.
type Renderer struct {
	arbor.RenderStack

	dst    *ebiten.Image
	target *ebiten.Image // dst, or a sub-image of it while a clip is applied

	sources map[string]*text.GoTextFaceSource
	faces   map[arbor.Font]*text.GoTextFace
}

// New returns a renderer with no target.
func New() *Renderer {
	return &Renderer{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[arbor.Font]*text.GoTextFace),
	}
}

// SetTarget sets the image drawn into by subsequent frames.
func (r *Renderer) SetTarget(dst *ebiten.Image) {
	r.dst = dst
	r.target = dst
}

// BeginFrame resets the offset and clip stacks. The viewport is limited to
// the target's bounds.
func (r *Renderer) BeginFrame(viewport arbor.Rect) {
	if r.dst != nil {
		b := r.dst.Bounds()
		viewport = viewport.Intersect(arbor.Rect{
			X: float64(b.Min.X), Y: float64(b.Min.Y),
			Width: float64(b.Dx()), Height: float64(b.Dy()),
		})
	}
	r.Reset(viewport)
	r.target = r.dst
}

func (r *Renderer) EndFrame() {
	r.target = r.dst
}

// BeginClip narrows the target to a sub-image covering the current clip.
// Sub-images share the parent's coordinate space.
func (r *Renderer) BeginClip() {
	if r.dst == nil {
		return
	}
	c := r.Clip()
	rect := image.Rect(
		int(math.Floor(c.X)), int(math.Floor(c.Y)),
		int(math.Ceil(c.X+c.Width)), int(math.Ceil(c.Y+c.Height)),
	)
	if rect.Empty() {
		return
	}
	if sub, ok := r.dst.SubImage(rect).(*ebiten.Image); ok {
		r.target = sub
	}
}

func (r *Renderer) EndClip() {
	r.target = r.dst
}

func (r *Renderer) FillRect(rect arbor.Rect, c arbor.Color) {
	if r.target == nil || !c.Visible() || rect.Empty() {
		return
	}
	abs := r.Translate(rect)
	vector.DrawFilledRect(r.target, float32(abs.X), float32(abs.Y),
		float32(abs.Width), float32(abs.Height), toColor(c), true)
}

func (r *Renderer) StrokeRect(rect arbor.Rect, c arbor.Color) {
	if r.target == nil || !c.Visible() || rect.Empty() {
		return
	}
	abs := r.Translate(rect)
	vector.StrokeRect(r.target, float32(abs.X+0.5), float32(abs.Y+0.5),
		float32(abs.Width-1), float32(abs.Height-1), 1, toColor(c), true)
}

func (r *Renderer) DrawText(t arbor.FormattedText, p arbor.Point, c arbor.Color) {
	ft, ok := t.(*formattedText)
	if r.target == nil || !ok || ft.face == nil || ft.disposed || !c.Visible() {
		return
	}
	abs := p.Add(r.Offset())
	op := &text.DrawOptions{}
	op.GeoM.Translate(abs.X, abs.Y)
	op.ColorScale.ScaleWithColor(toColor(c))
	op.LineSpacing = ft.lineHeight
	text.Draw(r.target, ft.text, ft.face, op)
}

// CreateFormattedText measures s in f. A font that fails to parse yields an
// empty text that draws nothing.
func (r *Renderer) CreateFormattedText(s string, f arbor.Font) arbor.FormattedText {
	face, err := r.face(f)
	if err != nil {
		arbor.Logger().Warn("font unavailable", "family", f.Family, "err", err)
		return &formattedText{text: s}
	}
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap
	w, h := text.Measure(s, face, lh)
	return &formattedText{
		text:       s,
		size:       arbor.Size{Width: w, Height: h},
		face:       face,
		lineHeight: lh,
	}
}

func (r *Renderer) face(f arbor.Font) (*text.GoTextFace, error) {
	if face, ok := r.faces[f]; ok {
		return face, nil
	}
	data, family := fontdata.TTF(f.Family)
	src, ok := r.sources[family]
	if !ok {
		var err error
		src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("ebitenrender: parse font %q: %w", family, err)
		}
		r.sources[family] = src
	}
	face := &text.GoTextFace{Source: src, Size: f.Size}
	r.faces[f] = face
	return face, nil
}

func toColor(c arbor.Color) color.Color {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

type formattedText struct {
	text       string
	size       arbor.Size
	face       *text.GoTextFace
	lineHeight float64
	disposed   bool
}

func (t *formattedText) Text() string     { return t.text }
func (t *formattedText) Size() arbor.Size { return t.size }
func (t *formattedText) Dispose()         { t.disposed = true }
