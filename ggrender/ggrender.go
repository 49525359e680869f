// Package ggrender draws arbor visual trees into an in-memory image using the
// gogpu/gg software rasterizer. It needs no window and is used for snapshots
// and headless tests.
package ggrender

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/fontdata"
)

// Renderer implements arbor.Renderer and arbor.FrameRenderer on a gg.Context.
// Primitives are issued in absolute device coordinates; the embedded
// RenderStack tracks offsets and clips.
type Renderer struct {
	arbor.RenderStack

	ctx     *gg.Context
	sources map[string]*text.FontSource
	faces   map[arbor.Font]text.Face
	clipped bool
}

// New returns a renderer with a width x height transparent surface.
func New(width, height int) *Renderer {
	r := &Renderer{
		ctx:     gg.NewContext(width, height),
		sources: make(map[string]*text.FontSource),
		faces:   make(map[arbor.Font]text.Face),
	}
	r.Reset(arbor.Rect{Width: float64(width), Height: float64(height)})
	return r
}

// Context exposes the underlying gg context.
func (r *Renderer) Context() *gg.Context {
	return r.ctx
}

// Resize changes the surface size. The contents are discarded.
func (r *Renderer) Resize(width, height int) error {
	if err := r.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("ggrender: %w", err)
	}
	return nil
}

// BeginFrame clears the surface and resets the offset and clip stacks.
func (r *Renderer) BeginFrame(viewport arbor.Rect) {
	r.Reset(viewport)
	r.ctx.ResetClip()
	r.ctx.Clear()
	r.clipped = false
}

// EndFrame is a no-op; drawing is immediate.
func (r *Renderer) EndFrame() {}

func (r *Renderer) BeginClip() {
	c := r.Clip()
	r.ctx.Push()
	r.ctx.ClipRect(c.X, c.Y, c.Width, c.Height)
	r.clipped = true
}

func (r *Renderer) EndClip() {
	if !r.clipped {
		return
	}
	r.ctx.Pop()
	r.clipped = false
}

func (r *Renderer) FillRect(rect arbor.Rect, c arbor.Color) {
	if !c.Visible() || rect.Empty() {
		return
	}
	abs := r.Translate(rect)
	r.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	r.ctx.DrawRectangle(abs.X, abs.Y, abs.Width, abs.Height)
	if err := r.ctx.Fill(); err != nil {
		arbor.Logger().Warn("fill failed", "rect", abs, "err", err)
	}
}

// StrokeRect draws a one pixel outline just inside rect.
func (r *Renderer) StrokeRect(rect arbor.Rect, c arbor.Color) {
	if !c.Visible() || rect.Empty() {
		return
	}
	abs := r.Translate(rect)
	r.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	r.ctx.SetLineWidth(1)
	r.ctx.DrawRectangle(abs.X+0.5, abs.Y+0.5, abs.Width-1, abs.Height-1)
	if err := r.ctx.Stroke(); err != nil {
		arbor.Logger().Warn("stroke failed", "rect", abs, "err", err)
	}
}

// DrawText draws t with its top-left corner at p. gg draws glyphs straight
// into the pixmap, so text wholly outside the clip is skipped instead of
// clipped.
func (r *Renderer) DrawText(t arbor.FormattedText, p arbor.Point, c arbor.Color) {
	ft, ok := t.(*formattedText)
	if !ok || ft.face == nil || ft.disposed || !c.Visible() {
		return
	}
	abs := p.Add(r.Offset())
	box := arbor.Rect{X: abs.X, Y: abs.Y, Width: ft.size.Width, Height: ft.size.Height}
	if box.Intersect(r.Clip()).Empty() {
		return
	}
	r.ctx.SetFont(ft.face)
	r.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	r.ctx.DrawString(ft.text, abs.X, abs.Y+ft.ascent)
}

// CreateFormattedText shapes s with f. When the font cannot be loaded the
// returned text has an empty size and draws nothing.
func (r *Renderer) CreateFormattedText(s string, f arbor.Font) arbor.FormattedText {
	face, err := r.face(f)
	if err != nil {
		arbor.Logger().Warn("font unavailable", "family", f.Family, "err", err)
		return &formattedText{text: s}
	}
	w, h := text.Measure(s, face)
	return &formattedText{
		text:   s,
		size:   arbor.Size{Width: w, Height: h},
		face:   face,
		ascent: face.Metrics().Ascent,
	}
}

func (r *Renderer) face(f arbor.Font) (text.Face, error) {
	if face, ok := r.faces[f]; ok {
		return face, nil
	}
	data, family := fontdata.TTF(f.Family)
	src, ok := r.sources[family]
	if !ok {
		var err error
		src, err = text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("ggrender: parse font %q: %w", family, err)
		}
		r.sources[family] = src
	}
	face := src.Face(f.Size)
	r.faces[f] = face
	return face, nil
}

// Image returns the rendered surface.
func (r *Renderer) Image() image.Image {
	return r.ctx.Image()
}

// EncodePNG writes the surface as PNG to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if err := r.ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("ggrender: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to a PNG file at path.
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ggrender: %w", err)
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type formattedText struct {
	text     string
	size     arbor.Size
	face     text.Face
	ascent   float64
	disposed bool
}

func (t *formattedText) Text() string     { return t.text }
func (t *formattedText) Size() arbor.Size { return t.size }
func (t *formattedText) Dispose()         { t.disposed = true }
