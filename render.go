package arbor

// Font describes a font face to the renderer's text factory.
type Font struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

// DefaultFont is used by text visuals created without an explicit font.
var DefaultFont = Font{Family: "goregular", Size: 14}

// FormattedText is a laid-out text blob owned by a visual. It is created by
// the renderer and must be disposed by its owner.
type FormattedText interface {
	Text() string
	Size() Size
	Dispose()
}

// Renderer is the drawing collaborator consumed by the render pass. All
// rectangles and points are relative to the current offset.
//
// Backends are expected to degrade gracefully: a text object that cannot be
// built should still be returned and report an empty size.
type Renderer interface {
	PushOffset(p Point)
	PopOffset()
	PushClip(r Rect)
	PopClip()
	IsClipEmpty() bool
	Clip() Rect
	Translate(r Rect) Rect

	// BeginClip applies the current clip to subsequent primitives; EndClip
	// lifts it again.
	BeginClip()
	EndClip()

	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color)
	DrawText(t FormattedText, p Point, c Color)
	CreateFormattedText(s string, f Font) FormattedText
}

// Render draws the visual and its subtree. Layout that is invalid at this
// point is redone against the last rectangle the visual was arranged in, so
// visuals can be rendered without a full top-down layout pass reaching them.
//
// The visual's position is pushed as an offset and, when ClipToBounds is set,
// its local rectangle as a clip. A subtree whose clip is empty issues no
// drawing calls, and the draw step is skipped when the visual's own bounds
// are empty or fall outside the clip. Children paint in order, later over
// earlier.
func (v *Visual) Render(r Renderer) {
	if globalDebug {
		debugCheckDisposed(v, "Render")
	}
	if !v.measureValid || !v.arrangeValid {
		v.healLayout()
	}

	b := v.bounds
	local := Rect{Width: b.Width, Height: b.Height}
	clip := v.ClipToBounds.Get()

	r.PushOffset(b.Position())
	if clip {
		r.PushClip(local)
	}
	visible := !r.IsClipEmpty()
	if visible {
		if !r.Translate(local).Intersect(r.Clip()).Empty() {
			r.BeginClip()
			if v.steps.draw != nil {
				v.steps.draw.Draw(v, r)
			} else {
				drawBackground(v, r)
			}
			r.EndClip()
		}
		for _, c := range v.children {
			c.Render(r)
		}
	}
	if clip {
		r.PopClip()
	}
	if visible && v.debugEff {
		r.BeginClip()
		drawDebugOutlines(v, r)
		r.EndClip()
	}
	r.PopOffset()
	v.renderValid = true
}

// healLayout re-runs measure and arrange in the last known rectangle. A visual
// that was never arranged gets its natural size at the origin.
func (v *Visual) healLayout() {
	final := v.lastFinal
	if !v.hasArranged {
		final = RectFromSize(v.Measure(Size{Infinity, Infinity}))
	} else {
		v.Measure(final.Size())
	}
	v.Arrange(final)
}

// drawBackground is the default draw step.
func drawBackground(v *Visual, r Renderer) {
	bg := v.Background.Get()
	if !bg.Visible() {
		return
	}
	b := v.bounds
	r.FillRect(Rect{Width: b.Width, Height: b.Height}, bg)
}

// drawDebugOutlines strokes the margin, bounds and padding rectangles using
// the unclipped bounds of the visual.
func drawDebugOutlines(v *Visual, r Renderer) {
	b := v.bounds
	local := Rect{Width: b.Width, Height: b.Height}
	if m := v.Margin.Get(); m != (Thickness{}) {
		r.StrokeRect(local.Grow(m), ColorDebugMargin)
	}
	r.StrokeRect(local, ColorDebugBounds)
	if p := v.Padding.Get(); p != (Thickness{}) {
		r.StrokeRect(local.Shrink(p), ColorDebugPadding)
	}
}
