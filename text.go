package arbor

// TextBehavior draws a single run of text. The formatted text is created by
// the canvas renderer when the visual attaches and is kept across
// reparenting; it is released only on a permanent detach.
type TextBehavior struct {
	Text *Property[string]
	Font *Property[Font]

	visual  *Visual
	ft      FormattedText
	creates int // formatted texts built, for diagnostics
}

// NewText creates a text visual. A zero Font uses the canvas default.
func NewText(name, content string, font Font) *Visual {
	tb := &TextBehavior{}
	tb.Text = NewProperty(tb, "Text", AffectsMeasure, Const(content))
	tb.Font = NewProperty(tb, "Font", AffectsMeasure, Const(font))
	v := NewVisual(name, tb)
	tb.visual = v
	return v
}

// TextOf returns the text behavior of v, or nil if v is not a text visual.
func TextOf(v *Visual) *TextBehavior {
	tb, _ := v.behavior.(*TextBehavior)
	return tb
}

// Formatted returns the current formatted text, or nil while detached.
func (tb *TextBehavior) Formatted() FormattedText {
	return tb.ft
}

// Invalidate implements PropertyOwner. Content or font changes rebuild the
// formatted text and re-measure.
func (tb *TextBehavior) Invalidate(kind InvalidationKind) {
	if tb.visual == nil || kind == AffectsNone {
		return
	}
	if tb.ft != nil {
		tb.ft.Dispose()
		tb.ft = nil
		tb.build(tb.visual)
	}
	tb.visual.InvalidateMeasure()
}

// OnAttach builds the formatted text unless a reparenting detach kept it.
func (tb *TextBehavior) OnAttach(v *Visual) {
	if tb.ft == nil {
		tb.build(v)
	}
}

// OnDetach releases the formatted text unless the visual is being reparented.
func (tb *TextBehavior) OnDetach(v *Visual, reparenting bool) {
	if reparenting || tb.ft == nil {
		return
	}
	tb.ft.Dispose()
	tb.ft = nil
	v.InvalidateMeasure()
}

func (tb *TextBehavior) build(v *Visual) {
	c := v.Canvas()
	if c == nil || c.renderer == nil {
		return
	}
	font := tb.Font.Get()
	if font == (Font{}) {
		font = c.opts.Font
	}
	tb.ft = c.renderer.CreateFormattedText(tb.Text.Get(), font)
	tb.creates++
	v.InvalidateMeasure()
	logger().Debug("formatted text created", "visual", v.Name, "font", font.Family, "size", font.Size)
}

// MeasureContent returns the text extent plus padding. Without formatted
// text it measures as empty.
func (tb *TextBehavior) MeasureContent(v *Visual, available Size) Size {
	var s Size
	if tb.ft != nil {
		s = tb.ft.Size()
	}
	return s.Grow(v.Padding.Get())
}

// Draw paints the background, then the text at the padded origin in the
// visual's foreground color.
func (tb *TextBehavior) Draw(v *Visual, r Renderer) {
	drawBackground(v, r)
	if tb.ft == nil {
		return
	}
	p := v.Padding.Get()
	r.DrawText(tb.ft, Point{p.Left, p.Top}, v.Foreground.Get())
}
