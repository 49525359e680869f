package arbor

import "math"

// --- Measure ---

// Measure returns the visual's desired size, margin included, for the given
// available size. The result is cached: measuring again with the same
// available size and no intervening invalidation returns the cached value
// without running the sizing step.
func (v *Visual) Measure(available Size) Size {
	if v.measureValid && available == v.lastAvailable {
		return v.measuredSize
	}
	if globalDebug {
		debugCheckDisposed(v, "Measure")
	}

	margin := v.Margin.Get()
	inner := available.Shrink(margin)

	var desired Size
	if v.steps.measure != nil {
		desired = v.steps.measure.MeasureContent(v, inner)
	} else {
		desired = measureContainer(v, inner)
	}
	desired = sanitizeDesired(desired)
	desired = desired.Clamp(v.minSize(), v.maxSize())

	v.measuredSize = desired.Grow(margin)
	v.lastAvailable = available
	v.measureValid = true
	v.arrangeValid = false
	v.measureCount++
	return v.measuredSize
}

// MeasuredSize returns the result of the last successful Measure.
func (v *Visual) MeasuredSize() Size {
	return v.measuredSize
}

// IsMeasureValid reports whether the cached measure result is current.
func (v *Visual) IsMeasureValid() bool {
	return v.measureValid
}

// measureContainer is the default sizing rule: the union bounding box of all
// children measured against the padded size, plus padding.
func measureContainer(v *Visual, available Size) Size {
	padding := v.Padding.Get()
	inner := available.Shrink(padding)
	var box Size
	for _, c := range v.children {
		box = box.Max(c.Measure(inner))
	}
	return box.Grow(padding)
}

// --- Arrange ---

// Arrange positions the visual inside final, a rectangle in the parent's
// coordinate space. Arranging again with the same rectangle and no
// intervening invalidation does nothing.
func (v *Visual) Arrange(final Rect) {
	if v.arrangeValid && final == v.lastFinal {
		return
	}
	if globalDebug {
		debugCheckDisposed(v, "Arrange")
	}
	if !v.measureValid {
		v.Measure(final.Size())
	}
	v.lastFinal = final
	v.hasArranged = true
	v.arrangeValid = true
	v.arrangeCount++

	inner := final.Shrink(v.Margin.Get())
	if inner.Empty() {
		v.setBounds(Rect{X: inner.X, Y: inner.Y})
		return
	}

	desired := v.measuredSize.Shrink(v.Margin.Get())
	hAlign := v.HorizontalAlignment.Get()
	vAlign := v.VerticalAlignment.Get()

	w := inner.Width
	if hAlign != AlignStretch {
		w = math.Min(desired.Width, inner.Width)
	}
	h := inner.Height
	if vAlign != AlignStretch {
		h = math.Min(desired.Height, inner.Height)
	}
	size := Size{w, h}.Clamp(v.minSize(), v.maxSize())

	rect := Rect{
		X:      inner.X + alignOffset(hAlign, inner.Width-size.Width),
		Y:      inner.Y + alignOffset(vAlign, inner.Height-size.Height),
		Width:  size.Width,
		Height: size.Height,
	}

	local := Rect{Width: rect.Width, Height: rect.Height}
	if v.steps.arrange != nil {
		v.steps.arrange.ArrangeContent(v, local)
	} else {
		arrangeContainer(v, local)
	}
	v.setBounds(rect)
}

// Bounds returns the parent-relative rectangle computed by the last Arrange.
func (v *Visual) Bounds() Rect {
	return v.bounds
}

// IsArrangeValid reports whether the cached arrange result is current.
func (v *Visual) IsArrangeValid() bool {
	return v.arrangeValid
}

// arrangeContainer is the default arrangement: every child gets the full
// padded rectangle.
func arrangeContainer(v *Visual, local Rect) {
	inner := local.Shrink(v.Padding.Get())
	for _, c := range v.children {
		c.Arrange(inner)
	}
}

func alignOffset(a Alignment, leftover float64) float64 {
	switch a {
	case AlignCenter:
		return leftover / 2
	case AlignEnd:
		return leftover
	default:
		return 0
	}
}

func (v *Visual) setBounds(r Rect) {
	old := v.bounds
	if old == r {
		return
	}
	v.bounds = r
	if v.steps.boundsCh != nil {
		v.steps.boundsCh.OnBoundsChanged(v, old, r)
	}
	v.boundsObs.each(func(fn func(*Visual, Rect, Rect)) { fn(v, old, r) })
	v.InvalidateRender()
}

func (v *Visual) minSize() Size {
	return Size{v.MinWidth.Get(), v.MinHeight.Get()}
}

func (v *Visual) maxSize() Size {
	return Size{v.MaxWidth.Get(), v.MaxHeight.Get()}
}

// sanitizeDesired maps unusable sizing results to zero. A sizing step that
// reports an infinite extent behaves as if it requested nothing on that axis.
func sanitizeDesired(s Size) Size {
	if math.IsInf(s.Width, 0) || math.IsNaN(s.Width) || s.Width < 0 {
		s.Width = 0
	}
	if math.IsInf(s.Height, 0) || math.IsNaN(s.Height) || s.Height < 0 {
		s.Height = 0
	}
	return s
}

// --- Invalidation ---

// InvalidateMeasure marks measure and arrange invalid and bubbles to the
// parent. Bubbling stops at the first ancestor whose measure is already
// invalid, so repeated invalidation costs nothing beyond the first.
func (v *Visual) InvalidateMeasure() {
	v.invalidateCount++
	wasValid := v.measureValid
	v.measureValid = false
	v.arrangeValid = false
	v.renderValid = false
	if wasValid && v.parent != nil {
		v.parent.InvalidateMeasure()
	}
}

// InvalidateArrange marks arrange invalid and bubbles like InvalidateMeasure.
func (v *Visual) InvalidateArrange() {
	v.invalidateCount++
	wasValid := v.arrangeValid
	v.arrangeValid = false
	v.renderValid = false
	if wasValid && v.parent != nil {
		v.parent.InvalidateArrange()
	}
}

// InvalidateRender marks the visual for redraw. It bubbles only if the
// visual was validly rendered before.
func (v *Visual) InvalidateRender() {
	wasValid := v.renderValid
	v.renderValid = false
	if wasValid && v.parent != nil {
		v.parent.InvalidateRender()
	}
}

// IsRenderValid reports whether the visual has been drawn since its last
// invalidation.
func (v *Visual) IsRenderValid() bool {
	return v.renderValid
}
