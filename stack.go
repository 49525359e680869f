package arbor

import "math"

// StackLayout places children one after another along an axis. Children are
// measured with an unbounded extent on the growth axis so they report their
// natural size, and each child keeps its measured extent along that axis.
type StackLayout struct {
	Orientation Orientation
	Spacing     float64
}

// NewStack creates a visual with a StackLayout behavior.
func NewStack(name string, orientation Orientation) *Visual {
	return NewVisual(name, &StackLayout{Orientation: orientation})
}

// MeasureContent sums children along the growth axis and takes the maximum
// across it.
func (l *StackLayout) MeasureContent(v *Visual, available Size) Size {
	padding := v.Padding.Get()
	inner := available.Shrink(padding)

	childAvail := inner
	if l.Orientation == Horizontal {
		childAvail.Width = Infinity
	} else {
		childAvail.Height = Infinity
	}

	var along, across float64
	for i, c := range v.children {
		s := c.Measure(childAvail)
		if i > 0 {
			along += l.Spacing
		}
		if l.Orientation == Horizontal {
			along += s.Width
			across = math.Max(across, s.Height)
		} else {
			along += s.Height
			across = math.Max(across, s.Width)
		}
	}

	if l.Orientation == Horizontal {
		return Size{along, across}.Grow(padding)
	}
	return Size{across, along}.Grow(padding)
}

// ArrangeContent accumulates offsets along the growth axis. Across the axis a
// child is offered the full padded extent and its own alignment decides how
// much of it to use.
func (l *StackLayout) ArrangeContent(v *Visual, local Rect) {
	inner := local.Shrink(v.Padding.Get())
	offset := 0.0
	for i, c := range v.children {
		if i > 0 {
			offset += l.Spacing
		}
		s := c.MeasuredSize()
		if l.Orientation == Horizontal {
			c.Arrange(Rect{inner.X + offset, inner.Y, s.Width, inner.Height})
			offset += s.Width
		} else {
			c.Arrange(Rect{inner.X, inner.Y + offset, inner.Width, s.Height})
			offset += s.Height
		}
	}
}
