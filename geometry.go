package arbor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Infinity is the unbounded extent used for "size to content" measurement and
// the default maximum size of a visual.
var Infinity = math.Inf(1)

// Point is a 2D position in parent-relative or canvas coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Sub returns p translated by -o.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// Size is a width/height extent. Extents produced by the arithmetic helpers
// are never negative.
type Size struct {
	Width, Height float64
}

// Shrink subtracts a thickness from the size, clamping each axis at zero.
func (s Size) Shrink(t Thickness) Size {
	return Size{
		Width:  nonNegative(s.Width - t.Horizontal()),
		Height: nonNegative(s.Height - t.Vertical()),
	}
}

// Grow adds a thickness to the size.
func (s Size) Grow(t Thickness) Size {
	return Size{
		Width:  nonNegative(s.Width + t.Horizontal()),
		Height: nonNegative(s.Height + t.Vertical()),
	}
}

// Clamp limits each axis to [min, max]. When min exceeds max, min wins.
func (s Size) Clamp(min, max Size) Size {
	return Size{
		Width:  clampAxis(s.Width, min.Width, max.Width),
		Height: clampAxis(s.Height, min.Height, max.Height),
	}
}

// Max returns the per-axis maximum of s and o.
func (s Size) Max(o Size) Size {
	return Size{math.Max(s.Width, o.Width), math.Max(s.Height, o.Height)}
}

// IsEmpty reports whether either axis is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{r.Width, r.Height}
}

// Position returns the rectangle's top-left corner.
func (r Rect) Position() Point {
	return Point{r.X, r.Y}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the leading edge are inside, points on the trailing edge are not,
// so adjacent rectangles never both contain a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	return Rect{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// Shrink insets the rectangle by a thickness. Width and height clamp at zero;
// the origin still moves by the leading edges.
func (r Rect) Shrink(t Thickness) Rect {
	return Rect{
		X:      r.X + t.Left,
		Y:      r.Y + t.Top,
		Width:  nonNegative(r.Width - t.Horizontal()),
		Height: nonNegative(r.Height - t.Vertical()),
	}
}

// Grow outsets the rectangle by a thickness.
func (r Rect) Grow(t Thickness) Rect {
	return Rect{
		X:      r.X - t.Left,
		Y:      r.Y - t.Top,
		Width:  nonNegative(r.Width + t.Horizontal()),
		Height: nonNegative(r.Height + t.Vertical()),
	}
}

// Intersect returns the overlap of r and o. Disjoint rectangles produce an
// empty rectangle positioned at the clamped corner.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.Width, o.X+o.Width)
	y1 := math.Min(r.Y+r.Height, o.Y+o.Height)
	return Rect{x0, y0, nonNegative(x1 - x0), nonNegative(y1 - y0)}
}

// Thickness describes the four edges of a margin or padding.
type Thickness struct {
	Left, Top, Right, Bottom float64
}

// Uniform returns a thickness with the same value on every edge.
func Uniform(v float64) Thickness {
	return Thickness{v, v, v, v}
}

// Horizontal returns Left + Right.
func (t Thickness) Horizontal() float64 { return t.Left + t.Right }

// Vertical returns Top + Bottom.
func (t Thickness) Vertical() float64 { return t.Top + t.Bottom }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	ColorTransparent = Color{}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{1, 1, 1, 1}

	// Debug outline colors for margin, bounds and padding respectively.
	ColorDebugMargin  = Color{1, 0.55, 0, 1}
	ColorDebugBounds  = Color{1, 0, 0, 1}
	ColorDebugPadding = Color{0, 0.6, 1, 1}
)

// Visible reports whether drawing with c would produce any output.
func (c Color) Visible() bool {
	return c.A > 0
}

// RGBA8 returns the color as 8-bit straight-alpha components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("arbor: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("arbor: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Alignment positions a visual inside the rectangle offered by its parent.
type Alignment uint8

const (
	AlignStretch Alignment = iota // fill the available extent (default)
	AlignStart                    // left / top
	AlignCenter                   // centered in the leftover space
	AlignEnd                      // right / bottom
)

var alignmentNames = [...]string{"stretch", "start", "center", "end"}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "alignment(" + strconv.Itoa(int(a)) + ")"
}

// ParseAlignment parses the lower-case names produced by String.
func ParseAlignment(s string) (Alignment, error) {
	for i, n := range alignmentNames {
		if strings.EqualFold(s, n) {
			return Alignment(i), nil
		}
	}
	return AlignStretch, fmt.Errorf("arbor: unknown alignment %q", s)
}

// Orientation selects the growth axis of a linear layout.
type Orientation uint8

const (
	Vertical   Orientation = iota // children stacked top to bottom
	Horizontal                    // children placed left to right
)

// --- helpers ---

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func clampAxis(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
