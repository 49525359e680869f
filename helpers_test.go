package arbor

import (
	"fmt"
	"testing"
)

// --- Recording renderer ---

type fakeText struct {
	text     string
	size     Size
	disposed bool
}

func (t *fakeText) Text() string { return t.text }
func (t *fakeText) Size() Size   { return t.size }
func (t *fakeText) Dispose()     { t.disposed = true }

// fakeRenderer records primitive calls in absolute coordinates. Text
// measures 8 units per byte and 16 units high.
type fakeRenderer struct {
	RenderStack

	calls    []string
	fills    []Rect
	strokes  []Rect
	texts    []Point
	created  int
	disposed int
	live     []*fakeText
	frames   int
}

func newFakeRenderer() *fakeRenderer {
	r := &fakeRenderer{}
	r.Reset(Rect{Width: 1 << 20, Height: 1 << 20})
	return r
}

func (r *fakeRenderer) BeginFrame(viewport Rect) {
	r.Reset(viewport)
	r.calls = r.calls[:0]
	r.fills = r.fills[:0]
	r.strokes = r.strokes[:0]
	r.texts = r.texts[:0]
	r.frames++
}

func (r *fakeRenderer) EndFrame() {}

func (r *fakeRenderer) BeginClip() { r.calls = append(r.calls, "begin-clip") }
func (r *fakeRenderer) EndClip()   { r.calls = append(r.calls, "end-clip") }

func (r *fakeRenderer) FillRect(rect Rect, c Color) {
	abs := r.Translate(rect)
	r.fills = append(r.fills, abs)
	r.calls = append(r.calls, fmt.Sprintf("fill %v", abs))
}

func (r *fakeRenderer) StrokeRect(rect Rect, c Color) {
	abs := r.Translate(rect)
	r.strokes = append(r.strokes, abs)
	r.calls = append(r.calls, fmt.Sprintf("stroke %v", abs))
}

func (r *fakeRenderer) DrawText(t FormattedText, p Point, c Color) {
	abs := p.Add(r.Offset())
	r.texts = append(r.texts, abs)
	r.calls = append(r.calls, fmt.Sprintf("text %q %v", t.Text(), abs))
}

func (r *fakeRenderer) CreateFormattedText(s string, f Font) FormattedText {
	r.created++
	t := &fakeText{text: s, size: Size{float64(8 * len(s)), 16}}
	r.live = append(r.live, t)
	return t
}

// drawCalls counts fills, strokes and texts.
func (r *fakeRenderer) drawCalls() int {
	return len(r.fills) + len(r.strokes) + len(r.texts)
}

func (r *fakeRenderer) liveTexts() int {
	n := 0
	for _, t := range r.live {
		if !t.disposed {
			n++
		}
	}
	return n
}

// --- Scaffolding ---

func newTestCanvas(w, h int) (*Canvas, *fakeRenderer) {
	r := newFakeRenderer()
	opts := DefaultOptions()
	opts.Width, opts.Height = w, h
	opts.Background = ColorTransparent
	return NewCanvas(r, opts), r
}

// sized is a leaf with a fixed desired content size.
type sized struct {
	size Size
}

func (s *sized) MeasureContent(v *Visual, available Size) Size {
	return s.size.Grow(v.Padding.Get())
}

func newSized(name string, w, h float64) *Visual {
	return NewVisual(name, &sized{Size{w, h}})
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for %s, got none", what)
		}
	}()
	fn()
}
