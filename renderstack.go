package arbor

// RenderStack is the offset and clip bookkeeping shared by renderer
// backends. Offsets accumulate; clips are stored in absolute coordinates and
// intersect with the enclosing clip. Embed it and call Reset at the start of
// each frame.
type RenderStack struct {
	offset  Point
	offsets []Point
	clip    Rect
	clips   []Rect
}

// Reset empties both stacks and sets the outermost clip to viewport.
func (s *RenderStack) Reset(viewport Rect) {
	s.offset = Point{}
	s.offsets = s.offsets[:0]
	s.clip = viewport
	s.clips = s.clips[:0]
}

// PushOffset translates subsequent drawing by p.
func (s *RenderStack) PushOffset(p Point) {
	s.offsets = append(s.offsets, s.offset)
	s.offset = s.offset.Add(p)
}

// PopOffset restores the offset active before the matching PushOffset.
func (s *RenderStack) PopOffset() {
	n := len(s.offsets)
	if n == 0 {
		panic("arbor: PopOffset without PushOffset")
	}
	s.offset = s.offsets[n-1]
	s.offsets = s.offsets[:n-1]
}

// PushClip intersects the clip with r, given in offset-relative coordinates.
func (s *RenderStack) PushClip(r Rect) {
	s.clips = append(s.clips, s.clip)
	s.clip = s.clip.Intersect(r.Offset(s.offset))
}

// PopClip restores the clip active before the matching PushClip.
func (s *RenderStack) PopClip() {
	n := len(s.clips)
	if n == 0 {
		panic("arbor: PopClip without PushClip")
	}
	s.clip = s.clips[n-1]
	s.clips = s.clips[:n-1]
}

// IsClipEmpty reports whether nothing drawn now could be visible.
func (s *RenderStack) IsClipEmpty() bool {
	return s.clip.Empty()
}

// Offset returns the current absolute offset.
func (s *RenderStack) Offset() Point {
	return s.offset
}

// Clip returns the current absolute clip rectangle.
func (s *RenderStack) Clip() Rect {
	return s.clip
}

// Translate converts an offset-relative rectangle to absolute coordinates.
func (s *RenderStack) Translate(r Rect) Rect {
	return r.Offset(s.offset)
}

// Depth returns the number of pushed offsets and clips, for balance checks.
func (s *RenderStack) Depth() (offsets, clips int) {
	return len(s.offsets), len(s.clips)
}
