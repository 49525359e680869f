package arbor

import "testing"

// --- Size ---

func TestSizeClamp(t *testing.T) {
	tests := []struct {
		name     string
		s        Size
		min, max Size
		want     Size
	}{
		{"inside", Size{50, 50}, Size{0, 0}, Size{100, 100}, Size{50, 50}},
		{"above max", Size{150, 50}, Size{0, 0}, Size{100, 100}, Size{100, 50}},
		{"below min", Size{5, 5}, Size{10, 20}, Size{100, 100}, Size{10, 20}},
		{"min wins", Size{50, 50}, Size{80, 0}, Size{60, 100}, Size{80, 50}},
		{"infinite max", Size{1e6, 1}, Size{}, Size{Infinity, Infinity}, Size{1e6, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Clamp(tt.min, tt.max); got != tt.want {
				t.Errorf("Clamp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizeShrinkClampsAtZero(t *testing.T) {
	got := Size{10, 10}.Shrink(Thickness{Left: 8, Right: 8, Top: 1})
	if want := (Size{0, 9}); got != want {
		t.Errorf("Shrink = %v, want %v", got, want)
	}
	if !got.IsEmpty() {
		t.Error("zero-width size should be empty")
	}
}

// --- Rect ---

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{10, 10, 20, 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{29.9, 29.9, true},
		{30, 15, false},
		{15, 30, false},
		{9.9, 15, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 50, 50}, Rect{25, 25, 50, 50}, Rect{25, 25, 25, 25}},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, Rect{10, 10, 5, 5}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 0, 10, 10}, Rect{20, 0, 0, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectShrinkGrow(t *testing.T) {
	r := Rect{10, 10, 40, 40}
	th := Thickness{1, 2, 3, 4}
	if got, want := r.Shrink(th), (Rect{11, 12, 36, 34}); got != want {
		t.Errorf("Shrink = %v, want %v", got, want)
	}
	if got := r.Shrink(th).Grow(th); got != r {
		t.Errorf("Grow(Shrink) = %v, want %v", got, r)
	}
}

// --- Color ---

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#fff", ColorWhite, true},
		{"#000000", ColorBlack, true},
		{"#00000000", ColorTransparent, true},
		{" #ffffff ", ColorWhite, true},
		{"#ff", Color{}, false},
		{"#gggggg", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Errorf("ParseColor = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Alignment ---

func TestParseAlignment(t *testing.T) {
	for _, a := range []Alignment{AlignStretch, AlignStart, AlignCenter, AlignEnd} {
		got, err := ParseAlignment(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlignment(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("expected an error for an unknown alignment")
	}
}
