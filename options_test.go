package arbor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

// --- Decoding ---

func TestDecodeOptionsOverridesDefaults(t *testing.T) {
	opts, err := DecodeOptions(`
width = 320
debug_outlines = true
log_level = "debug"
background = "#ff000080"

[font]
size = 20
`)
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if opts.Width != 320 || opts.Height != 480 {
		t.Errorf("size = %dx%d, want 320x480", opts.Width, opts.Height)
	}
	if !opts.DebugOutlines || opts.DebugMode {
		t.Errorf("debug flags = (%v, %v), want (false, true)", opts.DebugMode, opts.DebugOutlines)
	}
	if r, g, b, a := opts.Background.RGBA8(); r != 255 || g != 0 || b != 0 || a != 128 {
		t.Errorf("Background = %d,%d,%d,%d, want 255,0,0,128", r, g, b, a)
	}
	if opts.Font.Size != 20 || opts.Font.Family != DefaultFont.Family {
		t.Errorf("Font = %+v, want size 20 with the default family", opts.Font)
	}
	if lvl, _ := opts.Level(); lvl != log.DebugLevel {
		t.Errorf("Level = %v, want debug", lvl)
	}
}

func TestDecodeOptionsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero width", "width = 0"},
		{"negative dead zone", "drag_dead_zone = -1"},
		{"zero font size", "[font]\nsize = 0"},
		{"unknown level", `log_level = "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOptions(tt.data)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("err = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestDecodeOptionsSyntaxError(t *testing.T) {
	_, err := DecodeOptions("width = ")
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrInvalidOptions) {
		t.Error("a syntax error is not a validation error")
	}
}

func TestDecodeOptionsBadColor(t *testing.T) {
	if _, err := DecodeOptions(`background = "#12"`); err == nil {
		t.Error("expected an error for a malformed color")
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.toml")
	if err := os.WriteFile(path, []byte("height = 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Height != 200 {
		t.Errorf("Height = %d, want 200", opts.Height)
	}

	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDefaultOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v, want nil", err)
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	in := "#ff000080"
	var c Color
	if err := c.UnmarshalText([]byte(in)); err != nil {
		t.Fatal(err)
	}
	out, _ := c.MarshalText()
	if string(out) != in {
		t.Errorf("MarshalText = %s, want %s", out, in)
	}
}
