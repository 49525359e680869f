package arbor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// ErrInvalidOptions is wrapped by every error returned from Options.Validate.
var ErrInvalidOptions = errors.New("arbor: invalid options")

// Options configures a Canvas. The TOML form uses the snake_case keys shown
// in the struct tags; [font] is a sub-table.
type Options struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	DebugMode     bool    `toml:"debug_mode"`
	DebugOutlines bool    `toml:"debug_outlines"`
	LogLevel      string  `toml:"log_level"`
	DragDeadZone  float64 `toml:"drag_dead_zone"`
	Background    Color   `toml:"background"`
	Font          Font    `toml:"font"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:        640,
		Height:       480,
		LogLevel:     "warn",
		DragDeadZone: defaultDragDeadZone,
		Background:   ColorWhite,
		Font:         DefaultFont,
	}
}

// DecodeOptions parses TOML data on top of DefaultOptions and validates the
// result.
func DecodeOptions(data string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(data, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger().Warn("unknown option keys ignored", "keys", strings.Join(keys, ","))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptions reads and decodes a TOML options file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	opts, err := DecodeOptions(string(data))
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Validate reports the first unusable setting.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidOptions, o.Width, o.Height)
	case o.DragDeadZone < 0:
		return fmt.Errorf("%w: drag_dead_zone %v is negative", ErrInvalidOptions, o.DragDeadZone)
	case o.Font.Size <= 0:
		return fmt.Errorf("%w: font size %v must be positive", ErrInvalidOptions, o.Font.Size)
	}
	if _, err := o.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Level returns LogLevel as a log level. An empty string means warn.
func (o Options) Level() (log.Level, error) {
	if o.LogLevel == "" {
		return log.WarnLevel, nil
	}
	return log.ParseLevel(o.LogLevel)
}

// UnmarshalText parses the forms accepted by ParseColor so colors can be
// written as strings in TOML files.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText formats the color as "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	r, g, b, a := c.RGBA8()
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)), nil
}
