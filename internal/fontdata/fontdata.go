// Package fontdata maps font family names to embedded TrueType data shared by
// the renderer backends.
package fontdata

import (
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default is the family used when a family name is empty or unknown.
const Default = "goregular"

var families = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// TTF returns the font data for family and the family name actually used.
// Unknown families fall back to Default.
func TTF(family string) ([]byte, string) {
	name := strings.ToLower(strings.TrimSpace(family))
	if data, ok := families[name]; ok {
		return data, name
	}
	return goregular.TTF, Default
}

// Known reports whether family names an embedded font.
func Known(family string) bool {
	_, ok := families[strings.ToLower(strings.TrimSpace(family))]
	return ok
}
