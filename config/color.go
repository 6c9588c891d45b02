package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a #rrggbb or #rgb hex string
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// MustColor parses a hex string known to be valid, panicking otherwise
func MustColor(hex string) colorful.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette returns the parsed dot colors indexed by label
// The config must have been validated
func (c *TrialConfig) Palette() [2]colorful.Color {
	return [2]colorful.Color{MustColor(c.DotColors[0]), MustColor(c.DotColors[1])}
}
