package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// ParseColor understands the colour strings shapes are stored with:
// "hsl(h, s%, l%)", "#rgb"/"#rrggbb"/"#rrggbbaa" and a few plain names.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		return parseHSL(s[len("hsl(") : len(s)-1])
	case strings.HasPrefix(s, "#"):
		switch len(s) {
		case 4, 5, 7, 9:
			if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
				return gg.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
			}
			return gg.Hex(s), nil
		}
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	return gg.RGBA{}, fmt.Errorf("unsupported colour %q", s)
}

var named = map[string]gg.RGBA{
	"black":       gg.Black,
	"white":       gg.White,
	"red":         gg.Red,
	"green":       gg.Green,
	"blue":        gg.Blue,
	"yellow":      gg.Yellow,
	"transparent": gg.Transparent,
}

func parseHSL(body string) (gg.RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return gg.RGBA{}, fmt.Errorf("hsl needs 3 components, got %d", len(parts))
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("hsl hue: %w", err)
	}
	sat, err := percent(parts[1])
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("hsl saturation: %w", err)
	}
	light, err := percent(parts[2])
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("hsl lightness: %w", err)
	}
	return gg.HSL(h, sat, light), nil
}

func percent(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// Color is ParseColor for callers that only want an image/color value and
// fall back to fallback on unparsable input.
func Color(s string, fallback color.Color) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c.Color()
}
