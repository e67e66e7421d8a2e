package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a CSS color ("#rgb", "#rrggbb", "hsl(h, s%, l%)",
// "hsla(h s% l% / a)") into an opaque NRGBA.
func ParseColor(css string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(css))
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, css)
		}
		return toNRGBA(c), nil
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s, css)
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, css)
}

func parseHSL(s, orig string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) < 3 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	sat, err := parsePercent(fields[1])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	light, err := parsePercent(fields[2])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	h = math.Mod(math.Mod(h, 360)+360, 360)
	return toNRGBA(colorful.Hsl(h, sat, light)), nil
}

func parsePercent(f string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
	if err != nil {
		return 0, err
	}
	v /= 100
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v, nil
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
