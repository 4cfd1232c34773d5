package gui

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"color-scene/internal/colorchange"
)

// Length is a CSS-like size: either pixels or a percentage of the parent.
type Length struct {
	Value   float32
	Percent bool
}

// Px returns a pixel length.
func Px(v float32) Length { return Length{Value: v} }

// IsZero reports whether the length is unset.
func (l Length) IsZero() bool { return l.Value == 0 }

// Resolve returns the length in pixels given the parent size.
func (l Length) Resolve(parent float32) float32 {
	if l.Percent {
		return parent * l.Value / 100
	}
	return l.Value
}

// ParseLength parses "200px", "200" (unitless is pixels) or "50%".
func ParseLength(s string) (Length, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 32)
		if err != nil || n < 0 || n > 100 {
			return Length{}, false
		}
		return Length{Value: float32(n), Percent: true}, true
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "px"))
	n, err := strconv.ParseFloat(s, 32)
	if err != nil || n < 0 {
		return Length{}, false
	}
	return Length{Value: float32(n)}, true
}

// MustLength is ParseLength for literals; it panics on a malformed value.
func MustLength(s string) Length {
	l, ok := ParseLength(s)
	if !ok {
		panic("gui: bad length " + strconv.Quote(s))
	}
	return l
}

var namedColors = map[string]colorchange.Color{
	"white": colorchange.RGB(1, 1, 1),
	"black": colorchange.RGB(0, 0, 0),
	"red":   colorchange.RGB(1, 0, 0),
	"green": colorchange.RGB(0, 1, 0),
	"blue":  colorchange.RGB(0, 0, 1),
	"gray":  colorchange.RGB(0.5, 0.5, 0.5),
}

// ParseColor parses a color name from namedColors, "#RGB" or "#RRGGBB".
func ParseColor(s string) (colorchange.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorchange.Color{}, false
	}
	return colorchange.Color{Color: c}, true
}
