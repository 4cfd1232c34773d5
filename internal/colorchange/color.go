package colorchange

import (
	"encoding/json"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with components in [0,1], as produced by the color picker.
// It serializes as {"r":..,"g":..,"b":..} to match the ColorRGB input type of the API.
type Color struct {
	colorful.Color
}

// RGB returns a Color from float components.
func RGB(r, g, b float64) Color {
	return Color{colorful.Color{R: r, G: g, B: b}}
}

// FromRGBA converts any color.Color, dropping alpha.
func FromRGBA(c color.Color) Color {
	cc, _ := colorful.MakeColor(c)
	return Color{cc}
}

// RGBA8 returns the 8-bit components with full alpha, clamped to range.
func (c Color) RGBA8() color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

type rgbJSON struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(rgbJSON{R: c.R, G: c.G, B: c.B})
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var v rgbJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.Color = colorful.Color{R: v.R, G: v.G, B: v.B}
	return nil
}
