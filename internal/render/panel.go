package render

import (
	"github.com/chewxy/math32"
	"github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"color-scene/internal/colorchange"
	"color-scene/internal/gui"
	"color-scene/internal/scene"
)

const (
	// panelFraction is the panel edge length relative to the screen height.
	panelFraction = 0.45
	panelPadding  = 10
	// hueBarReserve is the room raygui's color picker takes to the right of its bounds
	// for the hue bar.
	hueBarReserve = 30
)

var panelBackground = rl.NewColor(20, 20, 28, 200)

// panelView draws the GUI plane's panel as a screen-space overlay anchored at the plane's
// projected position.
type panelView struct{}

func newPanelView() *panelView {
	return &panelView{}
}

func (v *panelView) draw(plane *scene.GUIPlane, anchor rl.Vector2) {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	size := math32.Floor(screenH * panelFraction)

	x := clamp(anchor.X-size/2, 0, screenW-size)
	y := clamp(anchor.Y-size/2, 0, screenH-size)
	rl.DrawRectangleRec(rl.NewRectangle(x, y, size, size), panelBackground)

	inner := gui.Rect{
		X:      x + panelPadding,
		Y:      y + panelPadding,
		Width:  size - 2*panelPadding - hueBarReserve,
		Height: size - 2*panelPadding,
	}
	plane.Panel.Layout(inner)

	for _, c := range plane.Panel.Controls() {
		switch ctl := c.(type) {
		case *gui.TextBlock:
			drawTextBlock(ctl)
		case *gui.ColorPicker:
			drawColorPicker(ctl)
		}
	}
}

func drawTextBlock(tb *gui.TextBlock) {
	fontSize := int32(tb.ScaledFontSize)
	if fontSize < 10 {
		fontSize = 10
	}
	b := tb.Bounds
	w := float32(rl.MeasureText(tb.Text, fontSize))
	x := b.X
	switch tb.TextHorizontalAlignment {
	case gui.AlignCenter:
		x += (b.Width - w) / 2
	case gui.AlignRight:
		x += b.Width - w
	}
	y := b.Y + (b.Height-float32(fontSize))/2
	rl.DrawText(tb.Text, int32(x), int32(y), fontSize, colorOf(tb.Color))
}

// drawColorPicker runs the raygui picker and pushes a changed value into the model, which fires
// the picker's observers synchronously.
func drawColorPicker(p *gui.ColorPicker) {
	b := p.Bounds
	side := math32.Min(b.Width, b.Height)
	bounds := rl.NewRectangle(b.X+(b.Width-side)/2, b.Y+(b.Height-side)/2, side, side)

	current := p.Value().RGBA8()
	picked := raygui.ColorPicker(bounds, "", current)
	if picked.R != current.R || picked.G != current.G || picked.B != current.B {
		p.SetValue(colorchange.FromRGBA(picked))
	}
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		return lo
	}
	return math32.Max(lo, math32.Min(v, hi))
}
