package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"color-scene/internal/colorchange"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"200px", Px(200), true},
		{" 800 ", Px(800), true},
		{"50%", Length{Value: 50, Percent: true}, true},
		{"150%", Length{}, false},
		{"-3px", Length{}, false},
		{"wide", Length{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, float32(100), MustLength("25%").Resolve(400))
	assert.Panics(t, func() { MustLength("nope") })
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("White")
	require.True(t, ok)
	assert.Equal(t, colorchange.RGB(1, 1, 1), c)

	c, ok = ParseColor("#f00")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", c.Hex())

	_, ok = ParseColor("not-a-color")
	assert.False(t, ok)
}

func TestPickerNotifiesOnlyOnChange(t *testing.T) {
	p := NewColorPicker("picker")
	var got []colorchange.Color
	p.OnValueChanged(func(c colorchange.Color) { got = append(got, c) })

	assert.False(t, p.SetValue(colorchange.RGB(0, 0, 0)), "same as initial value")
	assert.True(t, p.SetValue(colorchange.RGB(1, 0, 0)))
	assert.False(t, p.SetValue(colorchange.RGB(1, 0, 0)))
	assert.True(t, p.SetValue(colorchange.RGB(0, 0, 1)))

	assert.Equal(t, []colorchange.Color{colorchange.RGB(1, 0, 0), colorchange.RGB(0, 0, 1)}, got)
	assert.Equal(t, colorchange.RGB(0, 0, 1), p.Value())
}

func TestStackLayoutScalesToFit(t *testing.T) {
	header := NewTextBlock("header", "Color GUI")
	header.Height = MustLength("200px")
	header.FontSize = MustLength("200")
	picker := NewColorPicker("picker")
	picker.Width = MustLength("800px")
	picker.Height = MustLength("800px")
	picker.HorizontalAlignment = AlignCenter

	p := NewStackPanel()
	p.AddControl(header)
	p.AddControl(picker)
	p.Layout(Rect{X: 10, Y: 20, Width: 400, Height: 500})

	// 1000px of stack in 500px of height: everything halves.
	assert.Equal(t, float32(0.5), p.Scale())
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 400, Height: 100}, header.Bounds)
	assert.Equal(t, float32(100), header.ScaledFontSize)
	assert.Equal(t, Rect{X: 10, Y: 120, Width: 400, Height: 400}, picker.Bounds)
}

func TestStackLayoutNaturalSize(t *testing.T) {
	a := NewTextBlock("a", "A")
	a.Height = Px(30)
	b := NewColorPicker("b")
	b.Width = Px(100)
	b.Height = Px(100)
	b.HorizontalAlignment = AlignRight

	p := NewStackPanel()
	p.AddControl(a)
	p.AddControl(b)
	p.Layout(Rect{Width: 300, Height: 300})

	assert.Equal(t, float32(1), p.Scale())
	assert.Equal(t, Rect{Width: 300, Height: 30}, a.Bounds)
	assert.Equal(t, Rect{X: 200, Y: 30, Width: 100, Height: 100}, b.Bounds)
	assert.Len(t, p.Controls(), 2)
}
