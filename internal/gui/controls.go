package gui

import (
	"github.com/chewxy/math32"

	"color-scene/internal/colorchange"
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// HorizontalAlignment places a control inside the width of its parent.
type HorizontalAlignment int

const (
	AlignStretch HorizontalAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Control is anything a StackPanel can hold.
type Control interface {
	base() *ControlBase
}

// ControlBase carries the sizing shared by all controls. Bounds is written by StackPanel.Layout.
type ControlBase struct {
	Name                string
	Width               Length
	Height              Length
	HorizontalAlignment HorizontalAlignment
	Bounds              Rect
}

func (b *ControlBase) base() *ControlBase { return b }

// TextBlock is a line of static text.
type TextBlock struct {
	ControlBase
	Text                    string
	Color                   colorchange.Color
	FontSize                Length
	TextHorizontalAlignment HorizontalAlignment
	// ScaledFontSize is FontSize after the panel's layout scale.
	ScaledFontSize float32
}

// NewTextBlock returns a white, left-aligned text block.
func NewTextBlock(name, text string) *TextBlock {
	return &TextBlock{
		ControlBase: ControlBase{Name: name},
		Text:        text,
		Color:       colorchange.RGB(1, 1, 1),
		FontSize:    Px(18),
	}
}

// ColorPicker holds the current color and notifies observers when it changes.
type ColorPicker struct {
	ControlBase
	value     colorchange.Color
	observers []func(colorchange.Color)
}

// NewColorPicker returns a picker whose value is black.
func NewColorPicker(name string) *ColorPicker {
	return &ColorPicker{ControlBase: ControlBase{Name: name}}
}

// Value returns the current color.
func (p *ColorPicker) Value() colorchange.Color {
	return p.value
}

// SetValue stores c and, when it differs from the current value, calls every observer in
// registration order. Returns whether observers ran.
func (p *ColorPicker) SetValue(c colorchange.Color) bool {
	if c == p.value {
		return false
	}
	p.value = c
	for _, fn := range p.observers {
		fn(c)
	}
	return true
}

// OnValueChanged registers fn to run on every change.
func (p *ColorPicker) OnValueChanged(fn func(colorchange.Color)) {
	p.observers = append(p.observers, fn)
}

// StackPanel lays its controls out top to bottom.
type StackPanel struct {
	controls []Control
	scale    float32
}

// NewStackPanel returns an empty panel.
func NewStackPanel() *StackPanel {
	return &StackPanel{scale: 1}
}

// AddControl appends c. Controls are stacked in insertion order.
func (p *StackPanel) AddControl(c Control) {
	p.controls = append(p.controls, c)
}

// Controls returns the panel's children.
func (p *StackPanel) Controls() []Control {
	return p.controls
}

// Scale is the uniform factor applied by the last Layout (1 when everything fits).
func (p *StackPanel) Scale() float32 {
	return p.scale
}

// Layout assigns Bounds to every control inside bounds. Sizes are resolved against bounds; when
// the stack is larger than bounds, every control (and font size) shrinks by the same factor so
// proportions are kept. Controls without a height take no space.
func (p *StackPanel) Layout(bounds Rect) {
	var natW, natH float32
	for _, c := range p.controls {
		b := c.base()
		w := bounds.Width
		if !b.Width.IsZero() && b.HorizontalAlignment != AlignStretch {
			w = b.Width.Resolve(bounds.Width)
		}
		natW = math32.Max(natW, w)
		natH += b.Height.Resolve(bounds.Height)
	}

	scale := float32(1)
	if natW > bounds.Width && natW > 0 {
		scale = bounds.Width / natW
	}
	if natH > bounds.Height && natH > 0 {
		scale = math32.Min(scale, bounds.Height/natH)
	}
	p.scale = scale

	y := bounds.Y
	for _, c := range p.controls {
		b := c.base()
		h := b.Height.Resolve(bounds.Height) * scale
		w := bounds.Width
		if !b.Width.IsZero() && b.HorizontalAlignment != AlignStretch {
			w = b.Width.Resolve(bounds.Width) * scale
		}
		x := bounds.X
		switch b.HorizontalAlignment {
		case AlignCenter:
			x += (bounds.Width - w) / 2
		case AlignRight:
			x += bounds.Width - w
		}
		b.Bounds = Rect{X: x, Y: y, Width: w, Height: h}
		y += h

		if tb, ok := c.(*TextBlock); ok {
			tb.ScaledFontSize = tb.FontSize.Resolve(bounds.Height) * scale
		}
	}
}
