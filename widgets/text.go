package widgets

import (
	"github.com/oakui/oak/retained"
)

// DefaultFont is used by text-bearing widgets when none is set.
var DefaultFont = retained.Font{Family: "sans-serif", Size: 14}

// DefaultTextColor is opaque near-black.
var DefaultTextColor = retained.ARGB(0xff, 0x20, 0x20, 0x20)

// Text describes a single-line text label. A rebuild that changes the value
// marks the element's geometry and paint dirty; the next committed layout
// re-measures it through the tree's TextMeasurer.
type Text struct {
	K     string
	Value string
	Font  retained.Font
	Color retained.Color
}

// NewText describes a label with the default font and color.
func NewText(value string) *Text {
	return &Text{Value: value, Font: DefaultFont, Color: DefaultTextColor}
}

// WithKey sets an explicit identity key.
func (w *Text) WithKey(k string) *Text {
	w.K = k
	return w
}

func (w *Text) Key() string { return w.K }

func (w *Text) font() retained.Font {
	if w.Font.Size <= 0 {
		return DefaultFont
	}
	return w.Font
}

func (w *Text) color() retained.Color {
	if w.Color == 0 {
		return DefaultTextColor
	}
	return w.Color
}

func (w *Text) Build(cx *retained.BuildCtx) *retained.Element {
	return cx.NewElement(&textBehavior{text: w.Value, font: w.font(), color: w.color()})
}

func (w *Text) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*textBehavior)
	if !ok {
		return false
	}
	if b.text != w.Value || b.font != w.font() {
		b.text = w.Value
		b.font = w.font()
		el.Mark(retained.FlagGeometry | retained.FlagPaint)
	}
	if b.color != w.color() {
		b.color = w.color()
		el.Mark(retained.FlagPaint)
	}
	return true
}

// textBehavior retains a label's content and its committed baseline offset.
type textBehavior struct {
	text  string
	font  retained.Font
	color retained.Color

	// ascent bridges layout-measured metrics to paint. Written only during
	// committed passes so a speculative probe never shifts painted text.
	ascent float64
}

func (b *textBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	size := ctx.TextMeasurer().MeasureText(b.text, b.font)
	if !ctx.Speculative() {
		b.ascent = size.Height * 0.8
	}
	return c.Constrain(size)
}

func (b *textBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *textBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {
	ctx.Canvas().DrawText(b.text, retained.Point{X: 0, Y: b.ascent}, b.font, b.color)
}
