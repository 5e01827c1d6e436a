package widgets

import (
	"github.com/oakui/oak/retained"
)

// Button colors for the idle/hover/pressed states.
var (
	ButtonFill        = retained.ARGB(0xff, 0xe6, 0xe6, 0xe6)
	ButtonFillHover   = retained.ARGB(0xff, 0xd4, 0xd4, 0xd4)
	ButtonFillPressed = retained.ARGB(0xff, 0xbf, 0xbf, 0xbf)
	ButtonFocusRing   = retained.ARGB(0xff, 0x4a, 0x90, 0xd9)
)

// buttonPad is the label inset on each side.
const (
	buttonPadX = 12.0
	buttonPadY = 6.0
)

// Button describes a clickable, focusable push button. OnClick runs inside
// the event pass, so it may mark state dirty and request rebuilds through
// the context.
type Button struct {
	K       string
	Label   string
	Font    retained.Font
	OnClick func(ctx *retained.EventCtx)
}

// NewButton describes a button with the default font.
func NewButton(label string, onClick func(ctx *retained.EventCtx)) *Button {
	return &Button{Label: label, Font: DefaultFont, OnClick: onClick}
}

// WithKey sets an explicit identity key.
func (w *Button) WithKey(k string) *Button {
	w.K = k
	return w
}

func (w *Button) Key() string { return w.K }

func (w *Button) font() retained.Font {
	if w.Font.Size <= 0 {
		return DefaultFont
	}
	return w.Font
}

func (w *Button) Build(cx *retained.BuildCtx) *retained.Element {
	return cx.NewElement(&buttonBehavior{label: w.Label, font: w.font(), onClick: w.OnClick})
}

func (w *Button) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*buttonBehavior)
	if !ok {
		return false
	}
	b.onClick = w.OnClick
	if b.label != w.Label || b.font != w.font() {
		b.label = w.Label
		b.font = w.font()
		el.Mark(retained.FlagGeometry | retained.FlagPaint)
	}
	return true
}

// buttonBehavior retains a button's interaction state across rebuilds.
type buttonBehavior struct {
	label   string
	font    retained.Font
	onClick func(ctx *retained.EventCtx)

	hovered bool
	pressed bool
	focused bool
	ascent  float64
}

func (b *buttonBehavior) AcceptsFocus() bool { return true }

func (b *buttonBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	text := ctx.TextMeasurer().MeasureText(b.label, b.font)
	if !ctx.Speculative() {
		b.ascent = text.Height * 0.8
	}
	return c.Constrain(retained.Size{
		Width:  text.Width + 2*buttonPadX,
		Height: text.Height + 2*buttonPadY,
	})
}

func (b *buttonBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	switch e := ev.(type) {
	case *retained.PointerEvent:
		b.pointerEvent(ctx, el, e)
	case *retained.KeyEvent:
		if ctx.Phase() == retained.PhaseTarget && e.Kind() == retained.EventKeyDown &&
			(e.Key == "Enter" || e.Key == " ") {
			b.click(ctx, el)
			ctx.SetHandled()
		}
	case *retained.FocusEvent:
		b.focused = e.Kind() == retained.EventFocusIn
		ctx.RequestRepaint(el)
	}
}

func (b *buttonBehavior) pointerEvent(ctx *retained.EventCtx, el *retained.Element, ev *retained.PointerEvent) {
	if ctx.Phase() != retained.PhaseTarget {
		return
	}
	switch ev.Kind() {
	case retained.EventPointerEnter:
		b.hovered = true
		ctx.RequestRepaint(el)
	case retained.EventPointerExit:
		b.hovered = false
		b.pressed = false
		ctx.RequestRepaint(el)
	case retained.EventPointerDown:
		if ev.Button != retained.ButtonLeft {
			return
		}
		b.pressed = true
		ctx.CapturePointer()
		ctx.RequestFocus()
		ctx.RequestRepaint(el)
		ctx.SetHandled()
	case retained.EventPointerUp:
		if !b.pressed {
			return
		}
		b.pressed = false
		ctx.ReleasePointer()
		ctx.RequestRepaint(el)
		// Release outside the bounds cancels the click.
		if (retained.Rect{X: 0, Y: 0, Width: el.Size().Width, Height: el.Size().Height}).Contains(ev.Local) {
			b.click(ctx, el)
		}
		ctx.SetHandled()
	}
}

func (b *buttonBehavior) click(ctx *retained.EventCtx, el *retained.Element) {
	if b.onClick != nil {
		b.onClick(ctx)
	}
}

func (b *buttonBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {
	fill := ButtonFill
	if b.pressed {
		fill = ButtonFillPressed
	} else if b.hovered {
		fill = ButtonFillHover
	}
	bounds := retained.Rect{X: 0, Y: 0, Width: el.Size().Width, Height: el.Size().Height}
	ctx.Canvas().FillRect(bounds, fill)
	if b.focused {
		ctx.Canvas().StrokeRect(bounds, ButtonFocusRing, 1)
	}
	ctx.Canvas().DrawText(b.label,
		retained.Point{X: buttonPadX, Y: buttonPadY + b.ascent}, b.font, DefaultTextColor)
}
