package widgets

import (
	"github.com/oakui/oak/retained"
)

// ============================================================================
// Wrapper Modifiers
// ============================================================================
//
// Modifiers are transparent wrapper widgets sharing their child's identifier,
// so they are invisible to event addressing. Evaluation order is
// outer-to-inner: Modify applies its records left to right with the first
// record outermost, and Padding(Align(w)) reserves the padding before the
// alignment positions the child in what remains.

// Insets is per-edge spacing.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// UniformInsets applies the same spacing on every edge.
func UniformInsets(v float64) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

func (in Insets) horizontal() float64 { return in.Left + in.Right }
func (in Insets) vertical() float64   { return in.Top + in.Bottom }

// Padding describes a wrapper reserving space around its child.
type Padding struct {
	Insets Insets
	Child  retained.Widget
}

// Pad wraps a widget with uniform padding.
func Pad(v float64, child retained.Widget) *Padding {
	return &Padding{Insets: UniformInsets(v), Child: child}
}

// Key returns the child's key: the wrapper shares the child's identity.
func (w *Padding) Key() string {
	if w.Child == nil {
		return ""
	}
	return w.Child.Key()
}

func (w *Padding) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&paddingBehavior{insets: w.Insets})
	cx.ReconcileShared(el, w.Child)
	return el
}

func (w *Padding) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*paddingBehavior)
	if !ok {
		return false
	}
	if b.insets != w.Insets {
		b.insets = w.Insets
		el.Mark(retained.FlagGeometry)
	}
	cx.ReconcileShared(el, w.Child)
	return true
}

type paddingBehavior struct {
	insets Insets
}

func (b *paddingBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	kids := el.Children()
	if len(kids) == 0 {
		return c.Constrain(retained.Size{Width: b.insets.horizontal(), Height: b.insets.vertical()})
	}
	ch := kids[0]
	inner := el.LayoutChild(ctx, ch, c.Deflate(b.insets.horizontal(), b.insets.vertical()))
	el.Place(ctx, ch, retained.Point{X: b.insets.Left, Y: b.insets.Top})
	return c.Constrain(retained.Size{
		Width:  inner.Width + b.insets.horizontal(),
		Height: inner.Height + b.insets.vertical(),
	})
}

func (b *paddingBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *paddingBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *paddingBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}

// Align describes a wrapper positioning its child within the available box.
// X and Y run 0 (start) to 1 (end); 0.5 centers.
type Align struct {
	X, Y  float64
	Child retained.Widget
}

// Center wraps a widget centered on both axes.
func Center(child retained.Widget) *Align {
	return &Align{X: 0.5, Y: 0.5, Child: child}
}

// Key returns the child's key: the wrapper shares the child's identity.
func (w *Align) Key() string {
	if w.Child == nil {
		return ""
	}
	return w.Child.Key()
}

func (w *Align) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&alignBehavior{x: w.X, y: w.Y})
	cx.ReconcileShared(el, w.Child)
	return el
}

func (w *Align) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*alignBehavior)
	if !ok {
		return false
	}
	if b.x != w.X || b.y != w.Y {
		b.x, b.y = w.X, w.Y
		el.Mark(retained.FlagChildPositions)
	}
	cx.ReconcileShared(el, w.Child)
	return true
}

type alignBehavior struct {
	x, y float64
}

func (b *alignBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	kids := el.Children()
	if len(kids) == 0 {
		return c.Constrain(retained.Size{})
	}
	ch := kids[0]
	inner := el.LayoutChild(ctx, ch, retained.Constraints{
		MinWidth: 0, MaxWidth: c.MaxWidth,
		MinHeight: 0, MaxHeight: c.MaxHeight,
	})

	// Fill a bounded axis so there is room to align in; fall back to the
	// child's size on unconstrained axes.
	size := inner
	if c.BoundedWidth() {
		size.Width = c.MaxWidth
	}
	if c.BoundedHeight() {
		size.Height = c.MaxHeight
	}
	size = c.Constrain(size)

	el.Place(ctx, ch, retained.Point{
		X: (size.Width - inner.Width) * b.x,
		Y: (size.Height - inner.Height) * b.y,
	})
	return size
}

func (b *alignBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *alignBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *alignBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}

// SizedBox describes a wrapper forcing a fixed size on its child.
type SizedBox struct {
	Size  retained.Size
	Child retained.Widget
}

// Key returns the child's key: the wrapper shares the child's identity.
func (w *SizedBox) Key() string {
	if w.Child == nil {
		return ""
	}
	return w.Child.Key()
}

func (w *SizedBox) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&sizedBehavior{size: w.Size})
	cx.ReconcileShared(el, w.Child)
	return el
}

func (w *SizedBox) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*sizedBehavior)
	if !ok {
		return false
	}
	if b.size != w.Size {
		b.size = w.Size
		el.Mark(retained.FlagGeometry)
	}
	cx.ReconcileShared(el, w.Child)
	return true
}

type sizedBehavior struct {
	size retained.Size
}

func (b *sizedBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	size := c.Constrain(b.size)
	if kids := el.Children(); len(kids) > 0 {
		el.LayoutChild(ctx, kids[0], retained.Tight(size))
		el.Place(ctx, kids[0], retained.Point{})
	}
	return size
}

func (b *sizedBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *sizedBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *sizedBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}

// Spacer describes fixed anonymous filler inside a stack. It takes the
// anonymous identifier: spacers cannot be addressed by events.
type Spacer struct {
	Main float64
}

func (w *Spacer) Key() string { return retained.KeyAnonymous }

func (w *Spacer) Build(cx *retained.BuildCtx) *retained.Element {
	return cx.NewElement(&spacerBehavior{main: w.Main})
}

func (w *Spacer) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*spacerBehavior)
	if !ok {
		return false
	}
	if b.main != w.Main {
		b.main = w.Main
		el.Mark(retained.FlagGeometry)
	}
	return true
}

type spacerBehavior struct {
	main float64
}

func (b *spacerBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	return c.Constrain(retained.Size{Width: b.main, Height: b.main})
}

func (b *spacerBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *spacerBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}

// ============================================================================
// Modifier Records
// ============================================================================
//
// Modify attaches modifier records to a base description without nested
// generic wrapper types: the records stay queryable by capability through
// FindMod, and the reconciler sees ordinary transparent wrappers.

// Modifier is one record attachable to a widget description.
type Modifier interface {
	wrap(child retained.Widget) retained.Widget
}

// PadBy pads the widget by uniform spacing.
type PadBy struct{ V float64 }

func (m PadBy) wrap(child retained.Widget) retained.Widget {
	return &Padding{Insets: UniformInsets(m.V), Child: child}
}

// AlignAt positions the widget within the available box.
type AlignAt struct{ X, Y float64 }

func (m AlignAt) wrap(child retained.Widget) retained.Widget {
	return &Align{X: m.X, Y: m.Y, Child: child}
}

// FixedSize forces the widget's size.
type FixedSize struct{ Size retained.Size }

func (m FixedSize) wrap(child retained.Widget) retained.Widget {
	return &SizedBox{Size: m.Size, Child: child}
}

// modified carries the record list alongside the wrapped description.
type modified struct {
	base retained.Widget
	mods []Modifier
	retained.Widget
}

// Modify attaches modifier records to a description. Records apply
// outer-to-inner in the order given: the first is outermost.
func Modify(base retained.Widget, mods ...Modifier) retained.Widget {
	w := base
	for i := len(mods) - 1; i >= 0; i-- {
		w = mods[i].wrap(w)
	}
	return &modified{base: base, mods: mods, Widget: w}
}

// FindMod returns the first attached record of type T on a description
// produced by Modify.
func FindMod[T Modifier](w retained.Widget) (T, bool) {
	var zero T
	m, ok := w.(*modified)
	if !ok {
		return zero, false
	}
	for _, rec := range m.mods {
		if v, ok := rec.(T); ok {
			return v, true
		}
	}
	return zero, false
}
