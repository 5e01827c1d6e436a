package widgets

import (
	"github.com/oakui/oak/retained"
)

// scrollLineHeight converts wheel ticks to logical units.
const scrollLineHeight = 20.0

// Scroll describes a clipping vertical viewport over one child. The scroll
// offset is retained across rebuilds; descendants scrolled out of the
// viewport are excluded from pointer routing by the clip (the introspection
// query HitTestAll still sees them).
type Scroll struct {
	K     string
	Child retained.Widget
}

// NewScroll describes a viewport over child.
func NewScroll(child retained.Widget) *Scroll {
	return &Scroll{Child: child}
}

// WithKey sets an explicit identity key.
func (w *Scroll) WithKey(k string) *Scroll {
	w.K = k
	return w
}

func (w *Scroll) Key() string { return w.K }

func (w *Scroll) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&scrollBehavior{})
	el.SetClips(true)
	cx.Reconcile(el, []retained.Widget{w.Child})
	return el
}

func (w *Scroll) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	_, ok := el.Behavior().(*scrollBehavior)
	if !ok {
		return false
	}
	cx.Reconcile(el, []retained.Widget{w.Child})
	return true
}

// scrollBehavior retains the viewport offset and extents.
type scrollBehavior struct {
	offset  float64
	content float64
	view    float64
}

// Offset returns the current scroll offset, for persistence.
func (b *scrollBehavior) Offset() float64 { return b.offset }

// SetOffset restores a persisted scroll offset; the next committed layout
// clamps and applies it.
func (b *scrollBehavior) SetOffset(v float64) { b.offset = v }

func (b *scrollBehavior) maxOffset() float64 {
	if b.content <= b.view {
		return 0
	}
	return b.content - b.view
}

func (b *scrollBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	kids := el.Children()
	if len(kids) == 0 {
		return c.Constrain(retained.Size{})
	}
	ch := kids[0]
	inner := el.LayoutChild(ctx, ch, retained.Constraints{
		MinWidth: 0, MaxWidth: c.MaxWidth,
		MinHeight: 0, MaxHeight: retained.Inf,
	})
	size := c.Constrain(retained.Size{Width: inner.Width, Height: inner.Height})

	if !ctx.Speculative() {
		b.content = inner.Height
		b.view = size.Height
		b.offset = clampOffset(b.offset, b.maxOffset())
	}
	el.Place(ctx, ch, retained.Point{X: 0, Y: -b.offset})
	return size
}

func (b *scrollBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	pe, ok := ev.(*retained.PointerEvent)
	if !ok || pe.Kind() != retained.EventPointerScroll || ctx.Handled() {
		return
	}
	if ctx.Phase() == retained.PhaseCapture {
		return
	}
	next := clampOffset(b.offset-pe.ScrollY*scrollLineHeight, b.maxOffset())
	if next == b.offset {
		return
	}
	b.offset = next
	// Children keep their sizes; only their positions move.
	ctx.RequestRelayout(el, retained.FlagChildPositions)
	ctx.SetHandled()
}

func (b *scrollBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *scrollBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}

func clampOffset(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
