// Package widgets provides the basic widget set for oak's retained pipeline:
// stacks, text, buttons, wrapper modifiers, scrolling, and a probing grid.
// Widget values are declarative descriptions reconciled into retained
// elements each rebuild; the behavior types attached to the elements carry
// the persistent state.
package widgets

import (
	"github.com/oakui/oak/retained"
)

// axis selects a stack's main direction.
type axis uint8

const (
	axisVertical axis = iota
	axisHorizontal
)

// Stack lays out children along one axis at their natural sizes, separated
// by an optional gap. It routes addressed events to children and resolves
// move-focus requests among them in declaration order.
type Stack struct {
	K        string
	Gap      float64
	Children []retained.Widget

	axis axis
}

// VStack describes a top-to-bottom stack.
func VStack(children ...retained.Widget) *Stack {
	return &Stack{Children: children, axis: axisVertical}
}

// HStack describes a left-to-right stack.
func HStack(children ...retained.Widget) *Stack {
	return &Stack{Children: children, axis: axisHorizontal}
}

// WithKey sets an explicit identity key.
func (w *Stack) WithKey(k string) *Stack {
	w.K = k
	return w
}

// WithGap sets the spacing between children.
func (w *Stack) WithGap(g float64) *Stack {
	w.Gap = g
	return w
}

func (w *Stack) Key() string { return w.K }

func (w *Stack) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&stackBehavior{axis: w.axis, gap: w.Gap})
	cx.Reconcile(el, w.Children)
	return el
}

func (w *Stack) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*stackBehavior)
	if !ok || b.axis != w.axis {
		return false
	}
	if b.gap != w.Gap {
		b.gap = w.Gap
		el.Mark(retained.FlagGeometry)
	}
	cx.Reconcile(el, w.Children)
	return true
}

// stackBehavior is the retained logic for Stack elements.
type stackBehavior struct {
	axis axis
	gap  float64
}

func (b *stackBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	var main, cross float64
	kids := el.Children()

	childC := retained.Constraints{MinWidth: 0, MaxWidth: c.MaxWidth, MinHeight: 0, MaxHeight: c.MaxHeight}
	if b.axis == axisVertical {
		childC.MaxHeight = retained.Inf
	} else {
		childC.MaxWidth = retained.Inf
	}

	for i, ch := range kids {
		size := el.LayoutChild(ctx, ch, childC)
		if b.axis == axisVertical {
			el.Place(ctx, ch, retained.Point{X: 0, Y: main})
			main += size.Height
			if size.Width > cross {
				cross = size.Width
			}
		} else {
			el.Place(ctx, ch, retained.Point{X: main, Y: 0})
			main += size.Width
			if size.Height > cross {
				cross = size.Height
			}
		}
		if i < len(kids)-1 {
			main += b.gap
		}
	}

	if b.axis == axisVertical {
		return c.Constrain(retained.Size{Width: cross, Height: main})
	}
	return c.Constrain(retained.Size{Width: main, Height: cross})
}

func (b *stackBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	mf, ok := ev.(*retained.MoveFocusEvent)
	if !ok || ctx.Handled() || ctx.Phase() == retained.PhaseCapture {
		return
	}
	if b.resolveMoveFocus(ctx, el, mf.Direction) {
		ctx.SetHandled()
	}
}

// resolveMoveFocus picks the next focusable sibling after the child the
// request bubbled through. Returns false when no eligible sibling exists, so
// the request keeps bubbling to the next ancestor container.
func (b *stackBehavior) resolveMoveFocus(ctx *retained.EventCtx, el *retained.Element, dir retained.FocusDirection) bool {
	kids := el.Children()
	from := ctx.NextOnPath()
	idx := -1
	for i, ch := range kids {
		if ch.ID() != retained.Anonymous && ch.ID() == from {
			idx = i
			break
		}
	}

	base := ctx.Path()
	if dir == retained.FocusNext {
		for i := idx + 1; i < len(kids); i++ {
			if path, ok := retained.FirstFocusable(kids[i], base.Child(kids[i].ID())); ok {
				ctx.RequestFocusPath(path)
				return true
			}
		}
	} else {
		start := idx - 1
		if idx < 0 {
			start = len(kids) - 1
		}
		for i := start; i >= 0; i-- {
			if path, ok := retained.LastFocusable(kids[i], base.Child(kids[i].ID())); ok {
				ctx.RequestFocusPath(path)
				return true
			}
		}
	}
	return false
}

func (b *stackBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *stackBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {
	// Stacks draw nothing of their own; children paint themselves.
}
