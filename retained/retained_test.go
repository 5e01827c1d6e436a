package retained

// Shared test scaffolding: a recording behavior that counts layout passes and
// logs events, a recording canvas, stub surfaces, and a warn-capturing logger.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// recBehavior is the workhorse test behavior: a fixed-size box that lays its
// children out at fixed offsets, counts committed and speculative layout
// invocations, and records every event it sees into a shared log.
type recBehavior struct {
	name  string
	size  Size
	place []Point

	committed int
	probed    int

	events   *[]string
	onEvent  func(ctx *EventCtx, el *Element, ev Event)
	canFocus bool
	disposed *int
}

func (b *recBehavior) Layout(ctx *LayoutCtx, el *Element, c Constraints) Size {
	if ctx.Speculative() {
		b.probed++
	} else {
		b.committed++
	}
	for i, ch := range el.Children() {
		el.LayoutChild(ctx, ch, Unbounded())
		var at Point
		if i < len(b.place) {
			at = b.place[i]
		}
		el.Place(ctx, ch, at)
	}
	return c.Constrain(b.size)
}

func (b *recBehavior) Event(ctx *EventCtx, el *Element, ev Event) {
	if b.events != nil {
		*b.events = append(*b.events, fmt.Sprintf("%s %s %s", b.name, ctx.Phase(), ev.Kind()))
	}
	if b.onEvent != nil {
		b.onEvent(ctx, el, ev)
	}
}

func (b *recBehavior) RouteEvent(ctx *EventCtx, el *Element, ev Event) {
	ctx.RouteToChild(el, ev)
}

func (b *recBehavior) AcceptsFocus() bool { return b.canFocus }

func (b *recBehavior) Dispose(el *Element) {
	if b.disposed != nil {
		*b.disposed++
	}
}

func (b *recBehavior) Paint(ctx *PaintCtx, el *Element) {
	ctx.Canvas().FillRect(Rect{0, 0, el.Size().Width, el.Size().Height}, 0xff000000)
}

// noRouteBehavior is a container that forgets to forward routed events, for
// exercising the missing-RouteEvent defect path.
type noRouteBehavior struct {
	size Size
}

func (b *noRouteBehavior) Layout(ctx *LayoutCtx, el *Element, c Constraints) Size {
	for _, ch := range el.Children() {
		el.LayoutChild(ctx, ch, Unbounded())
		el.Place(ctx, ch, Point{})
	}
	return c.Constrain(b.size)
}

func (b *noRouteBehavior) Event(ctx *EventCtx, el *Element, ev Event) {}

func (b *noRouteBehavior) Paint(ctx *PaintCtx, el *Element) {}

// shapedBehavior refines hit-testing with a custom shape predicate.
type shapedBehavior struct {
	recBehavior
	shape func(local Point) bool
}

func (b *shapedBehavior) HitShape(el *Element, local Point) bool { return b.shape(local) }

// addChild wires a child under a parent directly, bypassing reconciliation.
func addChild(parent, child *Element) {
	parent.children = append(parent.children, child)
}

// layoutTree runs one committed layout pass over a hand-built tree.
func layoutTree(t *testing.T, root *Element, size Size) *Tree {
	t.Helper()
	tr := NewTree()
	tr.root = root
	tr.Layout(Tight(size))
	return tr
}

// recCanvas records paint commands as strings.
type recCanvas struct {
	ops []string
}

func (c *recCanvas) Save()                  { c.ops = append(c.ops, "save") }
func (c *recCanvas) Restore()               { c.ops = append(c.ops, "restore") }
func (c *recCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, fmt.Sprintf("translate %.1f,%.1f", dx, dy))
}
func (c *recCanvas) ClipRect(r Rect) { c.ops = append(c.ops, fmt.Sprintf("clip %v", r)) }
func (c *recCanvas) FillRect(r Rect, color Color) {
	c.ops = append(c.ops, fmt.Sprintf("fill %v", r))
}
func (c *recCanvas) StrokeRect(r Rect, color Color, width float64) {
	c.ops = append(c.ops, fmt.Sprintf("stroke %v", r))
}
func (c *recCanvas) DrawText(text string, origin Point, font Font, color Color) {
	c.ops = append(c.ops, fmt.Sprintf("text %q", text))
}
func (c *recCanvas) DrawSurface(s Surface, at Rect) {
	c.ops = append(c.ops, fmt.Sprintf("surface %v", at))
}

// stubSurface is an inert retained surface.
type stubSurface struct {
	released bool
}

func (s *stubSurface) Release() { s.released = true }

// stubSurfaces hands out stub surfaces, optionally failing every acquire.
type stubSurfaces struct {
	acquired int
	fail     bool
}

func (p *stubSurfaces) AcquireSurface(size Size, scale float64) (Surface, error) {
	if p.fail {
		return nil, fmt.Errorf("surface pool exhausted")
	}
	p.acquired++
	return &stubSurface{}, nil
}

// captureHandler records log messages for assertions.
type captureHandler struct {
	msgs *[]string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	*h.msgs = append(*h.msgs, r.Message)
	return nil
}
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// captureLogs installs a recording logger for the test's duration.
func captureLogs(t *testing.T) *[]string {
	t.Helper()
	var msgs []string
	prev := Logger()
	SetLogger(slog.New(&captureHandler{msgs: &msgs}))
	t.Cleanup(func() { SetLogger(prev) })
	return &msgs
}

func containsMsg(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// indexOf returns the position of the first log entry equal to want, or -1.
func indexOf(entries []string, want string) int {
	for i, e := range entries {
		if e == want {
			return i
		}
	}
	return -1
}
