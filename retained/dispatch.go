package retained

import (
	"time"
)

// ============================================================================
// Event Routing
// ============================================================================
//
// The Router owns one window's dispatch state: hot node, hovered set,
// keyboard focus, pointer capture, and click repeat tracking. Every event is
// delivered in three phases over the target's ID path: capture from the root
// down, the target itself, then bubble back to the root unless propagation
// was stopped. Results accumulate monotonically in the shared EventCtx and
// dirty flags bubble to ancestors as the call chain unwinds.
//
// Pointer events have no pre-known target; they are hit-tested inline from
// the root and dispatched over the resulting chain. Addressed events
// (keyboard, focus, enter/exit synthesis, posted updates) descend the ID
// path through each container's RouteEvent override.

// DefaultDoubleClickInterval bounds consecutive clicks counted as one
// multi-click sequence.
const DefaultDoubleClickInterval = 500 * time.Millisecond

// doubleClickRadius is the maximum pointer travel, in logical units, between
// clicks of one sequence.
const doubleClickRadius = 4.0

// Outcome summarizes what one dispatched event requested.
type Outcome struct {
	Handled  bool
	Relayout bool
	Repaint  bool
	Rebuild  bool
}

func (o Outcome) merge(ctx *EventCtx) Outcome {
	o.Handled = o.Handled || ctx.handled
	o.Relayout = o.Relayout || ctx.relayout
	o.Repaint = o.Repaint || ctx.repaint
	o.Rebuild = o.Rebuild || ctx.rebuild
	return o
}

// Router dispatches events into one tree and tracks per-window input state.
// Confined to the UI goroutine, like the tree itself.
type Router struct {
	tree *Tree

	hot     IDPath
	hovered map[string]IDPath
	focus   IDPath
	capture IDPath

	doubleClickInterval time.Duration
	lastClickTime       time.Time
	lastClickPos        Point
	lastClickButton     MouseButton
	clickCount          int

	// pending holds addressed events posted by handlers; drained after the
	// outermost dispatch returns, since routing is non-reentrant.
	pending      []pendingUpdate
	depth        int
	settingFocus bool

	trace dispatchTrace
}

// NewRouter creates a router for the tree.
func NewRouter(tree *Tree) *Router {
	return &Router{
		tree:                tree,
		hovered:             make(map[string]IDPath),
		doubleClickInterval: DefaultDoubleClickInterval,
	}
}

// SetDoubleClickInterval tunes click repeat counting.
func (r *Router) SetDoubleClickInterval(d time.Duration) {
	if d > 0 {
		r.doubleClickInterval = d
	}
}

// Tree returns the tree this router dispatches into.
func (r *Router) Tree() *Tree { return r.tree }

// HotPath returns the ID path of the current hot node, or nil.
func (r *Router) HotPath() IDPath { return r.hot }

// HoveredPaths returns the ID paths of all elements the pointer currently
// intersects, in no particular order.
func (r *Router) HoveredPaths() []IDPath {
	out := make([]IDPath, 0, len(r.hovered))
	for _, p := range r.hovered {
		out = append(out, p)
	}
	return out
}

// FocusPath returns the ID path of the focused element, or nil.
func (r *Router) FocusPath() IDPath { return r.focus }

// CapturePath returns the ID path holding the pointer capture, or nil.
func (r *Router) CapturePath() IDPath { return r.capture }

func (r *Router) newCtx() *EventCtx {
	return &EventCtx{tree: r.tree, router: r, env: r.tree.env}
}

// ============================================================================
// Pointer dispatch
// ============================================================================

// DispatchPointer routes one platform pointer event. Position is in window
// coordinates. For position-changing events the hover set and hot node are
// updated after routing, synthesizing exit/enter events on hot transitions.
func (r *Router) DispatchPointer(ev *PointerEvent) Outcome {
	var out Outcome
	if r.tree.root == nil {
		return out
	}

	if ev.kind == EventPointerDown {
		ev.Repeat = r.countClick(ev)
	}

	ctx := r.newCtx()
	r.depth++

	if r.capture != nil {
		// A captured pointer routes to the capture path, bypassing
		// hit-testing; the hover state is frozen for the duration.
		ctx.target = r.capture
		ctx.local = ev.Position
		r.deliver(ctx, r.tree.root, 0, ev)
	} else {
		chain := acquireHitChain()
		hitTestElement(ctx, r.tree.root, ev.Position, IDPath{r.tree.root.id}, chain)
		if len(*chain) > 0 {
			r.dispatchChain(ctx, *chain, ev)
		}
		if ev.kind == EventPointerMove {
			// Ordering contract: the hover set mutates strictly after the
			// real event finished routing and strictly before any
			// synthetic enter/exit dispatch.
			r.updateHover(ctx, *chain)
		}
		releaseHitChain(chain)
	}

	if ev.kind == EventPointerUp && r.capture != nil && !ctx.captureChange {
		r.capture = nil
	}

	r.depth--
	r.trace.record(ev.Kind(), ctx)
	r.applyEffects(ctx)
	return out.merge(ctx)
}

// dispatchChain delivers a pointer event over a hit chain: capture phase
// from the root down, target at the frontmost claimed element, bubble back
// up. Dirty flags bubble to ancestors after the phases complete.
func (r *Router) dispatchChain(ctx *EventCtx, chain []hitEntry, ev *PointerEvent) {
	ctx.target = chain[len(chain)-1].path
	n := len(chain)

	for i := 0; i < n-1 && !ctx.stopped; i++ {
		r.visit(ctx, chain[i], PhaseCapture, i, ev)
	}
	if !ctx.stopped {
		r.visit(ctx, chain[n-1], PhaseTarget, n-1, ev)
	}
	for i := n - 2; i >= 0 && !ctx.stopped; i-- {
		r.visit(ctx, chain[i], PhaseBubble, i, ev)
	}

	for i := n - 1; i > 0; i-- {
		chain[i-1].el.flags |= chain[i].el.flags.parentFlags()
	}
}

func (r *Router) visit(ctx *EventCtx, entry hitEntry, phase EventPhase, depth int, ev *PointerEvent) {
	ctx.phase = phase
	ctx.depth = depth
	ctx.path = entry.path
	ctx.local = entry.local
	ev.Local = entry.local
	if phase != PhaseBubble {
		ctx.recordTouched()
	}
	safeEvent(ctx, entry.el, ev)
}

// countClick maintains the single/double/triple click sequence.
func (r *Router) countClick(ev *PointerEvent) int {
	now := ev.Time
	if now.IsZero() {
		now = time.Now()
	}
	dx := ev.Position.X - r.lastClickPos.X
	dy := ev.Position.Y - r.lastClickPos.Y
	within := !r.lastClickTime.IsZero() &&
		now.Sub(r.lastClickTime) <= r.doubleClickInterval &&
		ev.Button == r.lastClickButton &&
		dx*dx+dy*dy <= doubleClickRadius*doubleClickRadius
	if within {
		r.clickCount++
	} else {
		r.clickCount = 1
	}
	r.lastClickTime = now
	r.lastClickPos = ev.Position
	r.lastClickButton = ev.Button
	return r.clickCount
}

// ============================================================================
// Addressed dispatch
// ============================================================================

// RouteTo delivers an event to the element addressed by an ID path, running
// the capture/target/bubble phases along it. A path that no longer resolves
// is a tree-consistency defect: the router logs a warning and drops the
// event instead of propagating further down the broken path.
func (r *Router) RouteTo(path IDPath, ev Event) Outcome {
	var out Outcome
	if r.tree.root == nil || len(path) == 0 {
		return out
	}
	if path[0] != r.tree.root.id {
		Logger().Warn("routed event target does not start at the root",
			"kind", ev.Kind().String(), "target", path.String())
		return out
	}
	ctx := r.newCtx()
	ctx.target = path.Clone()
	if pe, ok := ev.(*PointerEvent); ok {
		ctx.local = pe.Position
	}
	r.depth++
	r.deliver(ctx, r.tree.root, 0, ev)
	r.depth--
	r.trace.record(ev.Kind(), ctx)
	r.applyEffects(ctx)
	return out.merge(ctx)
}

// DispatchKey routes a keyboard event along the focused path, or to the root
// when nothing holds focus. Unhandled events bubble to the root naturally.
func (r *Router) DispatchKey(ev *KeyEvent) Outcome {
	if r.tree.root == nil {
		return Outcome{}
	}
	target := r.focus
	if target == nil {
		target = IDPath{r.tree.root.id}
	}
	return r.RouteTo(target, ev)
}

// deliver visits one element on the target path: capture (or target) phase,
// descent through the container's RouteEvent, then bubble as the stack
// unwinds. Flag bubbling to the parent happens in routeStep.
func (r *Router) deliver(ctx *EventCtx, el *Element, depth int, ev Event) {
	ctx.depth = depth
	ctx.path = ctx.target[:depth+1]
	atTarget := depth == len(ctx.target)-1

	if atTarget {
		ctx.phase = PhaseTarget
		ctx.recordTouched()
		if ue, ok := ev.(*UpdateEvent); ok {
			if ue.Apply != nil {
				ue.Apply(ctx, el)
			}
		} else {
			safeEvent(ctx, el, ev)
		}
		return
	}

	ctx.phase = PhaseCapture
	ctx.recordTouched()
	safeEvent(ctx, el, ev)
	if ctx.stopped {
		return
	}

	if router, ok := el.behavior.(EventRouter); ok {
		router.RouteEvent(ctx, el, ev)
	} else if len(el.children) > 0 {
		Logger().Warn("container behavior missing RouteEvent override; event dropped",
			"kind", ev.Kind().String(), "at", ctx.path.String(), "target", ctx.target.String())
		return
	} else {
		Logger().Warn("routed event has remaining path below a leaf; event dropped",
			"kind", ev.Kind().String(), "at", ctx.path.String(), "target", ctx.target.String())
		return
	}
	if ctx.stopped {
		return
	}

	ctx.phase = PhaseBubble
	ctx.depth = depth
	ctx.path = ctx.target[:depth+1]
	safeEvent(ctx, el, ev)
}

// routeStep descends one level of the target path. Called by container
// behaviors from RouteEvent (via EventCtx.RouteToChild).
func (r *Router) routeStep(ctx *EventCtx, el *Element, ev Event) {
	depth := ctx.depth
	if depth+1 >= len(ctx.target) {
		return
	}
	next := ctx.target[depth+1]
	child := el.childByID(next)
	if child == nil {
		Logger().Warn("no child for routed event target; event dropped",
			"kind", ev.Kind().String(), "at", ctx.path.String(),
			"missing", next.String(), "target", ctx.target.String())
		return
	}

	savedLocal := ctx.local
	ctx.local = ctx.local.Sub(child.offset)
	if pe, ok := ev.(*PointerEvent); ok {
		pe.Local = ctx.local
	}
	r.deliver(ctx, child, depth+1, ev)
	ctx.local = savedLocal
	ctx.depth = depth
	ctx.path = ctx.target[:depth+1]

	el.flags |= child.flags.parentFlags()
}

// safeEvent isolates one behavior handler invocation so a panicking widget
// cannot corrupt the shared event context used by its siblings and
// ancestors.
func safeEvent(ctx *EventCtx, el *Element, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Warn("widget event handler panicked",
				"id", el.id.String(), "kind", ev.Kind().String(),
				"phase", ctx.phase.String(), "panic", rec)
		}
	}()
	el.behavior.Event(ctx, el, ev)
}

// ============================================================================
// Hover tracking
// ============================================================================

// updateHover rebuilds the hovered set from the hit records of a routed
// pointer event and promotes the frontmost passing element to hot. A hot
// transition synthesizes an exit to the old hot and an enter to the new one,
// in that order, routed as ordinary events.
func (r *Router) updateHover(ctx *EventCtx, chain []hitEntry) {
	next := acquirePathSet()
	for _, h := range ctx.hits {
		if h.pass {
			next[h.path.String()] = h.path
		}
	}

	var newHot IDPath
	if len(chain) > 0 {
		newHot = chain[len(chain)-1].path
	}
	oldHot := r.hot

	// The set mutates before any synthetic event fires; the hot node is
	// always a member of the hovered set.
	releasePathSet(r.hovered)
	r.hovered = next
	r.hot = newHot
	if newHot != nil {
		r.hovered[newHot.String()] = newHot
	}

	if oldHot.Equal(newHot) {
		return
	}
	if oldHot != nil {
		exit := AcquirePointerEvent(EventPointerExit)
		r.RouteTo(oldHot, exit)
		exit.Release()
	}
	if newHot != nil {
		enter := AcquirePointerEvent(EventPointerEnter)
		r.RouteTo(newHot, enter)
		enter.Release()
	}
}

// ============================================================================
// Focus
// ============================================================================

// SetFocus moves keyboard focus to the element at the path (nil clears).
// The old element receives focus-out before the new one receives focus-in;
// both are ordinary routed events.
func (r *Router) SetFocus(path IDPath) {
	if r.focus.Equal(path) {
		return
	}
	old := r.focus
	r.focus = path.Clone()

	r.settingFocus = true
	if old != nil {
		r.RouteTo(old, &FocusEvent{kind: EventFocusOut})
	}
	if r.focus != nil {
		r.RouteTo(r.focus, &FocusEvent{kind: EventFocusIn})
	}
	r.settingFocus = false
}

// MoveFocus sends a move-focus request to the focused element. If no element
// holds focus, the first focusable element in declaration order acquires it.
// Containers resolve the request to a sibling during bubbling; an
// unresolvable request leaves focus unchanged.
func (r *Router) MoveFocus(dir FocusDirection) Outcome {
	if r.tree.root == nil {
		return Outcome{}
	}
	if r.focus == nil {
		if path, ok := findFirstFocusable(r.tree.root, IDPath{r.tree.root.id}); ok {
			r.SetFocus(path)
			return Outcome{Handled: true}
		}
		return Outcome{}
	}
	return r.RouteTo(r.focus, &MoveFocusEvent{Direction: dir})
}

// findFirstFocusable walks the tree in declaration order for an element
// whose behavior accepts focus. Anonymous elements are skipped; they cannot
// be addressed.
func findFirstFocusable(el *Element, path IDPath) (IDPath, bool) {
	if f, ok := el.behavior.(Focusable); ok && f.AcceptsFocus() && el.id != Anonymous {
		return path, true
	}
	for _, ch := range el.children {
		if ch.id == Anonymous {
			continue
		}
		if p, ok := findFirstFocusable(ch, path.Child(ch.id)); ok {
			return p, true
		}
	}
	return nil, false
}

// FirstFocusable returns the ID path of the first focusable element in
// declaration order within el's subtree, with base addressing el itself.
// Container behaviors use it to resolve move-focus navigation.
func FirstFocusable(el *Element, base IDPath) (IDPath, bool) {
	if el == nil || el.id == Anonymous {
		return nil, false
	}
	return findFirstFocusable(el, base)
}

// LastFocusable is FirstFocusable in reverse declaration order, for
// backward focus navigation.
func LastFocusable(el *Element, base IDPath) (IDPath, bool) {
	if el == nil || el.id == Anonymous {
		return nil, false
	}
	for i := len(el.children) - 1; i >= 0; i-- {
		ch := el.children[i]
		if ch.id == Anonymous {
			continue
		}
		if p, ok := LastFocusable(ch, base.Child(ch.id)); ok {
			return p, true
		}
	}
	if f, ok := el.behavior.(Focusable); ok && f.AcceptsFocus() {
		return base, true
	}
	return nil, false
}

// ============================================================================
// Post-dispatch effects
// ============================================================================

// applyEffects commits what a finished routing pass requested: dirty-pass
// latches on the tree, focus and capture changes, then any addressed events
// handlers posted. Pending events drain only at the outermost dispatch;
// routing is non-reentrant.
func (r *Router) applyEffects(ctx *EventCtx) {
	if ctx.relayout {
		r.tree.needsLayout = true
	}
	if ctx.repaint {
		r.tree.needsPaint = true
	}
	if ctx.rebuild {
		r.tree.needsRebuild = true
	}

	if ctx.captureChange {
		r.capture = ctx.capturePath
	}

	if ctx.focusChange != FocusKeep && !r.settingFocus {
		switch ctx.focusChange {
		case FocusAcquire:
			r.SetFocus(ctx.focusTarget)
		case FocusRelease:
			r.SetFocus(nil)
		case FocusMove:
			r.MoveFocus(ctx.focusDir)
		}
	}

	if len(ctx.pendingUpdates) > 0 {
		r.pending = append(r.pending, ctx.pendingUpdates...)
		ctx.pendingUpdates = nil
	}
	for r.depth == 0 && len(r.pending) > 0 {
		p := r.pending[0]
		r.pending = r.pending[1:]
		r.RouteTo(p.path, p.ev)
	}
}
