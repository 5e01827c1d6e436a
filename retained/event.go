package retained

import (
	"sync"
	"time"
)

// ============================================================================
// Event Types
// ============================================================================

// EventKind discriminates events routed through the tree.
type EventKind uint8

const (
	EventNone EventKind = iota

	// Pointer events. Move/Down/Up/Scroll originate from the platform;
	// Enter/Exit are synthesized from hot-node transitions and routed like
	// ordinary input, so handlers cannot tell them apart except by kind.
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventPointerScroll
	EventPointerEnter
	EventPointerExit

	// Keyboard events, delivered along the focused ID path.
	EventKeyDown
	EventKeyUp
	EventTextInput

	// Focus events, synthesized by the router on focus changes.
	EventFocusIn
	EventFocusOut
	EventMoveFocus

	// EventUpdate is an internal addressed mutation, used to marshal
	// off-thread state changes onto a specific element.
	EventUpdate
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointer-move"
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventPointerScroll:
		return "pointer-scroll"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerExit:
		return "pointer-exit"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventTextInput:
		return "text-input"
	case EventFocusIn:
		return "focus-in"
	case EventFocusOut:
		return "focus-out"
	case EventMoveFocus:
		return "move-focus"
	case EventUpdate:
		return "update"
	}
	return "none"
}

// Event is anything routable through the tree.
type Event interface {
	Kind() EventKind
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers is the active keyboard modifier set.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// PointerEvent is a pointer move/button/scroll/enter/exit event. Position is
// in window coordinates; Local is filled in per element as routing descends
// through coordinate transforms.
type PointerEvent struct {
	kind     EventKind
	Position Point
	Local    Point
	Button   MouseButton
	Buttons  Modifiers
	Mods     Modifiers
	ScrollX  float64
	ScrollY  float64
	// Repeat counts consecutive clicks within the double-click interval:
	// 1 single, 2 double, 3 triple.
	Repeat int
	Time   time.Time
}

func (e *PointerEvent) Kind() EventKind { return e.kind }

// KeyEvent is a keyboard event delivered along the focused path.
type KeyEvent struct {
	kind EventKind
	// Key is the logical key name ("a", "Tab", "Enter", "ArrowLeft").
	Key  string
	Text string
	Mods Modifiers
	Time time.Time
}

func (e *KeyEvent) Kind() EventKind { return e.kind }

// FocusEvent notifies an element it gained or lost keyboard focus.
type FocusEvent struct {
	kind EventKind
}

func (e *FocusEvent) Kind() EventKind { return e.kind }

// FocusDirection orders move-focus navigation.
type FocusDirection uint8

const (
	FocusNext FocusDirection = iota
	FocusPrev
)

// MoveFocusEvent asks the focused element (or an ancestor container) to move
// focus to a sibling in declaration order.
type MoveFocusEvent struct {
	Direction FocusDirection
}

func (e *MoveFocusEvent) Kind() EventKind { return EventMoveFocus }

// UpdateEvent applies an addressed mutation on the UI goroutine. Apply runs
// in the target phase with the full event context, so it can mark dirty
// flags and request rebuilds like any handler.
type UpdateEvent struct {
	Apply func(ctx *EventCtx, el *Element)
}

func (e *UpdateEvent) Kind() EventKind { return EventUpdate }

// ============================================================================
// Event Pools
// ============================================================================
//
// Pointer and key events are allocated per platform input on the hot path;
// pool them to keep steady-state dispatch allocation-free.

var pointerEventPool = sync.Pool{
	New: func() any { return &PointerEvent{} },
}

// AcquirePointerEvent returns a pooled pointer event of the given kind.
// Release it after dispatch.
func AcquirePointerEvent(kind EventKind) *PointerEvent {
	ev := pointerEventPool.Get().(*PointerEvent)
	*ev = PointerEvent{kind: kind}
	return ev
}

// Release returns the event to the pool. The event must not be used after.
func (e *PointerEvent) Release() {
	pointerEventPool.Put(e)
}

var keyEventPool = sync.Pool{
	New: func() any { return &KeyEvent{} },
}

// AcquireKeyEvent returns a pooled key event of the given kind.
func AcquireKeyEvent(kind EventKind) *KeyEvent {
	ev := keyEventPool.Get().(*KeyEvent)
	*ev = KeyEvent{kind: kind}
	return ev
}

// Release returns the event to the pool.
func (e *KeyEvent) Release() {
	keyEventPool.Put(e)
}

// ============================================================================
// Event Phases
// ============================================================================

// EventPhase identifies where in capture/target/bubble delivery a handler is
// being invoked.
type EventPhase uint8

const (
	PhaseCapture EventPhase = iota
	PhaseTarget
	PhaseBubble
)

func (p EventPhase) String() string {
	switch p {
	case PhaseCapture:
		return "capture"
	case PhaseTarget:
		return "target"
	}
	return "bubble"
}

// ============================================================================
// Event Context
// ============================================================================

// FocusChange is a focus request accumulated during routing.
type FocusChange uint8

const (
	FocusKeep FocusChange = iota
	FocusAcquire
	FocusRelease
	FocusMove
)

// hitRecord remembers one element's hit-test outcome during pointer routing;
// the hover tracker consumes the records after the event finishes.
type hitRecord struct {
	path IDPath
	pass bool
}

// EventCtx is the shared mutable accumulator threaded through one event's
// routing. Descendant results merge into it monotonically as the call chain
// unwinds: a requested relayout or repaint is never cleared by an ancestor,
// and the handled flag only transitions to true.
type EventCtx struct {
	tree   *Tree
	router *Router
	env    Environment

	phase  EventPhase
	path   IDPath // path of the element currently being visited
	target IDPath // full path of the target element
	depth  int    // index of the visited element within target
	local  Point  // event position in the visited element's coordinates

	handled bool
	stopped bool

	relayout bool
	repaint  bool
	rebuild  bool

	focusChange FocusChange
	focusTarget IDPath
	focusDir    FocusDirection

	captureChange  bool
	capturePath    IDPath // nil means release
	pendingUpdates []pendingUpdate

	hits    []hitRecord
	touched []IDPath
}

// pendingUpdate defers an addressed routing request made from inside a
// handler until the current dispatch finishes; routing is non-reentrant.
type pendingUpdate struct {
	path IDPath
	ev   Event
}

// Tree returns the tree the event is routed through.
func (ctx *EventCtx) Tree() *Tree { return ctx.tree }

// Env returns the environment snapshot for this routing pass.
func (ctx *EventCtx) Env() Environment { return ctx.env }

// Phase returns the current delivery phase.
func (ctx *EventCtx) Phase() EventPhase { return ctx.phase }

// Path returns the ID path of the element currently being visited.
func (ctx *EventCtx) Path() IDPath { return ctx.path }

// Target returns the full ID path of the event's target.
func (ctx *EventCtx) Target() IDPath { return ctx.target }

// AtTarget reports whether the current element is the event's target.
func (ctx *EventCtx) AtTarget() bool { return ctx.phase == PhaseTarget }

// NextOnPath returns the identifier of the target-path entry one level below
// the visited element, or Anonymous when the visited element is the target.
// Containers use it during bubbling to learn which child an event came
// through.
func (ctx *EventCtx) NextOnPath() ElementID {
	if ctx.depth+1 < len(ctx.target) {
		return ctx.target[ctx.depth+1]
	}
	return Anonymous
}

// RequestFocusPath asks the router to focus an explicit target, used by
// containers resolving move-focus navigation onto a sibling.
func (ctx *EventCtx) RequestFocusPath(path IDPath) {
	ctx.focusChange = FocusAcquire
	ctx.focusTarget = path.Clone()
}

// Handled reports whether some handler claimed the event.
func (ctx *EventCtx) Handled() bool { return ctx.handled }

// SetHandled claims the event. Ancestors still observe it during bubbling
// unless propagation is also stopped.
func (ctx *EventCtx) SetHandled() { ctx.handled = true }

// StopPropagation ends delivery after the current handler returns: remaining
// capture descent or bubble ascent is skipped.
func (ctx *EventCtx) StopPropagation() { ctx.stopped = true }

// RequestRelayout marks the visited element's geometry dirty and latches a
// window relayout. The flags bubble to ancestors when routing unwinds.
func (ctx *EventCtx) RequestRelayout(el *Element, flags ChangeFlags) {
	if flags == 0 {
		flags = FlagGeometry
	}
	el.Mark(flags)
	ctx.relayout = true
	ctx.repaint = true
}

// RequestRepaint marks the visited element's content dirty without touching
// geometry.
func (ctx *EventCtx) RequestRepaint(el *Element) {
	el.Mark(FlagPaint)
	ctx.repaint = true
}

// RequestRebuild schedules a declarative rebuild of the tree before the next
// layout pass.
func (ctx *EventCtx) RequestRebuild() {
	ctx.rebuild = true
	ctx.relayout = true
	ctx.repaint = true
}

// RequestFocus asks the router to focus the element currently being visited.
// The focus change is applied after routing completes, synthesizing focus-out
// then focus-in events.
func (ctx *EventCtx) RequestFocus() {
	ctx.focusChange = FocusAcquire
	ctx.focusTarget = ctx.path.Clone()
}

// ReleaseFocus clears keyboard focus for the window.
func (ctx *EventCtx) ReleaseFocus() {
	ctx.focusChange = FocusRelease
	ctx.focusTarget = nil
}

// CapturePointer directs subsequent pointer events to the element currently
// being visited until ReleasePointer or a pointer-up.
func (ctx *EventCtx) CapturePointer() {
	ctx.captureChange = true
	ctx.capturePath = ctx.path.Clone()
}

// ReleasePointer ends a pointer capture.
func (ctx *EventCtx) ReleasePointer() {
	ctx.captureChange = true
	ctx.capturePath = nil
}

// PostTo queues an addressed event for delivery after the current routing
// pass finishes. Routing is non-reentrant; handlers use this instead of
// dispatching directly.
func (ctx *EventCtx) PostTo(path IDPath, ev Event) {
	ctx.pendingUpdates = append(ctx.pendingUpdates, pendingUpdate{path: path.Clone(), ev: ev})
}

// RouteToChild forwards a routed event one level down the remaining target
// path. Container behaviors call this from RouteEvent. A target ID missing
// among the element's children is a tree-consistency defect: it is logged
// and the event dropped.
func (ctx *EventCtx) RouteToChild(el *Element, ev Event) {
	ctx.router.routeStep(ctx, el, ev)
}

// recordHit notes one element's pointer hit-test outcome for the hover
// tracker.
func (ctx *EventCtx) recordHit(path IDPath, pass bool) {
	ctx.hits = append(ctx.hits, hitRecord{path: path.Clone(), pass: pass})
}

// recordTouched adds the visited element to the last-event trace.
func (ctx *EventCtx) recordTouched() {
	ctx.touched = append(ctx.touched, ctx.path.Clone())
}
