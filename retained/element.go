package retained

// ============================================================================
// Element
// ============================================================================
//
// An Element is one persistent node of the retained tree. It owns its
// children, its computed geometry (size, offset relative to the parent, clip
// policy), its dirty-flag set, and its layout cache. Geometry is written only
// by the element's own committed layout (size) or by the parent positioning
// it (offset); children never move themselves.
//
// Widget-specific logic lives in a Behavior. The element itself implements
// the pieces the core owns uniformly: layout memoization, dirty-flag
// bookkeeping, default hit shape, and the paint-validity contract.

// Behavior implements one widget kind's logic against an element.
//
// Layout measures the element under the given constraints, measuring and
// positioning children via ctx and el. The returned size must be finite and
// satisfy the constraints (clamped best effort when they are unsatisfiable).
//
// Event handles an event delivered to the element during any phase; the
// phase is available on ctx.
//
// Paint draws the element's own content. Children are painted by the core
// walk after the element's own output.
type Behavior interface {
	Layout(ctx *LayoutCtx, el *Element, c Constraints) Size
	Event(ctx *EventCtx, el *Element, ev Event)
	Paint(ctx *PaintCtx, el *Element)
}

// EventRouter must be implemented by any behavior whose element has
// children. Routed events carry a remaining ID path; the behavior forwards
// them toward the addressed child, normally via ctx.RouteToChild. An element
// with children whose behavior does not implement EventRouter is a
// correctness bug: the router logs a warning and drops the event.
type EventRouter interface {
	RouteEvent(ctx *EventCtx, el *Element, ev Event)
}

// ShapeTester refines hit-testing beyond the default rectangular bounds
// check, for behaviors with non-rectangular interactive shapes.
type ShapeTester interface {
	HitShape(el *Element, local Point) bool
}

// Disposer releases externally retained resources (backend surfaces, store
// handles) when the element is destroyed during reconciliation.
type Disposer interface {
	Dispose(el *Element)
}

// Focusable marks behaviors that can receive keyboard focus; containers use
// it to pick targets during move-focus navigation.
type Focusable interface {
	AcceptsFocus() bool
}

// Element is a node in the retained tree.
type Element struct {
	id       ElementID
	behavior Behavior
	children []*Element

	// offset is the element's position in the parent's coordinate space,
	// written exclusively by the parent's committed layout.
	offset Point
	// size is the committed measured size, written by the element's own
	// committed layout.
	size Size
	// clips excludes out-of-bounds descendants from pointer routing and
	// clips painting to the element's bounds.
	clips bool

	flags ChangeFlags
	cache layoutCache
	// layoutValid is true once a committed layout has produced geometry
	// since the last structural change. Paint refuses elements where it is
	// false.
	layoutValid bool

	// surface is an optional retained backend surface reused when the
	// element is clean; owned by the paint pass.
	surface Surface
}

// NewElement creates a detached element. Most callers go through
// BuildCtx.Child during reconciliation instead.
func NewElement(id ElementID, b Behavior) *Element {
	return &Element{id: id, behavior: b}
}

// ID returns the element's parent-scoped identifier.
func (el *Element) ID() ElementID { return el.id }

// Behavior returns the widget logic attached to the element.
func (el *Element) Behavior() Behavior { return el.behavior }

// Children returns the element's child list. Callers must not mutate it.
func (el *Element) Children() []*Element { return el.children }

// Size returns the committed measured size.
func (el *Element) Size() Size { return el.size }

// Offset returns the element's position in its parent's space.
func (el *Element) Offset() Point { return el.offset }

// Bounds returns the element's rectangle in its parent's space.
func (el *Element) Bounds() Rect { return RectFrom(el.offset, el.size) }

// Flags returns the element's pending dirty flags.
func (el *Element) Flags() ChangeFlags { return el.flags }

// SetClips makes the element clip children for painting and pointer
// routing. Scroll viewports set this.
func (el *Element) SetClips(clips bool) { el.clips = clips }

// Clips reports whether the element clips its children.
func (el *Element) Clips() bool { return el.clips }

// LayoutValid reports whether a committed layout has run since the last
// structural change.
func (el *Element) LayoutValid() bool { return el.layoutValid }

// Mark ORs dirty flags onto the element. Flags accumulate until a committed
// layout or paint pass consumes them; handlers and updaters only ever add.
func (el *Element) Mark(flags ChangeFlags) {
	el.flags |= flags & flagsAll
}

// ============================================================================
// Layout (memoized)
// ============================================================================

// Layout measures the element under constraints for the given pass.
//
// If a committed measurement is cached under a bitwise-equal
// (constraints, scale) key and none of the constraint/child-geometry/
// geometry/structure bits are dirty, the cached size is returned without
// visiting children. Otherwise the behavior recomputes; on a committed pass
// the result is cached, consumed layout bits are cleared, and a size change
// schedules a repaint of the element.
func (el *Element) layout(ctx *LayoutCtx, c Constraints) Size {
	key := makeLayoutKey(c, ctx.scale)
	if el.cache.valid && el.cache.key == key && el.flags&flagsLayout == 0 {
		if el.flags&FlagChildPositions != 0 && !ctx.speculative {
			// Children kept their sizes but may sit at stale offsets;
			// reposition without remeasuring.
			el.behavior.Layout(ctx, el, c)
			el.flags &^= FlagChildPositions
		}
		return el.cache.size
	}

	size := el.behavior.Layout(ctx, el, c)
	size = sanitizeSize(size, c)

	if ctx.speculative {
		return size
	}

	changed := size != el.size
	el.size = size
	el.cache = layoutCache{key: key, size: size, valid: true}
	el.flags &^= flagsLayout | FlagChildPositions
	el.layoutValid = true
	if changed {
		el.flags |= FlagPaint
	}
	return size
}

// LayoutChild measures a child as part of the current pass. Committed passes
// propagate the child's repaint needs up to the element so the paint walk
// can find them.
func (el *Element) LayoutChild(ctx *LayoutCtx, child *Element, c Constraints) Size {
	size := child.layout(ctx, c)
	if !ctx.speculative {
		// Geometry bits are being consumed by this very pass; only the
		// child's repaint needs survive upward.
		el.flags |= child.flags.parentFlags() & FlagChildPaint
	}
	return size
}

// Place positions a child within the element. It is a no-op during
// speculative passes; offsets belong to committed geometry. Moving a child
// schedules its repaint at the new position.
func (el *Element) Place(ctx *LayoutCtx, child *Element, at Point) {
	if ctx.speculative {
		return
	}
	if child.offset != at {
		child.offset = at
		child.flags |= FlagPaint
		el.flags |= FlagChildPaint
	}
}

// sanitizeSize clamps a measured size into the constraint box and replaces
// non-finite values. An infinite maximum never leaks into a measurement:
// content-driven sizes stay as reported, infinities collapse to the minimum.
func sanitizeSize(s Size, c Constraints) Size {
	if s.Width != s.Width || s.Width > maxFinite {
		s.Width = c.MinWidth
	}
	if s.Height != s.Height || s.Height > maxFinite {
		s.Height = c.MinHeight
	}
	return c.Constrain(s)
}

// maxFinite guards against propagating infinities from unconstrained axes.
const maxFinite = 1e30

// ============================================================================
// Child lookup
// ============================================================================

// childByID returns the first child carrying the given identifier, or nil.
// Anonymous never matches; anonymous elements cannot be addressed.
func (el *Element) childByID(id ElementID) *Element {
	if id == Anonymous {
		return nil
	}
	for _, ch := range el.children {
		if ch.id == id {
			return ch
		}
	}
	return nil
}

// invalidateStructure records a structural child change: the cache no longer
// applies and paint must wait for a fresh committed layout.
func (el *Element) invalidateStructure() {
	el.flags |= FlagStructure
	el.cache.valid = false
	el.layoutValid = false
}

// dispose tears down the element's subtree, releasing behavior resources
// and retained surfaces.
func (el *Element) dispose() {
	for _, ch := range el.children {
		ch.dispose()
	}
	if d, ok := el.behavior.(Disposer); ok {
		d.Dispose(el)
	}
	if el.surface != nil {
		el.surface.Release()
		el.surface = nil
	}
	el.children = nil
	el.layoutValid = false
}
