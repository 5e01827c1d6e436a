package retained

import (
	"fmt"
	"reflect"
	"strconv"
)

// ============================================================================
// Declarative Widgets
// ============================================================================

// Widget is a declarative description of one element. Descriptions are cheap
// values rebuilt every frame; the tree reconciles them against the retained
// elements so state (layout cache, focus, scroll offsets) survives rebuilds.
//
// Build creates the retained element for a description appearing at a new
// identifier path. Update refreshes an existing element in place; it returns
// false when the element is incompatible (different behavior type under a
// colliding key), in which case the reconciler disposes it and builds fresh.
type Widget interface {
	Key() string
	Build(cx *BuildCtx) *Element
	Update(cx *BuildCtx, el *Element) bool
}

// KeyAnonymous, returned from Widget.Key, marks a description whose element
// is an unaddressable placeholder: it takes the Anonymous identifier, is
// exempt from sibling uniqueness, and can never be an event target.
const KeyAnonymous = "\x00anonymous"

// ============================================================================
// Tree
// ============================================================================

// Tree owns the retained element hierarchy for one window. It is confined to
// the UI goroutine; all mutation happens inside build, event, layout, and
// paint passes.
type Tree struct {
	root    *Element
	content Widget
	scale   float64
	env     Environment

	// slots backs state tokens; see state.go.
	slots []any

	measurer TextMeasurer

	needsRebuild bool
	needsLayout  bool
	needsPaint   bool
}

// NewTree creates an empty tree at scale factor 1 with deterministic text
// metrics. Production windows install the backend's measurer.
func NewTree() *Tree {
	return &Tree{scale: 1, measurer: NewFixedMeasurer()}
}

// SetTextMeasurer installs the backend text shaper used by layout. Changing
// the measurer re-measures everything.
func (t *Tree) SetTextMeasurer(m TextMeasurer) {
	if m == nil {
		m = NewFixedMeasurer()
	}
	t.measurer = m
	if t.root != nil {
		markTextDirty(t.root)
	}
	t.needsLayout = true
	t.needsPaint = true
}

func markTextDirty(el *Element) {
	el.Mark(FlagGeometry)
	el.cache.valid = false
	for _, ch := range el.children {
		markTextDirty(ch)
	}
}

// TextMeasurer returns the tree's text shaper.
func (t *Tree) TextMeasurer() TextMeasurer { return t.measurer }

// Root returns the root element, or nil before the first rebuild.
func (t *Tree) Root() *Element { return t.root }

// Scale returns the tree's device scale factor.
func (t *Tree) Scale() float64 { return t.scale }

// SetScale updates the device scale factor. Cached measurements key on the
// scale, so a change invalidates every cache application-wide and forces a
// full relayout before the next paint.
func (t *Tree) SetScale(s float64) {
	if s == t.scale || s <= 0 {
		return
	}
	t.scale = s
	t.needsLayout = true
	t.needsPaint = true
}

// SetEnv replaces the ambient environment snapshot used by subsequent
// passes.
func (t *Tree) SetEnv(env Environment) {
	t.env = env
	t.needsRebuild = true
}

// Env returns the tree's ambient environment.
func (t *Tree) Env() Environment { return t.env }

// SetContent installs the declarative root and schedules a rebuild.
func (t *Tree) SetContent(w Widget) {
	t.content = w
	t.needsRebuild = true
}

// NeedsRebuild reports whether a rebuild is pending.
func (t *Tree) NeedsRebuild() bool { return t.needsRebuild }

// NeedsLayout reports whether a committed relayout must run before paint.
func (t *Tree) NeedsLayout() bool { return t.needsLayout }

// NeedsPaint reports whether a repaint is pending.
func (t *Tree) NeedsPaint() bool { return t.needsPaint }

// RequestRebuild latches a rebuild from outside event routing (posted
// messages use this through Window.Post).
func (t *Tree) RequestRebuild() {
	t.needsRebuild = true
	t.needsLayout = true
	t.needsPaint = true
}

// RequestLayout latches a committed relayout before the next paint, for
// outer-box changes like a window resize.
func (t *Tree) RequestLayout() {
	t.needsLayout = true
	t.needsPaint = true
	if t.root != nil {
		t.root.Mark(FlagConstraints)
	}
}

// Rebuild reconciles the declarative content against the retained tree.
// Elements matched by identifier and behavior type update in place; new
// descriptions create elements; elements no longer described are disposed.
func (t *Tree) Rebuild() {
	t.needsRebuild = false
	if t.content == nil {
		if t.root != nil {
			t.root.dispose()
			t.root = nil
		}
		return
	}

	cx := &BuildCtx{tree: t, env: t.env}
	rootID := deriveWidgetID(0, t.content, map[string]int{})
	if t.root != nil && t.root.id == rootID && t.content.Update(cx, t.root) {
		// updated in place
	} else {
		if t.root != nil {
			t.root.dispose()
		}
		cx.assignedID = rootID
		t.root = t.content.Build(cx)
		if t.root != nil {
			t.root.invalidateStructure()
		}
	}
	if t.root != nil && t.root.flags != 0 {
		t.needsLayout = t.needsLayout || t.root.flags.NeedsLayout()
		t.needsPaint = t.needsPaint || t.root.flags.NeedsPaint() || t.needsLayout
	}
}

// Layout runs a committed layout pass over the whole tree under the window
// constraints. It consumes the layout dirty flags and returns the root size.
func (t *Tree) Layout(c Constraints) Size {
	t.needsLayout = false
	if t.root == nil {
		return Size{}
	}
	ctx := &LayoutCtx{tree: t, scale: t.scale, env: t.env}
	size := t.root.layout(ctx, c)
	if t.root.flags.NeedsPaint() {
		t.needsPaint = true
	}
	return size
}

// Resolve walks an ID path from the root and returns the addressed element,
// or nil when the path does not resolve. Read-only; used by introspection
// and tests.
func (t *Tree) Resolve(path IDPath) *Element {
	if t.root == nil || len(path) == 0 || t.root.id != path[0] {
		return nil
	}
	el := t.root
	for _, id := range path[1:] {
		next := el.childByID(id)
		if next == nil {
			return nil
		}
		el = next
	}
	return el
}

// ============================================================================
// Build Context & Reconciliation
// ============================================================================

// BuildCtx drives one rebuild pass. Container behaviors receive it in their
// widget's Build/Update and reconcile their children through it.
type BuildCtx struct {
	tree *Tree
	env  Environment

	// assignedID is the identifier the reconciler computed for the element
	// a Build call is about to create.
	assignedID ElementID
}

// Tree returns the tree being rebuilt.
func (cx *BuildCtx) Tree() *Tree { return cx.tree }

// Env returns the ambient environment for this rebuild.
func (cx *BuildCtx) Env() Environment { return cx.env }

// NewElement creates the retained element for the description currently
// being built, carrying the identifier the reconciler assigned.
func (cx *BuildCtx) NewElement(b Behavior) *Element {
	return NewElement(cx.assignedID, b)
}

// Reconcile matches an element's children against a fresh description list.
//
// Matching walks a cursor over the retained children: each description's
// derived identifier is searched from the cursor onward; a match (same ID,
// Update accepts) is rotated into position and updated, anything else
// creates a new element. Children left beyond the cursor when the
// descriptions run out are disposed. Any insertion, removal, or reorder
// marks the element STRUCTURE-dirty, which invalidates its layout cache.
func (cx *BuildCtx) Reconcile(el *Element, kids []Widget) {
	counters := map[string]int{}
	seen := map[ElementID]int{}
	cursor := 0

	for _, w := range kids {
		if w == nil {
			continue
		}
		id := deriveWidgetID(el.id, w, counters)
		if id != Anonymous {
			if prev, dup := seen[id]; dup {
				Logger().Warn("duplicate sibling identifier",
					"parent", el.id, "id", id, "first", prev, "index", cursor)
			}
			seen[id] = cursor
		}

		// Find a reusable element at or after the cursor.
		match := -1
		for j := cursor; j < len(el.children); j++ {
			if el.children[j].id == id {
				match = j
				break
			}
		}

		if match >= 0 {
			ch := el.children[match]
			if match != cursor {
				copy(el.children[cursor+1:match+1], el.children[cursor:match])
				el.children[cursor] = ch
				el.invalidateStructure()
			}
			if w.Update(cx, ch) {
				el.flags |= ch.flags.parentFlags()
				cursor++
				continue
			}
			// Incompatible behavior under the same identifier: replace.
			ch.dispose()
			el.children = append(el.children[:cursor], el.children[cursor+1:]...)
		}

		cx.assignedID = id
		ch := w.Build(cx)
		if ch == nil {
			continue
		}
		ch.invalidateStructure()
		el.children = append(el.children, nil)
		copy(el.children[cursor+1:], el.children[cursor:])
		el.children[cursor] = ch
		el.invalidateStructure()
		el.flags |= ch.flags.parentFlags()
		cursor++
	}

	if cursor < len(el.children) {
		for _, ch := range el.children[cursor:] {
			ch.dispose()
		}
		el.children = el.children[:cursor]
		el.invalidateStructure()
	}
}

// ReconcileShared reconciles a transparent wrapper's single child, which
// shares the wrapper's identifier. The shared ID keeps the wrapper invisible
// to event addressing: a path entry matches the wrapper and its child in
// turn.
func (cx *BuildCtx) ReconcileShared(el *Element, w Widget) {
	if w == nil {
		if len(el.children) > 0 {
			for _, ch := range el.children {
				ch.dispose()
			}
			el.children = nil
			el.invalidateStructure()
		}
		return
	}
	if len(el.children) == 1 && el.children[0].id == el.id && w.Update(cx, el.children[0]) {
		el.flags |= el.children[0].flags.parentFlags()
		return
	}
	for _, ch := range el.children {
		ch.dispose()
	}
	cx.assignedID = el.id
	ch := w.Build(cx)
	el.children = el.children[:0]
	if ch != nil {
		ch.invalidateStructure()
		el.children = append(el.children, ch)
		el.flags |= ch.flags.parentFlags()
	}
	el.invalidateStructure()
}

// deriveWidgetID computes the identifier a description takes under a parent.
// An explicit key wins; otherwise the description's type name plus its
// occurrence index among unkeyed same-type siblings stands in for the
// declaration position, so reordering differently typed or keyed siblings
// never reassigns identity.
func deriveWidgetID(parent ElementID, w Widget, counters map[string]int) ElementID {
	key := w.Key()
	if key == KeyAnonymous {
		return Anonymous
	}
	if key == "" {
		tn := reflect.TypeOf(w).String()
		n := counters[tn]
		counters[tn] = n + 1
		key = fmt.Sprintf("%s#%s", tn, strconv.Itoa(n))
	}
	return DeriveID(parent, key)
}
