package retained

// ============================================================================
// Hit Testing
// ============================================================================
//
// Hit-testing runs inline while a pointer event is processed: each element
// transforms the point into its children's coordinate spaces and recurses
// itself; there is no separately maintained hit tree. Children are tested
// front-to-back (reverse declaration order, so the last declared sibling is
// topmost); the first claiming child wins the delivery chain, but every
// tested element leaves a pass/fail record so the hover tracker sees all
// intersected nodes regardless of z-order.
//
// An element may match outside its parent's declared bounds; only elements
// that clip (scroll viewports) cut their subtree out of pointer routing when
// the point is outside them.

// hitEntry is one link of the pointer delivery chain, root first.
type hitEntry struct {
	el    *Element
	local Point
	path  IDPath
}

// hitShape tests the point against the element's own shape in local
// coordinates. Transparent regions hit by default; behaviors refine via
// ShapeTester.
func (el *Element) hitShape(local Point) bool {
	if !(Rect{0, 0, el.size.Width, el.size.Height}).Contains(local) {
		return false
	}
	if st, ok := el.behavior.(ShapeTester); ok {
		return st.HitShape(el, local)
	}
	return true
}

// hitTestElement tests el and its subtree at a point in el's local space.
// It appends pass/fail records for every tested element to ctx, extends
// chain through the frontmost claiming descendant, and reports whether the
// subtree claimed the point. When chain is nil the subtree is tested for
// records only (a sibling already claimed delivery).
func hitTestElement(ctx *EventCtx, el *Element, local Point, path IDPath, chain *[]hitEntry) bool {
	pass := el.hitShape(local)
	ctx.recordHit(path, pass)

	mark := -1
	if chain != nil {
		*chain = append(*chain, hitEntry{el: el, local: local, path: path})
		mark = len(*chain) - 1
	}

	if el.clips && !pass {
		// Clipped subtree: out-of-bounds descendants are unreachable by
		// pointer routing.
		if chain != nil {
			*chain = (*chain)[:mark]
		}
		return false
	}

	claimed := false
	for i := len(el.children) - 1; i >= 0; i-- {
		ch := el.children[i]
		childLocal := local.Sub(ch.offset)
		childPath := path.Child(ch.id)
		if !claimed && chain != nil {
			if hitTestElement(ctx, ch, childLocal, childPath, chain) {
				claimed = true
				continue
			}
		} else {
			hitTestElement(ctx, ch, childLocal, childPath, nil)
		}
	}

	if !claimed && !pass && chain != nil {
		*chain = (*chain)[:mark]
	}
	return claimed || pass
}

// HitTestAll returns the ID paths of every element intersecting the point,
// front-to-back (innermost and topmost first), ignoring clips. Drag-target
// discovery and introspection use it; pointer routing does not.
func (t *Tree) HitTestAll(p Point) []IDPath {
	if t.root == nil {
		return nil
	}
	var out []IDPath
	hitTestAllRec(t.root, p, IDPath{t.root.id}, &out)
	return out
}

func hitTestAllRec(el *Element, local Point, path IDPath, out *[]IDPath) {
	for i := len(el.children) - 1; i >= 0; i-- {
		ch := el.children[i]
		hitTestAllRec(ch, local.Sub(ch.offset), path.Child(ch.id), out)
	}
	if el.hitShape(local) {
		*out = append(*out, path.Clone())
	}
}
