package retained

// ============================================================================
// Repaint Scheduler
// ============================================================================
//
// The paint pass walks only subtrees whose Paint or ChildPaint flag is set.
// A committed layout that changed an element's size has already set Paint on
// it, so every committed relayout implies a repaint before the next
// presented frame; an element may also request repaint alone (content
// changed, geometry unchanged). Clean elements replay their retained surface
// when the backend keeps one, and are skipped otherwise: their pixels lie
// outside the frame's damage region.
//
// Painting an element whose committed layout is invalid (structural change
// without a relayout since) is a contract violation; the walk logs a warning
// and skips the element rather than drawing from stale geometry.

// PaintCtx carries per-pass paint state: the backend canvas, the window
// offset of the element being painted, and the accumulated damage.
type PaintCtx struct {
	tree     *Tree
	canvas   Canvas
	surfaces SurfaceProvider
	env      Environment

	// origin is the current element's position in window coordinates.
	origin Point

	damage  Rect
	painted []IDPath
}

// Canvas returns the backend canvas. Behaviors draw their own content in
// local coordinates; the element's translation is already applied.
func (ctx *PaintCtx) Canvas() Canvas { return ctx.canvas }

// Env returns the environment snapshot for this pass.
func (ctx *PaintCtx) Env() Environment { return ctx.env }

// Origin returns the painted element's window-space position, for behaviors
// that cache window-aligned resources.
func (ctx *PaintCtx) Origin() Point { return ctx.origin }

// FrameResult summarizes one paint pass.
type FrameResult struct {
	// Damage is the window-space union of everything repainted.
	Damage Rect
	// Painted lists the ID paths of elements whose Paint ran, in walk
	// order. Introspection and tests consume it.
	Painted []IDPath
}

// Paint runs the repaint pass over the tree. The canvas receives commands
// for every dirty element; clean subtrees are replayed from retained
// surfaces or skipped. Returns the damage and the set of painted elements.
func (t *Tree) Paint(canvas Canvas, surfaces SurfaceProvider) FrameResult {
	t.needsPaint = false
	if t.root == nil {
		return FrameResult{}
	}
	ctx := &PaintCtx{tree: t, canvas: canvas, surfaces: surfaces, env: t.env}
	paintElement(ctx, t.root, IDPath{t.root.id}, false)
	return FrameResult{Damage: ctx.damage, Painted: ctx.painted}
}

func paintElement(ctx *PaintCtx, el *Element, path IDPath, force bool) {
	if !el.layoutValid {
		Logger().Warn("paint called without a committed layout; element skipped",
			"id", el.id.String(), "path", path.String())
		return
	}

	repaint := force || el.flags&FlagPaint != 0
	descend := repaint || el.flags&FlagChildPaint != 0

	bounds := RectFrom(ctx.origin.Add(el.offset), el.size)
	if !descend {
		if el.surface != nil {
			ctx.canvas.DrawSurface(el.surface, bounds)
		}
		return
	}

	savedOrigin := ctx.origin
	ctx.origin = ctx.origin.Add(el.offset)
	ctx.canvas.Save()
	ctx.canvas.Translate(el.offset.X, el.offset.Y)
	if el.clips {
		ctx.canvas.ClipRect(Rect{0, 0, el.size.Width, el.size.Height})
	}

	if repaint {
		el.refreshSurface(ctx)
		el.behavior.Paint(ctx, el)
		el.flags &^= FlagPaint
		ctx.damage = ctx.damage.Union(bounds)
		ctx.painted = append(ctx.painted, path.Clone())
	}

	// A repainting parent redraws its whole subtree: its draw call covers
	// the children's pixels.
	for _, ch := range el.children {
		paintElement(ctx, ch, path.Child(ch.id), repaint)
	}
	el.flags &^= FlagChildPaint

	ctx.canvas.Restore()
	ctx.origin = savedOrigin
}

// refreshSurface keeps the element's retained surface sized to its
// committed geometry. Acquire failures degrade to unretained painting; the
// element simply has no reusable output this frame.
func (el *Element) refreshSurface(ctx *PaintCtx) {
	if ctx.surfaces == nil {
		return
	}
	if el.surface != nil {
		el.surface.Release()
		el.surface = nil
	}
	s, err := ctx.surfaces.AcquireSurface(el.size, ctx.tree.scale)
	if err != nil {
		Logger().Warn("retained surface unavailable",
			"id", el.id.String(), "error", err)
		return
	}
	el.surface = s
}
