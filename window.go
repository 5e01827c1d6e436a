package oak

import (
	"github.com/oakui/oak/retained"
)

// Window ties one platform window to a retained tree and its router. All
// methods are confined to the UI goroutine; off-thread code reaches a
// window only through App.Post.
type Window struct {
	name    string
	backend Backend
	tree    *retained.Tree
	router  *retained.Router

	size   retained.Size
	closed bool

	// pendingScrolls holds restored scroll offsets until the first rebuild
	// materializes the elements they address.
	pendingScrolls map[string]float64
}

// NewWindow creates a window over a backend with the configured defaults.
func NewWindow(name string, cfg WindowConfig, backend Backend) *Window {
	tree := retained.NewTree()
	if backend != nil {
		tree.SetTextMeasurer(backend.TextMeasurer())
	}
	if cfg.Scale > 0 {
		tree.SetScale(cfg.Scale)
	}
	w := &Window{
		name:    name,
		backend: backend,
		tree:    tree,
		router:  retained.NewRouter(tree),
		size:    retained.Size{Width: cfg.Width, Height: cfg.Height},
	}
	return w
}

// Tree returns the window's retained tree.
func (w *Window) Tree() *retained.Tree { return w.tree }

// Router returns the window's event router.
func (w *Window) Router() *retained.Router { return w.router }

// Size returns the window's logical size.
func (w *Window) Size() retained.Size { return w.size }

// Closed reports whether the platform window went away.
func (w *Window) Closed() bool { return w.closed }

// SetContent installs the declarative root widget.
func (w *Window) SetContent(content retained.Widget) {
	w.tree.SetContent(content)
}

// HandleInput routes one platform event into the tree. Multiple events may
// be handled before a single Frame call; the relayout pass observes the
// union of their dirty flags.
func (w *Window) HandleInput(ev InputEvent) {
	switch ev.Kind {
	case InputPointerMove, InputPointerDown, InputPointerUp, InputPointerScroll:
		pe := retained.AcquirePointerEvent(pointerKind(ev.Kind))
		pe.Position = retained.Point{X: ev.X, Y: ev.Y}
		pe.Button = ev.Button
		pe.Mods = ev.Mods
		pe.ScrollX = ev.ScrollX
		pe.ScrollY = ev.ScrollY
		pe.Time = ev.Time
		w.router.DispatchPointer(pe)
		pe.Release()

	case InputKeyDown, InputKeyUp:
		kind := retained.EventKeyDown
		if ev.Kind == InputKeyUp {
			kind = retained.EventKeyUp
		}
		ke := retained.AcquireKeyEvent(kind)
		ke.Key = ev.Key
		ke.Mods = ev.Mods
		ke.Time = ev.Time
		out := w.router.DispatchKey(ke)
		ke.Release()
		if kind == retained.EventKeyDown && ev.Key == "Tab" && !out.Handled {
			dir := retained.FocusNext
			if ev.Mods&retained.ModShift != 0 {
				dir = retained.FocusPrev
			}
			w.router.MoveFocus(dir)
		}

	case InputText:
		ke := retained.AcquireKeyEvent(retained.EventTextInput)
		ke.Text = ev.Text
		ke.Mods = ev.Mods
		ke.Time = ev.Time
		w.router.DispatchKey(ke)
		ke.Release()

	case InputResize:
		size := retained.Size{Width: ev.Width, Height: ev.Height}
		if size != w.size {
			w.size = size
			w.tree.RequestLayout()
		}

	case InputScaleChange:
		// Every cached measurement keys on the scale; the change forces a
		// full relayout before the next paint.
		w.tree.SetScale(ev.Scale)

	case InputCloseRequest:
		w.closed = true
	}
}

func pointerKind(k InputKind) retained.EventKind {
	switch k {
	case InputPointerDown:
		return retained.EventPointerDown
	case InputPointerUp:
		return retained.EventPointerUp
	case InputPointerScroll:
		return retained.EventPointerScroll
	}
	return retained.EventPointerMove
}

// NeedsFrame reports whether pending rebuild/layout/paint work exists.
func (w *Window) NeedsFrame() bool {
	return w.tree.NeedsRebuild() || w.tree.NeedsLayout() || w.tree.NeedsPaint()
}

// Frame runs the window's frame pass: rebuild while dirty, one committed
// relayout under the window constraints, then the repaint walk into the
// backend canvas. Layout always precedes paint; a frame with no pending
// work presents nothing.
func (w *Window) Frame() error {
	for i := 0; w.tree.NeedsRebuild(); i++ {
		w.tree.Rebuild()
		if i > 8 {
			Logger().Warn("rebuild did not settle; continuing with current tree", "window", w.name)
			break
		}
	}
	w.applyPendingScrolls()
	if w.tree.NeedsLayout() {
		w.tree.Layout(retained.Tight(w.size))
	}
	if !w.tree.NeedsPaint() || w.backend == nil {
		return nil
	}
	canvas, err := w.backend.BeginFrame()
	if err != nil {
		return err
	}
	var surfaces retained.SurfaceProvider
	if sb, ok := w.backend.(retained.SurfaceProvider); ok {
		surfaces = sb
	}
	res := w.tree.Paint(canvas, surfaces)
	return w.backend.EndFrame(res.Damage)
}

// ============================================================================
// Scroll-state persistence hooks
// ============================================================================

// scroller is the persistence surface of scrolling behaviors.
type scroller interface {
	Offset() float64
	SetOffset(float64)
}

// ScrollOffsets collects the scroll positions of the tree keyed by ID path,
// for persistence across runs.
func (w *Window) ScrollOffsets() map[string]float64 {
	out := map[string]float64{}
	root := w.tree.Root()
	if root == nil {
		return out
	}
	collectScrolls(root, retained.IDPath{root.ID()}, out)
	return out
}

func collectScrolls(el *retained.Element, path retained.IDPath, out map[string]float64) {
	if s, ok := el.Behavior().(scroller); ok {
		out[path.String()] = s.Offset()
	}
	for _, ch := range el.Children() {
		collectScrolls(ch, path.Child(ch.ID()), out)
	}
}

// applyPendingScrolls restores persisted scroll offsets once the tree has
// been built.
func (w *Window) applyPendingScrolls() {
	if w.pendingScrolls == nil || w.tree.Root() == nil {
		return
	}
	w.RestoreScrollOffsets(w.pendingScrolls)
	w.pendingScrolls = nil
}

// RestoreScrollOffsets applies persisted scroll positions to matching
// elements. Unmatched paths are ignored; the tree may have changed shape
// since they were saved.
func (w *Window) RestoreScrollOffsets(offsets map[string]float64) {
	root := w.tree.Root()
	if root == nil || len(offsets) == 0 {
		return
	}
	restoreScrolls(root, retained.IDPath{root.ID()}, offsets)
	w.tree.RequestLayout()
}

func restoreScrolls(el *retained.Element, path retained.IDPath, offsets map[string]float64) {
	if s, ok := el.Behavior().(scroller); ok {
		if v, ok := offsets[path.String()]; ok {
			s.SetOffset(v)
			el.Mark(retained.FlagChildPositions)
		}
	}
	for _, ch := range el.Children() {
		restoreScrolls(ch, path.Child(ch.ID()), offsets)
	}
}
