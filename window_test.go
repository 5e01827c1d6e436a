package oak

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oakui/oak/retained"
	"github.com/oakui/oak/widgets"
)

// stubCanvas discards paint commands.
type stubCanvas struct{}

func (stubCanvas) Save()                                                                {}
func (stubCanvas) Restore()                                                             {}
func (stubCanvas) Translate(dx, dy float64)                                             {}
func (stubCanvas) ClipRect(r retained.Rect)                                             {}
func (stubCanvas) FillRect(r retained.Rect, color retained.Color)                       {}
func (stubCanvas) StrokeRect(r retained.Rect, color retained.Color, width float64)      {}
func (stubCanvas) DrawText(text string, origin retained.Point, font retained.Font, color retained.Color) {
}
func (stubCanvas) DrawSurface(s retained.Surface, at retained.Rect) {}

// stubBackend records frame activity and feeds a scripted input stream.
type stubBackend struct {
	events chan InputEvent
	frames int
	damage retained.Rect
	closed bool
}

func newStubBackend() *stubBackend {
	return &stubBackend{events: make(chan InputEvent, 16)}
}

func (b *stubBackend) Events() <-chan InputEvent { return b.events }

func (b *stubBackend) BeginFrame() (retained.Canvas, error) {
	b.frames++
	return stubCanvas{}, nil
}

func (b *stubBackend) EndFrame(damage retained.Rect) error {
	b.damage = damage
	return nil
}

func (b *stubBackend) TextMeasurer() retained.TextMeasurer {
	return retained.NewFixedMeasurer()
}

func (b *stubBackend) Close() error {
	b.closed = true
	return nil
}

func twoButtons() retained.Widget {
	return widgets.VStack(
		widgets.NewButton("a", nil).WithKey("a"),
		widgets.NewButton("b", nil).WithKey("b"),
	).WithKey("root")
}

func TestWindowFramePresentsOnlyPendingWork(t *testing.T) {
	b := newStubBackend()
	w := NewWindow("w", WindowConfig{Width: 200, Height: 100}, b)
	w.SetContent(twoButtons())

	if !w.NeedsFrame() {
		t.Fatal("fresh content did not request a frame")
	}
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if b.frames != 1 {
		t.Fatalf("frames = %d, want 1", b.frames)
	}
	if b.damage != (retained.Rect{X: 0, Y: 0, Width: 200, Height: 100}) {
		t.Fatalf("first damage = %v, want the full window", b.damage)
	}

	// Nothing dirty: the second frame presents nothing.
	if w.NeedsFrame() {
		t.Fatal("clean window still reports pending work")
	}
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if b.frames != 1 {
		t.Fatalf("frames = %d after a clean frame, want 1", b.frames)
	}
}

func TestWindowTabTraversesFocus(t *testing.T) {
	rootID := retained.DeriveID(0, "root")
	aPath := retained.IDPath{rootID, retained.DeriveID(rootID, "a")}
	bPath := retained.IDPath{rootID, retained.DeriveID(rootID, "b")}

	w := NewWindow("w", WindowConfig{Width: 200, Height: 100}, newStubBackend())
	w.SetContent(twoButtons())
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	w.HandleInput(InputEvent{Kind: InputKeyDown, Key: "Tab"})
	if !w.Router().FocusPath().Equal(aPath) {
		t.Fatalf("focus = %v, want the first button", w.Router().FocusPath())
	}
	w.HandleInput(InputEvent{Kind: InputKeyDown, Key: "Tab"})
	if !w.Router().FocusPath().Equal(bPath) {
		t.Fatalf("focus = %v, want the second button", w.Router().FocusPath())
	}
	w.HandleInput(InputEvent{Kind: InputKeyDown, Key: "Tab", Mods: retained.ModShift})
	if !w.Router().FocusPath().Equal(aPath) {
		t.Fatalf("focus = %v, want the first button again", w.Router().FocusPath())
	}
}

func TestWindowResizeRelayouts(t *testing.T) {
	w := NewWindow("w", WindowConfig{Width: 200, Height: 100}, newStubBackend())
	w.SetContent(twoButtons())
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	w.HandleInput(InputEvent{Kind: InputResize, Width: 300, Height: 150})
	if w.Size() != (retained.Size{Width: 300, Height: 150}) {
		t.Fatalf("size = %v, want 300x150", w.Size())
	}
	if !w.NeedsFrame() {
		t.Fatal("resize did not request a frame")
	}
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := w.Tree().Root().Size(); got != (retained.Size{Width: 300, Height: 150}) {
		t.Fatalf("root size = %v, want the new window size", got)
	}

	// Same size again is a no-op.
	w.HandleInput(InputEvent{Kind: InputResize, Width: 300, Height: 150})
	if w.NeedsFrame() {
		t.Fatal("no-op resize requested a frame")
	}
}

func TestWindowCloseRequest(t *testing.T) {
	w := NewWindow("w", WindowConfig{Width: 200, Height: 100}, newStubBackend())
	if w.Closed() {
		t.Fatal("window closed at birth")
	}
	w.HandleInput(InputEvent{Kind: InputCloseRequest})
	if !w.Closed() {
		t.Fatal("close request ignored")
	}
}

func scrollContent() retained.Widget {
	rows := make([]retained.Widget, 10)
	for i := range rows {
		rows[i] = widgets.NewText("row").WithKey(string(rune('a' + i)))
	}
	return widgets.NewScroll(widgets.VStack(rows...).WithKey("col")).WithKey("sc")
}

func TestWindowScrollOffsetsRoundTrip(t *testing.T) {
	w := NewWindow("w", WindowConfig{Width: 100, Height: 50}, newStubBackend())
	w.SetContent(scrollContent())
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	w.HandleInput(InputEvent{Kind: InputPointerScroll, X: 10, Y: 10, ScrollY: -1})
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	offsets := w.ScrollOffsets()
	if len(offsets) != 1 {
		t.Fatalf("offsets = %v, want one scroller", offsets)
	}
	for _, v := range offsets {
		if v != 20 {
			t.Fatalf("offset = %v, want 20", v)
		}
	}

	// A fresh window with the same content restores the positions.
	w2 := NewWindow("w", WindowConfig{Width: 100, Height: 50}, newStubBackend())
	w2.SetContent(scrollContent())
	if err := w2.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	w2.RestoreScrollOffsets(offsets)
	if err := w2.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if diff := cmp.Diff(offsets, w2.ScrollOffsets()); diff != "" {
		t.Fatalf("restored offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowScaleChangeForcesRelayout(t *testing.T) {
	w := NewWindow("w", WindowConfig{Width: 200, Height: 100}, newStubBackend())
	w.SetContent(twoButtons())
	if err := w.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	w.HandleInput(InputEvent{Kind: InputScaleChange, Scale: 2})
	if !w.Tree().NeedsLayout() {
		t.Fatal("scale change did not invalidate layout")
	}
}
