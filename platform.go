package oak

import (
	"time"

	"github.com/oakui/oak/retained"
)

// ============================================================================
// Platform Boundary
// ============================================================================
//
// The windowing layer is an external collaborator. It delivers a stream of
// input events tagged with window-local positions and drives frame
// presentation; oak consumes the stream on its UI goroutine and hands paint
// commands back through retained.Canvas.

// InputKind discriminates platform input events.
type InputKind uint8

const (
	InputPointerMove InputKind = iota
	InputPointerDown
	InputPointerUp
	InputPointerScroll
	InputKeyDown
	InputKeyUp
	InputText
	InputResize
	InputScaleChange
	InputCloseRequest
)

// InputEvent is one platform input record in window-local coordinates.
type InputEvent struct {
	Kind InputKind

	X, Y    float64
	Button  retained.MouseButton
	Mods    retained.Modifiers
	ScrollX float64
	ScrollY float64

	Key  string
	Text string

	Width  float64
	Height float64
	Scale  float64

	Time time.Time
}

// Backend drives one window's surface and input stream. Implementations
// wrap a platform windowing/render stack; tests use a recording stub.
type Backend interface {
	// Events is the platform input stream. The channel closes when the
	// platform window is destroyed.
	Events() <-chan InputEvent
	// BeginFrame returns the canvas for one frame's paint pass.
	BeginFrame() (retained.Canvas, error)
	// EndFrame presents the frame, limited to the damaged region.
	EndFrame(damage retained.Rect) error
	// TextMeasurer exposes the backend's text shaper for layout.
	TextMeasurer() retained.TextMeasurer
	Close() error
}

// SurfaceBackend is implemented by backends that retain per-element paint
// output; the repaint scheduler reuses surfaces of clean elements.
type SurfaceBackend interface {
	Backend
	retained.SurfaceProvider
}
