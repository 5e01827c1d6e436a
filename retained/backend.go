package retained

// ============================================================================
// Backend Boundary
// ============================================================================
//
// The rendering backend is an external collaborator. The core hands it paint
// commands through Canvas and receives text metrics through TextMeasurer; it
// never sees the backend's surfaces except as opaque retained handles.

// Color is a 32-bit ARGB color.
type Color uint32

// ARGB packs channel bytes into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Font selects a typeface for measurement and drawing. The backend resolves
// the family name.
type Font struct {
	Family string
	Size   float64
}

// Canvas receives draw primitives during a paint pass. Calls arrive inside a
// balanced Save/Restore pair per element, with the element's translation and
// clip already applied.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	ClipRect(r Rect)
	FillRect(r Rect, color Color)
	StrokeRect(r Rect, color Color, width float64)
	DrawText(text string, origin Point, font Font, color Color)
	// DrawSurface replays a retained surface's last painted output.
	DrawSurface(s Surface, at Rect)
}

// Surface is a backend-retained copy of one element's painted output,
// reusable while the element stays clean.
type Surface interface {
	Release()
}

// SurfaceProvider is implemented by backends that retain per-element
// surfaces. Acquire failures are not fatal: the element simply paints
// without retained reuse for that frame.
type SurfaceProvider interface {
	AcquireSurface(size Size, scale float64) (Surface, error)
}

// TextMeasurer resolves text metrics during layout. The backend's shaper
// implements it; tests use FixedMeasurer.
type TextMeasurer interface {
	MeasureText(text string, font Font) Size
}

// FixedMeasurer is a deterministic TextMeasurer with uniform glyph advance,
// independent of any platform text stack. The zero value is unusable; use
// NewFixedMeasurer.
type FixedMeasurer struct {
	// AdvanceRatio is glyph advance as a fraction of the font size.
	AdvanceRatio float64
	// LineRatio is line height as a fraction of the font size.
	LineRatio float64
}

// NewFixedMeasurer returns a measurer with typical monospace proportions.
func NewFixedMeasurer() *FixedMeasurer {
	return &FixedMeasurer{AdvanceRatio: 0.6, LineRatio: 1.2}
}

// MeasureText returns size for a single line of text.
func (m *FixedMeasurer) MeasureText(text string, font Font) Size {
	n := 0
	for range text {
		n++
	}
	return Size{
		Width:  float64(n) * font.Size * m.AdvanceRatio,
		Height: font.Size * m.LineRatio,
	}
}
