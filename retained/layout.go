package retained

import (
	"fmt"
	"math"
)

// ============================================================================
// Geometry
// ============================================================================

// Point is a position in some local coordinate space, in logical units.
type Point struct {
	X, Y float64
}

// Add offsets p by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub removes an offset from p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y) }

// Size is a width/height pair in logical units.
type Size struct {
	Width, Height float64
}

func (s Size) String() string { return fmt.Sprintf("%.1fx%.1f", s.Width, s.Height) }

// Rect is an axis-aligned rectangle with its origin in the parent space.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom builds a rectangle from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{origin.X, origin.Y, size.Width, size.Height}
}

// Contains reports whether the point lies inside the rectangle. Points on
// the right/bottom edge are outside, matching pixel coverage.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Union returns the smallest rectangle covering both r and q.
func (r Rect) Union(q Rect) Rect {
	if r.Empty() {
		return q
	}
	if q.Empty() {
		return r
	}
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.Width, q.X+q.Width)
	y1 := math.Max(r.Y+r.Height, q.Y+q.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Translate shifts the rectangle by an offset.
func (r Rect) Translate(p Point) Rect {
	return Rect{r.X + p.X, r.Y + p.Y, r.Width, r.Height}
}

// ============================================================================
// Constraints
// ============================================================================

// Inf is the unconstrained bound for a constraint axis.
var Inf = math.Inf(1)

// Constraints is the min/max box passed top-down during layout. Maxima may be
// infinite (unconstrained axis); minima are always finite. A measured size
// must satisfy min <= size <= max on each axis, except that an element that
// cannot meet a minimum clamps to it rather than failing: layout is total.
type Constraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Tight returns constraints that force exactly the given size.
func Tight(s Size) Constraints {
	return Constraints{s.Width, s.Width, s.Height, s.Height}
}

// Loose returns constraints from zero up to the given size.
func Loose(s Size) Constraints {
	return Constraints{0, s.Width, 0, s.Height}
}

// Unbounded returns constraints with no maximum on either axis.
func Unbounded() Constraints {
	return Constraints{0, Inf, 0, Inf}
}

// Constrain clamps a size into the constraint box.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// Deflate shrinks the box by horizontal and vertical insets, for containers
// that reserve edge space before laying out content. Bounds never go
// negative.
func (c Constraints) Deflate(dw, dh float64) Constraints {
	out := Constraints{
		MinWidth:  math.Max(0, c.MinWidth-dw),
		MinHeight: math.Max(0, c.MinHeight-dh),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if !math.IsInf(c.MaxWidth, 1) {
		out.MaxWidth = math.Max(0, c.MaxWidth-dw)
	}
	if !math.IsInf(c.MaxHeight, 1) {
		out.MaxHeight = math.Max(0, c.MaxHeight-dh)
	}
	return out
}

// BoundedWidth reports whether the width axis has a finite maximum.
func (c Constraints) BoundedWidth() bool { return !math.IsInf(c.MaxWidth, 1) }

// BoundedHeight reports whether the height axis has a finite maximum.
func (c Constraints) BoundedHeight() bool { return !math.IsInf(c.MaxHeight, 1) }

func (c Constraints) String() string {
	return fmt.Sprintf("[%.1f..%.1f]x[%.1f..%.1f]",
		c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ============================================================================
// Layout Cache Key
// ============================================================================

// layoutKey is the memoization key for a measured size: the bitwise image of
// all four constraint bounds plus the scale factor. Bitwise comparison keeps
// equality cheap and exact; NaN or signed-zero differences never alias.
type layoutKey struct {
	minW, maxW, minH, maxH uint64
	scale                  uint64
}

func makeLayoutKey(c Constraints, scale float64) layoutKey {
	return layoutKey{
		minW:  math.Float64bits(c.MinWidth),
		maxW:  math.Float64bits(c.MaxWidth),
		minH:  math.Float64bits(c.MinHeight),
		maxH:  math.Float64bits(c.MaxHeight),
		scale: math.Float64bits(scale),
	}
}

// layoutCache holds an element's committed measurement. Speculative passes
// never write it.
type layoutCache struct {
	key   layoutKey
	size  Size
	valid bool
}

// ============================================================================
// Layout Context
// ============================================================================

// LayoutCtx carries per-pass layout state down the tree. A context is either
// committed (results are cached and paint may rely on them) or speculative
// (results are transient sizing probes).
type LayoutCtx struct {
	tree        *Tree
	scale       float64
	speculative bool
	env         Environment
}

// Scale returns the device-pixels-per-logical-unit factor for this pass.
func (ctx *LayoutCtx) Scale() float64 { return ctx.scale }

// Speculative reports whether this pass is a sizing probe. Behaviors that
// cache layout-derived paint state must skip those writes when this is true.
func (ctx *LayoutCtx) Speculative() bool { return ctx.speculative }

// Env returns the environment snapshot for this pass.
func (ctx *LayoutCtx) Env() Environment { return ctx.env }

// Tree returns the tree being laid out.
func (ctx *LayoutCtx) Tree() *Tree { return ctx.tree }

// TextMeasurer returns the text shaper for this pass.
func (ctx *LayoutCtx) TextMeasurer() TextMeasurer { return ctx.tree.measurer }

// Probe measures a child under trial constraints without committing
// anything: no cache write, no dirty-flag consumption, no offset or
// paint-supporting state. Containers use it to gather natural sizes before
// the real pass.
func (ctx *LayoutCtx) Probe(child *Element, c Constraints) Size {
	if ctx.speculative {
		return child.layout(ctx, c)
	}
	probe := *ctx
	probe.speculative = true
	return child.layout(&probe, c)
}
