package retained

import "strings"

// ============================================================================
// Change Flags
// ============================================================================
//
// Every element carries a bitset recording what may have changed since the
// last pass that consumed it. Flags only accumulate (OR) between passes; the
// committed layout pass clears the layout bits it handled and the paint pass
// clears the paint bit. Event handlers never clear flags.

// ChangeFlags is a per-element dirty bitset.
type ChangeFlags uint32

const (
	// FlagConstraints records that the parent's constraint box changed.
	FlagConstraints ChangeFlags = 1 << iota
	// FlagChildGeometry records that a descendant's size may have changed.
	FlagChildGeometry
	// FlagChildPositions records that a descendant's position may have
	// changed even though its size did not.
	FlagChildPositions
	// FlagGeometry records that this element's own size may have changed.
	FlagGeometry
	// FlagPaint records that visual content changed without any geometry
	// effect.
	FlagPaint
	// FlagStructure records that children were added, removed, or reordered.
	FlagStructure
	// FlagChildPaint records that a descendant needs repainting while this
	// element's own output is unchanged; the paint walk descends through it
	// without redrawing the element itself.
	FlagChildPaint
)

// flagsLayout are the bits that force a layout recomputation even when the
// incoming constraint key matches the cache.
const flagsLayout = FlagConstraints | FlagChildGeometry | FlagGeometry | FlagStructure

// flagsAll covers every defined bit.
const flagsAll = FlagConstraints | FlagChildGeometry | FlagChildPositions |
	FlagGeometry | FlagPaint | FlagStructure | FlagChildPaint

// NeedsLayout reports whether any layout-affecting bit is set.
func (f ChangeFlags) NeedsLayout() bool {
	return f&(flagsLayout|FlagChildPositions) != 0
}

// NeedsPaint reports whether a repaint-affecting bit is set.
func (f ChangeFlags) NeedsPaint() bool {
	return f&(FlagPaint|FlagChildPaint) != 0
}

// parentFlags translates an element's reported changes into the flags its
// parent must observe: a child's geometry change is the parent's
// child-geometry change.
func (f ChangeFlags) parentFlags() ChangeFlags {
	var up ChangeFlags
	if f&(FlagGeometry|FlagChildGeometry|FlagStructure) != 0 {
		up |= FlagChildGeometry
	}
	if f&FlagChildPositions != 0 {
		up |= FlagChildPositions
	}
	if f&(FlagPaint|FlagChildPaint) != 0 {
		up |= FlagChildPaint
	}
	return up
}

// String formats the set for logs, e.g. "geometry|paint".
func (f ChangeFlags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		bit  ChangeFlags
		name string
	}{
		{FlagConstraints, "constraints"},
		{FlagChildGeometry, "child-geometry"},
		{FlagChildPositions, "child-positions"},
		{FlagGeometry, "geometry"},
		{FlagPaint, "paint"},
		{FlagStructure, "structure"},
		{FlagChildPaint, "child-paint"},
	}
	var b strings.Builder
	for _, n := range names {
		if f&n.bit == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
	}
	return b.String()
}
