package retained

import "testing"

func TestParentFlags(t *testing.T) {
	tests := []struct {
		name  string
		child ChangeFlags
		want  ChangeFlags
	}{
		{"none", 0, 0},
		{"geometry becomes child-geometry", FlagGeometry, FlagChildGeometry},
		{"child-geometry stays child-geometry", FlagChildGeometry, FlagChildGeometry},
		{"structure becomes child-geometry", FlagStructure, FlagChildGeometry},
		{"positions propagate", FlagChildPositions, FlagChildPositions},
		{"paint becomes child-paint", FlagPaint, FlagChildPaint},
		{"child-paint stays child-paint", FlagChildPaint, FlagChildPaint},
		{"constraints do not propagate", FlagConstraints, 0},
		{
			"mixed",
			FlagGeometry | FlagPaint | FlagChildPositions,
			FlagChildGeometry | FlagChildPaint | FlagChildPositions,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.child.parentFlags(); got != tt.want {
				t.Fatalf("parentFlags(%s) = %s, want %s", tt.child, got, tt.want)
			}
		})
	}
}

func TestNeedsLayoutAndPaint(t *testing.T) {
	if FlagPaint.NeedsLayout() {
		t.Fatal("paint-only flags should not require layout")
	}
	if !FlagChildPositions.NeedsLayout() {
		t.Fatal("child-positions must schedule a layout pass")
	}
	if !FlagGeometry.NeedsLayout() {
		t.Fatal("geometry must schedule a layout pass")
	}
	if FlagGeometry.NeedsPaint() {
		t.Fatal("geometry alone does not request paint; the layout pass decides")
	}
	if !FlagChildPaint.NeedsPaint() {
		t.Fatal("child-paint must schedule a paint pass")
	}
}

func TestFlagsMarkIsMonotonic(t *testing.T) {
	el := NewElement(1, &recBehavior{size: Size{10, 10}})
	el.Mark(FlagPaint)
	el.Mark(FlagGeometry)
	want := FlagPaint | FlagGeometry
	if el.Flags() != want {
		t.Fatalf("flags = %s, want %s", el.Flags(), want)
	}
	// Marking again never clears accumulated bits.
	el.Mark(FlagPaint)
	if el.Flags() != want {
		t.Fatalf("flags after re-mark = %s, want %s", el.Flags(), want)
	}
}

func TestFlagsString(t *testing.T) {
	if got := ChangeFlags(0).String(); got != "none" {
		t.Fatalf("String(0) = %q", got)
	}
	if got := (FlagGeometry | FlagPaint).String(); got != "geometry|paint" {
		t.Fatalf("String(geometry|paint) = %q", got)
	}
}
