package widgets

import (
	"testing"

	"github.com/oakui/oak/retained"
)

func TestPaddingReservesInsets(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(Pad(8, sized(20, 10)))
	frame(t, tr, retained.Loose(retained.Size{Width: 100, Height: 100}))

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 36, Height: 26}) {
		t.Fatalf("padded size = %v, want 36x26", root.Size())
	}
	child := root.Children()[0]
	if child.Offset() != (retained.Point{X: 8, Y: 8}) {
		t.Fatalf("child offset = %v, want (8,8)", child.Offset())
	}
	// The wrapper is transparent to addressing: it shares the child's id.
	if child.ID() != root.ID() {
		t.Fatalf("wrapper id %v differs from child id %v", root.ID(), child.ID())
	}
}

func TestAlignCentersInBoundedBox(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(Center(sized(20, 10)))
	frame(t, tr, retained.Tight(retained.Size{Width: 100, Height: 100}))

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 100, Height: 100}) {
		t.Fatalf("align size = %v, want the full box", root.Size())
	}
	if got := root.Children()[0].Offset(); got != (retained.Point{X: 40, Y: 45}) {
		t.Fatalf("centered offset = %v, want (40,45)", got)
	}
}

func TestAlignUnboundedAxisWrapsChild(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(Center(sized(20, 10)))
	frame(t, tr, retained.Constraints{MinWidth: 0, MaxWidth: retained.Inf, MinHeight: 0, MaxHeight: 100})

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 20, Height: 100}) {
		t.Fatalf("align size = %v, want 20x100", root.Size())
	}
	if got := root.Children()[0].Offset(); got != (retained.Point{X: 0, Y: 45}) {
		t.Fatalf("offset = %v, want (0,45)", got)
	}
}

func TestSizedBoxForcesChildSize(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(&SizedBox{
		Size:  retained.Size{Width: 50, Height: 40},
		Child: NewText("hi").WithKey("t"),
	})
	frame(t, tr, retained.Loose(retained.Size{Width: 100, Height: 100}))

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 50, Height: 40}) {
		t.Fatalf("size = %v, want 50x40", root.Size())
	}
	if got := root.Children()[0].Size(); got != (retained.Size{Width: 50, Height: 40}) {
		t.Fatalf("child size = %v, want the forced cell", got)
	}
}

func TestModifyAppliesOuterToInner(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(Modify(NewText("x").WithKey("x"), PadBy{V: 10}, AlignAt{X: 0.5, Y: 0.5}))
	frame(t, tr, retained.Tight(retained.Size{Width: 100, Height: 100}))

	// First record outermost: Padding wraps Align wraps the text.
	pad := tr.Root()
	if _, ok := pad.Behavior().(*paddingBehavior); !ok {
		t.Fatalf("outermost behavior = %T, want padding", pad.Behavior())
	}
	align := pad.Children()[0]
	if _, ok := align.Behavior().(*alignBehavior); !ok {
		t.Fatalf("middle behavior = %T, want align", align.Behavior())
	}
	text := align.Children()[0]
	if _, ok := text.Behavior().(*textBehavior); !ok {
		t.Fatalf("innermost behavior = %T, want text", text.Behavior())
	}

	if align.Offset() != (retained.Point{X: 10, Y: 10}) {
		t.Fatalf("align offset = %v, want inside the padding", align.Offset())
	}
	ts := textSize("x")
	want := retained.Point{X: (80 - ts.Width) * 0.5, Y: (80 - ts.Height) * 0.5}
	if text.Offset() != want {
		t.Fatalf("text offset = %v, want %v", text.Offset(), want)
	}

	// The whole chain shares the base widget's identity.
	id := retained.DeriveID(0, "x")
	if pad.ID() != id || align.ID() != id || text.ID() != id {
		t.Fatal("modifier chain does not share the base identity")
	}
}

func TestFindMod(t *testing.T) {
	w := Modify(NewText("x"), PadBy{V: 4}, AlignAt{X: 1, Y: 0})
	if m, ok := FindMod[PadBy](w); !ok || m.V != 4 {
		t.Fatalf("FindMod[PadBy] = %v, %v", m, ok)
	}
	if _, ok := FindMod[FixedSize](w); ok {
		t.Fatal("FindMod found an unattached record")
	}
	if _, ok := FindMod[PadBy](NewText("plain")); ok {
		t.Fatal("FindMod matched a widget without records")
	}
}
