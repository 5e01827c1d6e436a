package widgets

import (
	"testing"

	"github.com/oakui/oak/retained"
)

func sized(w, h float64) retained.Widget {
	return &SizedBox{Size: retained.Size{Width: w, Height: h}}
}

func TestVStackPositionsChildren(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(VStack(sized(10, 10), sized(20, 20), sized(30, 30)).WithGap(5).WithKey("root"))
	frame(t, tr, retained.Loose(retained.Size{Width: 200, Height: 200}))

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 30, Height: 75}) {
		t.Fatalf("stack size = %v, want 30x75", root.Size())
	}
	wantY := []float64{0, 15, 40}
	for i, ch := range root.Children() {
		if ch.Offset() != (retained.Point{X: 0, Y: wantY[i]}) {
			t.Fatalf("child %d offset = %v, want (0,%v)", i, ch.Offset(), wantY[i])
		}
	}
}

func TestHStackPositionsChildren(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(HStack(sized(10, 10), sized(20, 20), sized(30, 30)).WithGap(5).WithKey("root"))
	frame(t, tr, retained.Loose(retained.Size{Width: 200, Height: 200}))

	root := tr.Root()
	if root.Size() != (retained.Size{Width: 75, Height: 30}) {
		t.Fatalf("stack size = %v, want 75x30", root.Size())
	}
	wantX := []float64{0, 15, 40}
	for i, ch := range root.Children() {
		if ch.Offset() != (retained.Point{X: wantX[i], Y: 0}) {
			t.Fatalf("child %d offset = %v, want (%v,0)", i, ch.Offset(), wantX[i])
		}
	}
}

func TestStackGapChangeRelayouts(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(VStack(sized(10, 10), sized(10, 10)).WithKey("root"))
	frame(t, tr, retained.Loose(retained.Size{Width: 200, Height: 200}))

	tr.SetContent(VStack(sized(10, 10), sized(10, 10)).WithGap(8).WithKey("root"))
	tr.Rebuild()
	if !tr.NeedsLayout() {
		t.Fatal("gap change did not latch a relayout")
	}
	tr.Layout(retained.Loose(retained.Size{Width: 200, Height: 200}))
	if got := tr.Root().Children()[1].Offset(); got != (retained.Point{X: 0, Y: 18}) {
		t.Fatalf("second child offset = %v, want (0,18)", got)
	}
}

func TestSpacerIsAnonymousFiller(t *testing.T) {
	tr := retained.NewTree()
	tr.SetContent(VStack(
		NewText("x").WithKey("x"),
		&Spacer{Main: 10},
		NewText("y").WithKey("y"),
	).WithKey("root"))
	frame(t, tr, retained.Loose(retained.Size{Width: 200, Height: 200}))

	kids := tr.Root().Children()
	if kids[1].ID() != retained.Anonymous {
		t.Fatalf("spacer id = %v, want anonymous", kids[1].ID())
	}
	lineH := textSize("x").Height
	if got := kids[2].Offset().Y; got != lineH+10 {
		t.Fatalf("trailing child y = %v, want %v", got, lineH+10)
	}
}

func TestStackMoveFocusBetweenSiblings(t *testing.T) {
	rootID := retained.DeriveID(0, "root")
	aPath := retained.IDPath{rootID, retained.DeriveID(rootID, "a")}
	bPath := retained.IDPath{rootID, retained.DeriveID(rootID, "b")}

	tr := retained.NewTree()
	tr.SetContent(VStack(
		NewButton("a", nil).WithKey("a"),
		NewButton("b", nil).WithKey("b"),
	).WithKey("root"))
	frame(t, tr, retained.Tight(retained.Size{Width: 200, Height: 200}))
	r := retained.NewRouter(tr)

	r.MoveFocus(retained.FocusNext)
	if !r.FocusPath().Equal(aPath) {
		t.Fatalf("focus = %v, want first button", r.FocusPath())
	}
	r.MoveFocus(retained.FocusNext)
	if !r.FocusPath().Equal(bPath) {
		t.Fatalf("focus = %v, want second button", r.FocusPath())
	}
	// No sibling past the last button: focus stays.
	r.MoveFocus(retained.FocusNext)
	if !r.FocusPath().Equal(bPath) {
		t.Fatalf("focus = %v, want unchanged at the end", r.FocusPath())
	}
	r.MoveFocus(retained.FocusPrev)
	if !r.FocusPath().Equal(aPath) {
		t.Fatalf("focus = %v, want first button again", r.FocusPath())
	}
}
