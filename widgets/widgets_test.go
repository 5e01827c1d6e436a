package widgets

// Shared scaffolding for the widget tests: a recording canvas, a frame
// helper, and pointer dispatch shorthands.

import (
	"fmt"
	"testing"

	"github.com/oakui/oak/retained"
)

// recCanvas records paint commands as strings.
type recCanvas struct {
	ops []string
}

func (c *recCanvas) Save()    {}
func (c *recCanvas) Restore() {}
func (c *recCanvas) Translate(dx, dy float64) {}
func (c *recCanvas) ClipRect(r retained.Rect) {
	c.ops = append(c.ops, fmt.Sprintf("clip %v", r))
}
func (c *recCanvas) FillRect(r retained.Rect, color retained.Color) {
	c.ops = append(c.ops, fmt.Sprintf("fill %v", r))
}
func (c *recCanvas) StrokeRect(r retained.Rect, color retained.Color, width float64) {
	c.ops = append(c.ops, fmt.Sprintf("stroke %v", r))
}
func (c *recCanvas) DrawText(text string, origin retained.Point, font retained.Font, color retained.Color) {
	c.ops = append(c.ops, fmt.Sprintf("text %q", text))
}
func (c *recCanvas) DrawSurface(s retained.Surface, at retained.Rect) {
	c.ops = append(c.ops, fmt.Sprintf("surface %v", at))
}

// frame rebuilds, lays out, and paints the tree once, the way a window frame
// pass would.
func frame(t *testing.T, tr *retained.Tree, c retained.Constraints) retained.FrameResult {
	t.Helper()
	for i := 0; tr.NeedsRebuild(); i++ {
		tr.Rebuild()
		if i > 4 {
			t.Fatal("rebuild did not settle")
		}
	}
	tr.Layout(c)
	return tr.Paint(&recCanvas{}, nil)
}

func press(r *retained.Router, x, y float64) retained.Outcome {
	return pointer(r, retained.EventPointerDown, x, y)
}

func release(r *retained.Router, x, y float64) retained.Outcome {
	return pointer(r, retained.EventPointerUp, x, y)
}

func move(r *retained.Router, x, y float64) retained.Outcome {
	return pointer(r, retained.EventPointerMove, x, y)
}

func pointer(r *retained.Router, kind retained.EventKind, x, y float64) retained.Outcome {
	ev := retained.AcquirePointerEvent(kind)
	ev.Position = retained.Point{X: x, Y: y}
	ev.Button = retained.ButtonLeft
	out := r.DispatchPointer(ev)
	ev.Release()
	return out
}

func wheel(r *retained.Router, x, y, dy float64) retained.Outcome {
	ev := retained.AcquirePointerEvent(retained.EventPointerScroll)
	ev.Position = retained.Point{X: x, Y: y}
	ev.ScrollY = dy
	out := r.DispatchPointer(ev)
	ev.Release()
	return out
}

// textSize mirrors the default tree measurer for expected-value math.
func textSize(s string) retained.Size {
	return retained.NewFixedMeasurer().MeasureText(s, DefaultFont)
}
