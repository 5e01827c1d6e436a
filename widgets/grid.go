package widgets

import (
	"github.com/oakui/oak/retained"
)

// Grid describes a fixed-column grid that sizes tracks to content. Track
// sizing probes every child with a speculative layout pass to learn natural
// sizes, then commits one layout per child under the resolved tight cell
// constraints; only the committed results reach the cache and paint.
type Grid struct {
	K        string
	Columns  int
	Gap      float64
	Children []retained.Widget
}

// NewGrid describes a grid with the given column count.
func NewGrid(columns int, children ...retained.Widget) *Grid {
	return &Grid{Columns: columns, Children: children}
}

// WithKey sets an explicit identity key.
func (w *Grid) WithKey(k string) *Grid {
	w.K = k
	return w
}

func (w *Grid) Key() string { return w.K }

func (w *Grid) cols() int {
	if w.Columns < 1 {
		return 1
	}
	return w.Columns
}

func (w *Grid) Build(cx *retained.BuildCtx) *retained.Element {
	el := cx.NewElement(&gridBehavior{cols: w.cols(), gap: w.Gap})
	cx.Reconcile(el, w.Children)
	return el
}

func (w *Grid) Update(cx *retained.BuildCtx, el *retained.Element) bool {
	b, ok := el.Behavior().(*gridBehavior)
	if !ok {
		return false
	}
	if b.cols != w.cols() || b.gap != w.Gap {
		b.cols = w.cols()
		b.gap = w.Gap
		el.Mark(retained.FlagGeometry)
	}
	cx.Reconcile(el, w.Children)
	return true
}

type gridBehavior struct {
	cols int
	gap  float64
}

func (b *gridBehavior) Layout(ctx *retained.LayoutCtx, el *retained.Element, c retained.Constraints) retained.Size {
	kids := el.Children()
	if len(kids) == 0 {
		return c.Constrain(retained.Size{})
	}
	cols := b.cols
	rows := (len(kids) + cols - 1) / cols

	// Track sizing probe: natural size of every child under the loose
	// incoming box with an unbounded height. Probes never touch the cache
	// or the children's paint state.
	probeC := retained.Constraints{
		MinWidth: 0, MaxWidth: c.MaxWidth,
		MinHeight: 0, MaxHeight: retained.Inf,
	}
	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	for i, ch := range kids {
		nat := ctx.Probe(ch, probeC)
		col, row := i%cols, i/cols
		if nat.Width > colW[col] {
			colW[col] = nat.Width
		}
		if nat.Height > rowH[row] {
			rowH[row] = nat.Height
		}
	}

	// Commit: each child gets its resolved cell as tight constraints.
	var y float64
	for row := 0; row < rows; row++ {
		var x float64
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(kids) {
				break
			}
			cell := retained.Size{Width: colW[col], Height: rowH[row]}
			el.LayoutChild(ctx, kids[i], retained.Tight(cell))
			el.Place(ctx, kids[i], retained.Point{X: x, Y: y})
			x += colW[col] + b.gap
		}
		y += rowH[row] + b.gap
	}

	var totalW, totalH float64
	for _, wd := range colW {
		totalW += wd
	}
	totalW += b.gap * float64(cols-1)
	for _, h := range rowH {
		totalH += h
	}
	totalH += b.gap * float64(rows-1)
	return c.Constrain(retained.Size{Width: totalW, Height: totalH})
}

func (b *gridBehavior) Event(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {}

func (b *gridBehavior) RouteEvent(ctx *retained.EventCtx, el *retained.Element, ev retained.Event) {
	ctx.RouteToChild(el, ev)
}

func (b *gridBehavior) Paint(ctx *retained.PaintCtx, el *retained.Element) {}
