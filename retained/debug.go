package retained

import (
	"fmt"
	"io"
	"time"
)

// ============================================================================
// Introspection
// ============================================================================
//
// Read-only views over the pipeline's state: the live tree with identifiers
// and geometry, the set of elements touched by the last routed event, and a
// bounded timeline of recent events. None of these impose invariants on the
// core; they exist for debugging overlays and tests.

// Dump writes an indented view of the tree: one line per element with its
// identifier, behavior type, geometry, and pending dirty flags.
func (t *Tree) Dump(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "(empty tree)")
		return
	}
	dumpElement(w, t.root, 0)
}

func dumpElement(w io.Writer, el *Element, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, "  ")
	}
	fmt.Fprintf(w, "%s %T offset=%s size=%s flags=%s\n",
		el.id.String(), el.behavior, el.offset.String(), el.size.String(),
		el.flags.String())
	for _, ch := range el.children {
		dumpElement(w, ch, depth+1)
	}
}

// TraceEntry is one record of the router's event timeline.
type TraceEntry struct {
	Time    time.Time
	Kind    EventKind
	Target  IDPath
	Handled bool
	// Touched is how many elements the event's routing visited.
	Touched int
}

// traceCap bounds the timeline ring.
const traceCap = 64

// dispatchTrace is the router's bounded event history plus the touched set
// of the most recent event.
type dispatchTrace struct {
	entries [traceCap]TraceEntry
	next    int
	count   int

	lastTouched []IDPath
}

func (tr *dispatchTrace) record(kind EventKind, ctx *EventCtx) {
	tr.entries[tr.next] = TraceEntry{
		Time:    time.Now(),
		Kind:    kind,
		Target:  ctx.target.Clone(),
		Handled: ctx.handled,
		Touched: len(ctx.touched),
	}
	tr.next = (tr.next + 1) % traceCap
	if tr.count < traceCap {
		tr.count++
	}
	tr.lastTouched = append(tr.lastTouched[:0], ctx.touched...)
}

// Timeline returns the recent event history, oldest first.
func (r *Router) Timeline() []TraceEntry {
	tr := &r.trace
	out := make([]TraceEntry, 0, tr.count)
	start := tr.next - tr.count
	for i := 0; i < tr.count; i++ {
		out = append(out, tr.entries[(start+i+traceCap)%traceCap])
	}
	return out
}

// LastTouched returns the ID paths visited while routing the most recent
// event, in visit order.
func (r *Router) LastTouched() []IDPath {
	out := make([]IDPath, len(r.trace.lastTouched))
	copy(out, r.trace.lastTouched)
	return out
}
