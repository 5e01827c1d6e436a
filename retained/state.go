package retained

// ============================================================================
// State Tokens
// ============================================================================
//
// Widget callbacks do not hold references into the tree. They hold opaque
// tokens identifying state slots owned by the tree, and exchange a token for
// the slot's value only inside a UI-thread pass, through the pass context.
// Writing a slot marks dirty flags through the same context, so state
// changes always feed the relayout/repaint schedulers.

// StateToken is an opaque handle to one state slot.
type StateToken struct {
	tree *Tree
	slot int
}

// NewState allocates a state slot on the tree and returns its token.
// Must be called on the UI goroutine.
func NewState[T any](tree *Tree, initial T) StateToken {
	tree.slots = append(tree.slots, initial)
	return StateToken{tree: tree, slot: len(tree.slots) - 1}
}

// State reads a slot's current value through a pass context. The zero value
// is returned for a token from another tree or a type mismatch.
func State[T any](ctx *EventCtx, tok StateToken) T {
	var zero T
	if tok.tree == nil || tok.tree != ctx.tree || tok.slot >= len(tok.tree.slots) {
		return zero
	}
	if v, ok := tok.tree.slots[tok.slot].(T); ok {
		return v
	}
	return zero
}

// SetState writes a slot during event handling and schedules a rebuild of
// the tree; the next reconcile pass observes the new value.
func SetState[T any](ctx *EventCtx, tok StateToken, v T) {
	if tok.tree == nil || tok.tree != ctx.tree || tok.slot >= len(tok.tree.slots) {
		return
	}
	tok.tree.slots[tok.slot] = v
	ctx.RequestRebuild()
}
