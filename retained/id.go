package retained

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// ============================================================================
// Element Identity
// ============================================================================
//
// Elements are addressed by stable identifiers that survive rebuilds of the
// tree. An ID is derived from the element's position in the declarative
// structure: the parent's ID chained with the widget's declaration key. The
// key is either explicit (set by the application) or synthesized from the
// behavior's type name plus an occurrence index among unkeyed siblings of the
// same type, so reordering differently keyed or typed siblings does not
// reassign their identities.
//
// IDs are unique only among siblings. Event delivery therefore addresses
// nodes by an ID path (root to target), never by global lookup.

// ElementID identifies an element within its parent's scope.
type ElementID uint64

// Anonymous marks an element that cannot be individually addressed.
// Anonymous siblings are exempt from the sibling-uniqueness rule; routed
// events can never target them.
const Anonymous ElementID = 0

// String formats the ID for logs and tree dumps.
func (id ElementID) String() string {
	if id == Anonymous {
		return "anon"
	}
	return strconv.FormatUint(uint64(id), 16)
}

// DeriveID chains a parent identity with a declaration key. The result is
// deterministic for a given (parent, key) pair and never Anonymous.
func DeriveID(parent ElementID, key string) ElementID {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(uint64(parent) >> (8 * i))
	}
	h.Write(buf[:])
	h.Write([]byte(key))
	id := ElementID(h.Sum64())
	if id == Anonymous {
		id = 1
	}
	return id
}

// IDPath is the ordered sequence of identifiers from the root to a target
// element. A transparent wrapper that shares its child's ID contributes one
// repeated entry; routing matches entries against children level by level.
type IDPath []ElementID

// Clone returns an independent copy of the path.
func (p IDPath) Clone() IDPath {
	if p == nil {
		return nil
	}
	out := make(IDPath, len(p))
	copy(out, p)
	return out
}

// Child returns p extended with one more level.
func (p IDPath) Child(id ElementID) IDPath {
	out := make(IDPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, id)
}

// Equal reports whether two paths address the same element.
func (p IDPath) Equal(q IDPath) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String formats the path as root/.../target.
func (p IDPath) String() string {
	if len(p) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i, id := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(id.String())
	}
	return b.String()
}
