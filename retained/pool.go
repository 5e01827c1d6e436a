package retained

import "sync"

// ============================================================================
// Slice Pooling
// ============================================================================
//
// Pointer dispatch builds a hit chain and a hit-record list per platform
// event. Pool the backing slices to keep steady-state dispatch free of
// per-event allocations in large trees.

// hitChainPool pools the chains built during pointer hit-testing.
var hitChainPool = sync.Pool{
	New: func() any {
		s := make([]hitEntry, 0, 32)
		return &s
	},
}

// acquireHitChain gets an empty hit chain from the pool.
func acquireHitChain() *[]hitEntry {
	return hitChainPool.Get().(*[]hitEntry)
}

// releaseHitChain clears and returns a chain to the pool. Oversized chains
// are dropped to keep pooled memory bounded.
func releaseHitChain(chain *[]hitEntry) {
	if chain == nil {
		return
	}
	for i := range *chain {
		(*chain)[i] = hitEntry{}
	}
	if cap(*chain) <= 256 {
		*chain = (*chain)[:0]
		hitChainPool.Put(chain)
	}
}

// pathSetPool pools the maps used when diffing hovered sets.
var pathSetPool = sync.Pool{
	New: func() any {
		return make(map[string]IDPath, 32)
	},
}

// acquirePathSet gets an empty path set from the pool.
func acquirePathSet() map[string]IDPath {
	return pathSetPool.Get().(map[string]IDPath)
}

// releasePathSet clears and returns a path set to the pool.
func releasePathSet(m map[string]IDPath) {
	if m == nil {
		return
	}
	for k := range m {
		delete(m, k)
	}
	pathSetPool.Put(m)
}
