package tree

import (
	"github.com/dynbitvec/dynbitvec/internal/arena"
	"github.com/dynbitvec/dynbitvec/internal/packedview"
)

// nodeView is a cheap, stateless handle onto one internal node's row in a
// NodePool. Every accessor recomputes its packedview.View from the pool
// rather than caching one, since a node's row is a single word and the
// view construction is just arithmetic over already-resident fields.
type nodeView struct {
	pool *arena.NodePool
	dims Dims
	id   arena.NodeID
}

func newNodeView(pool *arena.NodePool, dims Dims, id arena.NodeID) nodeView {
	return nodeView{pool: pool, dims: dims, id: id}
}

func (n nodeView) sizesPV() packedview.View {
	return packedview.New(n.pool.Sizes[n.id:n.id+1], uint64(n.dims.CounterWidth), uint64(n.dims.Degree))
}

func (n nodeView) ranksPV() packedview.View {
	return packedview.New(n.pool.Ranks[n.id:n.id+1], uint64(n.dims.CounterWidth), uint64(n.dims.Degree))
}

// pointers is parallel to sizes/ranks, not offset by one: child k's
// pointer, cumulative size, and cumulative rank all live at index k. There
// is no separate "key" array distinct from "children" here — every entry
// is a (subtree pointer, cumulative size, cumulative rank) triple.
func (n nodeView) pointersPV() packedview.View {
	return packedview.New(n.pool.Pointers[n.id:n.id+1], uint64(n.dims.PointerWidth), uint64(n.dims.Degree))
}

// NKeys is the number of valid children (and cumulative size/rank entries)
// this node currently holds. Tracked outside the packed words — see the
// note on arena.NodePool.Counts.
func (n nodeView) NKeys() int     { return int(n.pool.Counts[n.id]) }
func (n nodeView) setNKeys(k int) { n.pool.Counts[n.id] = uint8(k) }

// Size returns the cumulative subtree size through child k, inclusive:
// sizes[k] = size(child 0) + ... + size(child k).
func (n nodeView) Size(k int) uint64       { return n.sizesPV().Get(uint64(k)) }
func (n nodeView) setSize(k int, v uint64) { n.sizesPV().Set(uint64(k), v) }

// Rank returns the cumulative set-bit count through child k, inclusive.
func (n nodeView) Rank(k int) uint64       { return n.ranksPV().Get(uint64(k)) }
func (n nodeView) setRank(k int, v uint64) { n.ranksPV().Set(uint64(k), v) }

// Pointer returns child k's handle: a leaf ID if this node is one level
// above the leaves, otherwise a node ID. The node doesn't know which —
// height, tracked by the caller during descent, decides that.
func (n nodeView) Pointer(k int) uint64       { return n.pointersPV().Get(uint64(k)) }
func (n nodeView) setPointer(k int, v uint64) { n.pointersPV().Set(uint64(k), v) }

// TotalSize is the size of the whole subtree rooted at this node.
func (n nodeView) TotalSize() uint64 {
	nk := n.NKeys()
	if nk == 0 {
		return 0
	}
	return n.Size(nk - 1)
}

// TotalRank is the set-bit count of the whole subtree rooted at this node.
func (n nodeView) TotalRank() uint64 {
	nk := n.NKeys()
	if nk == 0 {
		return 0
	}
	return n.Rank(nk - 1)
}

// childSize returns child k's own (non-cumulative) size.
func (n nodeView) childSize(k int) uint64 {
	if k == 0 {
		return n.Size(0)
	}
	return n.Size(k) - n.Size(k-1)
}

// childRank returns child k's own (non-cumulative) set-bit count.
func (n nodeView) childRank(k int) uint64 {
	if k == 0 {
		return n.Rank(0)
	}
	return n.Rank(k) - n.Rank(k-1)
}

// findAccess locates the child whose range contains global position i
// (0 <= i < TotalSize()) using the packed Find primitive: since sizes[]
// is a monotonically increasing prefix sum, the smallest k with sizes[k] >
// i is exactly the child containing i (an exact boundary position belongs
// to the *next* child — its first bit), and Find's "count of fields
// greater than value" result converts to that index in one word op.
// local is i's position within the returned child.
func (n nodeView) findAccess(i uint64) (k int, local uint64) {
	nk := n.NKeys()
	greater := n.sizesPV().Find(0, uint64(nk), i)
	k = nk - int(greater)
	if k >= nk {
		k = nk - 1
	}
	if k == 0 {
		local = i
	} else {
		local = i - n.Size(k-1)
	}
	return k, local
}

// findInsertPoint locates the child an insert at global position i (0 <= i
// <= TotalSize()) should descend into. Unlike findAccess, a position that
// falls exactly on a child boundary resolves to the *end* of the preceding
// child (local == that child's size) rather than the start of the next
// one — appending at i == TotalSize() must land in the last child, and in
// general "insert before bit i" and "insert after bit i-1" are the same
// position but the latter is the convention that keeps redistribution
// symmetric with access. This is find_insert_point in spec.md §4.3: the
// same Find primitive queried one value lower.
func (n nodeView) findInsertPoint(i uint64) (k int, local uint64) {
	nk := n.NKeys()
	if i == 0 {
		return 0, 0
	}
	atLeast := n.sizesPV().Find(0, uint64(nk), i-1)
	k = nk - int(atLeast)
	if k >= nk {
		k = nk - 1
	}
	if k == 0 {
		local = i
	} else {
		local = i - n.Size(k-1)
	}
	return k, local
}

// resetAsSingleChild overwrites this node so it has exactly one child —
// childPtr, covering the whole subtree of size/rank — at slot 0, with
// every other slot (used or not) holding that same total per invariant 3.
// Used only by root promotion: the old root's content has just been
// copied elsewhere, and the root itself becomes the new single-child
// parent pointing at the copy.
func (n nodeView) resetAsSingleChild(childPtr, size, rank uint64) {
	d := uint64(n.dims.Degree)
	n.sizesPV().Broadcast(0, d, size)
	n.ranksPV().Broadcast(0, d, rank)
	n.pointersPV().Broadcast(0, d, 0)
	n.setPointer(0, childPtr)
	n.setNKeys(1)
}

// resetEmptyChildAt sets slot at's cumulative size/rank to match slot
// at-1 (or zero, if at is the first slot) — i.e. "child at contributes
// nothing yet". Callers use this immediately after shiftRight(at) opens
// a gap, since shiftRight only moves existing fields and leaves whatever
// was at slot at's old value behind, which is not generally the right
// cumulative sum for a newly empty child landing there.
func (n nodeView) resetEmptyChildAt(at int) {
	var base, baseRank uint64
	if at > 0 {
		base = n.Size(at - 1)
		baseRank = n.Rank(at - 1)
	}
	n.setSize(at, base)
	n.setRank(at, baseRank)
}

// shiftRight moves entries [at, nkeys) one slot to the right, in sizes,
// ranks, and pointers alike, to open a gap at index at. Iterates high to
// low since source and destination overlap within the same packed word.
func (n nodeView) shiftRight(at int) {
	nk := n.NKeys()
	sp, rp, pp := n.sizesPV(), n.ranksPV(), n.pointersPV()
	for k := nk; k > at; k-- {
		sp.Set(uint64(k), sp.Get(uint64(k-1)))
		rp.Set(uint64(k), rp.Get(uint64(k-1)))
		pp.Set(uint64(k), pp.Get(uint64(k-1)))
	}
}
