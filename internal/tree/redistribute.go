package tree

import (
	"github.com/dynbitvec/dynbitvec/internal/arena"
	"github.com/dynbitvec/dynbitvec/internal/bitview"
)

// selectWindow implements find_adjacent_children (spec.md §4.3): among
// parent's nk used children, pick the contiguous window of length
// min(buffer+1, nk) that contains c and maximizes total free slots
// (capacity - used(k), summed over the window), breaking ties toward the
// earliest start. Every child in [0, nk) is allocated in this
// implementation (see DESIGN.md on absent-child windows), so the window
// never needs to treat a slot as "absent and fully free".
func selectWindow(nk, c, buffer int, used func(int) uint64, capacity uint64) (begin, end int) {
	winLen := buffer + 1
	if winLen > nk {
		winLen = nk
	}
	if winLen < 1 {
		winLen = 1
	}

	loStart := c - winLen + 1
	if loStart < 0 {
		loStart = 0
	}
	hiStart := c
	if hiStart > nk-winLen {
		hiStart = nk - winLen
	}

	bestFree := int64(-1)
	bestStart := loStart
	for s := loStart; s <= hiStart; s++ {
		free := int64(0)
		for k := s; k < s+winLen; k++ {
			free += int64(capacity) - int64(used(k))
		}
		if free > bestFree {
			bestFree = free
			bestStart = s
		}
	}
	return bestStart, bestStart + winLen
}

// redistributeLeaves amortizes a full leaf (child c of parent, size ==
// dims.W) by redistributing the bits of a sibling window evenly across
// it, growing the window by one fresh empty leaf first if spreading the
// window's bits evenly over its current length would leave some sibling
// holding a full W bits (the split condition below).
func (t *BitvectorTree) redistributeLeaves(parent nodeView, c int) {
	d := t.dims
	nk := parent.NKeys()

	begin, end := selectWindow(nk, c, d.LeavesBuffer, parent.childSize, uint64(d.W))

	occupied := uint64(0)
	for k := begin; k < end; k++ {
		occupied += parent.childSize(k)
	}

	// Split iff redistributing occupied bits evenly across the window as it
	// stands (length end-begin) would leave some sibling with a full W bits:
	// ceil(occupied/winLen) >= W iff occupied > winLen*(W-1). Scaling by the
	// window's actual length, rather than assuming it is always
	// LeavesBuffer+1 wide, is what keeps this correct for the degenerate
	// windows of length 1 that show up whenever a child has no siblings yet
	// (the very first leaf to fill, or the lone child right after a root
	// promotion) — a fixed threshold sized for the common case panics on
	// those (see DESIGN.md).
	split := occupied > uint64(end-begin)*uint64(d.W-1)
	if split {
		t.insertChildAt(parent, end, true)
		end++
	}
	if t.hooks.OnRedistribution != nil {
		t.hooks.OnRedistribution(true, end-begin, split)
	}

	windowLen := end - begin
	scratch := bitview.New(t.leafScratchWords)

	offset := uint64(0)
	for j := 0; j < windowLen; j++ {
		k := begin + j
		id := arena.LeafID(parent.Pointer(k))
		t.leafScratchIDs[j] = id
		sz := parent.childSize(k)
		newLeafView(t.leaves, d, id).extractInto(scratch, offset, sz)
		offset += sz
	}
	total := offset

	q, r := total/uint64(windowLen), total%uint64(windowLen)

	base, baseRank := uint64(0), uint64(0)
	if begin > 0 {
		base, baseRank = parent.Size(begin-1), parent.Rank(begin-1)
	}

	pos := uint64(0)
	cumSize, cumRank := base, baseRank
	for j := 0; j < windowLen; j++ {
		share := q
		if uint64(j) < r {
			share++
		}
		invariant(share < uint64(d.W), "leaf redistribution left a full sibling")

		leaf := newLeafView(t.leaves, d, t.leafScratchIDs[j])
		leaf.loadFrom(scratch, pos, share)
		rnk := leaf.rankUpTo(share)
		pos += share

		cumSize += share
		cumRank += rnk
		k := begin + j
		parent.setSize(k, cumSize)
		parent.setRank(k, cumRank)
	}
}

// redistributeNodes amortizes a full internal child (child c of parent,
// NKeys() == Degree) by redistributing the (pointer, size, rank) triples
// of a sibling window's grandchildren evenly across it, growing the window
// by one fresh empty node first if the window is too full to redistribute
// in place without leaving a sibling at Degree keys.
func (t *BitvectorTree) redistributeNodes(parent nodeView, c int) {
	d := t.dims

	used := func(k int) uint64 {
		return uint64(newNodeView(t.nodes, d, arena.NodeID(parent.Pointer(k))).NKeys())
	}
	nk := parent.NKeys()
	begin, end := selectWindow(nk, c, d.NodesBuffer, used, uint64(d.Degree))

	occupied := 0
	for k := begin; k < end; k++ {
		occupied += int(used(k))
	}

	// Same window-length-scaled reasoning as redistributeLeaves: split iff
	// occupied keys can't be spread across the window (length end-begin)
	// without some sibling reaching Degree keys.
	split := occupied > (end-begin)*(d.Degree-1)
	if split {
		t.insertChildAt(parent, end, false)
		end++
	}
	if t.hooks.OnRedistribution != nil {
		t.hooks.OnRedistribution(false, end-begin, split)
	}

	windowLen := end - begin
	total := 0
	for j := 0; j < windowLen; j++ {
		k := begin + j
		cn := newNodeView(t.nodes, d, arena.NodeID(parent.Pointer(k)))
		cnk := cn.NKeys()
		for g := 0; g < cnk; g++ {
			t.grandPointers[total] = cn.Pointer(g)
			t.grandSizes[total] = cn.childSize(g)
			t.grandRanks[total] = cn.childRank(g)
			total++
		}
	}

	q, r := total/windowLen, total%windowLen

	base, baseRank := uint64(0), uint64(0)
	if begin > 0 {
		base, baseRank = parent.Size(begin-1), parent.Rank(begin-1)
	}

	idx := 0
	cumSize, cumRank := base, baseRank
	for j := 0; j < windowLen; j++ {
		share := q
		if j < r {
			share++
		}
		invariant(share < d.Degree, "node redistribution left a full sibling")

		k := begin + j
		cn := newNodeView(t.nodes, d, arena.NodeID(parent.Pointer(k)))
		cn.pointersPV().Broadcast(0, uint64(d.Degree), 0)

		localSize, localRank := uint64(0), uint64(0)
		for g := 0; g < share; g++ {
			cn.setPointer(g, t.grandPointers[idx])
			localSize += t.grandSizes[idx]
			localRank += t.grandRanks[idx]
			cn.setSize(g, localSize)
			cn.setRank(g, localRank)
			idx++
		}
		if share < d.Degree {
			cn.sizesPV().Broadcast(uint64(share), uint64(d.Degree), localSize)
			cn.ranksPV().Broadcast(uint64(share), uint64(d.Degree), localRank)
		}
		cn.setNKeys(share)

		cumSize += localSize
		cumRank += localRank
		parent.setSize(k, cumSize)
		parent.setRank(k, cumRank)
	}
}
