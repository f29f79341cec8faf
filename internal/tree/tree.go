// Package tree implements the packed B-tree that backs the dynamic bit
// vector: internal nodes hold packed size/rank prefix sums and child
// pointers (internal/packedview), leaves hold a single machine word of raw
// bits (internal/bitview), and insertion amortizes its cost by
// redistributing across a window of adjacent siblings before it ever has
// to split (see redistribute.go).
package tree

import (
	"github.com/dynbitvec/dynbitvec/internal/arena"
	"github.com/dynbitvec/dynbitvec/internal/bitview"
)

// Hooks lets a caller (the root dynbitvec package) observe the two
// structurally interesting events the tree raises during insertion,
// without internal/tree importing logging or metrics machinery itself.
// Both fields are optional; a nil func is simply not called.
type Hooks struct {
	OnRootPromotion  func(newHeight int)
	OnRedistribution func(leaf bool, siblings int, split bool)
}

// BitvectorTree is the packed B-tree described in spec.md §4.3. The root
// is always node 0; height counts the number of internal-node levels from
// the root down to (and including) the level whose children are leaves —
// height 1 means the root's own children are leaves.
type BitvectorTree struct {
	dims   Dims
	nodes  *arena.NodePool
	leaves *arena.LeafPool
	height int
	size   uint64
	rank   uint64
	hooks  Hooks

	// Scratch buffers, sized once at construction and reused by every
	// redistribution call — see spec.md §9's "redistribution buffer" design
	// note and DESIGN.md's resolution of that Open Question. No allocation
	// happens on any path after New returns.
	leafScratchWords []uint64
	leafScratchIDs   []arena.LeafID
	grandPointers    []uint64
	grandSizes       []uint64
	grandRanks       []uint64
}

// New builds an empty tree for the given dimensions. dims must come from
// NewDims; New does not re-validate it.
func New(dims Dims, hooks Hooks) *BitvectorTree {
	maxWindow := dims.Degree + 2

	t := &BitvectorTree{
		dims:          dims,
		nodes:         arena.NewNodePool(uint32(dims.MaxNodes)),
		leaves:        arena.NewLeafPool(uint32(dims.MaxLeaves)),
		height:        1,
		hooks:         hooks,
		leafScratchIDs: make([]arena.LeafID, maxWindow),
		grandPointers:  make([]uint64, maxWindow*dims.Degree),
		grandSizes:     make([]uint64, maxWindow*dims.Degree),
		grandRanks:     make([]uint64, maxWindow*dims.Degree),
	}
	t.leafScratchWords = make([]uint64, ceilDiv(maxWindow*dims.W, bitview.WordBits)+1)
	return t
}

func (t *BitvectorTree) root() nodeView { return newNodeView(t.nodes, t.dims, 0) }

// Size returns the number of bits currently stored.
func (t *BitvectorTree) Size() uint64 { return t.size }

// Rank returns the total number of set bits currently stored.
func (t *BitvectorTree) Rank() uint64 { return t.rank }

// Capacity returns the maximum number of bits this tree can hold.
func (t *BitvectorTree) Capacity() uint64 { return uint64(t.dims.Capacity) }

// Empty reports whether the tree holds no bits.
func (t *BitvectorTree) Empty() bool { return t.size == 0 }

// Full reports whether the tree is at capacity.
func (t *BitvectorTree) Full() bool { return t.size >= uint64(t.dims.Capacity) }

// Height reports the current tree height (1 means the root's children are
// leaves). Not part of the external contract; exposed for tests and the
// optional debug dump.
func (t *BitvectorTree) Height() int { return t.height }

// Degree returns d, the number of packed counter fields per node word.
func (t *BitvectorTree) Degree() int { return t.dims.Degree }

// CounterWidth returns the bit width of one size/rank field.
func (t *BitvectorTree) CounterWidth() int { return t.dims.CounterWidth }

// PointerWidth returns the bit width of one pointer field.
func (t *BitvectorTree) PointerWidth() int { return t.dims.PointerWidth }

// Access returns the i-th bit in logical order, 0 <= i < Size().
func (t *BitvectorTree) Access(i uint64) (bool, error) {
	if i >= t.size {
		return false, &ErrIndexOutOfRange{Index: int(i), Size: int(t.size)}
	}
	return t.rootRef().access(i), nil
}

// Insert opens a one-bit gap at position i (0 <= i <= Size()) and writes
// bit into it, shifting subsequent bits up by one.
func (t *BitvectorTree) Insert(i uint64, bit bool) error {
	if i > t.size {
		return &ErrIndexOutOfRange{Index: int(i), Size: int(t.size)}
	}
	if t.Full() {
		return &ErrCapacityExceeded{Capacity: t.dims.Capacity}
	}

	if t.root().NKeys() == t.dims.Degree {
		t.promoteRoot()
	}
	t.insertAt(arena.NodeID(0), t.height, i, bit)

	t.size++
	if bit {
		t.rank++
	}
	return nil
}

// promoteRoot implements spec.md §4.3 step 1: when the root is full, its
// content is copied to a fresh node and the root becomes a single-child
// parent pointing at the copy. This is the only operation that increases
// height, and the root always stays at node index 0.
func (t *BitvectorTree) promoteRoot() {
	root := t.root()
	newID, ok := t.nodes.Alloc()
	invariant(ok, "node pool exhausted during root promotion")

	t.nodes.Sizes[newID] = t.nodes.Sizes[0]
	t.nodes.Ranks[newID] = t.nodes.Ranks[0]
	t.nodes.Pointers[newID] = t.nodes.Pointers[0]
	t.nodes.Counts[newID] = t.nodes.Counts[0]

	totalSize, totalRank := root.TotalSize(), root.TotalRank()
	root.resetAsSingleChild(uint64(newID), totalSize, totalRank)
	t.height++

	if t.hooks.OnRootPromotion != nil {
		t.hooks.OnRootPromotion(t.height)
	}
}

// insertAt recurses down from node id (at the given height, where height 1
// means id's children are leaves) and inserts bit at position i within
// id's subtree. The caller guarantees id has at least one free key slot.
func (t *BitvectorTree) insertAt(id arena.NodeID, height int, i uint64, bit bool) {
	n := newNodeView(t.nodes, t.dims, id)

	if n.NKeys() == 0 {
		// Only reachable at the very first insert into an empty tree: the
		// root has no children yet, so find_insert_point has nothing to
		// search. Give it one empty child to descend into.
		t.insertChildAt(n, 0, height == 1)
	}

	k, local := n.findInsertPoint(i)

	if height == 1 {
		leafID := arena.LeafID(n.Pointer(k))
		if n.childSize(k) == uint64(t.dims.W) {
			t.redistributeLeaves(n, k)
			k, local = n.findInsertPoint(i)
			leafID = arena.LeafID(n.Pointer(k))
		}

		sizeBefore := n.childSize(k)
		leaf := newLeafView(t.leaves, t.dims, leafID)
		leaf.insertBit(sizeBefore, local, bit)

		n.sizesPV().AddConst(uint64(k), uint64(t.dims.Degree), 1)
		if bit {
			n.ranksPV().AddConst(uint64(k), uint64(t.dims.Degree), 1)
		}
		return
	}

	childID := arena.NodeID(n.Pointer(k))
	if newNodeView(t.nodes, t.dims, childID).NKeys() == t.dims.Degree {
		t.redistributeNodes(n, k)
		k, local = n.findInsertPoint(i)
		childID = arena.NodeID(n.Pointer(k))
	}

	n.sizesPV().AddConst(uint64(k), uint64(t.dims.Degree), 1)
	if bit {
		n.ranksPV().AddConst(uint64(k), uint64(t.dims.Degree), 1)
	}
	t.insertAt(childID, height-1, local, bit)
}

// insertChildAt opens a gap at slot at in n (shifting existing children
// right), allocates a fresh leaf or node for it, and wires it in with
// size/rank 0. n must have a free slot (NKeys() < Degree).
func (t *BitvectorTree) insertChildAt(n nodeView, at int, childIsLeaf bool) uint64 {
	n.shiftRight(at)
	n.resetEmptyChildAt(at)

	var ptr uint64
	if childIsLeaf {
		id, ok := t.leaves.Alloc()
		invariant(ok, "leaf pool exhausted")
		ptr = uint64(id)
	} else {
		id, ok := t.nodes.Alloc()
		invariant(ok, "node pool exhausted")
		ptr = uint64(id)
	}
	n.setPointer(at, ptr)
	n.setNKeys(n.NKeys() + 1)
	return ptr
}
