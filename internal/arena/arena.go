package arena

import "fmt"

// NodeID and LeafID are stable handles into their respective pools.
// LeafID 0 is a reserved null handle: no leaf is ever allocated there, and
// a subtree reference with leaf ID 0 means "not a leaf". NodeID 0 is
// reserved differently — it is always the tree's root, allocated once at
// construction and never reused as a null sentinel — so in both pools
// Alloc hands out its first real handle starting at 1, leaving slot 0 for
// its respective special case.
type NodeID uint32
type LeafID uint32

// NodePool is a bump allocator over three parallel word arrays: every
// node's packed sizes, ranks, and pointers fields live in pool[id], one
// machine word each. Capacity is fixed at construction; there is no
// deallocation and no growth.
//
// Counts holds each node's current key count (nkeys) outside the packed
// word — a node's own occupancy isn't something packedview's fixed-width
// fields are a good fit for, since it ranges over [0, Degree] and is read
// on every descent, not just during redistribution.
type NodePool struct {
	Sizes    []uint64
	Ranks    []uint64
	Pointers []uint64
	Counts   []uint8
	next     NodeID
}

// NewNodePool preallocates a pool with room for capacity nodes plus slot 0,
// which holds the tree's root and is never handed out by Alloc.
func NewNodePool(capacity uint32) *NodePool {
	n := capacity + 1
	return &NodePool{
		Sizes:    make([]uint64, n),
		Ranks:    make([]uint64, n),
		Pointers: make([]uint64, n),
		Counts:   make([]uint8, n),
		next:     1,
	}
}

// Alloc hands out the next free node handle. ok is false once the pool is
// exhausted; the caller (internal/tree) treats that as an internal
// invariant violation and panics with ErrInternalInvariantViolated.
func (p *NodePool) Alloc() (id NodeID, ok bool) {
	if int(p.next) >= len(p.Sizes) {
		return 0, false
	}
	id = p.next
	p.next++
	return id, true
}

// Len reports how many nodes have been allocated so far.
func (p *NodePool) Len() uint32 { return uint32(p.next) - 1 }

// Cap reports the maximum number of nodes the pool can hold.
func (p *NodePool) Cap() uint32 { return uint32(len(p.Sizes)) - 1 }

func (p *NodePool) String() string {
	return fmt.Sprintf("NodePool{len=%d, cap=%d}", p.Len(), p.Cap())
}

// LeafPool is a bump allocator over a single word array: leaf id holds
// its whole W-bit payload in pool[id].
type LeafPool struct {
	Words []uint64
	next  LeafID
}

// NewLeafPool preallocates a pool with room for capacity leaves plus the
// reserved null handle at index 0.
func NewLeafPool(capacity uint32) *LeafPool {
	return &LeafPool{
		Words: make([]uint64, capacity+1),
		next:  1,
	}
}

// Alloc hands out the next free leaf handle.
func (p *LeafPool) Alloc() (id LeafID, ok bool) {
	if int(p.next) >= len(p.Words) {
		return 0, false
	}
	id = p.next
	p.next++
	return id, true
}

// Len reports how many leaves have been allocated so far.
func (p *LeafPool) Len() uint32 { return uint32(p.next) - 1 }

// Cap reports the maximum number of leaves the pool can hold.
func (p *LeafPool) Cap() uint32 { return uint32(len(p.Words)) - 1 }

func (p *LeafPool) String() string {
	return fmt.Sprintf("LeafPool{len=%d, cap=%d}", p.Len(), p.Cap())
}
