package tree

import (
	"math/bits"

	"github.com/dynbitvec/dynbitvec/internal/arena"
	"github.com/dynbitvec/dynbitvec/internal/bitview"
)

// leafView is a cheap, stateless handle onto one leaf's word. A leaf
// stores up to dims.W raw bits; it does not know its own current size —
// that lives in the parent node's cumulative sizes array, same as every
// other subtree.
type leafView struct {
	pool *arena.LeafPool
	dims Dims
	id   arena.LeafID
}

func newLeafView(pool *arena.LeafPool, dims Dims, id arena.LeafID) leafView {
	return leafView{pool: pool, dims: dims, id: id}
}

func (l leafView) bv() bitview.View {
	return bitview.New(l.pool.Words[l.id : l.id+1])
}

// Get returns the single bit at local position i within a leaf currently
// holding size bits.
func (l leafView) Get(i uint64) bool {
	return l.bv().GetBit(i)
}

// rankUpTo returns the number of set bits in [0, i) of this leaf.
func (l leafView) rankUpTo(i uint64) uint64 {
	if i == 0 {
		return 0
	}
	return uint64(bits.OnesCount64(l.bv().Get(0, i)))
}

// insertBit opens a one-bit gap at pos within a leaf currently holding
// size bits (size must be < dims.W — the caller redistributes or splits
// before calling this on a full leaf) and writes bit into it.
func (l leafView) insertBit(size, pos uint64, bit bool) {
	v := l.bv()
	if pos < size {
		tail := v.Get(pos, size)
		v.Set(pos+1, size+1, tail)
	}
	v.SetBit(pos, bit)
}

// extractInto copies this leaf's first size bits into dst starting at
// dstLo, for use as one half of a redistribution's scratch window.
func (l leafView) extractInto(dst bitview.View, dstLo, size uint64) {
	if size == 0 {
		return
	}
	dst.Set(dstLo, dstLo+size, l.bv().Get(0, size))
}

// loadFrom overwrites this leaf's first size bits from src[srcLo,
// srcLo+size), the inverse of extractInto, and zeroes [size, dims.W) so
// invariant 6 (unused high bits are zero) holds even when size shrinks
// relative to whatever this leaf held before redistribution.
func (l leafView) loadFrom(src bitview.View, srcLo, size uint64) {
	if size > 0 {
		l.bv().Set(0, size, src.Get(srcLo, srcLo+size))
	}
	w := uint64(l.dims.W)
	if size < w {
		l.bv().Set(size, w, 0)
	}
}
