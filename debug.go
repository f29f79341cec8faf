package dynbitvec

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Snapshot reconstructs the vector's logical sequence into a
// bits-and-blooms/bitset.BitSet by walking Access(0..Size()). It is not
// part of the external contract (spec.md §6: "a debug stream dump is
// optional") — it exists for tests and for ad-hoc inspection, and costs
// O(Size()) since it has no shortcut through the packed representation.
func (v *BitVector) Snapshot() (*bitset.BitSet, error) {
	bs := bitset.New(uint(v.Size()))
	for i := 0; i < v.Size(); i++ {
		bit, err := v.Access(i)
		if err != nil {
			return nil, err
		}
		if bit {
			bs.Set(uint(i))
		}
	}
	return bs, nil
}

// Dump renders a one-line summary of the vector's header state plus its
// logical sequence as a string of '0'/'1' characters, for debug logging.
// It is never used on any hot path.
func (v *BitVector) Dump() string {
	bs, err := v.Snapshot()
	if err != nil {
		return fmt.Sprintf("dynbitvec: dump failed: %v", err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "size=%d rank=%d cap=%d degree=%d: ", v.Size(), v.Rank(), v.Capacity(), v.Degree())
	for i := uint(0); i < bs.Len(); i++ {
		if bs.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
