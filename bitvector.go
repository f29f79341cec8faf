package dynbitvec

import (
	"time"

	"github.com/dynbitvec/dynbitvec/internal/tree"
)

// BitVector is a dynamic bit vector supporting rank-enabled random-access
// insertion of single bits with amortized polylogarithmic cost per
// operation. See the package doc comment for the overall architecture;
// BitVector itself is a thin wrapper around internal/tree.BitvectorTree
// that adds the ambient logging/metrics hooks described in SPEC_FULL.md.
type BitVector struct {
	tree    *tree.BitvectorTree
	metrics MetricsCollector
	logger  *Logger
}

// New constructs a BitVector with room for capacity bits. Capacity must be
// positive; it cannot grow beyond the value given here (dynamic capacity
// growth is an explicit Non-goal).
func New(capacity int, opts ...Option) (*BitVector, error) {
	o := applyOptions(opts)

	dims, err := tree.NewDims(capacity, o.wordWidth)
	if err != nil {
		return nil, err
	}

	v := &BitVector{metrics: o.metricsCollector, logger: o.logger}
	v.tree = tree.New(dims, tree.Hooks{
		OnRootPromotion: func(newHeight int) {
			v.logger.LogRootPromotion(newHeight)
			v.metrics.RecordRootPromotion()
		},
		OnRedistribution: func(leaf bool, siblings int, split bool) {
			kind := RedistributionLeaf
			if !leaf {
				kind = RedistributionNode
			}
			v.logger.LogRedistribution(kind, siblings, split)
			v.metrics.RecordRedistribution(kind, siblings, 0)
		},
	})
	return v, nil
}

// Access returns the i-th bit in logical order, 0 <= i < Size().
func (v *BitVector) Access(i int) (bool, error) {
	if i < 0 {
		return false, &ErrIndexOutOfRange{Index: i, Size: int(v.tree.Size())}
	}
	return v.tree.Access(uint64(i))
}

// Insert opens a one-bit gap at position i (0 <= i <= Size()) and writes
// bit into it, shifting subsequent bits up by one.
func (v *BitVector) Insert(i int, bit bool) error {
	if i < 0 {
		err := &ErrIndexOutOfRange{Index: i, Size: int(v.tree.Size())}
		v.logger.LogInsert(i, bit, err)
		v.metrics.RecordInsert(0, err)
		return err
	}
	start := time.Now()
	err := v.tree.Insert(uint64(i), bit)
	v.logger.LogInsert(i, bit, err)
	v.metrics.RecordInsert(time.Since(start), err)
	return err
}

// Size returns the number of bits currently stored.
func (v *BitVector) Size() int { return int(v.tree.Size()) }

// Rank returns the total number of set bits currently stored.
func (v *BitVector) Rank() int { return int(v.tree.Rank()) }

// Capacity returns the maximum number of bits this vector can hold.
func (v *BitVector) Capacity() int { return int(v.tree.Capacity()) }

// Empty reports whether the vector holds no bits.
func (v *BitVector) Empty() bool { return v.tree.Empty() }

// Full reports whether the vector is at capacity.
func (v *BitVector) Full() bool { return v.tree.Full() }

// Degree returns d, the number of packed counter fields per node word.
func (v *BitVector) Degree() int { return v.tree.Degree() }

// CounterWidth returns the bit width of one size/rank counter field.
func (v *BitVector) CounterWidth() int { return v.tree.CounterWidth() }

// PointerWidth returns the bit width of one child-pointer field.
func (v *BitVector) PointerWidth() int { return v.tree.PointerWidth() }
