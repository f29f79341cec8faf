package bitview

// WordBits is the machine word width in bits. The spec parameterizes this
// as W; this module fixes it at compile time per the design note in
// SPEC_FULL.md §9 rather than threading it through every call on the hot
// path.
const WordBits = 64

// View is a zero-allocation wrapper around a []uint64 backing store,
// addressed little-endian in bit order: bit 0 of word 0 is logical bit 0.
// It never owns Words — callers (internal/arena pools, internal/packedview)
// are responsible for the backing slice's lifetime.
type View struct {
	Words []uint64
}

// New wraps words as a View.
func New(words []uint64) View {
	return View{Words: words}
}

func mask(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	if n >= WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// Get returns the len = hi-lo bits at [lo, hi), zero-extended. len must be
// in (0, WordBits]; the range may straddle two words.
func (v View) Get(lo, hi uint64) uint64 {
	length := hi - lo
	wordIdx := lo / WordBits
	bitOff := lo % WordBits

	if bitOff+length <= WordBits {
		return (v.Words[wordIdx] >> bitOff) & mask(length)
	}

	lowBits := WordBits - bitOff
	low := v.Words[wordIdx] >> bitOff
	highLen := length - lowBits
	high := v.Words[wordIdx+1] & mask(highLen)

	return low | (high << lowBits)
}

// GetBit returns the single bit at i.
func (v View) GetBit(i uint64) bool {
	return v.Get(i, i+1) != 0
}

// Set writes the low len = hi-lo bits of value into [lo, hi), preserving
// surrounding bits. The range may straddle two words.
func (v View) Set(lo, hi uint64, value uint64) {
	length := hi - lo
	value &= mask(length)
	wordIdx := lo / WordBits
	bitOff := lo % WordBits

	if bitOff+length <= WordBits {
		clear := mask(length) << bitOff
		v.Words[wordIdx] = (v.Words[wordIdx] &^ clear) | (value << bitOff)
		return
	}

	lowBits := WordBits - bitOff
	clearLow := mask(lowBits) << bitOff // == all bits from bitOff up
	v.Words[wordIdx] = (v.Words[wordIdx] &^ clearLow) | ((value & mask(lowBits)) << bitOff)

	highLen := length - lowBits
	clearHigh := mask(highLen)
	v.Words[wordIdx+1] = (v.Words[wordIdx+1] &^ clearHigh) | ((value >> lowBits) & clearHigh)
}

// SetBit writes a single bit.
func (v View) SetBit(i uint64, b bool) {
	var val uint64
	if b {
		val = 1
	}
	v.Set(i, i+1, val)
}

// SetRange bulk-copies src[slo:shi) into this view at [dlo, dlo+(shi-slo)).
// shi-slo must be in (0, WordBits].
func (v View) SetRange(src View, slo, shi, dlo uint64) {
	v.Set(dlo, dlo+(shi-slo), src.Get(slo, shi))
}

// SetSum adds src[slo:shi), treated as a packed-arithmetic value, into the
// destination range [dlo, dlo+(shi-slo)). The sum wraps modulo 2^len; the
// caller (internal/packedview) guarantees no field within the range
// overflows into its neighbor.
func (v View) SetSum(src View, slo, shi, dlo uint64) {
	length := shi - slo
	addend := src.Get(slo, shi)
	cur := v.Get(dlo, dlo+length)
	v.Set(dlo, dlo+length, (cur+addend)&mask(length))
}

// SumWithCarry adds addend+carryIn to the len bits at lo, writes the
// truncated len-bit result back, and reports whether the sum overflowed
// past len bits. This is the primitive for building word-crossing adders.
func (v View) SumWithCarry(lo, length uint64, carryIn bool, addend uint64) (result uint64, carryOut bool) {
	m := mask(length)
	cur := v.Get(lo, lo+length)
	sum := cur + (addend & m)
	if carryIn {
		sum++
	}
	result = sum & m
	carryOut = sum > m
	v.Set(lo, lo+length, result)
	return result, carryOut
}
