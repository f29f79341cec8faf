package packedview

import (
	"math/bits"

	"github.com/dynbitvec/dynbitvec/internal/bitview"
)

// View interprets a bitview.View as n fields of width bits each. Fields
// never straddle a machine word: each real word holds exactly
// fieldsPerWord = floor(WordBits/width) complete fields, and any remainder
// at the top of the last word is unused padding. This is what makes the
// single-word SWAR tricks below (Broadcast, AddConst, Find) correct without
// special-casing a field split across two words.
type View struct {
	bv            bitview.View
	width         uint64
	n             uint64
	fieldsPerWord uint64
	fieldMask     uint64 // bit 0 of every field set, for one full word
	flagMask      uint64 // high (guard) bit of every field set, for one full word
}

// New wraps words as a packed field view of n fields, width bits each.
// words must have at least ceil(n/fieldsPerWord) elements, where
// fieldsPerWord = bitview.WordBits/width.
func New(words []uint64, width, n uint64) View {
	fieldsPerWord := bitview.WordBits / width
	fm := fieldMaskN(width, fieldsPerWord)
	return View{
		bv:            bitview.New(words),
		width:         width,
		n:             n,
		fieldsPerWord: fieldsPerWord,
		fieldMask:     fm,
		flagMask:      fm << (width - 1),
	}
}

// Width returns the field width in bits.
func (pv View) Width() uint64 { return pv.width }

// N returns the number of fields.
func (pv View) N() uint64 { return pv.n }

// FieldsPerWord returns how many fields fit in one machine word.
func (pv View) FieldsPerWord() uint64 { return pv.fieldsPerWord }

func fieldMaskN(width, count uint64) uint64 {
	var m uint64
	for k := uint64(0); k < count; k++ {
		m |= uint64(1) << (k * width)
	}
	return m
}

func fieldValueMask(width uint64) uint64 {
	if width >= bitview.WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// forEachWord splits the field range [lo, hi) into the sub-ranges that fall
// within each real machine word and invokes fn with the word index and the
// (global) field sub-range covered in that word.
func (pv View) forEachWord(lo, hi uint64, fn func(wordIdx, subLo, subHi uint64)) {
	for lo < hi {
		wordIdx := lo / pv.fieldsPerWord
		wordFieldEnd := (wordIdx + 1) * pv.fieldsPerWord
		end := hi
		if wordFieldEnd < end {
			end = wordFieldEnd
		}
		fn(wordIdx, lo, end)
		lo = end
	}
}

func (pv View) wordBitRange(wordIdx, loWithin, hiWithin uint64) (uint64, uint64) {
	base := wordIdx * bitview.WordBits
	return base + loWithin*pv.width, base + hiWithin*pv.width
}

// Get returns the value of field i.
func (pv View) Get(i uint64) uint64 {
	wordIdx := i / pv.fieldsPerWord
	within := i % pv.fieldsPerWord
	lo, hi := pv.wordBitRange(wordIdx, within, within+1)
	return pv.bv.Get(lo, hi)
}

// Set writes value into field i.
func (pv View) Set(i, value uint64) {
	wordIdx := i / pv.fieldsPerWord
	within := i % pv.fieldsPerWord
	lo, hi := pv.wordBitRange(wordIdx, within, within+1)
	pv.bv.Set(lo, hi, value)
}

// GetRange returns the concatenation of fields [lo, hi) as a single value.
// The caller must ensure (hi-lo)*width <= WordBits and that the range does
// not cross a word boundary (i.e. lo and hi-1 fall in the same word).
func (pv View) GetRange(lo, hi uint64) uint64 {
	wordIdx := lo / pv.fieldsPerWord
	base := wordIdx * pv.fieldsPerWord
	bitLo, bitHi := pv.wordBitRange(wordIdx, lo-base, hi-base)
	return pv.bv.Get(bitLo, bitHi)
}

// SetRange writes value as the concatenation of fields [lo, hi). Same
// same-word constraint as GetRange.
func (pv View) SetRange(lo, hi, value uint64) {
	wordIdx := lo / pv.fieldsPerWord
	base := wordIdx * pv.fieldsPerWord
	bitLo, bitHi := pv.wordBitRange(wordIdx, lo-base, hi-base)
	pv.bv.Set(bitLo, bitHi, value)
}

// Broadcast stores value in every field of [lo, hi), one multiply per
// covering word (field_mask * value).
func (pv View) Broadcast(lo, hi, value uint64) {
	value &= fieldValueMask(pv.width)
	pv.forEachWord(lo, hi, func(wordIdx, subLo, subHi uint64) {
		base := wordIdx * pv.fieldsPerWord
		loWithin, hiWithin := subLo-base, subHi-base
		bitLo, bitHi := pv.wordBitRange(wordIdx, loWithin, hiWithin)
		local := fieldMaskN(pv.width, hiWithin-loWithin) * value
		pv.bv.Set(bitLo, bitHi, local)
	})
}

// AddConst adds addend to every field of [lo, hi), one word add per
// covering word. The caller guarantees addend is small enough that no
// field overflows into its neighbor (see the guard-bit note on
// internal/tree's counter_width derivation).
func (pv View) AddConst(lo, hi, addend uint64) {
	addend &= fieldValueMask(pv.width)
	pv.forEachWord(lo, hi, func(wordIdx, subLo, subHi uint64) {
		base := wordIdx * pv.fieldsPerWord
		loWithin, hiWithin := subLo-base, subHi-base
		bitLo, bitHi := pv.wordBitRange(wordIdx, loWithin, hiWithin)
		localAddend := fieldMaskN(pv.width, hiWithin-loWithin) * addend
		cur := pv.bv.Get(bitLo, bitHi)
		pv.bv.Set(bitLo, bitHi, cur+localAddend)
	})
}

// CopyFrom copies count fields from src[srcLo:srcLo+count) into
// pv[dstLo:dstLo+count). It is a plain field-by-field copy rather than a
// SWAR trick — used for the comparatively rare bulk moves in node/leaf
// redistribution, where correctness across differing alignments matters
// more than shaving a word op.
func (pv View) CopyFrom(dstLo uint64, src View, srcLo, count uint64) {
	for k := uint64(0); k < count; k++ {
		pv.Set(dstLo+k, src.Get(srcLo+k))
	}
}

// Find returns the number of fields in [lo, hi) whose value is strictly
// greater than value: for each covering word, popcount(flag_mask & ((word |
// flag_mask) - field_mask*(value+1))), masked down to the queried sub-range
// of that word's fields. Field values are assumed to stay below the guard
// bit, so a value at or above guard-1 has no greater field and yields 0.
func (pv View) Find(lo, hi, value uint64) uint64 {
	guard := uint64(1) << (pv.width - 1)
	if value >= guard-1 {
		return 0
	}
	threshold := value + 1
	var count uint64
	pv.forEachWord(lo, hi, func(wordIdx, subLo, subHi uint64) {
		base := wordIdx * pv.fieldsPerWord
		loWithin, hiWithin := subLo-base, subHi-base

		wordBitLo, wordBitHi := pv.wordBitRange(wordIdx, 0, pv.fieldsPerWord)
		word := pv.bv.Get(wordBitLo, wordBitHi)

		forced := word | pv.flagMask
		sub := pv.fieldMask * threshold
		diff := forced - sub

		rangeFlag := fieldMaskN(pv.width, hiWithin-loWithin) << (loWithin*pv.width + pv.width - 1)
		count += uint64(bits.OnesCount64(diff & rangeFlag))
	})
	return count
}
