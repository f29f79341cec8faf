// Package dynbitvec provides a dynamic bit vector supporting rank-enabled
// random-access insertion of single bits with amortized polylogarithmic
// cost per operation.
//
// The vector is a building block for succinct and compressed data structures
// (wavelet trees, dynamic sequences, compressed text indexes) where a plain
// array cannot support efficient insertion at arbitrary positions.
//
// # Architecture
//
// Three layers, built leaves-first:
//
//   - internal/bitview:    word-level get/set over arbitrary bit ranges
//     that may straddle machine-word boundaries.
//   - internal/packedview: a BitView reinterpreted as N equal-width
//     fixed-point counters, with SWAR (SIMD-within-a-register) broadcast,
//     add, and parallel search.
//   - internal/tree:       a B-tree with packed internal nodes and
//     word-sized leaves, maintaining size/rank prefix sums in packed form
//     and amortizing insertion cost via buffered sibling redistribution.
//
// # Quick Start
//
//	v, err := dynbitvec.New(1 << 20)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := v.Insert(0, true); err != nil {
//		log.Fatal(err)
//	}
//	bit, err := v.Access(0)
//
// # Non-goals
//
// Thread safety, persistence/serialization, concurrent mutation, deletion,
// and dynamic capacity growth beyond the constructor-supplied maximum are
// all out of scope. rank(i), select(i), remove, and a CLI driver are not
// implemented — access and insert are the only public tree operations.
package dynbitvec
