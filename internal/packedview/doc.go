// Package packedview interprets a bitview.View as a sequence of equal-width
// fixed-point counter fields and provides SWAR (SIMD-within-a-register)
// parallel arithmetic, comparison, and search across them: broadcast,
// ranged add, ranged copy, and Find (parallel count-greater-than via the
// subtract-and-popcount trick).
//
// This is the layer internal/tree uses to maintain packed size/rank prefix
// sums inside a node without ever touching more than one machine word for
// the common case (a node's sizes, ranks, and pointers each fit one word).
package packedview
