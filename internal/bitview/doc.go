// Package bitview provides word-addressed bit storage: get/set over
// arbitrary bit ranges of up to one machine word that may straddle a word
// boundary.
//
// A View never owns its backing storage — it is a thin, zero-allocation
// wrapper around a caller-supplied []uint64, mirroring how the teacher
// package's own low-level views (e.g. a packed node's three counter words)
// are addressed directly out of a shared pool rather than copied.
package bitview
