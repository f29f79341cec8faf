// Package arena provides the bump allocators backing the tree's node and
// leaf pools: fixed-size, preallocated at construction, handed out as
// stable integer handles that never move and are never freed.
//
// This is a deliberate trim of the teacher's arena package: there is no
// growth past the configured maximum (dynamic capacity growth is out of
// scope) and no concurrent access to guard (the tree is single-threaded),
// so what remains is the part of the teacher's design that still applies —
// a monotonically increasing next-free index over a flat slice.
package arena
