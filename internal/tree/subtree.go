package tree

import "github.com/dynbitvec/dynbitvec/internal/arena"

// subtreeRef is the "subtree reference" value type of spec.md §4.4: a
// lightweight, non-owning handle identifying one node or leaf together
// with the height, size, and rank its parent already tracks for it. It
// carries just enough state to answer isLeaf/child(k)/nkeys() without a
// second lookup into the tree, and nothing more — it owns no pool slot
// and outlives no single traversal.
type subtreeRef struct {
	tree   *BitvectorTree
	nodeID arena.NodeID
	leafID arena.LeafID
	height int // 0 at a leaf; >=1 at an internal node (1 == children are leaves)
	size   uint64
	rank   uint64
}

// rootRef returns a subtreeRef for the whole tree, rooted at node 0.
func (t *BitvectorTree) rootRef() subtreeRef {
	return subtreeRef{tree: t, nodeID: 0, height: t.height, size: t.size, rank: t.rank}
}

func (s subtreeRef) isLeaf() bool { return s.height == 0 }
func (s subtreeRef) isNode() bool { return s.height > 0 }
func (s subtreeRef) isRoot() bool { return s.height == s.tree.height && s.nodeID == 0 }

// view returns the nodeView for an internal subtreeRef. Panics (via
// invariant) if called on a leaf ref.
func (s subtreeRef) view() nodeView {
	invariant(s.isNode(), "subtree.view() called on a leaf ref")
	return newNodeView(s.tree.nodes, s.tree.dims, s.nodeID)
}

// leaf returns the leafView for a leaf subtreeRef.
func (s subtreeRef) leaf() leafView {
	invariant(s.isLeaf(), "subtree.leaf() called on a node ref")
	return newLeafView(s.tree.leaves, s.tree.dims, s.leafID)
}

// nkeys is the number of children this subtree has: Degree/1 bit-capacity
// concepts don't apply to leaves, so it reports 0 there.
func (s subtreeRef) nkeys() int {
	if s.isLeaf() {
		return 0
	}
	return s.view().NKeys()
}

// child derives subtreeRef for this subtree's k'th child, computing its
// (size, rank) from the parent's cumulative arrays and resolving whether
// it is itself a leaf or an internal node from height alone.
func (s subtreeRef) child(k int) subtreeRef {
	n := s.view()
	ptr := n.Pointer(k)
	childSize, childRank := n.childSize(k), n.childRank(k)
	if s.height == 1 {
		return subtreeRef{tree: s.tree, leafID: arena.LeafID(ptr), height: 0, size: childSize, rank: childRank}
	}
	return subtreeRef{tree: s.tree, nodeID: arena.NodeID(ptr), height: s.height - 1, size: childSize, rank: childRank}
}

// access resolves the i-th bit (0 <= i < s.size) within this subtree,
// recursing child-to-child via findAccess until it reaches a leaf. This
// is the read-only counterpart to BitvectorTree.insertAt: both navigate
// with the same Find-backed primitives, but access never mutates and so
// needs none of insertAt's overflow handling.
func (s subtreeRef) access(i uint64) bool {
	if s.isLeaf() {
		return s.leaf().Get(i)
	}
	n := s.view()
	k, local := n.findAccess(i)
	return s.child(k).access(local)
}
