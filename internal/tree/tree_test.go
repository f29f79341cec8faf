package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T, capacity, wordWidth int) *BitvectorTree {
	t.Helper()
	dims, err := NewDims(capacity, wordWidth)
	require.NoError(t, err)
	return New(dims, Hooks{})
}

func TestWalkOnEmptyTree(t *testing.T) {
	tr := newTestTree(t, 128, 64)
	size, rank := tr.Walk()
	require.Zero(t, size)
	require.Zero(t, rank)
}

func TestInsertAccessRoundTrip(t *testing.T) {
	tr := newTestTree(t, 4096, 64)

	rng := rand.New(rand.NewSource(42))
	var ref []bool
	for i := 0; i < 3000; i++ {
		pos := uint64(rng.Intn(len(ref) + 1))
		bit := rng.Intn(2) == 1
		require.NoError(t, tr.Insert(pos, bit))

		ref = append(ref, false)
		copy(ref[pos+1:], ref[pos:uint64(len(ref))-1])
		ref[pos] = bit

		size, rank := tr.Walk()
		require.Equal(t, tr.Size(), size)
		require.Equal(t, tr.Rank(), rank)
	}

	require.Equal(t, uint64(len(ref)), tr.Size())
	for i, want := range ref {
		got, err := tr.Access(uint64(i))
		require.NoError(t, err)
		require.Equal(t, want, got, "position %d", i)
	}
}

func TestInsertForcesLeafRedistributionWithNoSiblingsYet(t *testing.T) {
	// The tree's very first leaf fills to a full W=64 bits while it is
	// still the only leaf in the tree — the sibling window redistribute
	// has to work with has length 1, with no room to redistribute into
	// unless it splits off a fresh sibling immediately.
	tr := newTestTree(t, 4096, 64)

	for i := 0; i < 64; i++ {
		require.NoError(t, tr.Insert(0, i%2 == 0))
	}
	require.NoError(t, tr.Insert(30, true))

	size, rank := tr.Walk()
	require.Equal(t, uint64(65), size)
	require.Equal(t, tr.Rank(), rank)

	for i := 0; i < 65; i++ {
		_, err := tr.Access(uint64(i))
		require.NoError(t, err)
	}
}

func TestRootPromotion(t *testing.T) {
	tr := newTestTree(t, 100, 32)
	require.Equal(t, 1, tr.Height())

	promotions := 0
	tr.hooks.OnRootPromotion = func(int) { promotions++ }

	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Insert(tr.Size(), i%3 == 0))
	}
	require.Greater(t, tr.Height(), 1)
	require.Greater(t, promotions, 0)

	size, rank := tr.Walk()
	require.Equal(t, tr.Size(), size)
	require.Equal(t, tr.Rank(), rank)
}

func TestCapacityExceeded(t *testing.T) {
	tr := newTestTree(t, 32, 64)
	for i := 0; i < 32; i++ {
		require.NoError(t, tr.Insert(0, true))
	}
	require.True(t, tr.Full())

	err := tr.Insert(0, true)
	require.Error(t, err)
	var capErr *ErrCapacityExceeded
	require.ErrorAs(t, err, &capErr)
}

func TestAccessIndexOutOfRange(t *testing.T) {
	tr := newTestTree(t, 32, 64)
	require.NoError(t, tr.Insert(0, true))

	_, err := tr.Access(5)
	require.Error(t, err)
	var idxErr *ErrIndexOutOfRange
	require.ErrorAs(t, err, &idxErr)
}

func TestInsertIndexOutOfRange(t *testing.T) {
	tr := newTestTree(t, 32, 64)
	err := tr.Insert(5, true)
	require.Error(t, err)
	var idxErr *ErrIndexOutOfRange
	require.ErrorAs(t, err, &idxErr)
}

func TestLeafSentinelNeverAllocated(t *testing.T) {
	tr := newTestTree(t, 512, 64)
	for i := 0; i < 400; i++ {
		require.NoError(t, tr.Insert(tr.Size()/2, i%2 == 0))
	}
	// Walk asserts (via invariant) that no leaf ref with id 0 is ever
	// treated as live data; reaching here without a panic is the check.
	_, _ = tr.Walk()
	require.Zero(t, tr.leaves.Words[0], "sentinel leaf slot must stay untouched")
}

func TestRedistributionHookFires(t *testing.T) {
	tr := newTestTree(t, 4096, 64)
	var leafRedist, nodeRedist int
	tr.hooks.OnRedistribution = func(leaf bool, siblings int, split bool) {
		if leaf {
			leafRedist++
		} else {
			nodeRedist++
		}
	}

	for i := 0; i < 3000; i++ {
		require.NoError(t, tr.Insert(uint64(i)%(tr.Size()+1), i%5 == 0))
	}
	require.Greater(t, leafRedist, 0)
	require.Greater(t, nodeRedist, 0)
}
