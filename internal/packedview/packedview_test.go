package packedview

import (
	"math/rand"
	"testing"
)

// naiveFields unpacks a View into a plain slice, as an independent oracle
// for the SWAR operations below.
func naiveFields(pv View) []uint64 {
	out := make([]uint64, pv.N())
	for i := range out {
		out[i] = pv.Get(uint64(i))
	}
	return out
}

func TestGetSetRoundTrip(t *testing.T) {
	const width, n = 5, 12
	words := make([]uint64, 1)
	pv := New(words, width, n)

	for i := uint64(0); i < n; i++ {
		pv.Set(i, i+1)
	}
	for i := uint64(0); i < n; i++ {
		if got := pv.Get(i); got != i+1 {
			t.Fatalf("field %d: got %d want %d", i, got, i+1)
		}
	}
}

func TestBroadcastWholeWord(t *testing.T) {
	const width, n = 8, 8
	words := make([]uint64, 1)
	pv := New(words, width, n)

	pv.Broadcast(0, n, 0x2A)
	for i := uint64(0); i < n; i++ {
		if got := pv.Get(i); got != 0x2A {
			t.Fatalf("field %d: got %#x want 0x2a", i, got)
		}
	}
}

func TestBroadcastPartialRangeLeavesNeighborsAlone(t *testing.T) {
	const width, n = 8, 8
	words := make([]uint64, 1)
	pv := New(words, width, n)
	pv.Broadcast(0, n, 1)

	pv.Broadcast(2, 5, 0x7F)
	for i := uint64(0); i < n; i++ {
		got := pv.Get(i)
		if i >= 2 && i < 5 {
			if got != 0x7F {
				t.Fatalf("field %d: got %#x want 0x7f", i, got)
			}
		} else if got != 1 {
			t.Fatalf("field %d: got %#x want 1 (untouched)", i, got)
		}
	}
}

func TestBroadcastMultiWord(t *testing.T) {
	const width, n = 20, 10 // fieldsPerWord = 3, spans 4 words
	words := make([]uint64, 4)
	pv := New(words, width, n)

	pv.Broadcast(0, n, 0x3FFFF)
	for i := uint64(0); i < n; i++ {
		if got := pv.Get(i); got != 0x3FFFF {
			t.Fatalf("field %d: got %#x want 0x3ffff", i, got)
		}
	}
}

func TestAddConst(t *testing.T) {
	const width, n = 8, 8
	words := make([]uint64, 1)
	pv := New(words, width, n)
	pv.Broadcast(0, n, 10)

	pv.AddConst(1, 4, 5)
	want := []uint64{10, 15, 15, 15, 10, 10, 10, 10}
	for i, w := range want {
		if got := pv.Get(uint64(i)); got != w {
			t.Fatalf("field %d: got %d want %d", i, got, w)
		}
	}
}

func TestCopyFrom(t *testing.T) {
	const width = 6
	srcWords := make([]uint64, 1)
	src := New(srcWords, width, 10)
	for i := uint64(0); i < 10; i++ {
		src.Set(i, i)
	}

	dstWords := make([]uint64, 1)
	dst := New(dstWords, width, 10)
	dst.CopyFrom(2, src, 3, 4) // dst[2:6] = src[3:7] = 3,4,5,6

	want := []uint64{0, 0, 3, 4, 5, 6, 0, 0, 0, 0}
	for i, w := range want {
		if got := dst.Get(uint64(i)); got != w {
			t.Fatalf("field %d: got %d want %d", i, got, w)
		}
	}
}

func TestFindMatchesNaiveScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const width = 6 // leave the guard bit (bit 5) unused by the data itself
	const maxVal = uint64(1) << (width - 1)

	for trial := 0; trial < 1000; trial++ {
		n := uint64(1 + rng.Intn(40))
		fieldsPerWord := uint64(64 / width)
		numWords := (n + fieldsPerWord - 1) / fieldsPerWord
		words := make([]uint64, numWords)
		pv := New(words, width, n)

		values := make([]uint64, n)
		for i := range values {
			values[i] = uint64(rng.Int63n(int64(maxVal)))
			pv.Set(uint64(i), values[i])
		}

		lo := uint64(rng.Intn(int(n)))
		hi := lo + 1 + uint64(rng.Intn(int(n-lo)))
		query := uint64(rng.Int63n(int64(maxVal)))

		var want uint64
		for i := lo; i < hi; i++ {
			if values[i] > query {
				want++
			}
		}

		if got := pv.Find(lo, hi, query); got != want {
			t.Fatalf("trial %d: n=%d lo=%d hi=%d query=%d: Find=%d want=%d (values=%v)",
				trial, n, lo, hi, query, got, want, values)
		}
	}
}

func TestFindWholeRangeSingleWord(t *testing.T) {
	const width, n = 7, 9
	words := make([]uint64, 1)
	pv := New(words, width, n)

	for i, v := range []uint64{1, 5, 9, 2, 9, 0, 9, 4, 9} {
		pv.Set(uint64(i), v)
	}

	if got := pv.Find(0, n, 8); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if got := pv.Find(0, n, 100); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestGetSetRangeConcatenation(t *testing.T) {
	const width, n = 4, 16
	words := make([]uint64, 1)
	pv := New(words, width, n)

	const value = uint64(0xBEEF)
	pv.SetRange(4, 8, value)
	if got := pv.GetRange(4, 8); got != value {
		t.Fatalf("got %#x want %#x", got, value)
	}

	got := naiveFields(pv)
	for i := uint64(4); i < 8; i++ {
		shift := (i - 4) * width
		want := (value >> shift) & 0xF
		if got[i] != want {
			t.Fatalf("field %d: got %#x want %#x", i, got[i], want)
		}
	}
}
