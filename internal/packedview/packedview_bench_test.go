package packedview

import "testing"

func BenchmarkFind(b *testing.B) {
	words := make([]uint64, 4)
	v := New(words, 14, 16)
	for i := uint64(0); i < 16; i++ {
		v.Set(i, i*3)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var sink uint64
	for i := 0; i < b.N; i++ {
		sink = v.Find(0, 16, 20)
	}
	_ = sink
}

func BenchmarkAddConst(b *testing.B) {
	words := make([]uint64, 4)
	v := New(words, 14, 16)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		v.AddConst(0, 16, 1)
	}
}

func BenchmarkGetSet(b *testing.B) {
	words := make([]uint64, 4)
	v := New(words, 14, 16)
	b.ReportAllocs()
	b.ResetTimer()

	var sink uint64
	for i := 0; i < b.N; i++ {
		v.Set(5, 123)
		sink = v.Get(5)
	}
	_ = sink
}
