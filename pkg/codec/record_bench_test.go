//go:build bench
// +build bench

package codec

import (
	"strings"
	"testing"
)

func BenchmarkRecordCodec_Encode(b *testing.B) {
	codec := NewRecordCodec()

	benchmarks := []struct {
		name   string
		record Record
	}{
		{
			name:   "small",
			record: NewRecord("Dune", "Herbert", "9780441013593", "1965"),
		},
		{
			name:   "large",
			record: NewRecord(strings.Repeat("t", 1000), strings.Repeat("a", 1000), "9780441013593", "1965"),
		},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = codec.Encode(bm.record)
			}
		})
	}
}

func BenchmarkRecordCodec_Decode(b *testing.B) {
	codec := NewRecordCodec()

	benchmarks := []struct {
		name string
		line string
	}{
		{
			name: "small",
			line: "Dune/Herbert/9780441013593/1965\n",
		},
		{
			name: "large",
			line: strings.Repeat("t", 1000) + "/" + strings.Repeat("a", 1000) + "/9780441013593/1965\n",
		},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := codec.Decode(bm.line, 1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSortKey(b *testing.B) {
	record := NewRecord("Dune", "Herbert", "9780441013593", "published in 1965 AD")

	for i := 0; i < b.N; i++ {
		_ = SortKey(record)
	}
}
