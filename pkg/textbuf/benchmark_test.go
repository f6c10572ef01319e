package textbuf

import (
	"strings"
	"testing"
)

// Pre-built payloads for benchmarks (avoid allocation in benchmark loop).
var (
	smallText  = strings.Repeat("x", 64)
	mediumText = strings.Repeat("x", 1024)
	largeText  = strings.Repeat("x", 64*1024)
)

// payloads defines the benchmark size matrix.
var payloads = []struct {
	name string
	text string
}{
	{"64B", smallText},
	{"1KB", mediumText},
	{"64KB", largeText},
}

// =============================================================================
// BenchmarkAppendString - Compare append performance across storage strategies
// =============================================================================

func BenchmarkAppendString(b *testing.B) {
	for _, p := range payloads {
		b.Run("Chunked/"+p.name, func(b *testing.B) {
			buf := New(len(p.text) * 2)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = buf.AppendString(p.text)
				buf.Reset()
			}
		})

		b.Run("Contiguous/"+p.name, func(b *testing.B) {
			buf := New(len(p.text)*2, WithContiguous())
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = buf.AppendString(p.text)
				buf.Reset()
			}
		})
	}
}

// =============================================================================
// BenchmarkAppendInt64 - Numeric codec throughput
// =============================================================================

func BenchmarkAppendInt64(b *testing.B) {
	buf := New(64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = buf.AppendInt64(int64(i) - (1 << 40))
		buf.Reset()
	}
}

func BenchmarkAppendHex64(b *testing.B) {
	buf := New(64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = buf.AppendHexTrim64(int64(i))
		buf.Reset()
	}
}

// =============================================================================
// BenchmarkAppendValue - Serializer dispatch
// =============================================================================

func BenchmarkAppendValue(b *testing.B) {
	ints := []int{1, 2, 3, 4, 5, 6, 7, 8}
	m := map[string]int{"a": 1, "b": 2}

	b.Run("IntSlice", func(b *testing.B) {
		buf := New(256)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = buf.AppendValue(ints)
			buf.Reset()
		}
	})

	b.Run("Map", func(b *testing.B) {
		buf := New(256)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = buf.AppendValue(m)
			buf.Reset()
		}
	})

	b.Run("String", func(b *testing.B) {
		buf := New(256)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = buf.AppendValue("some escaped \"text\"")
			buf.Reset()
		}
	})
}
