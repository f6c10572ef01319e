package textbuf

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// Construction
// =============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		want      int
	}{
		{"valid_threshold", 128, 128},
		{"zero_threshold", 0, 0},
		{"negative_clamped_to_zero", -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.threshold)
			if b.Threshold() != tt.want {
				t.Errorf("Threshold = %d, want %d", b.Threshold(), tt.want)
			}
			if b.Len() != 0 {
				t.Errorf("Len = %d, want 0", b.Len())
			}
			if b.Remaining() != tt.want {
				t.Errorf("Remaining = %d, want %d", b.Remaining(), tt.want)
			}
		})
	}
}

func TestNormalizeChunkSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero_to_min", 0, 32},
		{"negative_to_min", -3, 32},
		{"below_min", 7, 32},
		{"exact_min", 32, 32},
		{"rounded_up", 33, 64},
		{"unaligned", 5000, 5024},
		{"exact_max", 32768, 32768},
		{"above_max", 100000, 32768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeChunkSize(tt.in); got != tt.want {
				t.Errorf("normalizeChunkSize(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_ChunkCapacity(t *testing.T) {
	b := New(200, WithChunkSize(32))
	cs := b.store.(*chunkedStore)
	if cs.chunkSize != 32 {
		t.Errorf("chunkSize = %d, want 32", cs.chunkSize)
	}
	if cs.capacity != 7 { // ceil(200/32)
		t.Errorf("capacity = %d, want 7", cs.capacity)
	}
}

// =============================================================================
// Method: AppendString() / AppendRune() — threshold enforcement
// =============================================================================

func TestAppendString_Threshold(t *testing.T) {
	b := New(5)
	err := b.AppendString("hello world")
	if !errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want ErrThresholdReached", err)
	}
	if got := b.String(); got != "hello" {
		t.Errorf("String = %q, want %q", got, "hello")
	}
	if b.Len() != 5 {
		t.Errorf("Len = %d, want 5", b.Len())
	}
}

func TestAppendString_ExactFit(t *testing.T) {
	b := New(5)
	if err := b.AppendString("hello"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if b.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", b.Remaining())
	}
	// One more unit must overflow without mutating.
	if err := b.AppendRune('!'); !errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want ErrThresholdReached", err)
	}
	if got := b.String(); got != "hello" {
		t.Errorf("String = %q, want %q", got, "hello")
	}
}

func TestAppendRune_ZeroThreshold(t *testing.T) {
	b := New(0)
	if err := b.AppendRune('a'); !errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want ErrThresholdReached", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
}

func TestAppendRune_Invalid(t *testing.T) {
	b := New(8)
	if err := b.AppendRune(-1); err == nil || errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want invalid code point error", err)
	}
	if b.Len() != 0 {
		t.Error("invalid rune must not mutate the buffer")
	}
}

func TestAppendString_SupplementaryPair(t *testing.T) {
	b := New(16)
	if err := b.AppendString("a\U0001F600"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if b.Len() != 3 { // 'a' + surrogate pair
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	hi, _ := b.UnitAt(1)
	lo, _ := b.UnitAt(2)
	if hi != 0xD83D || lo != 0xDE00 {
		t.Errorf("pair = %04x %04x, want d83d de00", hi, lo)
	}
	if got := b.String(); got != "a\U0001F600" {
		t.Errorf("String = %q", got)
	}
}

func TestAppendString_CrossesChunks(t *testing.T) {
	b := New(4096, WithChunkSize(32))
	content := strings.Repeat("abcdefgh", 100) // 800 units, 25 chunks
	if err := b.AppendString(content); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := b.String(); got != content {
		t.Error("content mismatch across chunk boundaries")
	}
}

// =============================================================================
// Method: AppendStringRange() / AppendRunes()
// =============================================================================

func TestAppendStringRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
		wantErr    bool
	}{
		{"full", 0, 5, "hello", false},
		{"middle", 1, 4, "ell", false},
		{"empty", 2, 2, "", false},
		{"negative_start", -1, 3, "", true},
		{"end_before_start", 3, 2, "", true},
		{"end_past_length", 0, 6, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(32)
			err := b.AppendStringRange("hello", tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected range error")
				}
				if b.Len() != 0 {
					t.Error("failed validation must not mutate")
				}
				return
			}
			if err != nil {
				t.Fatalf("append: %v", err)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendRunesRange(t *testing.T) {
	b := New(32)
	rs := []rune{'x', 'y', 'z', 'w'}
	if err := b.AppendRunesRange(rs, 1, 3); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := b.String(); got != "yz" {
		t.Errorf("String = %q, want %q", got, "yz")
	}
	if err := b.AppendRunesRange(rs, 2, 5); err == nil {
		t.Error("expected range error")
	}
}

// =============================================================================
// Method: AppendBuffer() / AppendBufferRange()
// =============================================================================

func TestAppendBuffer(t *testing.T) {
	src := New(32)
	if err := src.AppendString("left+right"); err != nil {
		t.Fatal(err)
	}

	dst := New(32)
	if err := dst.AppendBuffer(src); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := dst.String(); got != "left+right" {
		t.Errorf("String = %q", got)
	}

	if err := dst.AppendBuffer(nil); err == nil {
		t.Error("expected nil source error")
	}
}

func TestAppendBufferRange(t *testing.T) {
	src := New(32)
	if err := src.AppendString("0123456789"); err != nil {
		t.Fatal(err)
	}

	dst := New(32)
	if err := dst.AppendBufferRange(src, 2, 6); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := dst.String(); got != "2345" {
		t.Errorf("String = %q, want %q", got, "2345")
	}

	if err := dst.AppendBufferRange(src, 4, 11); err == nil {
		t.Error("expected range error")
	}
}

func TestAppendBufferRange_Self(t *testing.T) {
	b := New(64)
	if err := b.AppendString("abc"); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendBufferRange(b, 0, 3); err != nil {
		t.Fatalf("self append: %v", err)
	}
	if got := b.String(); got != "abcabc" {
		t.Errorf("String = %q, want %q", got, "abcabc")
	}
}

func TestAppendBuffer_Truncates(t *testing.T) {
	src := New(32)
	if err := src.AppendString("0123456789"); err != nil {
		t.Fatal(err)
	}
	dst := New(4)
	if err := dst.AppendBuffer(src); !errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want ErrThresholdReached", err)
	}
	if got := dst.String(); got != "0123" {
		t.Errorf("String = %q, want %q", got, "0123")
	}
}

// =============================================================================
// Method: UnitAt() / Substring() / CopyTo()
// =============================================================================

func TestUnitAt(t *testing.T) {
	b := New(16)
	if err := b.AppendString("abc"); err != nil {
		t.Fatal(err)
	}
	u, err := b.UnitAt(1)
	if err != nil {
		t.Fatalf("UnitAt: %v", err)
	}
	if u != 'b' {
		t.Errorf("UnitAt(1) = %c, want b", rune(u))
	}
	if _, err := b.UnitAt(3); err == nil {
		t.Error("expected out of bounds error")
	}
	if _, err := b.UnitAt(-1); err == nil {
		t.Error("expected out of bounds error")
	}
}

func TestSubstring(t *testing.T) {
	b := New(64, WithChunkSize(32))
	content := strings.Repeat("0123456789", 6)
	if err := b.AppendString(content); err != nil {
		t.Fatal(err)
	}

	got, err := b.Substring(35, 45) // crosses a chunk boundary
	if err != nil {
		t.Fatalf("Substring: %v", err)
	}
	if got != content[35:45] {
		t.Errorf("Substring = %q, want %q", got, content[35:45])
	}

	full, err := b.Substring(0, b.Len())
	if err != nil {
		t.Fatalf("Substring: %v", err)
	}
	if full != b.String() {
		t.Error("Substring(0, Len) differs from String")
	}

	if _, err := b.Substring(0, b.Len()+1); err == nil {
		t.Error("expected out of bounds error")
	}
}

func TestCopyTo(t *testing.T) {
	b := New(16)
	if err := b.AppendString("copyme"); err != nil {
		t.Fatal(err)
	}

	dst := make([]uint16, 4)
	if err := b.CopyTo(dst, 1, 5); err != nil {
		t.Fatalf("CopyTo: %v", err)
	}
	for i, want := range "opym" {
		if rune(dst[i]) != want {
			t.Errorf("dst[%d] = %c, want %c", i, rune(dst[i]), want)
		}
	}

	if err := b.CopyTo(make([]uint16, 1), 0, 4); err == nil {
		t.Error("expected short destination error")
	}
	if err := b.CopyTo(dst, 4, 8); err == nil {
		t.Error("expected out of bounds error")
	}
}

// =============================================================================
// Method: Reset() / Clear()
// =============================================================================

func TestReset_RetainsChunks(t *testing.T) {
	b := New(128, WithChunkSize(32))
	if err := b.AppendString(strings.Repeat("x", 100)); err != nil {
		t.Fatal(err)
	}
	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
	cs := b.store.(*chunkedStore)
	if len(cs.chunks) == 0 || cs.chunks[0] == nil {
		t.Error("Reset must retain allocated chunks")
	}

	if err := b.AppendString("again"); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "again" {
		t.Errorf("String = %q, want %q", got, "again")
	}
}

func TestClear_ReleasesChunks(t *testing.T) {
	b := New(128, WithChunkSize(32))
	if err := b.AppendString(strings.Repeat("x", 100)); err != nil {
		t.Fatal(err)
	}
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("Len = %d, want 0", b.Len())
	}
	if cs := b.store.(*chunkedStore); cs.chunks != nil {
		t.Error("Clear must release chunk storage")
	}

	if err := b.AppendString("fresh"); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "fresh" {
		t.Errorf("String = %q, want %q", got, "fresh")
	}
}

func TestReset_ReproducesContent(t *testing.T) {
	b := New(64)
	if err := b.AppendString("same text"); err != nil {
		t.Fatal(err)
	}
	first := b.String()
	b.Reset()
	if err := b.AppendString("same text"); err != nil {
		t.Fatal(err)
	}
	if b.String() != first {
		t.Error("re-appending after Reset must reproduce identical text")
	}
}

// =============================================================================
// Contiguous store
// =============================================================================

func TestContiguous(t *testing.T) {
	b := New(100, WithContiguous())
	err := b.AppendString(strings.Repeat("ab", 60)) // 120 > 100
	if !errors.Is(err, ErrThresholdReached) {
		t.Fatalf("err = %v, want ErrThresholdReached", err)
	}
	if b.Len() != 100 {
		t.Errorf("Len = %d, want 100", b.Len())
	}
	if got := b.String(); got != strings.Repeat("ab", 50) {
		t.Error("content mismatch in contiguous store")
	}

	b.Clear()
	if fs := b.store.(*flatStore); fs.data != nil {
		t.Error("Clear must release the contiguous array")
	}
}

func TestContiguous_MatchesChunked(t *testing.T) {
	content := strings.Repeat("segmented vs flat - ", 40)
	chunked := New(2048, WithChunkSize(32))
	flat := New(2048, WithContiguous())
	if err := chunked.AppendString(content); err != nil {
		t.Fatal(err)
	}
	if err := flat.AppendString(content); err != nil {
		t.Fatal(err)
	}
	if chunked.String() != flat.String() {
		t.Error("storage strategies must produce identical content")
	}
}

// =============================================================================
// Chunk index growth
// =============================================================================

func TestChunkIndex_DoublesAndClamps(t *testing.T) {
	b := New(320, WithChunkSize(32)) // capacity = 10 chunks
	cs := b.store.(*chunkedStore)

	if err := b.AppendString(strings.Repeat("x", 33)); err != nil { // needs 2 chunks
		t.Fatal(err)
	}
	if len(cs.chunks) != 4 { // need*2
		t.Errorf("index size = %d, want 4", len(cs.chunks))
	}

	if err := b.AppendString(strings.Repeat("x", 287)); err != nil { // fills threshold
		t.Fatal(err)
	}
	if len(cs.chunks) != 10 { // clamped to capacity
		t.Errorf("index size = %d, want 10", len(cs.chunks))
	}
}
