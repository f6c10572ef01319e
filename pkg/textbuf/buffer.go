package textbuf

import (
	"unicode/utf16"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-textbuf/pkg/utils"
)

// Buffer is a bounded text accumulator. Content grows by appending only;
// the logical length never exceeds the threshold fixed at construction.
// It is NOT thread-safe.
type Buffer struct {
	threshold int
	length    int
	store     store
	digits    string // digit alphabet shared by numeric codecs and escapes

	// cycle is the visited-set scoped to one top-level AppendValue call
	// tree; nil outside of serialization.
	cycle *cycleDetector
}

// Option configures a Buffer at construction.
type Option func(*config)

type config struct {
	chunkSize  int
	contiguous bool
	upper      bool
}

// WithChunkSize sets the chunk granularity of the segmented store. The
// value is rounded up to a multiple of 32 and clamped to [32, 32768].
func WithChunkSize(n int) Option {
	return func(c *config) { c.chunkSize = n }
}

// WithContiguous selects a single contiguous growable array instead of
// the segmented chunk store.
func WithContiguous() Option {
	return func(c *config) { c.contiguous = true }
}

// WithUpperDigits makes hex digits and unicode escapes render in upper
// case.
func WithUpperDigits() Option {
	return func(c *config) { c.upper = true }
}

// New creates a Buffer that will hold at most threshold units. A
// negative threshold is treated as zero.
func New(threshold int, opts ...Option) *Buffer {
	if threshold < 0 {
		threshold = 0
	}
	cfg := config{chunkSize: defaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	var s store
	if cfg.contiguous {
		s = newFlatStore(threshold)
	} else {
		s = newChunkedStore(threshold, normalizeChunkSize(cfg.chunkSize))
	}

	digits := lowerDigits
	if cfg.upper {
		digits = upperDigits
	}
	return &Buffer{threshold: threshold, store: s, digits: digits}
}

// normalizeChunkSize rounds n up to a multiple of chunkAlign and clamps
// it to [minChunkSize, maxChunkSize].
func normalizeChunkSize(n int) int {
	if n < minChunkSize {
		return minChunkSize
	}
	if n > maxChunkSize {
		return maxChunkSize
	}
	return utils.CeilToMultiple(n, chunkAlign)
}

// Len returns the current logical length in units.
func (b *Buffer) Len() int {
	return b.length
}

// Threshold returns the maximum logical length.
func (b *Buffer) Threshold() int {
	return b.threshold
}

// Remaining returns how many units may still be appended.
func (b *Buffer) Remaining() int {
	return b.threshold - b.length
}

// writable reports how many of the requested units can be appended and
// grows storage bookkeeping for them. It returns ErrThresholdReached
// when requested > 0 but nothing fits.
func (b *Buffer) writable(requested int) (int, error) {
	if requested <= 0 {
		return 0, nil
	}
	avail := b.threshold - b.length
	if avail == 0 {
		return 0, ErrThresholdReached
	}
	if requested < avail {
		avail = requested
	}
	b.store.ensure(b.length + avail)
	return avail, nil
}

// reserve pre-grows storage for n more units without writing. Growth is
// clamped to the threshold; reserve never fails.
func (b *Buffer) reserve(n int) {
	if n <= 0 {
		return
	}
	newLen := b.length + n
	if newLen > b.threshold {
		newLen = b.threshold
	}
	b.store.ensure(newLen)
}

func (b *Buffer) appendUnit(u uint16) error {
	if _, err := b.writable(1); err != nil {
		return err
	}
	b.store.set(b.length, u)
	b.length++
	return nil
}

// appendUnits writes as much of src as fits. On overflow the prefix
// that fits is written and ErrThresholdReached is returned.
func (b *Buffer) appendUnits(src []uint16) error {
	n, err := b.writable(len(src))
	if err != nil {
		return err
	}
	b.store.copyIn(b.length, src[:n])
	b.length += n
	if n < len(src) {
		return ErrThresholdReached
	}
	return nil
}

// appendASCII writes a string known to contain only ASCII bytes.
func (b *Buffer) appendASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if err := b.appendUnit(uint16(s[i])); err != nil {
			return err
		}
	}
	return nil
}

// AppendRune appends a single code point. Code points above the 16-bit
// range are stored as a surrogate pair (two units).
func (b *Buffer) AppendRune(r rune) error {
	if r < 0 || r > utf16MaxRune {
		return errors.Errorf("textbuf: invalid code point %#x", uint32(r))
	}
	if r > maxBMP {
		hi, lo := utf16.EncodeRune(r)
		pair := [2]uint16{uint16(hi), uint16(lo)}
		return b.appendUnits(pair[:])
	}
	return b.appendUnit(uint16(r))
}

const utf16MaxRune = '\U0010FFFF'

// AppendString appends the code points of s.
func (b *Buffer) AppendString(s string) error {
	var scratch [64]uint16
	n := 0
	for _, r := range s {
		if n >= len(scratch)-1 {
			if err := b.appendUnits(scratch[:n]); err != nil {
				return err
			}
			n = 0
		}
		if r > maxBMP {
			hi, lo := utf16.EncodeRune(r)
			scratch[n] = uint16(hi)
			scratch[n+1] = uint16(lo)
			n += 2
		} else {
			scratch[n] = uint16(r)
			n++
		}
	}
	return b.appendUnits(scratch[:n])
}

// AppendStringRange appends the byte range s[start:end]. The range must
// lie on code point boundaries of s.
func (b *Buffer) AppendStringRange(s string, start, end int) error {
	if start < 0 || end < start || end > len(s) {
		return errors.Errorf("textbuf: range [%d:%d) out of bounds for length %d", start, end, len(s))
	}
	return b.AppendString(s[start:end])
}

// AppendRunes appends every code point in rs.
func (b *Buffer) AppendRunes(rs []rune) error {
	return b.AppendRunesRange(rs, 0, len(rs))
}

// AppendRunesRange appends rs[start:end].
func (b *Buffer) AppendRunesRange(rs []rune, start, end int) error {
	if start < 0 || end < start || end > len(rs) {
		return errors.Errorf("textbuf: range [%d:%d) out of bounds for length %d", start, end, len(rs))
	}
	for _, r := range rs[start:end] {
		if err := b.AppendRune(r); err != nil {
			return err
		}
	}
	return nil
}

// AppendBuffer appends the whole content of src.
func (b *Buffer) AppendBuffer(src *Buffer) error {
	if src == nil {
		return errors.New("textbuf: nil source buffer")
	}
	return b.AppendBufferRange(src, 0, src.length)
}

// AppendBufferRange appends the unit range [start, end) of src. src may
// be the receiver itself; the source range is stable while the copy
// appends past it.
func (b *Buffer) AppendBufferRange(src *Buffer, start, end int) error {
	if src == nil {
		return errors.New("textbuf: nil source buffer")
	}
	if start < 0 || end < start || end > src.length {
		return errors.Errorf("textbuf: range [%d:%d) out of bounds for length %d", start, end, src.length)
	}
	var scratch [128]uint16
	for start < end {
		k := end - start
		if k > len(scratch) {
			k = len(scratch)
		}
		src.store.copyOut(scratch[:k], start)
		if err := b.appendUnits(scratch[:k]); err != nil {
			return err
		}
		start += k
	}
	return nil
}

// UnitAt returns the UTF-16 unit at logical position i.
func (b *Buffer) UnitAt(i int) (uint16, error) {
	if i < 0 || i >= b.length {
		return 0, errors.Errorf("textbuf: index %d out of bounds for length %d", i, b.length)
	}
	return b.store.at(i), nil
}

// Substring decodes the unit range [start, end) into a string.
func (b *Buffer) Substring(start, end int) (string, error) {
	if start < 0 || end < start || end > b.length {
		return "", errors.Errorf("textbuf: range [%d:%d) out of bounds for length %d", start, end, b.length)
	}
	if start == end {
		return "", nil
	}
	units := make([]uint16, end-start)
	b.store.copyOut(units, start)
	return string(utf16.Decode(units)), nil
}

// CopyTo bulk-copies the unit range [start, end) into dst, which must
// have room for end-start units.
func (b *Buffer) CopyTo(dst []uint16, start, end int) error {
	if start < 0 || end < start || end > b.length {
		return errors.Errorf("textbuf: range [%d:%d) out of bounds for length %d", start, end, b.length)
	}
	if len(dst) < end-start {
		return errors.Errorf("textbuf: destination length %d, need %d", len(dst), end-start)
	}
	b.store.copyOut(dst[:end-start], start)
	return nil
}

// String returns the full decoded content.
func (b *Buffer) String() string {
	s, _ := b.Substring(0, b.length)
	return s
}

// Reset clears the logical content but keeps allocated storage for
// reuse.
func (b *Buffer) Reset() {
	b.length = 0
	b.store.reset()
}

// Clear clears the logical content and releases all storage, for
// long-lived instances (e.g. pooling).
func (b *Buffer) Clear() {
	b.length = 0
	b.store.clear()
}
