package textbuf

import (
	"math"
	"math/bits"
	"strconv"
)

// Numeric codecs write digits straight into the buffer, no intermediate
// string. For every width and base the exported *Len function returns
// exactly the number of units the matching Append method emits; the
// writers reserve that capacity up front.

// Minimum values cannot be negated in their own width, so their digits
// are hard-coded.
const (
	minInt8Digits  = "-128"
	minInt16Digits = "-32768"
	minInt32Digits = "-2147483648"
	minInt64Digits = "-9223372036854775808"
)

var pow10 = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
	1000000000, 10000000000, 100000000000, 1000000000000, 10000000000000,
	100000000000000, 1000000000000000, 10000000000000000,
	100000000000000000, 1000000000000000000, 10000000000000000000,
}

// decDigits returns the decimal digit count of u via staged range
// checks against the powers-of-ten table.
func decDigits(u uint64) int {
	d := 1
	if u >= pow10[16] {
		d += 16
		u /= pow10[16]
	}
	if u >= pow10[8] {
		d += 8
		u /= pow10[8]
	}
	if u >= pow10[4] {
		d += 4
		u /= pow10[4]
	}
	if u >= pow10[2] {
		d += 2
		u /= pow10[2]
	}
	if u >= pow10[1] {
		d++
	}
	return d
}

// baseDigits returns the digit count of u in the base with the given
// bits-per-digit shift, with a minimum of one digit for zero.
func baseDigits(u uint64, shift uint) int {
	n := bits.Len64(u)
	if n == 0 {
		return 1
	}
	return (n + int(shift) - 1) / int(shift)
}

// DecimalLen8 returns the unit count AppendInt8 emits for v.
func DecimalLen8(v int8) int {
	if v == math.MinInt8 {
		return len(minInt8Digits)
	}
	return DecimalLen64(int64(v))
}

// DecimalLen16 returns the unit count AppendInt16 emits for v.
func DecimalLen16(v int16) int {
	if v == math.MinInt16 {
		return len(minInt16Digits)
	}
	return DecimalLen64(int64(v))
}

// DecimalLen32 returns the unit count AppendInt32 emits for v.
func DecimalLen32(v int32) int {
	if v == math.MinInt32 {
		return len(minInt32Digits)
	}
	return DecimalLen64(int64(v))
}

// DecimalLen64 returns the unit count AppendInt64 emits for v.
func DecimalLen64(v int64) int {
	if v >= 0 {
		return decDigits(uint64(v))
	}
	if v == math.MinInt64 {
		return len(minInt64Digits)
	}
	return 1 + decDigits(uint64(-v))
}

// HexLen8 returns the unit count AppendHex8 emits: fixed two digits.
func HexLen8(int8) int { return 2 }

// HexLen16 returns the unit count AppendHex16 emits: fixed four digits.
func HexLen16(int16) int { return 4 }

// HexLen32 returns the unit count AppendHex32 emits: fixed eight digits.
func HexLen32(int32) int { return 8 }

// HexLen64 returns the unit count AppendHex64 emits: fixed sixteen digits.
func HexLen64(int64) int { return 16 }

// HexTrimLen8 returns the unit count AppendHexTrim8 emits for v.
func HexTrimLen8(v int8) int {
	return baseDigits(uint64(uint8(v)), 4)
}

// HexTrimLen16 returns the unit count AppendHexTrim16 emits for v.
func HexTrimLen16(v int16) int {
	return baseDigits(uint64(uint16(v)), 4)
}

// HexTrimLen32 returns the unit count AppendHexTrim32 emits for v.
func HexTrimLen32(v int32) int {
	return baseDigits(uint64(uint32(v)), 4)
}

// HexTrimLen64 returns the unit count AppendHexTrim64 emits for v.
func HexTrimLen64(v int64) int {
	return baseDigits(uint64(v), 4)
}

// OctLen8 returns the unit count AppendOct8 emits: fixed three digits.
func OctLen8(int8) int { return 3 }

// OctLen16 returns the unit count AppendOct16 emits: fixed six digits.
func OctLen16(int16) int { return 6 }

// OctLen32 returns the unit count AppendOct32 emits: fixed eleven digits.
func OctLen32(int32) int { return 11 }

// OctLen64 returns the unit count AppendOct64 emits: fixed twenty-two
// digits.
func OctLen64(int64) int { return 22 }

// OctTrimLen8 returns the unit count AppendOctTrim8 emits for v.
func OctTrimLen8(v int8) int {
	return baseDigits(uint64(uint8(v)), 3)
}

// OctTrimLen16 returns the unit count AppendOctTrim16 emits for v.
func OctTrimLen16(v int16) int {
	return baseDigits(uint64(uint16(v)), 3)
}

// OctTrimLen32 returns the unit count AppendOctTrim32 emits for v.
func OctTrimLen32(v int32) int {
	return baseDigits(uint64(uint32(v)), 3)
}

// OctTrimLen64 returns the unit count AppendOctTrim64 emits for v.
func OctTrimLen64(v int64) int {
	return baseDigits(uint64(v), 3)
}

// BinLen8 returns the unit count AppendBin8 emits: fixed eight digits.
func BinLen8(int8) int { return 8 }

// BinLen16 returns the unit count AppendBin16 emits: fixed sixteen
// digits.
func BinLen16(int16) int { return 16 }

// BinLen32 returns the unit count AppendBin32 emits: fixed thirty-two
// digits.
func BinLen32(int32) int { return 32 }

// BinLen64 returns the unit count AppendBin64 emits: fixed sixty-four
// digits.
func BinLen64(int64) int { return 64 }

// BinTrimLen8 returns the unit count AppendBinTrim8 emits for v.
func BinTrimLen8(v int8) int {
	return baseDigits(uint64(uint8(v)), 1)
}

// BinTrimLen16 returns the unit count AppendBinTrim16 emits for v.
func BinTrimLen16(v int16) int {
	return baseDigits(uint64(uint16(v)), 1)
}

// BinTrimLen32 returns the unit count AppendBinTrim32 emits for v.
func BinTrimLen32(v int32) int {
	return baseDigits(uint64(uint32(v)), 1)
}

// BinTrimLen64 returns the unit count AppendBinTrim64 emits for v.
func BinTrimLen64(v int64) int {
	return baseDigits(uint64(v), 1)
}

// appendDecimal emits the decimal digits of u most-significant-first.
func (b *Buffer) appendDecimal(u uint64) error {
	for i := decDigits(u) - 1; i >= 0; i-- {
		d := u / pow10[i] % 10
		if err := b.appendUnit(uint16('0' + d)); err != nil {
			return err
		}
	}
	return nil
}

// AppendInt8 appends v in decimal.
func (b *Buffer) AppendInt8(v int8) error {
	b.reserve(DecimalLen8(v))
	if v == math.MinInt8 {
		return b.appendASCII(minInt8Digits)
	}
	return b.appendSigned(int64(v))
}

// AppendInt16 appends v in decimal.
func (b *Buffer) AppendInt16(v int16) error {
	b.reserve(DecimalLen16(v))
	if v == math.MinInt16 {
		return b.appendASCII(minInt16Digits)
	}
	return b.appendSigned(int64(v))
}

// AppendInt32 appends v in decimal.
func (b *Buffer) AppendInt32(v int32) error {
	b.reserve(DecimalLen32(v))
	if v == math.MinInt32 {
		return b.appendASCII(minInt32Digits)
	}
	return b.appendSigned(int64(v))
}

// AppendInt64 appends v in decimal.
func (b *Buffer) AppendInt64(v int64) error {
	b.reserve(DecimalLen64(v))
	if v == math.MinInt64 {
		return b.appendASCII(minInt64Digits)
	}
	return b.appendSigned(v)
}

// appendSigned handles sign emission for values whose magnitude fits in
// the width (minimum values are handled by the callers).
func (b *Buffer) appendSigned(v int64) error {
	if v < 0 {
		if err := b.appendUnit('-'); err != nil {
			return err
		}
		v = -v
	}
	return b.appendDecimal(uint64(v))
}

// AppendUint64 appends v in decimal.
func (b *Buffer) AppendUint64(v uint64) error {
	b.reserve(decDigits(v))
	return b.appendDecimal(v)
}

// appendBase emits digits of u most-significant-first in the base with
// the given bits-per-digit shift, exactly digits wide.
func (b *Buffer) appendBase(u uint64, shift uint, digits int) error {
	mask := uint64(1)<<shift - 1
	for i := digits - 1; i >= 0; i-- {
		d := u >> (uint(i) * shift) & mask
		if err := b.appendUnit(uint16(b.digits[d])); err != nil {
			return err
		}
	}
	return nil
}

// AppendHex8 appends the raw bits of v as two hex digits.
func (b *Buffer) AppendHex8(v int8) error {
	b.reserve(2)
	return b.appendBase(uint64(uint8(v)), 4, 2)
}

// AppendHex16 appends the raw bits of v as four hex digits.
func (b *Buffer) AppendHex16(v int16) error {
	b.reserve(4)
	return b.appendBase(uint64(uint16(v)), 4, 4)
}

// AppendHex32 appends the raw bits of v as eight hex digits.
func (b *Buffer) AppendHex32(v int32) error {
	b.reserve(8)
	return b.appendBase(uint64(uint32(v)), 4, 8)
}

// AppendHex64 appends the raw bits of v as sixteen hex digits.
func (b *Buffer) AppendHex64(v int64) error {
	b.reserve(16)
	return b.appendBase(uint64(v), 4, 16)
}

// AppendHexTrim8 appends v in hex with leading zero digits removed
// (zero renders as a single "0").
func (b *Buffer) AppendHexTrim8(v int8) error {
	n := HexTrimLen8(v)
	b.reserve(n)
	return b.appendBase(uint64(uint8(v)), 4, n)
}

// AppendHexTrim16 is AppendHexTrim8 for 16-bit values.
func (b *Buffer) AppendHexTrim16(v int16) error {
	n := HexTrimLen16(v)
	b.reserve(n)
	return b.appendBase(uint64(uint16(v)), 4, n)
}

// AppendHexTrim32 is AppendHexTrim8 for 32-bit values.
func (b *Buffer) AppendHexTrim32(v int32) error {
	n := HexTrimLen32(v)
	b.reserve(n)
	return b.appendBase(uint64(uint32(v)), 4, n)
}

// AppendHexTrim64 is AppendHexTrim8 for 64-bit values.
func (b *Buffer) AppendHexTrim64(v int64) error {
	n := HexTrimLen64(v)
	b.reserve(n)
	return b.appendBase(uint64(v), 4, n)
}

// AppendOct8 appends the raw bits of v as three octal digits.
func (b *Buffer) AppendOct8(v int8) error {
	b.reserve(3)
	return b.appendBase(uint64(uint8(v)), 3, 3)
}

// AppendOct16 appends the raw bits of v as six octal digits.
func (b *Buffer) AppendOct16(v int16) error {
	b.reserve(6)
	return b.appendBase(uint64(uint16(v)), 3, 6)
}

// AppendOct32 appends the raw bits of v as eleven octal digits.
func (b *Buffer) AppendOct32(v int32) error {
	b.reserve(11)
	return b.appendBase(uint64(uint32(v)), 3, 11)
}

// AppendOct64 appends the raw bits of v as twenty-two octal digits.
func (b *Buffer) AppendOct64(v int64) error {
	b.reserve(22)
	return b.appendBase(uint64(v), 3, 22)
}

// AppendOctTrim8 appends v in octal without leading zeros.
func (b *Buffer) AppendOctTrim8(v int8) error {
	n := OctTrimLen8(v)
	b.reserve(n)
	return b.appendBase(uint64(uint8(v)), 3, n)
}

// AppendOctTrim16 is AppendOctTrim8 for 16-bit values.
func (b *Buffer) AppendOctTrim16(v int16) error {
	n := OctTrimLen16(v)
	b.reserve(n)
	return b.appendBase(uint64(uint16(v)), 3, n)
}

// AppendOctTrim32 is AppendOctTrim8 for 32-bit values.
func (b *Buffer) AppendOctTrim32(v int32) error {
	n := OctTrimLen32(v)
	b.reserve(n)
	return b.appendBase(uint64(uint32(v)), 3, n)
}

// AppendOctTrim64 is AppendOctTrim8 for 64-bit values.
func (b *Buffer) AppendOctTrim64(v int64) error {
	n := OctTrimLen64(v)
	b.reserve(n)
	return b.appendBase(uint64(v), 3, n)
}

// AppendBin8 appends the raw bits of v as eight binary digits.
func (b *Buffer) AppendBin8(v int8) error {
	b.reserve(8)
	return b.appendBase(uint64(uint8(v)), 1, 8)
}

// AppendBin16 appends the raw bits of v as sixteen binary digits.
func (b *Buffer) AppendBin16(v int16) error {
	b.reserve(16)
	return b.appendBase(uint64(uint16(v)), 1, 16)
}

// AppendBin32 appends the raw bits of v as thirty-two binary digits.
func (b *Buffer) AppendBin32(v int32) error {
	b.reserve(32)
	return b.appendBase(uint64(uint32(v)), 1, 32)
}

// AppendBin64 appends the raw bits of v as sixty-four binary digits.
func (b *Buffer) AppendBin64(v int64) error {
	b.reserve(64)
	return b.appendBase(uint64(v), 1, 64)
}

// AppendBinTrim8 appends v in binary without leading zeros.
func (b *Buffer) AppendBinTrim8(v int8) error {
	n := BinTrimLen8(v)
	b.reserve(n)
	return b.appendBase(uint64(uint8(v)), 1, n)
}

// AppendBinTrim16 is AppendBinTrim8 for 16-bit values.
func (b *Buffer) AppendBinTrim16(v int16) error {
	n := BinTrimLen16(v)
	b.reserve(n)
	return b.appendBase(uint64(uint16(v)), 1, n)
}

// AppendBinTrim32 is AppendBinTrim8 for 32-bit values.
func (b *Buffer) AppendBinTrim32(v int32) error {
	n := BinTrimLen32(v)
	b.reserve(n)
	return b.appendBase(uint64(uint32(v)), 1, n)
}

// AppendBinTrim64 is AppendBinTrim8 for 64-bit values.
func (b *Buffer) AppendBinTrim64(v int64) error {
	n := BinTrimLen64(v)
	b.reserve(n)
	return b.appendBase(uint64(v), 1, n)
}

// AppendFloat32 appends the shortest decimal representation that
// round-trips to v.
func (b *Buffer) AppendFloat32(v float32) error {
	return b.appendFloat(float64(v), 32)
}

// AppendFloat64 appends the shortest decimal representation that
// round-trips to v.
func (b *Buffer) AppendFloat64(v float64) error {
	return b.appendFloat(v, 64)
}

func (b *Buffer) appendFloat(v float64, bitSize int) error {
	var tmp [32]byte
	out := strconv.AppendFloat(tmp[:0], v, 'g', -1, bitSize)
	b.reserve(len(out))
	for _, c := range out {
		if err := b.appendUnit(uint16(c)); err != nil {
			return err
		}
	}
	return nil
}
