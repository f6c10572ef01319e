package textbuf

import (
	"unicode"
	"unicode/utf16"
)

// Escaper is a per-unit transform applied while copying characters into
// quoted renderings. Escapers receive code points already reduced to
// single storage units: supplementary code points are split into their
// surrogate pair before any policy runs.
type Escaper func(b *Buffer, r rune) error

// PassThrough copies the character unchanged.
func PassThrough(b *Buffer, r rune) error {
	return b.AppendRune(r)
}

// UpperCase maps the character to upper case.
func UpperCase(b *Buffer, r rune) error {
	return b.AppendRune(unicode.ToUpper(r))
}

// LowerCase maps the character to lower case.
func LowerCase(b *Buffer, r rune) error {
	return b.AppendRune(unicode.ToLower(r))
}

// UnicodeEscape renders the character as \uXXXX, using the buffer's
// digit case.
func UnicodeEscape(b *Buffer, r rune) error {
	if r > maxBMP {
		hi, lo := utf16.EncodeRune(r)
		if err := b.escapeUnit(uint16(hi)); err != nil {
			return err
		}
		return b.escapeUnit(uint16(lo))
	}
	return b.escapeUnit(uint16(r))
}

func (b *Buffer) escapeUnit(u uint16) error {
	if err := b.appendASCII(`\u`); err != nil {
		return err
	}
	return b.appendBase(uint64(u), 4, 4)
}

// LiteralEscape backslash-escapes quotes, backslash and the common
// control characters, routes remaining control characters through
// UnicodeEscape and passes everything else unchanged.
func LiteralEscape(b *Buffer, r rune) error {
	switch r {
	case '"', '\'', '\\':
		if err := b.appendUnit('\\'); err != nil {
			return err
		}
		return b.appendUnit(uint16(r))
	case '\n':
		return b.appendASCII(`\n`)
	case '\r':
		return b.appendASCII(`\r`)
	case '\t':
		return b.appendASCII(`\t`)
	case '\b':
		return b.appendASCII(`\b`)
	case '\f':
		return b.appendASCII(`\f`)
	}
	if r < 0x20 {
		return UnicodeEscape(b, r)
	}
	return b.AppendRune(r)
}

// appendEscaped splits supplementary code points into a surrogate pair
// and applies esc to each resulting unit.
func (b *Buffer) appendEscaped(r rune, esc Escaper) error {
	if r > maxBMP {
		hi, lo := utf16.EncodeRune(r)
		if err := esc(b, hi); err != nil {
			return err
		}
		return esc(b, lo)
	}
	return esc(b, r)
}

// AppendQuotedString appends s wrapped in double quotes with each
// character passed through esc (LiteralEscape when esc is nil).
func (b *Buffer) AppendQuotedString(s string, esc Escaper) error {
	if esc == nil {
		esc = LiteralEscape
	}
	if err := b.appendUnit('"'); err != nil {
		return err
	}
	for _, r := range s {
		if err := b.appendEscaped(r, esc); err != nil {
			return err
		}
	}
	return b.appendUnit('"')
}

// AppendQuotedRune appends r wrapped in single quotes with esc applied
// (LiteralEscape when esc is nil).
func (b *Buffer) AppendQuotedRune(r rune, esc Escaper) error {
	if esc == nil {
		esc = LiteralEscape
	}
	if err := b.appendUnit('\''); err != nil {
		return err
	}
	if err := b.appendEscaped(r, esc); err != nil {
		return err
	}
	return b.appendUnit('\'')
}
