package textbuf

import (
	"fmt"
	"reflect"
)

// Appender is implemented by values that render themselves into a
// buffer instead of relying on the generic fallback.
type Appender interface {
	AppendText(b *Buffer) error
}

// Char is a code point that renders as a quoted character literal.
// Plain rune (int32) values render as integers.
type Char rune

// AppendValue renders v into the buffer. Dispatch is checked in a fixed
// order, first match wins: nil, string, primitive, enumerant (named
// integer implementing fmt.Stringer), sequence, mapping, Appender,
// default text form. Values that can contain further references are
// guarded by cycle detection; a re-entered reference renders as the
// stand-in token "!<type>@<hex>" instead of recursing.
//
// Nested AppendValue calls made from an Appender share the caller's
// cycle tracking.
func (b *Buffer) AppendValue(v any) error {
	if b.cycle == nil {
		b.cycle = &cycleDetector{}
		defer func() { b.cycle = nil }()
	}
	return b.appendValue(v)
}

func (b *Buffer) appendValue(v any) error {
	if v == nil {
		return b.appendASCII("null")
	}

	switch x := v.(type) {
	case string:
		return b.AppendQuotedString(x, nil)
	case bool:
		return b.appendBool(x)
	case Char:
		return b.AppendQuotedRune(rune(x), nil)
	case int:
		return b.AppendInt64(int64(x))
	case int8:
		return b.AppendInt8(x)
	case int16:
		return b.AppendInt16(x)
	case int32:
		return b.AppendInt32(x)
	case int64:
		return b.appendLong(x)
	case uint:
		return b.AppendUint64(uint64(x))
	case uint8:
		return b.AppendUint64(uint64(x))
	case uint16:
		return b.AppendUint64(uint64(x))
	case uint32:
		return b.AppendUint64(uint64(x))
	case uint64:
		return b.appendUnsignedLong(x)
	case uintptr:
		return b.AppendUint64(uint64(x))
	case float32:
		return b.appendSuffixedFloat(float64(x), 32, 'f')
	case float64:
		return b.appendSuffixedFloat(x, 64, 'd')

	case []bool:
		return appendElems(b, x, (*Buffer).appendBool)
	case []int8:
		return appendElems(b, x, (*Buffer).AppendInt8)
	case []uint8:
		return appendElems(b, x, func(b *Buffer, v uint8) error { return b.AppendUint64(uint64(v)) })
	case []int16:
		return appendElems(b, x, (*Buffer).AppendInt16)
	case []int32: // covers []rune
		return appendElems(b, x, (*Buffer).AppendInt32)
	case []int64:
		return appendElems(b, x, (*Buffer).appendLong)
	case []int:
		return appendElems(b, x, func(b *Buffer, v int) error { return b.AppendInt64(int64(v)) })
	case []float32:
		return appendElems(b, x, func(b *Buffer, v float32) error { return b.appendSuffixedFloat(float64(v), 32, 'f') })
	case []float64:
		return appendElems(b, x, func(b *Buffer, v float64) error { return b.appendSuffixedFloat(v, 64, 'd') })
	case []Char:
		return appendElems(b, x, func(b *Buffer, v Char) error { return b.AppendQuotedRune(rune(v), nil) })
	case []string:
		return appendElems(b, x, func(b *Buffer, v string) error { return b.AppendQuotedString(v, nil) })
	}

	rv := reflect.ValueOf(v)
	k := rv.Kind()

	// Enumerant: a named integer carrying its symbolic name. Checked
	// before containers so a named value never falls into the generic
	// numeric or fallback paths.
	if s, ok := v.(fmt.Stringer); ok && isIntegerKind(k) {
		return b.AppendString(s.String())
	}

	switch k {
	case reflect.Bool:
		return b.appendBool(rv.Bool())
	case reflect.String:
		return b.AppendQuotedString(rv.String(), nil)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return b.AppendInt64(rv.Int())
	case reflect.Int64:
		return b.appendLong(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uintptr:
		return b.AppendUint64(rv.Uint())
	case reflect.Uint64:
		return b.appendUnsignedLong(rv.Uint())
	case reflect.Float32:
		return b.appendSuffixedFloat(rv.Float(), 32, 'f')
	case reflect.Float64:
		return b.appendSuffixedFloat(rv.Float(), 64, 'd')
	}

	switch k {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return b.appendASCII("null")
		}
	}

	// Empty containers render their literal without cycle tracking.
	switch k {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return b.appendASCII("[]")
		}
	case reflect.Map:
		if rv.Len() == 0 {
			return b.appendASCII("{}")
		}
	}

	if id, ok := identity(rv); ok {
		tok, cyclic := b.cycle.push(id, rv.Type())
		if cyclic {
			return b.AppendString(tok)
		}
		defer b.cycle.pop(id)
	}

	switch k {
	case reflect.Slice, reflect.Array:
		return b.appendSequence(rv)
	case reflect.Map:
		return b.appendMapping(rv)
	case reflect.Pointer:
		// The capability is resolved on the pointer itself since
		// renderable methods usually have pointer receivers.
		if a, ok := v.(Appender); ok {
			return a.AppendText(b)
		}
		return b.appendValue(rv.Elem().Interface())
	}

	if a, ok := v.(Appender); ok {
		return a.AppendText(b)
	}
	// Default text form. Output length is not pre-checked; the
	// threshold still caps what is stored.
	return b.AppendString(fmt.Sprint(v))
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func (b *Buffer) appendBool(v bool) error {
	if v {
		return b.appendASCII("true")
	}
	return b.appendASCII("false")
}

// appendLong renders a 64-bit integer with its trailing type marker.
func (b *Buffer) appendLong(v int64) error {
	if err := b.AppendInt64(v); err != nil {
		return err
	}
	return b.appendUnit('L')
}

func (b *Buffer) appendUnsignedLong(v uint64) error {
	if err := b.AppendUint64(v); err != nil {
		return err
	}
	return b.appendUnit('L')
}

func (b *Buffer) appendSuffixedFloat(v float64, bitSize int, suffix uint16) error {
	if err := b.appendFloat(v, bitSize); err != nil {
		return err
	}
	return b.appendUnit(suffix)
}

// appendElems renders a slice whose element type is statically known,
// bypassing per-element dispatch. Such slices hold no references and
// need no cycle tracking.
func appendElems[T any](b *Buffer, xs []T, elem func(*Buffer, T) error) error {
	if xs == nil {
		return b.appendASCII("null")
	}
	if len(xs) == 0 {
		return b.appendASCII("[]")
	}
	if err := b.appendUnit('['); err != nil {
		return err
	}
	for i := range xs {
		if i > 0 {
			if err := b.appendASCII(", "); err != nil {
				return err
			}
		}
		if err := elem(b, xs[i]); err != nil {
			return err
		}
	}
	return b.appendUnit(']')
}

func (b *Buffer) appendSequence(rv reflect.Value) error {
	if err := b.appendUnit('['); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			if err := b.appendASCII(", "); err != nil {
				return err
			}
		}
		if err := b.appendValue(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return b.appendUnit(']')
}

func (b *Buffer) appendMapping(rv reflect.Value) error {
	if err := b.appendUnit('{'); err != nil {
		return err
	}
	first := true
	it := rv.MapRange()
	for it.Next() {
		if !first {
			if err := b.appendASCII(", "); err != nil {
				return err
			}
		}
		first = false
		if err := b.appendValue(it.Key().Interface()); err != nil {
			return err
		}
		if err := b.appendASCII(": "); err != nil {
			return err
		}
		if err := b.appendValue(it.Value().Interface()); err != nil {
			return err
		}
	}
	return b.appendUnit('}')
}
