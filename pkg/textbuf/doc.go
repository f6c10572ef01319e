// Package textbuf provides a bounded, incrementally growable text
// accumulator for building long textual representations of values and
// object graphs without repeated whole-buffer reallocation.
//
// A Buffer is created with a fixed threshold (the maximum logical length
// it may ever reach) and fills segmented, lazily-allocated storage up to
// that threshold. When an append cannot complete within the threshold,
// the characters that fit are written and ErrThresholdReached is
// returned, so a truncated but valid result is always available.
//
// The logical storage unit is the UTF-16 code unit; code points outside
// the 16-bit range are stored as surrogate pairs. This keeps random
// access by logical index O(1) and makes per-unit escaping well defined.
//
// A Buffer is NOT safe for concurrent use.
package textbuf
