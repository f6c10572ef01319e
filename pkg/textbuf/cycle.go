package textbuf

import (
	"encoding/binary"
	"reflect"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// cycleDetector is the identity-keyed visited-set used while
// serializing nested values. An entry exists exactly while the
// reference's subtree is being rendered (push on entry, pop on exit).
// Stand-in tokens are computed lazily on first collision and cached per
// reference so repeated cycles to the same reference render
// identically.
type cycleDetector struct {
	visited map[uintptr]*cycleToken
}

type cycleToken struct {
	text string
}

// push registers id and reports false, or reports true with the
// stand-in token when id is already being rendered.
func (d *cycleDetector) push(id uintptr, t reflect.Type) (string, bool) {
	if d.visited == nil {
		d.visited = make(map[uintptr]*cycleToken)
	}
	if tok, ok := d.visited[id]; ok {
		if tok.text == "" {
			tok.text = standIn(t, id)
		}
		return tok.text, true
	}
	d.visited[id] = &cycleToken{}
	return "", false
}

// pop unregisters id. Must be called exactly once per push that
// returned false, on every exit path.
func (d *cycleDetector) pop(id uintptr) {
	delete(d.visited, id)
}

// standIn builds the textual stand-in for a back-edge to a reference:
// "!<type>@<identity-hash-in-hex>".
func standIn(t reflect.Type, id uintptr) string {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(id))
	return "!" + t.String() + "@" + strconv.FormatUint(xxhash.Sum64(raw[:]), 16)
}

// identity returns the reference identity of rv for cycle tracking.
// Only pointer-shaped values have one; plain values are copies and can
// never be re-entered.
func identity(rv reflect.Value) (uintptr, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.Pointer(), true
	}
	return 0, false
}
