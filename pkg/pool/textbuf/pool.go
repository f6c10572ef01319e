// Package textbuf provides pooled text buffers keyed by threshold, so
// render-and-discard call sites reuse buffer storage instead of
// allocating per call.
package textbuf

import (
	"github.com/huynhanx03/go-textbuf/pkg/pool/internal/calibrated"
	"github.com/huynhanx03/go-textbuf/pkg/textbuf"
)

var defaultPool = calibrated.New(
	// newFunc: create a buffer with the given threshold
	func(size int) *textbuf.Buffer {
		return textbuf.New(size)
	},
	// sizeFunc: bucket by threshold
	(*textbuf.Buffer).Threshold,
	// resetFunc: keep storage for reuse
	(*textbuf.Buffer).Reset,
	// discardFunc: release storage of buffers the pool will not retain
	(*textbuf.Buffer).Clear,
)

// Get returns a buffer with the calibrated default threshold.
func Get() *textbuf.Buffer {
	size := int(defaultPool.DefaultSize())
	return defaultPool.Get(size)
}

// GetSize returns a buffer with a threshold of at least the given size.
func GetSize(size int) *textbuf.Buffer {
	return defaultPool.Get(size)
}

// Put returns a buffer to the default pool.
func Put(b *textbuf.Buffer) {
	if b == nil {
		return
	}
	defaultPool.Put(b)
}

// DefaultSize returns the calibrated default threshold.
func DefaultSize() uint64 {
	return defaultPool.DefaultSize()
}

// MaxSize returns the calibrated retain ceiling (95th percentile).
func MaxSize() uint64 {
	return defaultPool.MaxSize()
}

// GetStats returns usage counts per bucket.
func GetStats() [calibrated.Steps]uint64 {
	return defaultPool.GetStats()
}

// BucketSize returns the threshold of bucket i.
func BucketSize(i int) int {
	return calibrated.BucketSize(i)
}
