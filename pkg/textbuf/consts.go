package textbuf

const (
	// chunkAlign is the granularity chunk sizes are rounded up to.
	chunkAlign = 32

	// minChunkSize is the smallest permitted chunk size.
	minChunkSize = 32

	// maxChunkSize caps chunk size so a single chunk allocation stays
	// cheap relative to content size (32K units).
	maxChunkSize = 32 << 10

	// defaultChunkSize is used when no chunk size option is given.
	defaultChunkSize = 1 << 10

	// minFlatCapacity is the initial allocation for the contiguous store.
	minFlatCapacity = 64

	// maxBMP is the largest code point representable in one storage unit.
	maxBMP = 0xFFFF
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)
