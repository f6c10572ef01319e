package textbuf

// store is the storage strategy behind a Buffer. Positions are logical
// unit indices; the Buffer guarantees ensure was called for a position
// before it is written and that only written positions are read.
type store interface {
	// ensure grows internal bookkeeping so positions below newLen are
	// addressable. It never shrinks.
	ensure(newLen int)
	at(pos int) uint16
	set(pos int, u uint16)
	copyIn(pos int, src []uint16)
	// copyOut fills dst with len(dst) units starting at start.
	copyOut(dst []uint16, start int)
	// reset prepares for reuse keeping allocated memory.
	reset()
	// clear releases all allocated memory.
	clear()
}

// chunkedStore keeps content in fixed-size chunks allocated lazily on
// first write into their range. The chunk index doubles as needed but
// never exceeds capacity.
type chunkedStore struct {
	chunkSize int
	capacity  int // maximum number of chunks
	chunks    [][]uint16
}

var _ store = (*chunkedStore)(nil)

func newChunkedStore(threshold, chunkSize int) *chunkedStore {
	return &chunkedStore{
		chunkSize: chunkSize,
		capacity:  (threshold + chunkSize - 1) / chunkSize,
	}
}

func (s *chunkedStore) ensure(newLen int) {
	need := (newLen + s.chunkSize - 1) / s.chunkSize
	if need <= len(s.chunks) {
		return
	}
	size := need * 2
	if size > s.capacity {
		size = s.capacity
	}
	grown := make([][]uint16, size)
	copy(grown, s.chunks)
	s.chunks = grown
}

// chunkFor returns the chunk covering pos, allocating it on first use.
func (s *chunkedStore) chunkFor(pos int) []uint16 {
	i := pos / s.chunkSize
	if s.chunks[i] == nil {
		s.chunks[i] = make([]uint16, s.chunkSize)
	}
	return s.chunks[i]
}

func (s *chunkedStore) at(pos int) uint16 {
	return s.chunks[pos/s.chunkSize][pos%s.chunkSize]
}

func (s *chunkedStore) set(pos int, u uint16) {
	s.chunkFor(pos)[pos%s.chunkSize] = u
}

func (s *chunkedStore) copyIn(pos int, src []uint16) {
	for len(src) > 0 {
		c := s.chunkFor(pos)
		n := copy(c[pos%s.chunkSize:], src)
		src = src[n:]
		pos += n
	}
}

func (s *chunkedStore) copyOut(dst []uint16, start int) {
	for len(dst) > 0 {
		c := s.chunks[start/s.chunkSize]
		n := copy(dst, c[start%s.chunkSize:])
		dst = dst[n:]
		start += n
	}
}

func (s *chunkedStore) reset() {}

func (s *chunkedStore) clear() {
	s.chunks = nil
}
