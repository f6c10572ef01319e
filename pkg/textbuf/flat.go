package textbuf

import "github.com/huynhanx03/go-textbuf/pkg/utils"

// flatStore keeps content in a single contiguous array that doubles as
// it grows, clamped to the buffer threshold.
type flatStore struct {
	max  int // threshold, the hard growth ceiling
	data []uint16
}

var _ store = (*flatStore)(nil)

func newFlatStore(threshold int) *flatStore {
	return &flatStore{max: threshold}
}

func (s *flatStore) ensure(newLen int) {
	if newLen <= len(s.data) {
		return
	}
	size := len(s.data) * 2
	if size < minFlatCapacity {
		size = minFlatCapacity
	}
	if size < newLen {
		size = utils.CeilToPowerOfTwo(newLen)
	}
	if size > s.max {
		size = s.max
	}
	grown := make([]uint16, size)
	copy(grown, s.data)
	s.data = grown
}

func (s *flatStore) at(pos int) uint16 {
	return s.data[pos]
}

func (s *flatStore) set(pos int, u uint16) {
	s.data[pos] = u
}

func (s *flatStore) copyIn(pos int, src []uint16) {
	copy(s.data[pos:], src)
}

func (s *flatStore) copyOut(dst []uint16, start int) {
	copy(dst, s.data[start:])
}

func (s *flatStore) reset() {}

func (s *flatStore) clear() {
	s.data = nil
}
