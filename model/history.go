package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// Hash returns an MD5 digest of the grid extents and cells.
func (u *Universe) Hash() string {
	h := md5.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], u.width)
	binary.LittleEndian.PutUint32(buf[4:], u.height)
	h.Write(buf[:])
	for _, w := range u.cells.Bytes() {
		binary.LittleEndian.PutUint64(buf[:], w)
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// History remembers recent grid hashes to detect still lifes and short
// oscillators.
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps at most size hashes. Sizes below 3 are raised to 3.
func NewHistory(size int) *History {
	return &History{size: max(size, 3)}
}

// Observe records the universe's current state and reports whether it
// repeats one of the last three recorded states.
func (h *History) Observe(u *Universe) bool {
	current := u.Hash()

	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == current {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, current)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Len returns the number of recorded hashes.
func (h *History) Len() int {
	return len(h.hashes)
}

// Reset forgets every recorded hash.
func (h *History) Reset() {
	h.hashes = nil
}
