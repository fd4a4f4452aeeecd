package model

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// SetState overwrites the cells from a packed bitmap: one bit per cell in
// row-major order, least significant bit first within each byte. buf must
// hold at least ceil(width*height/8) bytes; trailing bytes are ignored.
func (u *Universe) SetState(buf []byte) error {
	size := u.size()
	need := (size + 7) / 8
	if uint(len(buf)) < need {
		return errors.Wrapf(ErrInvalidLength, "[SetState] %dx%d grid needs %d bytes, got %d",
			u.width, u.height, need, len(buf))
	}

	cells := bitset.New(size)
	for i := uint(0); i < size; i++ {
		if buf[i/8]&(1<<(i%8)) != 0 {
			cells.Set(i)
		}
	}
	u.cells = cells
	u.generation = 0
	return nil
}

// State packs the current cells in the layout accepted by SetState.
func (u *Universe) State() []byte {
	buf := make([]byte, (u.size()+7)/8)
	for i, ok := u.cells.NextSet(0); ok; i, ok = u.cells.NextSet(i + 1) {
		buf[i/8] |= 1 << (i % 8)
	}
	return buf
}
