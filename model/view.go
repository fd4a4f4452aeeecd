package model

import "github.com/bits-and-blooms/bitset"

// CellsView is a zero-copy, read-only view of a universe's cells.
//
// The view borrows the universe's storage: Tick, TickMany, seeding, resizing
// and SetState all replace or recycle that storage, so a view must not be
// used after the next mutating call. Use Snapshot to keep a copy.
type CellsView struct {
	bits   *bitset.BitSet
	width  uint32
	height uint32
}

func (v CellsView) Width() uint32  { return v.width }
func (v CellsView) Height() uint32 { return v.height }

// Len returns width*height.
func (v CellsView) Len() int { return int(v.bits.Len()) }

// Alive reports whether the cell at row, col is alive. Out of range
// coordinates report false.
func (v CellsView) Alive(row, col uint32) bool {
	if row >= v.height || col >= v.width {
		return false
	}
	return v.bits.Test(uint(row)*uint(v.width) + uint(col))
}

// AliveAt reports whether the cell at a row-major index is alive.
func (v CellsView) AliveAt(i int) bool {
	return i >= 0 && v.bits.Test(uint(i))
}

// Count returns the number of live cells.
func (v CellsView) Count() int { return int(v.bits.Count()) }

// Words exposes the packed storage, 64 cells per word, bit i of the grid at
// word i/64 bit i%64. The slice must not be modified.
func (v CellsView) Words() []uint64 { return v.bits.Bytes() }

// Equal reports whether both views have the same extents and cells.
func (v CellsView) Equal(o CellsView) bool {
	return v.width == o.width && v.height == o.height && v.bits.Equal(o.bits)
}

// Snapshot returns a copy that stays valid after the universe changes.
func (v CellsView) Snapshot() CellsView {
	return CellsView{bits: v.bits.Clone(), width: v.width, height: v.height}
}
