package model

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// SeedStrategy selects how a universe is populated by Randomise.
type SeedStrategy int

const (
	// SeedSymmetric fills a band with an 8-way mirrored random pattern.
	SeedSymmetric SeedStrategy = iota
	// SeedWindow fills a centered square window with independent random cells.
	SeedWindow
)

const (
	SpawnSizeSmall = 10
	SpawnSizeLarge = 20

	DefaultSymmetricStart = 40
)

func (s SeedStrategy) String() string {
	switch s {
	case SeedSymmetric:
		return "symmetric"
	case SeedWindow:
		return "window"
	default:
		return "unknown"
	}
}

// ParseSeedStrategy maps a strategy name back to its SeedStrategy.
func ParseSeedStrategy(name string) (SeedStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "symmetric":
		return SeedSymmetric, nil
	case "window":
		return SeedWindow, nil
	default:
		return SeedSymmetric, errors.Errorf("[ParseSeedStrategy] unknown seed strategy: %q", name)
	}
}

func (u *Universe) seed() *bitset.BitSet {
	switch u.strategy {
	case SeedWindow:
		return randomWindow(u.random, u.height, u.width, u.spawnSize)
	default:
		return randomSymmetric(u.random, u.height, u.width, u.symmetricStart)
	}
}

// randomWindow sets every cell of a centered spawn window alive with
// probability 0.5. Window bounds are inclusive and clamped to the grid.
func randomWindow(r RandomSource, height, width, spawnSize uint32) *bitset.BitSet {
	var (
		minX = windowStart(width, spawnSize)
		maxX = windowEnd(minX, width, spawnSize)
		minY = windowStart(height, spawnSize)
		maxY = windowEnd(minY, height, spawnSize)
	)

	cells := bitset.New(uint(width) * uint(height))
	for row := minY; row <= maxY; row++ {
		for col := minX; col <= maxX; col++ {
			cells.SetTo(uint(row)*uint(width)+uint(col), coinFlip(r))
		}
	}
	return cells
}

func windowStart(extent, spawnSize uint32) uint32 {
	if extent/2 < spawnSize/2 {
		return 0
	}
	return extent/2 - spawnSize/2
}

func windowEnd(start, extent, spawnSize uint32) uint32 {
	return uint32(min(uint64(start)+uint64(spawnSize), uint64(extent)-1))
}

// randomSymmetric draws one value per (x, y) with start <= x < width/2 and
// x <= y < height/2 and writes it to all eight mirror positions, giving a
// pattern symmetric under both flips and both diagonals on square grids.
func randomSymmetric(r RandomSource, height, width, start uint32) *bitset.BitSet {
	var (
		midX  = width / 2
		midY  = height / 2
		cells = bitset.New(uint(width) * uint(height))
	)

	set := func(row, col uint32, alive bool) {
		// mirrors of non-square grids can land outside the grid
		if row >= height || col >= width {
			return
		}
		cells.SetTo(uint(row)*uint(width)+uint(col), alive)
	}

	for x := start; x < midX; x++ {
		for y := x; y < midY; y++ {
			alive := coinFlip(r)

			set(y, x, alive)
			set(x, y, alive)
			set(height-1-y, x, alive)
			set(height-1-x, y, alive)
			set(y, width-1-x, alive)
			set(x, width-1-y, alive)
			set(height-1-y, width-1-x, alive)
			set(height-1-x, width-1-y, alive)
		}
	}
	return cells
}
