package model

import (
	"log"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-universe/rules"
)

const (
	DefaultWidth  = 100
	DefaultHeight = 100

	// wordBits is the number of cells packed into one bitset word.
	wordBits = 64
)

// Options configures a Universe built with NewWithOptions.
type Options struct {
	Width  uint32
	Height uint32

	Strategy       SeedStrategy
	SpawnSize      uint32 // window strategy only, 0 means SpawnSizeSmall
	SymmetricStart uint32 // symmetric strategy only

	// Workers > 1 splits every generation across goroutines.
	Workers int

	// Random defaults to a time seeded PCG source.
	Random RandomSource
	// Logger receives the construction line. Nil disables it.
	Logger Logger
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Strategy:       SeedSymmetric,
		SpawnSize:      SpawnSizeSmall,
		SymmetricStart: DefaultSymmetricStart,
		Workers:        1,
		Logger:         log.Default(),
	}
}

// Universe is a toroidal Game of Life grid with one bit per cell, stored
// row-major so that index = row*width + col.
//
// A Universe is not safe for concurrent use.
type Universe struct {
	width        uint32
	height       uint32
	cells        *bitset.BitSet
	initialCells *bitset.BitSet
	generation   uint64

	strategy       SeedStrategy
	spawnSize      uint32
	symmetricStart uint32
	workers        int

	random RandomSource
	logger Logger
	pool   *BufferPool
}

// New creates a 100x100 universe seeded with the symmetric strategy.
func New() *Universe {
	return newUniverse(DefaultOptions())
}

// NewWithOptions creates a universe from explicit options.
func NewWithOptions(o Options) (*Universe, error) {
	if err := checkDimensions(o.Width, o.Height); err != nil {
		return nil, errors.Wrap(err, "[NewWithOptions] failed to create universe")
	}
	return newUniverse(o), nil
}

func newUniverse(o Options) *Universe {
	if o.Random == nil {
		o.Random = timeSeededRandom()
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.SpawnSize == 0 {
		o.SpawnSize = SpawnSizeSmall
	}

	u := &Universe{
		width:          o.Width,
		height:         o.Height,
		strategy:       o.Strategy,
		spawnSize:      o.SpawnSize,
		symmetricStart: o.SymmetricStart,
		workers:        o.Workers,
		random:         o.Random,
		logger:         o.Logger,
		pool:           NewBufferPool(),
	}
	u.logf("universe: created %dx%d grid, strategy=%s", u.width, u.height, u.strategy)
	u.Randomise()
	return u
}

// checkDimensions rejects zero extents and grids with more than 2^32-1 cells.
func checkDimensions(width, height uint32) error {
	if width == 0 || height == 0 {
		return errors.Wrapf(ErrInvalidDimension, "[checkDimensions] %dx%d has a zero extent", width, height)
	}
	if uint64(width)*uint64(height) > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidDimension, "[checkDimensions] %dx%d exceeds %d cells", width, height, uint64(math.MaxUint32))
	}
	return nil
}

// Width returns the number of columns.
func (u *Universe) Width() uint32 {
	return u.width
}

// Height returns the number of rows.
func (u *Universe) Height() uint32 {
	return u.height
}

// Generation returns the number of ticks since the universe was last seeded,
// cleared or imported.
func (u *Universe) Generation() uint64 {
	return u.generation
}

// SetWidth changes the number of columns. All cells are reset to dead.
func (u *Universe) SetWidth(width uint32) error {
	if err := checkDimensions(width, u.height); err != nil {
		return errors.Wrap(err, "[SetWidth] failed to resize")
	}
	u.width = width
	u.Clear()
	return nil
}

// SetHeight changes the number of rows. All cells are reset to dead.
func (u *Universe) SetHeight(height uint32) error {
	if err := checkDimensions(u.width, height); err != nil {
		return errors.Wrap(err, "[SetHeight] failed to resize")
	}
	u.height = height
	u.Clear()
	return nil
}

// Clear kills every cell, including the seed snapshot.
func (u *Universe) Clear() {
	u.cells = bitset.New(u.size())
	u.initialCells = bitset.New(u.size())
	u.generation = 0
}

// Randomise re-seeds the universe with its configured strategy and stores
// the result as the seed snapshot.
func (u *Universe) Randomise() {
	u.cells = u.seed()
	u.initialCells = u.cells.Clone()
	u.generation = 0
}

// Reset is an alias for Randomise.
func (u *Universe) Reset() {
	u.Randomise()
}

// Restore brings back the cells captured by the last seeding.
func (u *Universe) Restore() {
	u.cells = u.initialCells.Clone()
	u.generation = 0
}

// Cells returns a read-only view of the current generation. The view shares
// storage with the universe and is invalidated by the next mutating call.
func (u *Universe) Cells() CellsView {
	return CellsView{bits: u.cells, width: u.width, height: u.height}
}

// InitialCells returns a read-only view of the seed snapshot.
func (u *Universe) InitialCells() CellsView {
	return CellsView{bits: u.initialCells, width: u.width, height: u.height}
}

// Alive reports whether the cell at row, col is alive. Coordinates wrap.
func (u *Universe) Alive(row, col uint32) bool {
	return u.cells.Test(u.index(row%u.height, col%u.width))
}

// LiveCells returns the number of live cells.
func (u *Universe) LiveCells() int {
	return int(u.cells.Count())
}

// Tick advances the universe by one generation.
func (u *Universe) Tick() {
	u.TickMany(1)
}

// TickMany advances the universe by count generations. Every generation is
// computed from a full snapshot of the previous one.
func (u *Universe) TickMany(count int) {
	for range count {
		u.step()
	}
}

func (u *Universe) step() {
	size := u.size()
	next := u.pool.Get(size)
	if u.workers > 1 && size > wordBits {
		u.stepParallel(next)
	} else {
		u.stepRange(next, 0, size)
	}

	prev := u.cells
	u.cells = next
	u.pool.Put(prev)
	u.generation++
}

// stepParallel splits the grid into word aligned index ranges so that no two
// goroutines write to the same bitset word.
func (u *Universe) stepParallel(next *bitset.BitSet) {
	var (
		eg    errgroup.Group
		size  = u.size()
		chunk = (size + uint(u.workers) - 1) / uint(u.workers)
	)
	chunk = (chunk + wordBits - 1) &^ (wordBits - 1)

	for start := uint(0); start < size; start += chunk {
		end := min(start+chunk, size)
		eg.Go(func() error {
			u.stepRange(next, start, end)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		u.logf("universe: parallel step failed: %v", err)
	}
}

// stepRange writes the next state of cells [start, end) into next.
func (u *Universe) stepRange(next *bitset.BitSet, start, end uint) {
	width := uint(u.width)
	for i := start; i < end; i++ {
		row, col := uint32(i/width), uint32(i%width)
		neighbors := u.liveNeighborCount(row, col)
		next.SetTo(i, rules.NextState(u.cells.Test(i), neighbors))
	}
}

// liveNeighborCount counts the live cells among the eight toroidal neighbors.
func (u *Universe) liveNeighborCount(row, col uint32) int {
	var (
		rows  = [3]uint32{wrapPrev(row, u.height), row, wrapNext(row, u.height)}
		cols  = [3]uint32{wrapPrev(col, u.width), col, wrapNext(col, u.width)}
		count = 0
	)
	for i, r := range rows {
		for j, c := range cols {
			if i == 1 && j == 1 {
				continue
			}
			if u.cells.Test(u.index(r, c)) {
				count++
			}
		}
	}
	return count
}

func wrapPrev(v, n uint32) uint32 {
	if v == 0 {
		return n - 1
	}
	return v - 1
}

func wrapNext(v, n uint32) uint32 {
	if v+1 == n {
		return 0
	}
	return v + 1
}

func (u *Universe) index(row, col uint32) uint {
	return uint(row)*uint(u.width) + uint(col)
}

func (u *Universe) size() uint {
	return uint(u.width) * uint(u.height)
}

func (u *Universe) logf(format string, v ...any) {
	if u.logger == nil {
		return
	}
	u.logger.Printf(format, v...)
}
