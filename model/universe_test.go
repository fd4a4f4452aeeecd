package model

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// constRandom always returns the same draw.
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// countingRandom counts draws and always returns alive.
type countingRandom struct {
	draws int
}

func (c *countingRandom) Float64() float64 {
	c.draws++
	return 0
}

// newEmptyUniverse returns an all-dead universe of the given size.
func newEmptyUniverse(t testing.TB, width, height uint32) *Universe {
	t.Helper()
	u, err := NewWithOptions(Options{Width: width, Height: height, Random: NewRandom(1)})
	if err != nil {
		t.Fatalf("NewWithOptions(%dx%d): %v", width, height, err)
	}
	u.Clear()
	return u
}

func alivePoints(u *Universe) map[Point]bool {
	points := map[Point]bool{}
	for row := range u.Height() {
		for col := range u.Width() {
			if u.Alive(row, col) {
				points[Point{int32(row), int32(col)}] = true
			}
		}
	}
	return points
}

func expectAlive(t *testing.T, u *Universe, want []Point) {
	t.Helper()
	got := alivePoints(u)
	if len(got) != len(want) {
		t.Fatalf("expected %d live cells, got %d: %v", len(want), len(got), got)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("expected cell (%d,%d) alive, live cells: %v", p.Row, p.Col, got)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	u := New()

	if u.Width() != DefaultWidth || u.Height() != DefaultHeight {
		t.Fatalf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, u.Width(), u.Height())
	}
	if got := u.Cells().Len(); got != DefaultWidth*DefaultHeight {
		t.Fatalf("expected %d cells, got %d", DefaultWidth*DefaultHeight, got)
	}
	if !u.Cells().Equal(u.InitialCells()) {
		t.Fatal("expected seed snapshot to match the initial cells")
	}
	if u.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", u.Generation())
	}
}

func TestNewWithOptionsLogsOnce(t *testing.T) {
	logger := &recordingLogger{}
	_, err := NewWithOptions(Options{Width: 10, Height: 10, Random: NewRandom(1), Logger: logger})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	if len(logger.lines) != 1 {
		t.Fatalf("expected one log line, got %d: %v", len(logger.lines), logger.lines)
	}
}

func TestNewWithOptionsRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"overflow", math.MaxUint32, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithOptions(Options{Width: tt.width, Height: tt.height})
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("expected ErrInvalidDimension, got %v", err)
			}
		})
	}
}

func TestSingleCellDies(t *testing.T) {
	u := newEmptyUniverse(t, 8, 8)
	u.ToggleCell(4, 4)

	u.Tick()

	if u.LiveCells() != 0 {
		t.Fatalf("expected lonely cell to die, %d cells alive", u.LiveCells())
	}
}

func TestBlockIsStillLife(t *testing.T) {
	u := newEmptyUniverse(t, 6, 6)
	block := []Point{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	u.SetCells(block)

	u.Tick()
	expectAlive(t, u, block)

	u.TickMany(5)
	expectAlive(t, u, block)
}

func TestBlinkerOscillates(t *testing.T) {
	u := newEmptyUniverse(t, 7, 7)
	horizontal := []Point{{3, 2}, {3, 3}, {3, 4}}
	vertical := []Point{{2, 3}, {3, 3}, {4, 3}}
	u.SetCells(horizontal)
	original := u.Cells().Snapshot()

	u.Tick()
	expectAlive(t, u, vertical)

	u.Tick()
	expectAlive(t, u, horizontal)

	u.Restore()
	u.SetCells(horizontal)
	u.TickMany(2)
	if !u.Cells().Equal(original) {
		t.Fatal("expected blinker to return to its original state after two ticks")
	}
}

func TestToroidalNeighborCount(t *testing.T) {
	u := newEmptyUniverse(t, 5, 4)
	// the eight neighbors of (0,0) all sit across an edge except three
	u.SetCells([]Point{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	})

	if got := u.liveNeighborCount(0, 0); got != 8 {
		t.Fatalf("expected 8 neighbors for (0,0), got %d", got)
	}
	if !u.Alive(3, 4) || !u.Alive(3, 0) || !u.Alive(0, 4) {
		t.Fatal("expected negative coordinates to wrap to the far edges")
	}
}

func TestToroidalBirthAcrossCorner(t *testing.T) {
	u := newEmptyUniverse(t, 6, 6)
	u.SetCells([]Point{{5, 5}, {5, 0}, {0, 5}})

	if got := u.liveNeighborCount(0, 0); got != 3 {
		t.Fatalf("expected 3 neighbors for (0,0), got %d", got)
	}

	u.Tick()
	if !u.Alive(0, 0) {
		t.Fatal("expected (0,0) to be born from neighbors across the corner")
	}
}

func TestGliderTranslation(t *testing.T) {
	u := newEmptyUniverse(t, 20, 20)
	u.AddGlider(5, 5)
	start := alivePoints(u)

	u.TickMany(4)

	want := make([]Point, 0, len(start))
	for p := range start {
		want = append(want, Point{p.Row + 1, p.Col + 1})
	}
	expectAlive(t, u, want)
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	u := newEmptyUniverse(t, 8, 8)
	u.AddGlider(2, 2)
	original := u.Cells().Snapshot()

	// 8 diagonal steps of one cell each bring it back home
	u.TickMany(32)

	if !u.Cells().Equal(original) {
		t.Fatalf("expected glider back at its origin, live cells: %v", alivePoints(u))
	}
}

func TestPulsarPeriod(t *testing.T) {
	u := newEmptyUniverse(t, 21, 21)
	u.AddPulsar(10, 10)
	original := u.Cells().Snapshot()

	if original.Count() != 48 {
		t.Fatalf("expected 48 pulsar cells, got %d", original.Count())
	}

	u.Tick()
	if u.Cells().Equal(original) {
		t.Fatal("expected pulsar to change after one tick")
	}

	u.TickMany(2)
	if !u.Cells().Equal(original) {
		t.Fatal("expected pulsar to repeat after three ticks")
	}
}

func TestResizeClearsState(t *testing.T) {
	u := newEmptyUniverse(t, 10, 10)
	u.SetCells([]Point{{1, 1}, {2, 2}, {3, 3}})

	if err := u.SetWidth(13); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if u.Width() != 13 || u.Cells().Len() != 130 || u.LiveCells() != 0 {
		t.Fatalf("expected empty 13x10 grid, got %dx%d with %d live cells",
			u.Width(), u.Height(), u.LiveCells())
	}

	u.SetCells([]Point{{4, 4}})
	if err := u.SetHeight(7); err != nil {
		t.Fatalf("SetHeight: %v", err)
	}
	if u.Height() != 7 || u.Cells().Len() != 91 || u.LiveCells() != 0 {
		t.Fatalf("expected empty 13x7 grid, got %dx%d with %d live cells",
			u.Width(), u.Height(), u.LiveCells())
	}
	if u.InitialCells().Len() != 91 {
		t.Fatalf("expected seed snapshot resized to 91 cells, got %d", u.InitialCells().Len())
	}
}

func TestResizeRejectsBadDimensions(t *testing.T) {
	u := newEmptyUniverse(t, 4, 4)
	u.SetCells([]Point{{1, 1}})

	if err := u.SetWidth(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
	if err := u.SetHeight(math.MaxUint32); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
	if u.Width() != 4 || u.Height() != 4 || u.LiveCells() != 1 {
		t.Fatalf("expected rejected resize to leave the universe untouched, got %dx%d with %d live cells",
			u.Width(), u.Height(), u.LiveCells())
	}
}

func TestClearKillsEverything(t *testing.T) {
	u, err := NewWithOptions(Options{Width: 30, Height: 30, Random: NewRandom(3), Strategy: SeedWindow})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	u.Tick()

	u.Clear()

	if u.LiveCells() != 0 || u.InitialCells().Count() != 0 {
		t.Fatalf("expected all dead, got %d live and %d seed cells", u.LiveCells(), u.InitialCells().Count())
	}
	if u.Width() != 30 || u.Height() != 30 || u.Generation() != 0 {
		t.Fatalf("expected 30x30 at generation 0, got %dx%d at %d", u.Width(), u.Height(), u.Generation())
	}
}

func TestRestoreRecallsSeed(t *testing.T) {
	u, err := NewWithOptions(Options{Width: 40, Height: 40, Random: NewRandom(11), Strategy: SeedWindow, SpawnSize: SpawnSizeLarge})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	seed := u.InitialCells().Snapshot()

	u.TickMany(7)
	if u.Generation() != 7 {
		t.Fatalf("expected generation 7, got %d", u.Generation())
	}

	u.Restore()
	if !u.Cells().Equal(seed) || u.Generation() != 0 {
		t.Fatal("expected Restore to bring back the seeded cells at generation 0")
	}
}

func TestRandomiseReplacesSeed(t *testing.T) {
	u, err := NewWithOptions(Options{Width: 40, Height: 40, Random: NewRandom(5), Strategy: SeedWindow, SpawnSize: SpawnSizeLarge})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	first := u.InitialCells().Snapshot()

	u.Reset()

	if u.InitialCells().Equal(first) {
		t.Fatal("expected a fresh seed after Reset")
	}
	if !u.Cells().Equal(u.InitialCells()) {
		t.Fatal("expected cells and seed snapshot to match after Reset")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	opts := Options{Width: 61, Height: 53, Strategy: SeedWindow, SpawnSize: 40}

	opts.Random = NewRandom(7)
	serial, err := NewWithOptions(opts)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}

	opts.Random = NewRandom(7)
	opts.Workers = 4
	parallel, err := NewWithOptions(opts)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}

	for gen := 1; gen <= 20; gen++ {
		serial.Tick()
		parallel.Tick()
		if !serial.Cells().Equal(parallel.Cells()) {
			t.Fatalf("serial and parallel diverged at generation %d", gen)
		}
	}
}

func TestTickManyZeroIsNoop(t *testing.T) {
	u := newEmptyUniverse(t, 5, 5)
	u.ToggleCell(2, 2)

	u.TickMany(0)

	if !u.Alive(2, 2) || u.Generation() != 0 {
		t.Fatal("expected TickMany(0) to leave the universe untouched")
	}
}

func benchmarkTick(b *testing.B, workers int) {
	u, err := NewWithOptions(Options{
		Width:          200,
		Height:         200,
		Random:         NewRandom(1),
		SymmetricStart: 20,
		Workers:        workers,
	})
	if err != nil {
		b.Fatalf("NewWithOptions: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Tick()
	}
}

func Benchmark_Tick(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			benchmarkTick(b, workers)
		})
	}
}
