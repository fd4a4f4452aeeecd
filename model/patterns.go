package model

// Point is a signed (row, col) coordinate. Coordinates outside the grid are
// wrapped with a Euclidean modulo.
type Point struct {
	Row int32
	Col int32
}

var (
	gliderOffsets = []Point{
		{-2, -1},
		{-1, 0},
		{0, -2}, {0, -1}, {0, 0},
	}

	// one quadrant of a pulsar, mirrored by pulsarQuadrants
	pulsarOffsets = []Point{
		{1, 2}, {1, 3}, {1, 4},
		{2, 1}, {3, 1}, {4, 1},
		{6, 2}, {6, 3}, {6, 4},
		{2, 6}, {3, 6}, {4, 6},
	}
	pulsarQuadrants = []Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// SetCells sets every listed cell alive. It never kills a cell.
func (u *Universe) SetCells(points []Point) {
	for _, p := range points {
		row := euclidMod(int64(p.Row), int64(u.height))
		col := euclidMod(int64(p.Col), int64(u.width))
		u.cells.Set(u.index(row, col))
	}
}

// ToggleCell flips the cell at row, col. Coordinates wrap.
func (u *Universe) ToggleCell(row, col uint32) {
	u.cells.Flip(u.index(row%u.height, col%u.width))
}

// AddGlider stamps a south-east bound glider whose bottom right cell is at
// row, col.
func (u *Universe) AddGlider(row, col uint32) {
	u.SetCells(anchor(row, col, gliderOffsets, Point{1, 1}))
}

// AddPulsar stamps a 48 cell pulsar centered on row, col.
func (u *Universe) AddPulsar(row, col uint32) {
	for _, q := range pulsarQuadrants {
		u.SetCells(anchor(row, col, pulsarOffsets, q))
	}
}

// anchor translates offsets, scaled by sign, to row, col.
func anchor(row, col uint32, offsets []Point, sign Point) []Point {
	points := make([]Point, len(offsets))
	for i, o := range offsets {
		points[i] = Point{
			Row: int32(row) + sign.Row*o.Row,
			Col: int32(col) + sign.Col*o.Col,
		}
	}
	return points
}

func euclidMod(v, n int64) uint32 {
	m := v % n
	if m < 0 {
		m += n
	}
	return uint32(m)
}
