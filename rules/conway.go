package rules

/*
NextState applies Conway's Game of Life rules to a single cell.

The rules are evaluated in order:
  - a live cell with fewer than two live neighbors dies (underpopulation)
  - a live cell with two or three live neighbors lives on
  - a live cell with more than three live neighbors dies (overpopulation)
  - a dead cell with exactly three live neighbors becomes alive (reproduction)

Any other cell keeps its current state.
*/
func NextState(alive bool, neighbors int) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}
