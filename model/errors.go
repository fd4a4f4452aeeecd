package model

import "github.com/pkg/errors"

var (
	// ErrInvalidLength is returned when an imported state buffer is too short
	// for the current grid.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidDimension is returned for a zero width or height, or for
	// extents whose product does not fit in 32 bits.
	ErrInvalidDimension = errors.New("invalid dimension")
)
