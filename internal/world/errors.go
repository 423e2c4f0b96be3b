package world

import (
	"errors"
	"fmt"
)

// Construction errors. Both are user-correctable input errors.
var (
	ErrZeroDimension          = errors.New("map width and height must be at least 1")
	ErrDegenerateSingleColumn = errors.New("a single-column map can only have one row")
	ErrInvalidHexSize         = errors.New("hex size must be a positive number")
)

// Edit errors.
var (
	ErrOutOfRange     = errors.New("tile index out of range")
	ErrUnknownTerrain = errors.New("unknown terrain")
)

// MapError reports why a map could not be constructed.
type MapError struct {
	Width  int
	Height int
	Err    error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("map %dx%d: %v", e.Width, e.Height, e.Err)
}

func (e *MapError) Unwrap() error {
	return e.Err
}

// EditError reports a rejected terrain edit.
type EditError struct {
	Index   int
	Terrain Terrain
	Err     error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("set terrain %s on tile %d: %v", e.Terrain, e.Index, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}
