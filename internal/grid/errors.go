package grid

import "errors"

var (
	// ErrNoProjection means a world point could not be resolved on the grid
	// plane: the plane is edge-on or the edge length is zero.
	ErrNoProjection = errors.New("grid: point cannot be projected onto grid plane")
	// ErrNoParentGrid is returned when a transform is attached without a grid.
	ErrNoParentGrid = errors.New("grid: parent grid not set")
	// ErrLayoutMismatch is returned when persisted index and occupant lists
	// differ in length.
	ErrLayoutMismatch = errors.New("grid: layout indices and occupants differ in length")
)
