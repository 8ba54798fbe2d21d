// Package agent walks units across a grid one tile at a time, steered by
// per-tile directional priorities.
package agent

import (
	"math/rand/v2"

	"github.com/Bullke/DFL---HTL/internal/grid"
)

// Tile is what the selector needs to know about a tile.
type Tile interface {
	IsPath() bool
	CheckForwardFirst() bool
	// Priority is the signed weight for leaving in direction d; negative
	// means not traversable.
	Priority(d grid.Direction) int16
	Occupied() bool
	// Occupant returns what occupies the tile, or nil.
	Occupant() any
	// SpeedMultiplier scales movement; a negative value is ignored.
	SpeedMultiplier() float64
	StaminaMultiplier() float64
}

// Obstacle is implemented by occupants that may block a tile.
type Obstacle interface {
	Passable() bool
	Permanent() bool
}

// Neighborhood looks tiles up by index.
type Neighborhood interface {
	TileAt(i grid.Index) (Tile, bool)
}

// World is the board an agent walks on.
type World interface {
	Neighborhood
	Grid() *grid.Grid
}

// Walker tiles are told every tick an agent moves on them.
type Walker interface {
	OnWalk(a *Agent)
}

// DirectionPicker tiles are told when an agent reaches their center, before
// it picks a direction.
type DirectionPicker interface {
	OnDirectionPick(a *Agent)
}

// Teleporter tiles move an agent that reaches their center to one of their
// linked tiles.
type Teleporter interface {
	TeleportActive() bool
	PickTeleportIn(rng *rand.Rand) (Tile, grid.Index, bool)
}

// Claimer tiles record the agent standing on them.
type Claimer interface {
	Claim(o any) bool
	Release(o any)
}
