// Package level loads the boards agents walk on: a grid pose, the tiles
// laid on it, teleport links and the agents to release.
package level

import (
	"errors"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/tile"
	"github.com/Bullke/DFL---HTL/internal/vmath"
	"golang.org/x/image/math/f64"
)

// ErrInvalidLevel is returned for level files that cannot be played.
var ErrInvalidLevel = errors.New("level: invalid level")

// File is the YAML layout of a level.
type File struct {
	Name      string                   `yaml:"name"`
	Grid      GridSpec                 `yaml:"grid"`
	Map       string                   `yaml:"map,omitempty"`
	Layout    grid.Layout[tile.Record] `yaml:"layout,omitempty"`
	Teleports []TeleportSpec           `yaml:"teleports,omitempty"`
	Agents    []AgentSpec              `yaml:"agents,omitempty"`
}

// GridSpec places the grid in the world. Rotation holds Euler angles in
// degrees.
type GridSpec struct {
	Topology   grid.Topology `yaml:"topology"`
	EdgeLength float64       `yaml:"edge_length,omitempty"`
	Position   f64.Vec3      `yaml:"position"`
	Rotation   f64.Vec3      `yaml:"rotation"`
}

// GetEdgeLength returns the edge length, defaulting to 1.
func (s GridSpec) GetEdgeLength() float64 {
	if s.EdgeLength <= 0 {
		return 1
	}
	return s.EdgeLength
}

// Build creates the grid described by the section.
func (s GridSpec) Build() *grid.Grid {
	pose := vmath.Pose{
		Position: s.Position,
		Rotation: vmath.Euler(s.Rotation[0], s.Rotation[1], s.Rotation[2]),
	}
	return grid.New(s.Topology, s.GetEdgeLength(), pose)
}

// TeleportSpec links a teleport-out tile to its landing tiles.
type TeleportSpec struct {
	From   grid.Index   `yaml:"from"`
	To     []grid.Index `yaml:"to,flow"`
	Active bool         `yaml:"active"`
}

// AgentSpec releases Count agents, Interval seconds apart, starting Delay
// seconds into the run. The start is either an index or a world point.
type AgentSpec struct {
	At       *grid.Index `yaml:"at,omitempty,flow"`
	World    *f64.Vec2   `yaml:"world,omitempty,flow"`
	Delay    float64     `yaml:"delay,omitempty"`
	Count    int         `yaml:"count,omitempty"`
	Interval float64     `yaml:"interval,omitempty"`
}

// GetCount returns the number of agents, defaulting to 1.
func (s AgentSpec) GetCount() int {
	if s.Count <= 0 {
		return 1
	}
	return s.Count
}

// Spawn is one agent release.
type Spawn struct {
	Index grid.Index
	Time  float64
}
