package grid

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topology is the tiling rule of a grid.
type Topology int

const (
	// Square tiles share an edge with 4 neighbors.
	Square Topology = iota
	// Hexagon tiles share an edge with 6 neighbors.
	Hexagon
)

var (
	squareDirs = []Direction{E, S, W, N}
	hexDirs    = []Direction{E, SE, S, W, NW, N}
	hexDirKeys = map[Direction]int{E: 0, SE: 1, S: 2, W: 3, NW: 4, N: 5}
)

// Directions returns the active moves of the topology, clockwise from east.
func (t Topology) Directions() []Direction {
	if t == Hexagon {
		return append([]Direction(nil), hexDirs...)
	}
	return append([]Direction(nil), squareDirs...)
}

// Normalize maps d onto the active subset: square diagonals fall back to the
// preceding orthogonal, and hexagon NE/SW fall back to N/S.
func (t Topology) Normalize(d Direction) Direction {
	d = d.wrap()
	if t == Hexagon {
		if d == NE || d == SW {
			d--
		}
		return d
	}
	if d%2 == 1 {
		d--
	}
	return d
}

// Active reports whether d is a move of this topology.
func (t Topology) Active(d Direction) bool {
	return t.Normalize(d) == d
}

func (t Topology) String() string {
	switch t {
	case Square:
		return "square"
	case Hexagon:
		return "hexagon"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// ParseTopology accepts "square" or "hexagon" (also "hex"), any case.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return Square, nil
	case "hexagon", "hex":
		return Hexagon, nil
	}
	return Square, fmt.Errorf("unknown grid topology %q", s)
}

func (t Topology) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *Topology) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTopology(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
