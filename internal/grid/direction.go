package grid

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Bullke/DFL---HTL/internal/mathutil"
	"golang.org/x/image/math/f64"
	"gopkg.in/yaml.v3"
)

// Direction is one of the 8 compass directions, numbered clockwise from east.
type Direction int

const (
	E Direction = iota
	SE
	S
	SW
	W
	NW
	N
	NE
)

const directionCount = 8

var directionNames = [directionCount]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}

var directionAliases = map[string]Direction{
	"east": E, "southeast": SE, "south": S, "southwest": SW,
	"west": W, "northwest": NW, "north": N, "northeast": NE,
}

func (d Direction) wrap() Direction {
	return Direction(mathutil.FloorMod(int(d), directionCount))
}

// CW returns the direction steps positions clockwise within the active
// subset of t. Negative steps turn counterclockwise.
func (d Direction) CW(t Topology, steps int) Direction {
	d = t.Normalize(d)
	if t == Hexagon {
		i := mathutil.FloorMod(hexDirKeys[d]+steps, len(hexDirs))
		return hexDirs[i]
	}
	return Direction(mathutil.FloorMod(int(d)+steps*2, directionCount))
}

// CCW is CW with the steps negated.
func (d Direction) CCW(t Topology, steps int) Direction {
	return d.CW(t, -steps)
}

// Opposite is the direction 4 steps away in the full 8-way ring.
func (d Direction) Opposite() Direction {
	return Direction(mathutil.FloorMod(int(d)+4, directionCount))
}

// Sweep yields every other active direction of t clockwise after start and
// stops before coming back to it. A start outside the active subset is
// normalized first.
func (d Direction) Sweep(t Topology) iter.Seq[Direction] {
	return func(yield func(Direction) bool) {
		start := t.Normalize(d)
		for cur := start.CW(t, 1); cur != start; cur = cur.CW(t, 1) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Vec2 is the index-space step of d. Diagonals have magnitude √2.
func (d Direction) Vec2() f64.Vec2 {
	switch d.wrap() {
	case SE:
		return f64.Vec2{1, -1}
	case S:
		return f64.Vec2{0, -1}
	case SW:
		return f64.Vec2{-1, -1}
	case W:
		return f64.Vec2{-1, 0}
	case NW:
		return f64.Vec2{-1, 1}
	case N:
		return f64.Vec2{0, 1}
	case NE:
		return f64.Vec2{1, 1}
	default:
		return f64.Vec2{1, 0}
	}
}

// Step is Vec2 as an integer offset.
func (d Direction) Step() Index {
	v := d.Vec2()
	return Index{X: int(v[0]), Y: int(v[1])}
}

// Dir classifies v into the nearest compass octant. The zero vector is W.
func Dir(v f64.Vec2) Direction {
	x, y := v[0], v[1]
	if x > 0 {
		switch {
		case y > x/2:
			if y > x*2 {
				return N
			}
			return NE
		case y < -x/2:
			if y < -x*2 {
				return S
			}
			return SE
		}
		return E
	}
	switch {
	case y > -x/2:
		if y > -x*2 {
			return N
		}
		return NW
	case y < x/2:
		if y < x*2 {
			return S
		}
		return SW
	}
	return W
}

func (d Direction) String() string {
	w := d.wrap()
	if w != d {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts short ("NE") and long ("northeast") names, any case.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := directionAliases[key]; ok {
		return d, nil
	}
	for i, name := range directionNames {
		if strings.EqualFold(name, key) {
			return Direction(i), nil
		}
	}
	return E, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDirection(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
