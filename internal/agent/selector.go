package agent

import (
	"math"
	"math/rand/v2"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"go.uber.org/zap"
)

// Outcome is the result of one direction decision.
type Outcome int

const (
	// Commit means the agent moves to a neighbor.
	Commit Outcome = iota
	// Wait means the best neighbor holds a transient obstacle; retry next tick.
	Wait
	// Idle means no direction is open; stay on the current tile.
	Idle
)

func (o Outcome) String() string {
	switch o {
	case Commit:
		return "commit"
	case Wait:
		return "wait"
	case Idle:
		return "idle"
	}
	return "unknown"
}

// rejected marks a candidate that failed validation this decision.
const rejected = math.MinInt32

// Facing is the sprite orientation after a move.
type Facing struct {
	AwayFromCamera bool
	FlipX          bool
}

var facings = map[grid.Direction]Facing{
	grid.N:  {AwayFromCamera: true, FlipX: true},
	grid.NW: {AwayFromCamera: true, FlipX: true},
	grid.E:  {AwayFromCamera: true, FlipX: false},
	grid.W:  {AwayFromCamera: false, FlipX: true},
	grid.S:  {AwayFromCamera: false, FlipX: false},
	grid.SE: {AwayFromCamera: false, FlipX: false},
}

// PathState is the per-agent decision state.
type PathState struct {
	// Target is the tile the agent moves toward; while deciding it is the
	// tile the agent stands on.
	Target      Tile
	TargetIndex grid.Index
	// Last is the direction of the last committed move, valid when HasLast.
	Last    grid.Direction
	HasLast bool
	Facing  Facing
}

// Decision is what Select chose.
type Decision struct {
	Outcome   Outcome
	Direction grid.Direction
	Target    grid.Index
}

// Selector picks the next tile from the priorities of the current one.
type Selector struct {
	dirs    []grid.Direction
	slots   map[grid.Direction]int
	scratch []int32
	ties    []int
	rng     *rand.Rand
	log     *zap.Logger
}

// scanOrder lists the candidate directions; square grids scan in
// north, east, west, south order.
func scanOrder(t grid.Topology) []grid.Direction {
	if t == grid.Hexagon {
		return t.Directions()
	}
	return []grid.Direction{grid.N, grid.E, grid.W, grid.S}
}

func NewSelector(t grid.Topology, rng *rand.Rand, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	dirs := scanOrder(t)
	slots := make(map[grid.Direction]int, len(dirs))
	for k, d := range dirs {
		slots[d] = k
	}
	return &Selector{
		dirs:    dirs,
		slots:   slots,
		scratch: make([]int32, len(dirs)),
		ties:    make([]int, 0, len(dirs)),
		rng:     rng,
		log:     log,
	}
}

// Directions returns the scan order.
func (s *Selector) Directions() []grid.Direction {
	return append([]grid.Direction(nil), s.dirs...)
}

// Select decides where an agent standing on st.Target goes next. On Commit
// st is advanced to the neighbor.
func (s *Selector) Select(st *PathState, tiles Neighborhood) Decision {
	s.populate(st)

	k := -1
	if st.HasLast && st.Target.CheckForwardFirst() {
		if fwd, ok := s.slots[st.Last]; ok {
			if s.scratch[fwd] >= 0 {
				k = fwd
			} else {
				s.scratch[fwd] = rejected
			}
		}
	}

	for {
		if k < 0 {
			k = s.highest()
		}
		d := s.dirs[k]
		if s.scratch[k] < 0 {
			return Decision{Outcome: Idle, Direction: d, Target: st.TargetIndex}
		}

		next := st.TargetIndex.Neighbor(d)
		t, ok := tiles.TileAt(next)
		if !ok || !t.IsPath() {
			s.scratch[k] = rejected
			k = -1
			continue
		}

		if t.Occupied() {
			if ob, ok := t.Occupant().(Obstacle); ok && !ob.Passable() {
				if !ob.Permanent() {
					s.log.Debug("waiting on obstacle", zap.Stringer("tile", next), zap.Stringer("direction", d))
					return Decision{Outcome: Wait, Direction: d, Target: st.TargetIndex}
				}
				s.scratch[k] = rejected
				k = -1
				continue
			}
		}

		st.Target = t
		st.TargetIndex = next
		st.Last = d
		st.HasLast = true
		if f, ok := facings[d]; ok {
			st.Facing = f
		}
		return Decision{Outcome: Commit, Direction: d, Target: next}
	}
}

// populate copies the current tile's priorities into the scratch list:
// negative stays excluded, backward drops to 0, everything else gains 1.
func (s *Selector) populate(st *PathState) {
	back := st.Last.Opposite()
	for k, d := range s.dirs {
		p := int32(st.Target.Priority(d))
		switch {
		case p < 0:
			s.scratch[k] = p
		case st.HasLast && d == back:
			s.scratch[k] = 0
		default:
			s.scratch[k] = p + 1
		}
	}
}

// highest picks uniformly among the slots holding the largest value.
func (s *Selector) highest() int {
	best := int32(rejected)
	s.ties = s.ties[:0]
	for k, p := range s.scratch {
		switch {
		case p > best:
			best = p
			s.ties = append(s.ties[:0], k)
		case p == best:
			s.ties = append(s.ties, k)
		}
	}
	if len(s.ties) == 1 || s.rng == nil {
		return s.ties[0]
	}
	return s.ties[s.rng.IntN(len(s.ties))]
}
