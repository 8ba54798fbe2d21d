package tile

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/Bullke/DFL---HTL/internal/agent"
	"github.com/Bullke/DFL---HTL/internal/grid"
)

// noPriority is the weight of a direction agents may not leave by.
const noPriority int16 = -1

// Tile is one cell of a level. It satisfies grid.Occupant and agent.Tile.
type Tile struct {
	Key   string
	kind  Kind
	index grid.Index

	forwardFirst bool
	priorities   [8]int16
	speed        float64
	baseSpeed    float64
	stamina      float64

	occupant  any
	destroyed bool

	// swamp
	threshold int
	walkers   int
	holding   bool

	// teleport out
	active bool
	links  []*Tile
}

// New creates a tile of the given kind with every direction closed and
// unit multipliers.
func New(key string, kind Kind, i grid.Index) *Tile {
	t := &Tile{
		Key:       key,
		kind:      kind,
		index:     i,
		speed:     1,
		baseSpeed: 1,
		stamina:   1,
		holding:   true,
	}
	for d := range t.priorities {
		t.priorities[d] = noPriority
	}
	return t
}

func (t *Tile) Kind() Kind              { return t.kind }
func (t *Tile) Index() grid.Index       { return t.index }
func (t *Tile) IsPath() bool            { return t.kind.IsPath() }
func (t *Tile) Destroyed() bool         { return t.destroyed }
func (t *Tile) SwampThreshold() int     { return t.threshold }
func (t *Tile) SetSwampThreshold(n int) { t.threshold = n }

func (t *Tile) String() string {
	return fmt.Sprintf("%s%v", t.Key, t.index)
}

// Destroy marks the tile gone and destroys whatever it holds.
func (t *Tile) Destroy() {
	t.destroyed = true
	t.DestroyOccupant()
}

func (t *Tile) CheckForwardFirst() bool {
	return t.forwardFirst || t.kind.ForcesForwardFirst()
}

func (t *Tile) SetCheckForwardFirst(v bool) {
	t.forwardFirst = v
}

// Priority returns the weight for leaving by d, -1 when closed.
func (t *Tile) Priority(d grid.Direction) int16 {
	if d < 0 || int(d) >= len(t.priorities) {
		return noPriority
	}
	return t.priorities[d]
}

func (t *Tile) SetPriority(d grid.Direction, p int16) {
	if d >= 0 && int(d) < len(t.priorities) {
		t.priorities[d] = p
	}
}

// OpenDirections lists the directions with a non-negative priority.
func (t *Tile) OpenDirections() []grid.Direction {
	var out []grid.Direction
	for d, p := range t.priorities {
		if p >= 0 {
			out = append(out, grid.Direction(d))
		}
	}
	return out
}

// SpeedMultiplier is 0 while a swamp holds its agents.
func (t *Tile) SpeedMultiplier() float64 { return t.speed }

func (t *Tile) StaminaMultiplier() float64 { return t.stamina }

// SetMultipliers sets the base speed and stamina multipliers.
func (t *Tile) SetMultipliers(speed, stamina float64) {
	t.speed, t.baseSpeed, t.stamina = speed, speed, stamina
}

func (t *Tile) Occupied() bool { return t.occupant != nil }
func (t *Tile) Occupant() any  { return t.occupant }

// SetOccupant puts o on the tile.
func (t *Tile) SetOccupant(o any) error {
	if o == nil {
		return nil
	}
	if t.occupant != nil && t.occupant != o {
		return fmt.Errorf("%w: %v", ErrOccupied, t)
	}
	t.occupant = o
	return nil
}

// ClearOccupant frees the tile if o is what occupies it.
func (t *Tile) ClearOccupant(o any) {
	if t.occupant == o {
		t.occupant = nil
	}
}

// DestroyOccupant removes and destroys an obstacle on the tile; other
// occupants are only released.
func (t *Tile) DestroyOccupant() {
	if ob, ok := t.occupant.(*Obstacle); ok {
		ob.Destroy()
	}
	t.occupant = nil
}

// Claim is used by agents: it succeeds only on a free tile.
func (t *Tile) Claim(o any) bool {
	return t.SetOccupant(o) == nil && t.occupant == o
}

func (t *Tile) Release(o any) {
	t.ClearOccupant(o)
}

// OnWalk counts agents walking a swamp during the current tick.
func (t *Tile) OnWalk(*agent.Agent) {
	if t.kind == KindSwamp {
		t.walkers++
	}
}

// OnDirectionPick rescues agents on the end tile and stops them in a
// holding swamp.
func (t *Tile) OnDirectionPick(a *agent.Agent) {
	switch t.kind {
	case KindEnd:
		a.Rescue()
	case KindSwamp:
		if t.holding {
			t.speed = 0
		}
	}
}

// LateTick runs after every agent has moved. A swamp releases its agents
// once enough of them walked it in one tick.
func (t *Tile) LateTick() {
	if t.kind != KindSwamp {
		return
	}
	if t.walkers >= t.threshold {
		t.holding = false
		t.speed = t.baseSpeed
	} else {
		t.holding = true
	}
	t.walkers = 0
}

// Holding reports whether a swamp currently stops agents.
func (t *Tile) Holding() bool {
	return t.kind == KindSwamp && t.holding
}

func (t *Tile) SetActive(v bool) { t.active = v }

// TeleportActive is true for an active teleport-out tile with at least one
// link.
func (t *Tile) TeleportActive() bool {
	return t.kind == KindTeleportOut && t.active && len(t.links) > 0
}

// StoreTeleportIn links target as a landing tile. It is refused when the
// target is nil, not a path, or already linked.
func (t *Tile) StoreTeleportIn(target *Tile) bool {
	if target == nil || !target.IsPath() || slices.Contains(t.links, target) {
		return false
	}
	t.links = append(t.links, target)
	return true
}

// Links returns the indices of the linked landing tiles.
func (t *Tile) Links() []grid.Index {
	out := make([]grid.Index, len(t.links))
	for k, l := range t.links {
		out[k] = l.index
	}
	return out
}

// PickTeleportIn chooses a landing tile uniformly.
func (t *Tile) PickTeleportIn(rng *rand.Rand) (agent.Tile, grid.Index, bool) {
	if len(t.links) == 0 {
		return nil, grid.Index{}, false
	}
	k := 0
	if rng != nil {
		k = rng.IntN(len(t.links))
	}
	l := t.links[k]
	return l, l.index, true
}
