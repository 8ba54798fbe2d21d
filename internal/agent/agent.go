package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/vmath"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

// ErrNoTile is returned when an agent is spawned where there is no tile.
var ErrNoTile = errors.New("agent: no tile at spawn index")

// State of the movement state machine.
type State int

const (
	// StateSelecting is the instant the agent reaches a tile center and
	// decides where to go.
	StateSelecting State = iota
	// StateMoving covers the ticks between decisions.
	StateMoving
)

// Fate is how an agent left the board.
type Fate int

const (
	Alive Fate = iota
	Rescued
	Exhausted
	Removed
)

func (f Fate) String() string {
	switch f {
	case Alive:
		return "alive"
	case Rescued:
		return "rescued"
	case Exhausted:
		return "exhausted"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Params tune movement and stamina.
type Params struct {
	// SecondsPerTile is the base walking pace; 0 or less stops the agent.
	SecondsPerTile float64
	// CenterThreshold is how close to a tile center, in tile units, counts
	// as arrived.
	CenterThreshold float64
	SpeedFactor     float64
	MaxStamina      float64
	// StaminaDrain is lost per second, scaled by the tile's stamina
	// multiplier.
	StaminaDrain float64
}

func DefaultParams() Params {
	return Params{
		SecondsPerTile:  1,
		CenterThreshold: 0.05,
		SpeedFactor:     1,
		MaxStamina:      100,
		StaminaDrain:    1,
	}
}

// Agent is a unit walking the grid.
type Agent struct {
	ID uuid.UUID

	world     World
	transform *grid.Transform
	selector  *Selector
	path      PathState
	params    Params
	rng       *rand.Rand
	log       *zap.Logger

	state   State
	moving  bool
	last    Decision
	stamina float64
	fate    Fate
	claimed Claimer
}

// Spawn places a new agent on the tile at i. The agent starts with no
// last direction, so every open direction is considered equally.
func Spawn(id uuid.UUID, w World, i grid.Index, p Params, rng *rand.Rand, log *zap.Logger) (*Agent, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t, ok := w.TileAt(i)
	if !ok {
		return nil, fmt.Errorf("%w %v", ErrNoTile, i)
	}
	log = log.With(zap.Stringer("agent", id))

	tr := grid.NewTransform(log)
	if err := tr.SetParentGrid(w.Grid()); err != nil {
		return nil, err
	}
	tr.SetGridPosition(vmath.Lift(i.Vec2(), 0))

	a := &Agent{
		ID:        id,
		world:     w,
		transform: tr,
		selector:  NewSelector(w.Grid().Topology(), rng, log),
		path:      PathState{Target: t, TargetIndex: i},
		params:    p,
		rng:       rng,
		log:       log,
		state:     StateSelecting,
		stamina:   p.MaxStamina,
	}
	a.claim()
	return a, nil
}

func (a *Agent) Transform() *grid.Transform { return a.transform }
func (a *Agent) Path() PathState            { return a.path }
func (a *Agent) State() State               { return a.state }
func (a *Agent) Stamina() float64           { return a.stamina }
func (a *Agent) Fate() Fate                 { return a.fate }
func (a *Agent) Active() bool               { return a.fate == Alive }

// LastDecision is the outcome of the most recent direction pick.
func (a *Agent) LastDecision() Decision { return a.last }

// Position is the agent's grid-space position.
func (a *Agent) Position() f64.Vec2 {
	return vmath.XY(a.transform.GridPosition())
}

// Index is the tile the agent stands on.
func (a *Agent) Index() grid.Index {
	return grid.IndexOf(a.Position())
}

// Rescue takes the agent off the board as saved.
func (a *Agent) Rescue() {
	a.despawn(Rescued)
}

// Remove takes the agent off the board without a result.
func (a *Agent) Remove() {
	a.despawn(Removed)
}

func (a *Agent) despawn(f Fate) {
	if a.fate != Alive {
		return
	}
	a.fate = f
	a.release()
	a.log.Info("agent left the board", zap.Stringer("fate", f), zap.Stringer("tile", a.Index()))
}

// Tick advances the agent by dt seconds: move, then drain stamina.
func (a *Agent) Tick(dt float64) {
	if !a.Active() {
		return
	}
	a.move(dt)
	if !a.Active() {
		return
	}
	a.drain(dt)
}

func (a *Agent) move(dt float64) {
	cur, ok := a.world.TileAt(a.Index())
	if !ok {
		cur = a.path.Target
	}

	if vmath.V2Mag(a.toTarget()) < a.params.CenterThreshold {
		a.state = StateSelecting
		if p, ok := cur.(DirectionPicker); ok {
			p.OnDirectionPick(a)
		}
		if !a.Active() {
			return
		}
		if tp, ok := cur.(Teleporter); ok && tp.TeleportActive() {
			if in, i, ok := tp.PickTeleportIn(a.rng); ok {
				a.path.Target, a.path.TargetIndex = in, i
				a.setPosition(i.Vec2())
				cur = in
			}
		}
		a.last = a.selector.Select(&a.path, a.world)
		a.moving = a.last.Outcome != Idle
		if !a.moving {
			a.setPosition(a.path.TargetIndex.Vec2())
		}
	}

	if !a.moving {
		return
	}
	a.state = StateMoving
	if w, ok := cur.(Walker); ok {
		w.OnWalk(a)
	}

	speed := 0.0
	if a.params.SecondsPerTile > 0 {
		speed = 1 / a.params.SecondsPerTile
		if m := cur.SpeedMultiplier(); m >= 0 {
			speed *= m
		}
	}

	dist := a.toTarget()
	remaining := vmath.V2Mag(dist)
	step := speed * dt * a.params.SpeedFactor
	if remaining == 0 || step <= 0 {
		return
	}
	if step >= remaining {
		a.setPosition(a.path.TargetIndex.Vec2())
		return
	}
	g := a.world.Grid()
	here := g.TileSpace(a.Position())
	a.setPosition(g.FromTileSpace(vmath.V2Add(here, vmath.V2Scale(dist, step/remaining))))
}

func (a *Agent) drain(dt float64) {
	mult := 1.0
	if t, ok := a.world.TileAt(a.Index()); ok {
		mult = t.StaminaMultiplier()
	}
	a.stamina -= a.params.StaminaDrain * dt * mult
	if a.stamina < 0 {
		a.despawn(Exhausted)
	}
}

// toTarget is the offset to the target center in tile space, where one
// step to any neighbor has length 1.
func (a *Agent) toTarget() f64.Vec2 {
	g := a.world.Grid()
	return vmath.V2Sub(g.TileSpace(a.path.TargetIndex.Vec2()), g.TileSpace(a.Position()))
}

// setPosition moves within the plane, keeping height, and updates the
// tile claim.
func (a *Agent) setPosition(p f64.Vec2) {
	z := a.transform.GridPosition()[2]
	before := a.Index()
	a.transform.SetGridPosition(vmath.Lift(p, z))
	if a.Index() != before {
		a.release()
		a.claim()
	}
}

func (a *Agent) claim() {
	t, ok := a.world.TileAt(a.Index())
	if !ok {
		return
	}
	if c, ok := t.(Claimer); ok && c.Claim(a) {
		a.claimed = c
	}
}

func (a *Agent) release() {
	if a.claimed != nil {
		a.claimed.Release(a)
		a.claimed = nil
	}
}
