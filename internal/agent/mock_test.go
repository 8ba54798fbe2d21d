package agent

import (
	"math/rand/v2"

	"github.com/Bullke/DFL---HTL/internal/grid"
	"github.com/Bullke/DFL---HTL/internal/vmath"
)

type mockObstacle struct {
	passable, permanent bool
}

func (o *mockObstacle) Passable() bool  { return o.passable }
func (o *mockObstacle) Permanent() bool { return o.permanent }

type mockTile struct {
	path         bool
	forwardFirst bool
	priorities   map[grid.Direction]int16
	occupant     any
	speed        float64
	stamina      float64

	walks, picks int
	onPick       func(a *Agent)
}

func pathTile(prio map[grid.Direction]int16) *mockTile {
	return &mockTile{path: true, priorities: prio, speed: 1, stamina: 1}
}

func (t *mockTile) IsPath() bool            { return t.path }
func (t *mockTile) CheckForwardFirst() bool { return t.forwardFirst }
func (t *mockTile) Occupied() bool          { return t.occupant != nil }
func (t *mockTile) Occupant() any           { return t.occupant }
func (t *mockTile) SpeedMultiplier() float64 {
	return t.speed
}
func (t *mockTile) StaminaMultiplier() float64 { return t.stamina }

func (t *mockTile) Priority(d grid.Direction) int16 {
	if p, ok := t.priorities[d]; ok {
		return p
	}
	return -1
}

func (t *mockTile) OnWalk(*Agent) { t.walks++ }

func (t *mockTile) OnDirectionPick(a *Agent) {
	t.picks++
	if t.onPick != nil {
		t.onPick(a)
	}
}

func (t *mockTile) Claim(o any) bool {
	if t.occupant != nil {
		return false
	}
	t.occupant = o
	return true
}

func (t *mockTile) Release(o any) {
	if t.occupant == o {
		t.occupant = nil
	}
}

type mockTeleport struct {
	*mockTile
	to    *mockTile
	toIdx grid.Index
}

func (t *mockTeleport) TeleportActive() bool { return true }
func (t *mockTeleport) PickTeleportIn(*rand.Rand) (Tile, grid.Index, bool) {
	return t.to, t.toIdx, true
}

type mockWorld struct {
	g     *grid.Grid
	tiles map[grid.Index]Tile
}

func newMockWorld(topo grid.Topology) *mockWorld {
	return &mockWorld{
		g:     grid.New(topo, 1, vmath.IdentityPose()),
		tiles: make(map[grid.Index]Tile),
	}
}

func (w *mockWorld) Grid() *grid.Grid { return w.g }

func (w *mockWorld) TileAt(i grid.Index) (Tile, bool) {
	t, ok := w.tiles[i]
	return t, ok
}

func (w *mockWorld) put(x, y int, t Tile) {
	w.tiles[grid.Index{X: x, Y: y}] = t
}

// corridor lays path tiles from (0,0) to (n-1,0) that all lead east.
func corridor(n int) *mockWorld {
	w := newMockWorld(grid.Square)
	for x := 0; x < n; x++ {
		w.put(x, 0, pathTile(map[grid.Direction]int16{grid.E: 1, grid.W: 0}))
	}
	return w
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}
