package grid

import (
	"github.com/Bullke/DFL---HTL/internal/mathutil"
	"github.com/Bullke/DFL---HTL/internal/shape"
	"github.com/Bullke/DFL---HTL/internal/vmath"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

// resyncTolerance is how far the stored grid position may drift from the
// one derived from the local position before attaching resynchronizes it.
const resyncTolerance = 1e-3

// Transform places an entity relative to a grid. The grid-space position
// is the source of truth; the local position (in the grid's frame, before
// the pose is applied) is derived from it.
//
// Hexagon transforms use axial (q, r) in x and y and a height in z scaled
// by the tile's inscribed diameter.
type Transform struct {
	grid    *Grid
	stored  f64.Vec3
	local   f64.Vec3
	snap    bool
	changed bool
	log     *zap.Logger
}

func NewTransform(log *zap.Logger) *Transform {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transform{log: log}
}

// Grid returns the parent grid, or nil when detached.
func (t *Transform) Grid() *Grid {
	return t.grid
}

// SetParentGrid attaches t to g. If the position derived from the current
// local position differs from the stored grid position, the stored one is
// replaced.
func (t *Transform) SetParentGrid(g *Grid) error {
	if g == nil {
		t.log.Error("parent grid not set")
		return ErrNoParentGrid
	}
	t.grid = g
	derived := t.fromLocal(t.local)
	if vmath.V3Mag(vmath.V3Sub(t.stored, derived)) > resyncTolerance {
		t.stored = derived
	}
	return nil
}

// GridPosition returns the stored grid-space position.
func (t *Transform) GridPosition() f64.Vec3 {
	return t.stored
}

// SetGridPosition stores p and recomputes the local position.
func (t *Transform) SetGridPosition(p f64.Vec3) {
	t.stored = p
	t.syncLocal()
}

// S is the derived third hex axis x - y.
func (t *Transform) S() float64 {
	return t.stored[0] - t.stored[1]
}

// SetS moves along the q and r axes, keeping x + y, until S equals s.
func (t *Transform) SetS(s float64) {
	diff := t.S() - s
	t.SetGridPosition(f64.Vec3{t.stored[0] - diff/2, t.stored[1] + diff/2, t.stored[2]})
}

func (t *Transform) Snap() bool {
	return t.snap
}

// SetSnap toggles rounding of x and y to whole tiles and reapplies the
// current position.
func (t *Transform) SetSnap(snap bool) {
	t.snap = snap
	t.syncLocal()
}

// LocalPosition is the position in the grid's frame.
func (t *Transform) LocalPosition() f64.Vec3 {
	return t.local
}

// SetLocalPosition moves the entity directly, leaving the grid position
// stale until the next attach.
func (t *Transform) SetLocalPosition(l f64.Vec3) {
	if l != t.local {
		t.local = l
		t.changed = true
	}
}

// WorldPosition applies the grid pose to the local position.
func (t *Transform) WorldPosition() f64.Vec3 {
	if t.grid == nil {
		return t.local
	}
	return t.grid.pose.ToWorld(t.local)
}

// World2D is WorldPosition without z.
func (t *Transform) World2D() f64.Vec2 {
	return vmath.XY(t.WorldPosition())
}

// SetWorldPosition moves the entity to a world-space point.
func (t *Transform) SetWorldPosition(w f64.Vec3) {
	if t.grid == nil {
		t.SetLocalPosition(w)
		return
	}
	t.SetLocalPosition(t.grid.pose.ToLocal(w))
}

// FromLocalPosition derives a grid-space position from the local position.
func (t *Transform) FromLocalPosition() (f64.Vec3, bool) {
	if t.grid == nil {
		t.log.Error("parent grid not set")
		return f64.Vec3{}, false
	}
	return t.fromLocal(t.local), true
}

// PlaceAt moves the transform onto the tile under world.
func (t *Transform) PlaceAt(world f64.Vec2) error {
	if t.grid == nil {
		return ErrNoParentGrid
	}
	i, ok := t.grid.SelectTile(world)
	if !ok {
		return ErrNoProjection
	}
	t.SetGridPosition(f64.Vec3{float64(i.X), float64(i.Y), t.stored[2]})
	return nil
}

// GridDistance is the distance to other in tile units: local distance
// over the edge length for squares, over the inscribed diameter for
// hexagons. It fails when the transforms are on different grids.
func (t *Transform) GridDistance(other *Transform) (float64, bool) {
	if other == nil || t.grid == nil || other.grid != t.grid {
		return 0, false
	}
	d := vmath.V3Mag(vmath.V3Sub(other.local, t.local))
	if t.grid.topology == Hexagon {
		return d / (t.grid.edge * shape.InDiameterRatio), true
	}
	return d / t.grid.edge, true
}

// Changed reports whether the local position moved since ResetChanged.
func (t *Transform) Changed() bool {
	return t.changed
}

func (t *Transform) ResetChanged() {
	t.changed = false
}

func (t *Transform) syncLocal() {
	if t.grid == nil {
		t.log.Error("parent grid not set")
		return
	}
	in := t.stored
	if t.snap {
		in[0], in[1] = mathutil.Round(in[0]), mathutil.Round(in[1])
	}
	l := t.toLocal(in)
	if mathutil.NearlyEqual(l[0], t.local[0]) &&
		mathutil.NearlyEqual(l[1], t.local[1]) &&
		mathutil.NearlyEqual(l[2], t.local[2]) {
		return
	}
	t.local = l
	t.changed = true
}

func (t *Transform) toLocal(p f64.Vec3) f64.Vec3 {
	e := t.grid.edge
	if t.grid.topology == Hexagon {
		return f64.Vec3{
			p[0] * e * 1.5,
			(p[1]*2 + p[0]) * e * shape.InRadiusRatio,
			p[2] * e * shape.InDiameterRatio,
		}
	}
	return vmath.V3Scale(p, e)
}

func (t *Transform) fromLocal(l f64.Vec3) f64.Vec3 {
	e := t.grid.edge
	if e == 0 {
		return f64.Vec3{}
	}
	if t.grid.topology == Hexagon {
		x, y := l[0], l[1]
		q := x / 1.5 / e
		r := (-x/3 + shape.InDiameterRatio/3*y) / e
		return f64.Vec3{q, r, l[2] / (e * shape.InDiameterRatio)}
	}
	return vmath.V3Scale(l, 1/e)
}
