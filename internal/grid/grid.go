// Package grid maps between world space and the tile index space of square
// and hexagon grids laid on a rotated plane, and tracks what sits on each
// tile.
//
// A grid is a plane through its pose position. Index space (x, y) is scaled
// by the edge length, rotated by the pose and shifted by its position; the
// world z of the result is dropped, so world points are 2D.
package grid

import (
	"iter"
	"math"

	"github.com/Bullke/DFL---HTL/internal/mathutil"
	"github.com/Bullke/DFL---HTL/internal/shape"
	"github.com/Bullke/DFL---HTL/internal/vmath"
	"golang.org/x/image/math/f64"
)

// planeTolerance is the smallest normal depth a pose may have before the
// grid plane counts as edge-on.
const planeTolerance = 1e-5

// Grid owns the projection between index space and world space.
type Grid struct {
	topology Topology
	edge     float64
	pose     vmath.Pose
}

// New creates a grid. An edge of 0 makes every inversion fail.
func New(topology Topology, edge float64, pose vmath.Pose) *Grid {
	pose.Rotation = pose.Rotation.Normalize()
	return &Grid{topology: topology, edge: edge, pose: pose}
}

func (g *Grid) Topology() Topology { return g.topology }
func (g *Grid) Edge() float64      { return g.edge }
func (g *Grid) Pose() vmath.Pose   { return g.pose }

// SetPose moves the grid. Projections read the pose fresh on every call.
func (g *Grid) SetPose(p vmath.Pose) {
	p.Rotation = p.Rotation.Normalize()
	g.pose = p
}

// Projection maps an index-space point to world space.
func (g *Grid) Projection(p f64.Vec2) f64.Vec2 {
	local := vmath.V3Scale(vmath.Lift(p, 0), g.edge)
	return vmath.XY(g.pose.ToWorld(local))
}

// InverseProjection finds the index-space point that projects onto world.
// It fails when the plane is edge-on or the edge length is zero.
func (g *Grid) InverseProjection(world f64.Vec2) (f64.Vec2, bool) {
	normal := g.pose.Rotation.Forward()
	if math.Abs(normal[2]) < planeTolerance || g.edge == 0 {
		return f64.Vec2{}, false
	}

	rel := vmath.V3Sub(vmath.Lift(world, 0), g.pose.Position)
	// put the point back on the plane
	rel[2] = -(normal[0]*rel[0] + normal[1]*rel[1]) / normal[2]

	local := g.pose.Rotation.Inverse().Rotate(rel)
	return vmath.V2Scale(vmath.XY(local), 1/g.edge), true
}

// SelectTile returns the index of the tile containing world.
func (g *Grid) SelectTile(world f64.Vec2) (Index, bool) {
	p, ok := g.InverseProjection(world)
	if !ok {
		return Index{}, false
	}
	if g.topology == Hexagon {
		return SelectHex(p), true
	}
	return IndexOf(p), true
}

// SelectCenter returns the index-space center of a tile.
func (g *Grid) SelectCenter(i Index) f64.Vec2 {
	if g.topology == Hexagon {
		return HexCenter(i)
	}
	return i.Vec2()
}

// TileWorld is the world-space center of a tile.
func (g *Grid) TileWorld(i Index) f64.Vec2 {
	return g.Projection(g.SelectCenter(i))
}

// SelectRadius yields every index within radius steps of center, row by
// row from the bottom. A negative radius yields nothing.
func (g *Grid) SelectRadius(center Index, radius int) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for y := -radius; y <= radius; y++ {
			for x := -radius; x <= radius; x++ {
				off := Index{X: x, Y: y}
				if (Index{}).Distance(off, g.topology) > radius {
					continue
				}
				if !yield(center.Add(off)) {
					return
				}
			}
		}
	}
}

// SelectRadiusAt selects the tile under world and yields its radius. It
// yields nothing when the point cannot be resolved.
func (g *Grid) SelectRadiusAt(world f64.Vec2, radius int) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		center, ok := g.SelectTile(world)
		if !ok {
			return
		}
		for i := range g.SelectRadius(center, radius) {
			if !yield(i) {
				return
			}
		}
	}
}

// Hexagon returns the shape of a tile in index space.
func (g *Grid) Hexagon(i Index) shape.Hexagon {
	return shape.Hexagon{Edge: 1, Center: HexCenter(i)}
}

// HexCenter converts an axial index to its index-space center for a unit
// edge: (1.5q, √3r + √3q/2).
func HexCenter(i Index) f64.Vec2 {
	return HexPoint(i.Vec2())
}

// HexPoint maps a continuous axial point to the unit hexagon plane.
func HexPoint(p f64.Vec2) f64.Vec2 {
	q, r := p[0], p[1]
	return f64.Vec2{q * 1.5, r*shape.InDiameterRatio + q*shape.InRadiusRatio}
}

// TileSpace maps an index-space point to a plane where every active
// neighbor center lies exactly one unit away.
func (g *Grid) TileSpace(p f64.Vec2) f64.Vec2 {
	if g.topology != Hexagon {
		return p
	}
	return vmath.V2Scale(HexPoint(p), 1/shape.InDiameterRatio)
}

// FromTileSpace is the inverse of TileSpace.
func (g *Grid) FromTileSpace(t f64.Vec2) f64.Vec2 {
	if g.topology != Hexagon {
		return t
	}
	q := t[0] * shape.InDiameterRatio / 1.5
	return f64.Vec2{q, t[1] - q/2}
}

// SelectHex returns the axial index of the unit hexagon containing the
// index-space point p. Points on a shared edge go to a fixed side.
func SelectHex(p f64.Vec2) Index {
	p = vmath.V2Sub(p, shape.UnitHexagon.MinBoundCorner())
	x, y := p[0], p[1]

	odd := mathutil.FloorModF(x, 3) > 1.5

	// position inside the column's sub-rectangle
	xr := mathutil.FloorModF(x, 1.5)
	yr := mathutil.FloorModF(y, shape.InDiameterRatio)

	if xr < 0.5 {
		// the slanted third of the column may belong to the previous one
		upper := odd != (yr > shape.InRadiusRatio)
		halfy := mathutil.FloorModF(yr, shape.InRadiusRatio)

		var funcY float64
		if upper {
			funcY = xr * shape.InDiameterRatio
		} else {
			funcY = shape.InRadiusRatio - xr*shape.InDiameterRatio
		}

		outside := halfy < funcY
		if upper {
			outside = halfy > funcY
		}
		if outside {
			x -= 1.5
		}
	}

	col := math.Floor(x / 1.5)
	y -= col * shape.InRadiusRatio
	row := math.Floor(y / shape.InDiameterRatio)
	return Index{X: int(col), Y: int(row)}
}
