package grid

import (
	"cmp"
	"fmt"
	"math"

	"github.com/Bullke/DFL---HTL/internal/mathutil"
	"golang.org/x/image/math/f64"
)

// Index identifies a tile. Hexagon grids use axial (q, r) = (X, Y).
type Index struct {
	X, Y int
}

// IndexOf rounds a real-valued index to the tile it names.
func IndexOf(v f64.Vec2) Index {
	return Index{X: int(mathutil.Round(v[0])), Y: int(mathutil.Round(v[1]))}
}

// ExactIndex converts v without rounding and reports false when either
// coordinate is not integral.
func ExactIndex(v f64.Vec2) (Index, bool) {
	if v[0] != math.Trunc(v[0]) || v[1] != math.Trunc(v[1]) {
		return Index{}, false
	}
	return Index{X: int(v[0]), Y: int(v[1])}, true
}

func (i Index) Vec2() f64.Vec2 {
	return f64.Vec2{float64(i.X), float64(i.Y)}
}

func (i Index) Add(o Index) Index {
	return Index{X: i.X + o.X, Y: i.Y + o.Y}
}

func (i Index) Sub(o Index) Index {
	return Index{X: i.X - o.X, Y: i.Y - o.Y}
}

// Neighbor is the adjacent index in direction d.
func (i Index) Neighbor(d Direction) Index {
	return i.Add(d.Step())
}

// S is the derived third hex axis, X - Y.
func (i Index) S() int {
	return i.X - i.Y
}

// Distance counts the tile steps between two indices under the adjacency of
// t: Manhattan for squares, cube distance for hexagons.
func (i Index) Distance(o Index, t Topology) int {
	d := o.Sub(i)
	if t == Hexagon {
		return cubeLength(d.X, d.Y)
	}
	return mathutil.IntAbs(d.X) + mathutil.IntAbs(d.Y)
}

func cubeLength(col, row int) int {
	x, z := col, row
	y := -x - z
	return mathutil.IntMax(mathutil.IntAbs(x), mathutil.IntAbs(y), mathutil.IntAbs(z))
}

func (i Index) String() string {
	return fmt.Sprintf("(%d,%d)", i.X, i.Y)
}

// compareIndex orders by Y, then X.
func compareIndex(a, b Index) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
