package grid

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/Bullke/DFL---HTL/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func flatGrid(topo Topology) *Grid {
	return New(topo, 1, vmath.IdentityPose())
}

func TestSelectTileSquare(t *testing.T) {
	g := flatGrid(Square)
	tests := []struct {
		world f64.Vec2
		want  Index
	}{
		{f64.Vec2{1.4, 1.6}, Index{1, 2}},
		{f64.Vec2{0.49, 0}, Index{0, 0}},
		{f64.Vec2{0.51, 0}, Index{1, 0}},
		{f64.Vec2{-0.51, -2.2}, Index{-1, -2}},
		// ties go to even
		{f64.Vec2{0.5, 1.5}, Index{0, 2}},
	}
	for _, tt := range tests {
		got, ok := g.SelectTile(tt.world)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "SelectTile(%v)", tt.world)
	}
}

func TestSelectTileFollowsPose(t *testing.T) {
	g := New(Square, 2, vmath.Pose{Position: vmath.V3(10, 0, 0), Rotation: vmath.Euler(0, 0, 90)})
	w := g.Projection(f64.Vec2{1, 0})
	assert.InDelta(t, 10, w[0], 1e-9)
	assert.InDelta(t, 2, w[1], 1e-9)

	got, ok := g.SelectTile(f64.Vec2{10.1, 2.3})
	require.True(t, ok)
	assert.Equal(t, Index{1, 0}, got)

	g.SetPose(vmath.IdentityPose())
	got, ok = g.SelectTile(f64.Vec2{2, 0})
	require.True(t, ok)
	assert.Equal(t, Index{1, 0}, got)
}

func TestProjectionRoundTrip(t *testing.T) {
	poses := []vmath.Pose{
		vmath.IdentityPose(),
		{Position: vmath.V3(2, 3, 1), Rotation: vmath.Euler(30, 20, 45)},
		{Position: vmath.V3(-4, 0.5, -2), Rotation: vmath.Euler(-60, 10, 0)},
		{Position: vmath.V3(0, 0, 5), Rotation: vmath.Euler(0, 0, 45)},
	}
	for _, topo := range []Topology{Square, Hexagon} {
		for _, pose := range poses {
			g := New(topo, 1.75, pose)
			for x := -3.0; x <= 3; x += 0.7 {
				for y := -3.0; y <= 3; y += 0.9 {
					world := f64.Vec2{x, y}
					p, ok := g.InverseProjection(world)
					require.True(t, ok)
					back := g.Projection(p)
					assert.InDelta(t, world[0], back[0], 1e-9)
					assert.InDelta(t, world[1], back[1], 1e-9)
				}
			}
		}
	}
}

func TestInverseProjectionFails(t *testing.T) {
	edgeOn := New(Square, 1, vmath.Pose{Rotation: vmath.Euler(90, 0, 0)})
	_, ok := edgeOn.InverseProjection(f64.Vec2{1, 1})
	assert.False(t, ok)
	_, ok = edgeOn.SelectTile(f64.Vec2{1, 1})
	assert.False(t, ok)

	zeroEdge := New(Hexagon, 0, vmath.IdentityPose())
	_, ok = zeroEdge.SelectTile(f64.Vec2{1, 1})
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(zeroEdge.SelectRadiusAt(f64.Vec2{1, 1}, 2)))
}

func TestSelectCenter(t *testing.T) {
	got := flatGrid(Hexagon).SelectCenter(Index{1, 0})
	assert.InDelta(t, 1.5, got[0], 1e-12)
	assert.InDelta(t, math.Sqrt(3)/2, got[1], 1e-12)

	assert.Equal(t, f64.Vec2{3, -2}, flatGrid(Square).SelectCenter(Index{3, -2}))
}

func TestTileSpaceNeighborsAreUnitApart(t *testing.T) {
	for _, topo := range []Topology{Square, Hexagon} {
		g := flatGrid(topo)
		origin := Index{2, -1}
		for _, d := range topo.Directions() {
			a := g.TileSpace(origin.Vec2())
			b := g.TileSpace(origin.Neighbor(d).Vec2())
			assert.InDelta(t, 1, vmath.V2Mag(vmath.V2Sub(b, a)), 1e-12, "%v %v", topo, d)
		}

		p := f64.Vec2{0.3, -1.7}
		back := g.FromTileSpace(g.TileSpace(p))
		assert.InDelta(t, p[0], back[0], 1e-12)
		assert.InDelta(t, p[1], back[1], 1e-12)
	}
}

func TestSelectHexRecoversCenters(t *testing.T) {
	g := flatGrid(Hexagon)
	for i := range g.SelectRadius(Index{}, 4) {
		assert.Equal(t, i, SelectHex(HexCenter(i)), "center of %v", i)
	}
}

func TestSelectHexPicksNearestCenter(t *testing.T) {
	g := flatGrid(Hexagon)
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 5000; n++ {
		p := f64.Vec2{rng.Float64()*12 - 6, rng.Float64()*12 - 6}
		idx := SelectHex(p)
		own := vmath.V2Mag(vmath.V2Sub(p, HexCenter(idx)))
		for _, d := range Hexagon.Directions() {
			other := vmath.V2Mag(vmath.V2Sub(p, HexCenter(idx.Neighbor(d))))
			require.LessOrEqual(t, own, other+1e-9, "point %v picked %v, neighbor %v is closer", p, idx, d)
		}
		require.True(t, g.Hexagon(idx).Contains(p), "hexagon %v does not contain %v", idx, p)
	}
}

func TestSelectRadius(t *testing.T) {
	for _, topo := range []Topology{Square, Hexagon} {
		g := flatGrid(topo)
		c := Index{2, -1}
		assert.Equal(t, []Index{c}, slices.Collect(g.SelectRadius(c, 0)))
		assert.Empty(t, slices.Collect(g.SelectRadius(c, -1)))

		prev := map[Index]bool{c: true}
		for r := 1; r <= 4; r++ {
			cur := map[Index]bool{}
			for i := range g.SelectRadius(c, r) {
				assert.LessOrEqual(t, c.Distance(i, topo), r)
				cur[i] = true
			}
			for i := range prev {
				assert.True(t, cur[i], "%v radius %d lost %v", topo, r, i)
			}
			want := 2*r*r + 2*r + 1
			if topo == Hexagon {
				want = 3*r*r + 3*r + 1
			}
			assert.Len(t, cur, want, "%v radius %d", topo, r)
			prev = cur
		}
	}
}

func TestRadiusOneIsNeighbors(t *testing.T) {
	for _, topo := range []Topology{Square, Hexagon} {
		g := flatGrid(topo)
		want := []Index{{}}
		for _, d := range topo.Directions() {
			want = append(want, Index{}.Neighbor(d))
		}
		assert.ElementsMatch(t, want, slices.Collect(g.SelectRadius(Index{}, 1)), "%v", topo)
	}
}
