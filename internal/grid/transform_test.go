package grid

import (
	"math"
	"testing"

	"github.com/Bullke/DFL---HTL/internal/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/math/f64"
)

func attached(t *testing.T, g *Grid) *Transform {
	t.Helper()
	tr := NewTransform(zaptest.NewLogger(t))
	require.NoError(t, tr.SetParentGrid(g))
	return tr
}

func assertVec3(t *testing.T, want, got f64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestTransformSquare(t *testing.T) {
	g := New(Square, 2, vmath.Pose{Position: vmath.V3(1, 1, 0), Rotation: vmath.Identity()})
	tr := attached(t, g)

	tr.SetGridPosition(vmath.V3(1.5, -2, 0.5))
	assertVec3(t, vmath.V3(3, -4, 1), tr.LocalPosition())
	assertVec3(t, vmath.V3(4, -3, 1), tr.WorldPosition())
	assert.Equal(t, vmath.V3(1.5, -2, 0.5), tr.GridPosition())

	back, ok := tr.FromLocalPosition()
	require.True(t, ok)
	assertVec3(t, tr.GridPosition(), back)
}

func TestTransformHexagon(t *testing.T) {
	g := New(Hexagon, 1, vmath.IdentityPose())
	tr := attached(t, g)

	tr.SetGridPosition(vmath.V3(1, 0, 1))
	assertVec3(t, vmath.V3(1.5, math.Sqrt(3)/2, math.Sqrt(3)), tr.LocalPosition())

	// the tile center matches the grid's own hex center
	c := g.TileWorld(Index{1, 0})
	assert.InDelta(t, c[0], tr.World2D()[0], 1e-9)
	assert.InDelta(t, c[1], tr.World2D()[1], 1e-9)

	for _, p := range []f64.Vec3{{2, -3, 0}, {-1.25, 0.5, 2}, {0, 4, -1}} {
		tr.SetGridPosition(p)
		back, ok := tr.FromLocalPosition()
		require.True(t, ok)
		assertVec3(t, p, back)
	}
}

func TestTransformSnap(t *testing.T) {
	tr := attached(t, New(Square, 1, vmath.IdentityPose()))
	tr.SetGridPosition(vmath.V3(1.4, 2.6, 0.3))
	tr.SetSnap(true)
	assertVec3(t, vmath.V3(1, 3, 0.3), tr.LocalPosition())
	assert.Equal(t, vmath.V3(1.4, 2.6, 0.3), tr.GridPosition())

	tr.SetSnap(false)
	assertVec3(t, vmath.V3(1.4, 2.6, 0.3), tr.LocalPosition())
}

func TestSetParentGridResyncs(t *testing.T) {
	tr := NewTransform(zaptest.NewLogger(t))
	tr.SetLocalPosition(vmath.V3(4, 6, 0))
	require.NoError(t, tr.SetParentGrid(New(Square, 2, vmath.IdentityPose())))
	assertVec3(t, vmath.V3(2, 3, 0), tr.GridPosition())

	// within tolerance the stored value is kept
	tr.SetLocalPosition(vmath.V3(4.0001, 6, 0))
	require.NoError(t, tr.SetParentGrid(tr.Grid()))
	assert.Equal(t, vmath.V3(2, 3, 0), tr.GridPosition())
}

func TestSetParentGridNil(t *testing.T) {
	tr := NewTransform(zaptest.NewLogger(t))
	assert.ErrorIs(t, tr.SetParentGrid(nil), ErrNoParentGrid)
	_, ok := tr.FromLocalPosition()
	assert.False(t, ok)
	assert.ErrorIs(t, tr.PlaceAt(f64.Vec2{}), ErrNoParentGrid)
}

func TestGridDistance(t *testing.T) {
	sq := New(Square, 2, vmath.IdentityPose())
	a, b := attached(t, sq), attached(t, sq)
	a.SetGridPosition(vmath.V3(0, 0, 0))
	b.SetGridPosition(vmath.V3(3, 4, 0))
	d, ok := a.GridDistance(b)
	require.True(t, ok)
	assert.InDelta(t, 5, d, 1e-9)

	hex := New(Hexagon, 2, vmath.IdentityPose())
	h1, h2 := attached(t, hex), attached(t, hex)
	h2.SetGridPosition(vmath.V3(0, 1, 0))
	d, ok = h1.GridDistance(h2)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-9)

	_, ok = a.GridDistance(h1)
	assert.False(t, ok)
	_, ok = a.GridDistance(nil)
	assert.False(t, ok)
}

func TestTransformDriftGuard(t *testing.T) {
	tr := attached(t, New(Hexagon, 1, vmath.IdentityPose()))
	tr.SetGridPosition(vmath.V3(2, 1, 0))
	assert.True(t, tr.Changed())
	tr.ResetChanged()

	tr.SetGridPosition(vmath.V3(2, 1+1e-9, 0))
	assert.False(t, tr.Changed())

	tr.SetGridPosition(vmath.V3(2, 2, 0))
	assert.True(t, tr.Changed())
}

func TestTransformS(t *testing.T) {
	tr := attached(t, New(Hexagon, 1, vmath.IdentityPose()))
	tr.SetGridPosition(vmath.V3(3, 1, 0))
	assert.Equal(t, 2.0, tr.S())
	tr.SetS(0)
	assert.InDelta(t, 0, tr.S(), 1e-12)
	assert.InDelta(t, 4, tr.GridPosition()[0]+tr.GridPosition()[1], 1e-12)
}

func TestPlaceAt(t *testing.T) {
	g := New(Square, 1, vmath.IdentityPose())
	tr := attached(t, g)
	require.NoError(t, tr.PlaceAt(f64.Vec2{2.2, -0.7}))
	assert.Equal(t, vmath.V3(2, -1, 0), tr.GridPosition())

	g.SetPose(vmath.Pose{Rotation: vmath.Euler(90, 0, 0)})
	assert.ErrorIs(t, tr.PlaceAt(f64.Vec2{0, 0}), ErrNoProjection)
}
