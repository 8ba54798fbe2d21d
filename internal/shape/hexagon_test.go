package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestHexagonRatios(t *testing.T) {
	h := Hexagon{Edge: 2}
	assert.InDelta(t, math.Sqrt(3), h.InscribeRadius(), 1e-12)
	assert.InDelta(t, 2*math.Sqrt(3), h.InscribeDiameter(), 1e-12)
	assert.Equal(t, 2.0, h.Circumradius())
	assert.Equal(t, 4.0, h.Circumdiameter())
	assert.Equal(t, 12.0, h.Perimeter())
	assert.InDelta(t, 6*math.Sqrt(3), h.Area(), 1e-9)
	assert.InDelta(t, 2.0, Hexagon{}.WithArea(h.Area()).Edge, 1e-9)
}

func TestCornersClockwiseFromLeft(t *testing.T) {
	h := Hexagon{Edge: 1, Center: f64.Vec2{1, 1}}
	c := h.Corners()
	require.Len(t, c, 6)
	assert.Equal(t, f64.Vec2{0, 1}, c[0])
	assert.InDelta(t, 1+InRadiusRatio, c[1][1], 1e-12)
	assert.Equal(t, f64.Vec2{2, 1}, c[3])

	// clockwise ordering gives a negative signed area
	area := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		area += c[i][0]*c[j][1] - c[j][0]*c[i][1]
	}
	assert.Less(t, area, 0.0)
	assert.InDelta(t, h.Area(), -area/2, 1e-9)

	for _, p := range c {
		assert.InDelta(t, h.Circumradius(), math.Hypot(p[0]-1, p[1]-1), 1e-12)
	}
}

func TestMinBoundCorner(t *testing.T) {
	assert.Equal(t, f64.Vec2{-1, -InRadiusRatio}, UnitHexagon.MinBoundCorner())
}

func TestContains(t *testing.T) {
	h := UnitHexagon
	assert.True(t, h.Contains(f64.Vec2{0, 0}))
	assert.True(t, h.Contains(f64.Vec2{0.99, 0}))
	assert.True(t, h.Contains(f64.Vec2{0, 0.86}))
	assert.False(t, h.Contains(f64.Vec2{0.9, 0.5}))
	assert.False(t, h.Contains(f64.Vec2{0, 0.9}))
	for _, p := range h.Corners() {
		assert.True(t, h.Contains(p))
	}
}
