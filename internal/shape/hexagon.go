// Package shape provides plane figures used to lay out tiles.
package shape

import (
	"math"

	"golang.org/x/image/math/f64"
)

const (
	// InDiameterRatio is the inscribed diameter of a hexagon relative to its
	// edge length (√3).
	InDiameterRatio = 1.73205080756887729352744634150587236694280525381038
	// InRadiusRatio is the inscribed radius relative to the edge length (√3/2).
	InRadiusRatio = InDiameterRatio / 2
)

// UnitHexagon has edge length 1 and sits at the origin.
var UnitHexagon = Hexagon{Edge: 1}

// Hexagon is a flat-topped regular hexagon.
type Hexagon struct {
	Edge   float64
	Center f64.Vec2
}

// Circumradius is the radius of the circumscribed circle, equal to the edge.
func (h Hexagon) Circumradius() float64 { return h.Edge }

// Circumdiameter is twice the edge.
func (h Hexagon) Circumdiameter() float64 { return h.Edge * 2 }

// InscribeRadius is the radius of the inscribed circle, Edge·√3/2.
func (h Hexagon) InscribeRadius() float64 { return h.Edge * InRadiusRatio }

// InscribeDiameter is Edge·√3.
func (h Hexagon) InscribeDiameter() float64 { return h.Edge * InDiameterRatio }

// Perimeter is six edges.
func (h Hexagon) Perimeter() float64 { return h.Edge * 6 }

// Area is Edge²·(3√3/2).
func (h Hexagon) Area() float64 { return h.InscribeDiameter() * 1.5 * h.Edge }

// WithArea returns a copy resized so that its area equals a.
func (h Hexagon) WithArea(a float64) Hexagon {
	h.Edge = math.Sqrt(a*InDiameterRatio*2) / 3
	return h
}

// MinBoundCorner is the lower left corner of the bounding rectangle.
func (h Hexagon) MinBoundCorner() f64.Vec2 {
	return f64.Vec2{h.Center[0] - h.Edge, h.Center[1] - h.InscribeRadius()}
}

// Corners returns the six corners clockwise from the leftmost one.
func (h Hexagon) Corners() [6]f64.Vec2 {
	c, r, ir := h.Center, h.Circumradius(), h.InscribeRadius()
	return [6]f64.Vec2{
		{c[0] - r, c[1]},
		{c[0] - r/2, c[1] + ir},
		{c[0] + r/2, c[1] + ir},
		{c[0] + r, c[1]},
		{c[0] + r/2, c[1] - ir},
		{c[0] - r/2, c[1] - ir},
	}
}

// Contains reports whether p lies inside the hexagon or on its boundary.
func (h Hexagon) Contains(p f64.Vec2) bool {
	const slack = 1e-9
	dx := math.Abs(p[0] - h.Center[0])
	dy := math.Abs(p[1] - h.Center[1])
	ir := h.InscribeRadius()
	if dx > h.Edge+slack || dy > ir+slack {
		return false
	}
	// slanted edge from (Edge, 0) to (Edge/2, ir)
	return dy <= InDiameterRatio*(h.Edge-dx)+slack
}
