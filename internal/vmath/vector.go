// Package vmath holds the small amount of linear algebra the grid needs.
// Vectors and matrices are the golang.org/x/image/math/f64 array types, so
// they compare with == and copy by value.
package vmath

import (
	"math"

	"golang.org/x/image/math/f64"
)

func V2(x, y float64) f64.Vec2 {
	return f64.Vec2{x, y}
}

func V3(x, y, z float64) f64.Vec3 {
	return f64.Vec3{x, y, z}
}

func V2Add(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] + b[0], a[1] + b[1]}
}

func V2Sub(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] - b[0], a[1] - b[1]}
}

func V2Scale(v f64.Vec2, s float64) f64.Vec2 {
	return f64.Vec2{v[0] * s, v[1] * s}
}

func V2Mag(v f64.Vec2) float64 {
	return math.Hypot(v[0], v[1])
}

func V3Add(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func V3Sub(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func V3Scale(v f64.Vec3, s float64) f64.Vec3 {
	return f64.Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func V3Dot(a, b f64.Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func V3Mag(v f64.Vec3) float64 {
	return math.Sqrt(V3Dot(v, v))
}

// V3Normalize returns v scaled to unit length, or the zero vector for zero input.
func V3Normalize(v f64.Vec3) f64.Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return f64.Vec3{}
	}
	return V3Scale(v, 1/mag)
}

// XY drops the z component.
func XY(v f64.Vec3) f64.Vec2 {
	return f64.Vec2{v[0], v[1]}
}

// Lift extends a planar vector with the given z.
func Lift(v f64.Vec2, z float64) f64.Vec3 {
	return f64.Vec3{v[0], v[1], z}
}

// MulMat3 multiplies the row-major matrix m by the column vector v.
func MulMat3(m f64.Mat3, v f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose3 returns the transpose of m, which for a rotation is its inverse.
func Transpose3(m f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
