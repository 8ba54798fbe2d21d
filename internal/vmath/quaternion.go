package vmath

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use Identity.
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the rotation that leaves vectors unchanged.
func Identity() Quat {
	return Quat{W: 1}
}

// AxisAngle builds a rotation of rad radians about axis.
func AxisAngle(axis f64.Vec3, rad float64) Quat {
	n := V3Normalize(axis)
	s, c := math.Sincos(rad / 2)
	return Quat{X: n[0] * s, Y: n[1] * s, Z: n[2] * s, W: c}
}

// Euler builds a rotation from angles in degrees about x, y and z. The z
// rotation is applied first, then x, then y.
func Euler(xDeg, yDeg, zDeg float64) Quat {
	qx := AxisAngle(V3(1, 0, 0), xDeg*math.Pi/180)
	qy := AxisAngle(V3(0, 1, 0), yDeg*math.Pi/180)
	qz := AxisAngle(V3(0, 0, 1), zDeg*math.Pi/180)
	return qy.Mul(qx).Mul(qz)
}

// Mul composes two rotations; the result applies b first, then q.
func (q Quat) Mul(b Quat) Quat {
	return Quat{
		X: q.W*b.X + q.X*b.W + q.Y*b.Z - q.Z*b.Y,
		Y: q.W*b.Y - q.X*b.Z + q.Y*b.W + q.Z*b.X,
		Z: q.W*b.Z + q.X*b.Y - q.Y*b.X + q.Z*b.W,
		W: q.W*b.W - q.X*b.X - q.Y*b.Y - q.Z*b.Z,
	}
}

// Normalize returns q at unit length. A zero quaternion becomes Identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return Identity()
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Inverse returns the inverse of a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Mat3 returns the row-major rotation matrix of a unit quaternion.
func (q Quat) Mat3() f64.Mat3 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return f64.Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// Rotate applies q to v.
func (q Quat) Rotate(v f64.Vec3) f64.Vec3 {
	return MulMat3(q.Mat3(), v)
}

// Forward is the local +z axis after rotation.
func (q Quat) Forward() f64.Vec3 {
	return q.Rotate(V3(0, 0, 1))
}
