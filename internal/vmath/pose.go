package vmath

import "golang.org/x/image/math/f64"

// Pose is a world-space position and orientation.
type Pose struct {
	Position f64.Vec3
	Rotation Quat
}

// IdentityPose sits at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: Identity()}
}

// ToWorld maps a point in the pose's local frame to world space.
func (p Pose) ToWorld(local f64.Vec3) f64.Vec3 {
	return V3Add(p.Position, p.Rotation.Rotate(local))
}

// ToLocal maps a world-space point back into the pose's local frame.
func (p Pose) ToLocal(world f64.Vec3) f64.Vec3 {
	return p.Rotation.Inverse().Rotate(V3Sub(world, p.Position))
}
