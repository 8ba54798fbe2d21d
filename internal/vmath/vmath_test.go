package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func assertVec3InDelta(t *testing.T, want, got f64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestEulerZRotation(t *testing.T) {
	q := Euler(0, 0, 90)
	assertVec3InDelta(t, V3(0, 1, 0), q.Rotate(V3(1, 0, 0)))
	assertVec3InDelta(t, V3(0, 0, 1), q.Forward())
}

func TestEulerAppliesZThenXThenY(t *testing.T) {
	q := Euler(90, 90, 90)
	step := AxisAngle(V3(0, 0, 1), math.Pi/2).Rotate(V3(1, 0, 0))
	step = AxisAngle(V3(1, 0, 0), math.Pi/2).Rotate(step)
	step = AxisAngle(V3(0, 1, 0), math.Pi/2).Rotate(step)
	assertVec3InDelta(t, step, q.Rotate(V3(1, 0, 0)))
}

func TestInverseUndoesRotation(t *testing.T) {
	q := Euler(30, -45, 60)
	v := V3(1.5, -2, 0.25)
	assertVec3InDelta(t, v, q.Inverse().Rotate(q.Rotate(v)))
	assertVec3InDelta(t, v, MulMat3(Transpose3(q.Mat3()), q.Rotate(v)))
}

func TestPoseRoundTrip(t *testing.T) {
	p := Pose{Position: V3(3, -1, 2), Rotation: Euler(10, 20, 30)}
	v := V3(-4, 5, 0.5)
	assertVec3InDelta(t, v, p.ToLocal(p.ToWorld(v)))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Identity(), Quat{}.Normalize())
	assert.Equal(t, f64.Vec3{}, V3Normalize(f64.Vec3{}))
	assert.InDelta(t, 1.0, V3Mag(V3Normalize(V3(3, 4, 12))), 1e-12)
}
