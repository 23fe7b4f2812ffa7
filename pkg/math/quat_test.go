package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	if !QuatIdentity().Mat4().IsIdentity() {
		t.Error("identity quaternion should convert to the identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	if l := n.Dot(n); math.Abs(float64(l-1)) > 0.0001 {
		t.Errorf("normalized quaternion squared length should be 1, got %v", l)
	}
}

func TestQuatMatchesRotate(t *testing.T) {
	axis := Vec3{0, 1, 0}
	angle := float32(math.Pi / 3)
	q := QuatFromAxisAngle(axis, angle).Mat4()
	if !q.ApproxEqual(Rotate(axis, angle), 1e-5) {
		t.Errorf("quaternion matrix %v should match axis rotation", q)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	if r := q1.Slerp(q2, 0); math.Abs(float64(r.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1, got %v", r)
	}
	if r := q1.Slerp(q2, 1); math.Abs(float64(r.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2, got %v", r)
	}

	mid := q1.Slerp(q2, 0.5)
	want := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/4))
	if math.Abs(float64(mid.Dot(want))) < 0.999 {
		t.Errorf("Slerp at t=0.5 = %v, want %v", mid, want)
	}
}
