package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	if math.Abs(float64(n.Length()-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Length())
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", got)
	}
	nan := float32(math.NaN())
	if got := (Quat{X: nan, W: 1}).Normalize(); got != QuatIdentity() {
		t.Errorf("NaN quaternion should normalize to identity, got %v", got)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// At t=0, should equal q1
	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2
	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// For 90 degree rotation, halfway should be 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatSlerpShortestPath(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, 0.5)
	got := q.Slerp(q.Negate(), 0.5)
	if !got.SameRotation(q, 1e-4) {
		t.Errorf("Slerp between q and -q should stay at q, got %v", got)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	if !m.ApproxEqual(Identity(), 0.0001) {
		t.Errorf("Identity quat should produce identity matrix, got %v", m)
	}

	angle := float32(0.8)
	rz := QuatFromAxisAngle(Vec3{Z: 1}, angle).ToMat4()
	if !rz.ApproxEqual(RotateZ(angle), 0.0001) {
		t.Errorf("Z rotation quat: got %v, want %v", rz, RotateZ(angle))
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateVec3(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	got := q.RotateVec3(Vec3{X: 1})
	if !got.ApproxEqual(Vec3{Y: 1}, 0.0001) {
		t.Errorf("90 degrees about Z should map X to Y, got %v", got)
	}

	// Non-unit input must still rotate rigidly.
	scaled := Quat{X: q.X * 3, Y: q.Y * 3, Z: q.Z * 3, W: q.W * 3}
	got = scaled.RotateVec3(Vec3{X: 2})
	if !got.ApproxEqual(Vec3{Y: 2}, 0.0001) {
		t.Errorf("scaled quaternion should rotate rigidly, got %v", got)
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1, Y: 1, Z: 0}.Normalize(), 1.3)
	v := Vec3{X: 0.3, Y: -2, Z: 5}
	got := q.Conjugate().RotateVec3(q.RotateVec3(v))
	if !got.ApproxEqual(v, 0.0001) {
		t.Errorf("conjugate should undo rotation: got %v, want %v", got, v)
	}
}

func TestQuatMulMatchesMatrixProduct(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{X: 1}, 0.4)
	b := QuatFromAxisAngle(Vec3{Y: 1}, -0.9)
	want := a.ToMat4().Mul(b.ToMat4())
	if got := a.Mul(b).ToMat4(); !got.ApproxEqual(want, 0.0001) {
		t.Errorf("quat product should match matrix product: got %v, want %v", got, want)
	}
}

func TestQuatAxisAngle(t *testing.T) {
	axis := Vec3{X: 0, Y: 1, Z: 0}
	gotAxis, gotAngle := QuatFromAxisAngle(axis, 1.2).AxisAngle()
	if !gotAxis.ApproxEqual(axis, 1e-5) || math.Abs(float64(gotAngle-1.2)) > 1e-5 {
		t.Errorf("AxisAngle() = %v, %v, want %v, 1.2", gotAxis, gotAngle, axis)
	}

	gotAxis, gotAngle = QuatIdentity().AxisAngle()
	if gotAngle != 0 || gotAxis != (Vec3{X: 1}) {
		t.Errorf("identity AxisAngle() = %v, %v", gotAxis, gotAngle)
	}
}
