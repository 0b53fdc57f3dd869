package anim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

var (
	zAxis = math.Vec3{Z: 1}
	yAxis = math.Vec3{Y: 1}
)

func sampleTransforms() []Transform {
	return []Transform{
		{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: math.QuatFromAxisAngle(zAxis, 0.7)},
		{Position: math.Vec3{X: -4, Y: 0.5}, Rotation: math.QuatFromAxisAngle(yAxis, -1.2)},
		{Position: math.Vec3{Z: 2}, Rotation: math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1}.Normalize(), 2.1)},
	}
}

func TestTransformIdentity(t *testing.T) {
	for _, tr := range sampleTransforms() {
		assert.True(t, tr.Mul(Identity()).ApproxEqual(tr, eps))
		assert.True(t, Identity().Mul(tr).ApproxEqual(tr, eps))
	}
}

func TestTransformMulAssociative(t *testing.T) {
	ts := sampleTransforms()
	a, b, c := ts[0], ts[1], ts[2]

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	assert.True(t, left.ApproxEqual(right, eps), "left %+v right %+v", left, right)
}

func TestTransformInverse(t *testing.T) {
	for _, tr := range sampleTransforms() {
		assert.True(t, tr.Mul(tr.Inverse()).ApproxEqual(Identity(), eps))
		assert.True(t, tr.Inverse().Mul(tr).ApproxEqual(Identity(), eps))
	}
}

func TestTransformMulChildInParentFrame(t *testing.T) {
	parent := Transform{Position: math.Vec3{X: 5}, Rotation: math.QuatFromAxisAngle(zAxis, math32.Pi/2)}
	child := at(1, 0, 0)

	got := child.Mul(parent)

	assert.True(t, got.Position.ApproxEqual(math.Vec3{X: 5, Y: 1}, eps), "got %v", got.Position)
	assert.True(t, got.Rotation.SameRotation(parent.Rotation, eps))
}

func TestTransformUnnormalizedRotation(t *testing.T) {
	q := math.QuatFromAxisAngle(zAxis, math32.Pi/2)
	scaled := math.Quat{X: q.X * 3, Y: q.Y * 3, Z: q.Z * 3, W: q.W * 3}

	a := at(1, 0, 0).Mul(Transform{Rotation: q})
	b := at(1, 0, 0).Mul(Transform{Rotation: scaled})
	assert.True(t, a.ApproxEqual(b, eps))

	zero := at(1, 2, 3).Mul(Transform{})
	assert.True(t, zero.ApproxEqual(at(1, 2, 3), eps), "zero rotation acts as identity")
}

func TestInterpolate(t *testing.T) {
	a := at(0, 0, 0)
	b := Transform{Position: math.Vec3{X: 2, Y: 4}, Rotation: math.QuatFromAxisAngle(zAxis, 1)}

	assert.True(t, Interpolate(a, b, 0).ApproxEqual(a, eps))
	assert.True(t, Interpolate(a, b, 1).ApproxEqual(b, eps))

	mid := Interpolate(a, b, 0.5)
	assert.True(t, mid.Position.ApproxEqual(math.Vec3{X: 1, Y: 2}, eps))
	assert.True(t, mid.Rotation.SameRotation(math.QuatFromAxisAngle(zAxis, 0.5), eps))

	ext := Interpolate(a, b, 2)
	assert.True(t, ext.Position.ApproxEqual(math.Vec3{X: 4, Y: 8}, eps), "ratio is not clamped")
}

func TestTransformToMat4(t *testing.T) {
	for _, tr := range sampleTransforms() {
		p := math.Vec3{X: 0.3, Y: -2, Z: 1}
		assert.True(t, tr.ToMat4().TransformVec3(p).ApproxEqual(tr.TransformPoint(p), eps))
	}

	tr := Transform{Position: math.Vec3{X: 10}, Rotation: math.QuatFromAxisAngle(zAxis, math32.Pi/2)}
	got := tr.ToMat4().TransformVec3(math.Vec3{X: 1})
	assert.True(t, got.ApproxEqual(math.Vec3{X: 10, Y: 1}, eps), "rotate then translate, got %v", got)
}

func TestComposeMatchesMatrixProduct(t *testing.T) {
	ts := sampleTransforms()
	child, parent := ts[0], ts[1]

	want := parent.ToMat4().Mul(child.ToMat4())
	got := Compose(child, parent).ToMat4()
	assert.True(t, got.ApproxEqual(want, eps))
}
