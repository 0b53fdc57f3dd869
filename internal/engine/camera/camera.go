// Package camera provides the orbit camera and screen projection used by the
// skeleton viewer and snapshot renderer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY      float32 // radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera sized for a human-scale rig.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Center:          math.Vec3{Y: 1},
		Distance:        4,
		RotationX:       0.3,
		RotationY:       0.6,
		FovY:            math32.Pi / 4,
		Near:            0.05,
		Far:             200,
		MinDistance:     0.5,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosX := math32.Cos(c.RotationX)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: c.Distance * cosX * math32.Cos(c.RotationY),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for a viewport aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Projector returns a projector for a viewport of the given pixel size.
func (c *OrbitCamera) Projector(width, height int) Projector {
	aspect := float32(width) / float32(max(height, 1))
	return Projector{
		ViewProj: c.ProjectionMatrix(aspect).Mul(c.ViewMatrix()),
		Width:    float32(width),
		Height:   float32(height),
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the camera center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01

	dirX := math32.Sin(c.RotationY)
	dirZ := math32.Cos(c.RotationY)

	c.Center.X += (-dirX*forward + dirZ*right) * speed
	c.Center.Z += (-dirZ*forward - dirX*right) * speed
	c.Center.Y += up * speed
}

// FitPoints centers the camera on the bounds of pts and backs off until the
// bounding sphere fits the vertical field of view.
func (c *OrbitCamera) FitPoints(pts []math.Vec3) {
	if len(pts) == 0 {
		return
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	c.Center = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	if radius < 0.1 {
		radius = 0.1
	}

	c.Distance = clamp(radius/math32.Sin(c.FovY/2)*1.1, c.MinDistance, c.MaxDistance)
}

// Projector maps world points to pixel coordinates. The origin is the top
// left corner and y grows downwards.
type Projector struct {
	ViewProj      math.Mat4
	Width, Height float32
}

// Project returns the pixel position of p. ok is false for points behind
// the camera.
func (p Projector) Project(v math.Vec3) (x, y float32, ok bool) {
	clip := p.ViewProj.MulVec4(math.Vec4{v.X, v.Y, v.Z, 1})
	if clip[3] <= 1e-6 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX*0.5 + 0.5) * p.Width, (0.5 - ndcY*0.5) * p.Height, true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
