package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-skel/pkg/math"
)

func TestDrawSkeleton(t *testing.T) {
	skel := mustSkeleton(chain())
	pose := Evaluate(skel, ModeBindPose, nil, nil)

	var rec lineRecorder
	DrawSkeleton(&rec, skel, pose, Magenta, math.Vec3{X: 10})

	require.Len(t, rec.lines, 2)
	assert.Equal(t, recordedLine{math.Vec3{X: 10}, math.Vec3{X: 10, Y: 1}, Magenta}, rec.lines[0])
	assert.Equal(t, recordedLine{math.Vec3{X: 10, Y: 1}, math.Vec3{X: 10, Y: 2}, Magenta}, rec.lines[1])
}

func TestDrawWorldMarker(t *testing.T) {
	var rec lineRecorder
	DrawWorldMarker(&rec, 2)

	require.Len(t, rec.lines, 3)
	assert.Equal(t, math.Vec3{X: 2}, rec.lines[0].end)
	assert.Equal(t, Red, rec.lines[0].color)
	assert.Equal(t, math.Vec3{Y: 2}, rec.lines[1].end)
	assert.Equal(t, Green, rec.lines[1].color)
	assert.Equal(t, math.Vec3{Z: 2}, rec.lines[2].end)
	assert.Equal(t, Blue, rec.lines[2].color)
}

func TestPoseBounds(t *testing.T) {
	lo, hi := PoseBounds([]Transform{at(1, -2, 0), at(-3, 4, 1), at(0, 0, 5)})
	assert.Equal(t, math.Vec3{X: -3, Y: -2}, lo)
	assert.Equal(t, math.Vec3{X: 1, Y: 4, Z: 5}, hi)
}

func TestColorRGBA8(t *testing.T) {
	r, g, b, a := Color{R: 1.5, G: 0.5, B: -1}.RGBA8()
	assert.Equal(t, []uint8{255, 128, 0, 255}, []uint8{r, g, b, a})
}
