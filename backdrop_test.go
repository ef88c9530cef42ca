package volscene

import (
	"testing"

	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnprojectFarCornersSymmetric(t *testing.T) {
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 1, 100)
	c, ok := UnprojectFarCorners(mgl64.Ident4(), proj)
	require.True(t, ok)

	// top-left, bottom-left, top-right, bottom-right
	assert.InDelta(t, -c[2].X(), c[0].X(), 1e-6)
	assert.InDelta(t, -c[3].X(), c[1].X(), 1e-6)
	assert.InDelta(t, -c[1].Y(), c[0].Y(), 1e-6)
	assert.InDelta(t, -c[3].Y(), c[2].Y(), 1e-6)
	assert.Less(t, c[0].X(), 0.0)
	assert.Greater(t, c[0].Y(), 0.0)
	for _, v := range c {
		assert.InDelta(t, -100, v.Z(), 1e-6)
	}
}

func TestUnprojectFarCornersOrthographic(t *testing.T) {
	proj := mgl64.Ortho(-2, 2, -1, 1, 1, 50)
	c, ok := UnprojectFarCorners(mgl64.Ident4(), proj)
	require.True(t, ok)

	assert.InDeltaSlice(t, []float64{-2, 1, -50}, c[0][:], 1e-9)
	assert.InDeltaSlice(t, []float64{-2, -1, -50}, c[1][:], 1e-9)
	assert.InDeltaSlice(t, []float64{2, 1, -50}, c[2][:], 1e-9)
	assert.InDeltaSlice(t, []float64{2, -1, -50}, c[3][:], 1e-9)
}

func TestUnprojectFarCornersFollowsModelView(t *testing.T) {
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 1, 100)
	mv := mgl64.Translate3D(0, 0, -10)
	c, ok := UnprojectFarCorners(mv, proj)
	require.True(t, ok)
	for _, v := range c {
		assert.InDelta(t, -90, v.Z(), 1e-6)
	}
}

func TestUnprojectFarCornersSingular(t *testing.T) {
	_, ok := UnprojectFarCorners(mgl64.Ident4(), mgl64.Mat4{})
	assert.False(t, ok)
}

func TestBackdropRecomputedEveryFrame(t *testing.T) {
	scene, _, _ := singleTileScene()
	cv := scenegraph.NewCullVisitor()
	cam := testCamera(640, 480)

	cv.Cull(cam, scene)
	vs := scene.ViewState(cv.ContextID())
	first := append(vs.BackdropGeometry().VertexArray()[:0:0], vs.BackdropGeometry().VertexArray()...)

	cam.SetViewMatrix(mgl64.LookAtV(mgl64.Vec3{3, 0, 10}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}))
	cv.Cull(cam, scene)
	second := vs.BackdropGeometry().VertexArray()

	assert.NotEqual(t, first, second)
	assert.False(t, vs.BackdropGeometry().BoundDirty(), "bound recomputed when queued")
}

func TestBackdropSitsOnFusedFarPlane(t *testing.T) {
	scene, _, _ := singleTileScene()
	cv := scenegraph.NewCullVisitor()
	cam := testCamera(640, 480) // far plane 1000, eye at z=10

	cv.Cull(cam, scene)
	vs := scene.ViewState(cv.ContextID())
	require.NotNil(t, vs)

	// box spans eye depth 9..11, so the fused far is 22 and the clamp
	// pushes it out by 2%
	wantZ := 10 - 22*1.02
	for _, v := range vs.BackdropGeometry().VertexArray() {
		assert.InDelta(t, wantZ, float64(v.Z()), 1e-3)
	}
}
