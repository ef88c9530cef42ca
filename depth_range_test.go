package volscene

import (
	"math"
	"testing"

	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestFuseDepthRange(t *testing.T) {
	fused := FuseDepthRange(DepthRange{Near: 10, Far: 100}, DepthRange{Near: 8, Far: 60})
	assert.Equal(t, DepthRange{Near: 4, Far: 120}, fused)

	primary := DepthRange{Near: 10, Far: 100}
	assert.Equal(t, primary, FuseDepthRange(primary, EmptyDepthRange()))
	assert.Equal(t, primary, FuseDepthRange(primary, DepthRange{Near: 5, Far: math.NaN()}))
	assert.Equal(t, primary, FuseDepthRange(primary, DepthRange{Near: 50, Far: 5}))
}

func TestFuseDepthRangeKeepsWiderPrimary(t *testing.T) {
	fused := FuseDepthRange(DepthRange{Near: 1, Far: 500}, DepthRange{Near: 8, Far: 60})
	assert.Equal(t, DepthRange{Near: 1, Far: 500}, fused)
}

func TestFuseIntoEmptyPrimary(t *testing.T) {
	fused := FuseDepthRange(EmptyDepthRange(), DepthRange{Near: 9, Far: 11})
	assert.Equal(t, DepthRange{Near: 4.5, Far: 22}, fused)
}

func TestDepthRangeValid(t *testing.T) {
	assert.True(t, DepthRange{Near: 1, Far: 1}.Valid())
	assert.True(t, DepthRange{Near: -2, Far: 3}.Valid())
	assert.False(t, EmptyDepthRange().Valid())
	assert.False(t, DepthRange{Near: 3, Far: 2}.Valid())
	assert.False(t, DepthRange{Near: math.Inf(-1), Far: 2}.Valid())
}

func TestApplyFusionClampsCopyAndWritesBack(t *testing.T) {
	scene := NewVolumeScene()
	cv := scenegraph.NewCullVisitor()
	cv.SetCalculatedNearPlane(10)
	cv.SetCalculatedFarPlane(100)
	proj := mgl64.Perspective(mgl64.DegToRad(45), 1, 0.1, 10000)
	orig := proj

	fused, clamped := scene.applyFusion(cv, DepthRange{Near: 8, Far: 60}, proj)

	assert.Equal(t, DepthRange{Near: 4, Far: 120}, fused)
	assert.Equal(t, 4.0, cv.CalculatedNearPlane())
	assert.Equal(t, 120.0, cv.CalculatedFarPlane())
	assert.Equal(t, orig, proj, "input matrix is not modified")

	n, f := scenegraph.NearFarFromProjection(clamped)
	assert.InDelta(t, 4*0.98, n, 1e-6)
	assert.InDelta(t, 120*1.02, f, 1e-6)
}

func TestApplyFusionWithoutCaptureKeepsPlanes(t *testing.T) {
	scene := NewVolumeScene()
	cv := scenegraph.NewCullVisitor()
	cv.SetCalculatedNearPlane(10)
	cv.SetCalculatedFarPlane(100)

	fused, _ := scene.applyFusion(cv, EmptyDepthRange(), mgl64.Perspective(mgl64.DegToRad(45), 1, 1, 1000))
	assert.Equal(t, DepthRange{Near: 10, Far: 100}, fused)
	assert.Equal(t, 10.0, cv.CalculatedNearPlane())
	assert.Equal(t, 100.0, cv.CalculatedFarPlane())
}

func TestApplyFusionGuardLeavesProjectionUnmodified(t *testing.T) {
	scene := NewVolumeScene()
	proj := mgl64.Perspective(mgl64.DegToRad(45), 1, 1, 1000)

	cases := map[string]struct {
		primary  DepthRange
		captured DepthRange
	}{
		"nothing drawn":      {EmptyDepthRange(), EmptyDepthRange()},
		"inverted primary":   {DepthRange{Near: 50, Far: 10}, EmptyDepthRange()},
		"degenerate primary": {DepthRange{Near: 20, Far: 20}, EmptyDepthRange()},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cv := scenegraph.NewCullVisitor()
			cv.SetCalculatedNearPlane(tc.primary.Near)
			cv.SetCalculatedFarPlane(tc.primary.Far)

			_, clamped := scene.applyFusion(cv, tc.captured, proj)
			assert.Equal(t, proj, clamped)
		})
	}
}

func TestApplyFusionUsesConfiguredScales(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NearScale = 0.25
	cfg.FarScale = 4
	scene := NewVolumeSceneWithConfig(cfg, nil)
	cv := scenegraph.NewCullVisitor()

	fused, _ := scene.applyFusion(cv, DepthRange{Near: 8, Far: 60}, mgl64.Ident4())
	assert.Equal(t, DepthRange{Near: 2, Far: 240}, fused)
}
