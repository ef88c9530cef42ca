package volscene

import (
	"math"

	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultNearScale = 0.5
	DefaultFarScale  = 2.0
)

// DepthRange is an eye-space near/far pair as computed by a cull pass.
type DepthRange struct {
	Near float64
	Far  float64
}

// EmptyDepthRange is what a cull pass reports when it queued nothing.
func EmptyDepthRange() DepthRange {
	return DepthRange{Near: math.Inf(1), Far: math.Inf(-1)}
}

func (r DepthRange) Valid() bool {
	return !math.IsInf(r.Near, 0) && !math.IsInf(r.Far, 0) &&
		!math.IsNaN(r.Near) && !math.IsNaN(r.Far) && r.Near <= r.Far
}

// Scale widens the range by multiplying near and far.
func (r DepthRange) Scale(nearScale, farScale float64) DepthRange {
	return DepthRange{Near: r.Near * nearScale, Far: r.Far * farScale}
}

// FuseDepthRange merges a captured range into the primary one using the
// default margins.
func FuseDepthRange(primary, captured DepthRange) DepthRange {
	return FuseDepthRangeScaled(primary, captured, DefaultNearScale, DefaultFarScale)
}

// FuseDepthRangeScaled widens captured by the given factors and returns the
// union with primary. An invalid captured range leaves primary unchanged.
func FuseDepthRangeScaled(primary, captured DepthRange, nearScale, farScale float64) DepthRange {
	if !captured.Valid() {
		return primary
	}
	scaled := captured.Scale(nearScale, farScale)
	return DepthRange{
		Near: math.Min(primary.Near, scaled.Near),
		Far:  math.Max(primary.Far, scaled.Far),
	}
}

// applyFusion fuses captured into the visitor's calculated planes and
// returns a copy of projection clamped to the fused range. The copy is
// returned untouched when the fused range is empty or inverted.
func (s *VolumeScene) applyFusion(cv scenegraph.CullTraverser, captured DepthRange, projection mgl64.Mat4) (DepthRange, mgl64.Mat4) {
	primary := DepthRange{Near: cv.CalculatedNearPlane(), Far: cv.CalculatedFarPlane()}
	fused := FuseDepthRangeScaled(primary, captured, s.cfg.NearScale, s.cfg.FarScale)
	if captured.Valid() {
		cv.SetCalculatedNearPlane(fused.Near)
		cv.SetCalculatedFarPlane(fused.Far)
	}

	clamped := projection
	if fused.Far > fused.Near {
		scenegraph.ClampProjectionMatrix(&clamped, fused.Near, fused.Far, s.cfg.NearFarRatio)
	}
	return fused, clamped
}
