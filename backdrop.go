package volscene

import (
	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// backdropDepth is the NDC depth of the far plane.
const backdropDepth = 1.0

// UnprojectFarCorners returns the far-plane corners of the view volume in
// the space modelView is relative to, ordered top-left, bottom-left,
// top-right, bottom-right for a triangle strip. ok is false when
// projection*modelView cannot be inverted.
func UnprojectFarCorners(modelView, projection mgl64.Mat4) (corners [4]mgl64.Vec3, ok bool) {
	pmv := projection.Mul4(modelView)
	if pmv.Det() == 0 {
		return corners, false
	}
	inv := pmv.Inv()

	ndc := [4]mgl64.Vec2{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}
	for i, c := range ndc {
		p := inv.Mul4x1(mgl64.Vec4{c.X(), c.Y(), backdropDepth, 1})
		if p.W() == 0 {
			return corners, false
		}
		corners[i] = p.Vec3().Mul(1 / p.W())
	}
	return corners, true
}

// drawBackdrop rebuilds the quad from the given matrices and queues it in
// the post phase. projection arrives already clamped to the fused near/far
// range by applyFusion, not the projection from before fusion.
func (s *VolumeScene) drawBackdrop(cv scenegraph.CullTraverser, vs *ViewState, modelView, projection mgl64.Mat4) {
	vs.stage = StageDrawingBackdrop
	defer vs.Profiler.Scope("backdrop")()

	corners, ok := UnprojectFarCorners(modelView, projection)
	if !ok {
		s.logger.Debugf("Skipping backdrop of %s: singular projection", vs.contextID)
		return
	}

	verts := vs.backdropGeometry.VertexArray()
	for i, c := range corners {
		verts[i] = mgl32.Vec3{float32(c.X()), float32(c.Y()), float32(c.Z())}
	}
	vs.backdropGeometry.DirtyBound()

	cv.SetPhase(scenegraph.PhasePost)
	scenegraph.Accept(vs.backdrop, cv)
}
