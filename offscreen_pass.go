package volscene

import (
	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl32"
)

// captureOffscreen renders the scene's children through the offscreen
// camera using cv and returns the depth range that pass computed.
func (s *VolumeScene) captureOffscreen(cv scenegraph.CullTraverser, vs *ViewState) DepthRange {
	vs.stage = StageCapturingOffscreen
	defer vs.Profiler.Scope("capture")()

	if vp := cv.Viewport(); vp != nil {
		vs.viewportSize.SetVec2(mgl32.Vec2{float32(vp.Width), float32(vp.Height)})
		s.resizeTargets(vs, vp.Width, vp.Height)
	}

	if cam := cv.CurrentCamera(); cam != nil {
		vs.camera.SetClearColor(cam.ClearColor())
	}

	vs.captured = EmptyDepthRange()
	cv.SetPhase(scenegraph.PhaseRenderToTexture)
	scenegraph.Accept(vs.camera, cv)

	return vs.captured
}

// resizeTargets matches the offscreen textures to the viewport. The
// camera's GPU objects are released since they were built for the old
// size.
func (s *VolumeScene) resizeTargets(vs *ViewState, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == vs.colorTexture.TextureWidth() && height == vs.colorTexture.TextureHeight() {
		return
	}
	s.logger.Debugf("Resizing offscreen targets of %s to %dx%d", vs.contextID, width, height)

	vs.colorTexture.SetTextureSize(width, height)
	vs.colorTexture.DirtyTextureObject()
	vs.depthTexture.SetTextureSize(width, height)
	vs.depthTexture.DirtyTextureObject()
	vs.camera.SetViewport(0, 0, width, height)
	if rc := vs.camera.RenderingCache(); rc != nil {
		rc.ReleaseGPUObjects()
	}
}
