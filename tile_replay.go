package volscene

import (
	"github.com/gekko3d/volscene/scenegraph"
)

// replayTiles draws every tile recorded during this frame's offscreen pass
// under the traversal state it was recorded with. The visitor's node path
// is restored afterwards.
func (s *VolumeScene) replayTiles(cv scenegraph.CullTraverser, vs *ViewState) {
	vs.stage = StageReplayingTiles
	defer vs.Profiler.Scope("replay")()
	defer scenegraph.ScopedNodePath(cv, cv.NodePath())()

	cv.SetPhase(scenegraph.PhasePost)
	for _, req := range vs.tiles {
		if req.Frame != vs.frame {
			s.logger.Debugf("Skipping stale tile request from frame %d", req.Frame)
			continue
		}
		s.replayTile(cv, vs, req)
	}
}

func (s *VolumeScene) replayTile(cv scenegraph.CullTraverser, vs *ViewState, req TileRequest) {
	tile := req.NodePath.Last()
	if tile == nil {
		return
	}

	cv.SetNodePath(req.NodePath)
	defer scenegraph.ScopedProjection(cv, req.Projection)()
	defer scenegraph.ScopedModelView(cv, req.ModelView, scenegraph.AbsoluteRFInheritViewpoint)()
	defer scenegraph.ScopedStateSet(cv, vs.sharedState)()

	for _, n := range s.pathBelowCapture(vs, req.NodePath) {
		if ss := n.StateSet(); ss != nil {
			defer scenegraph.ScopedStateSet(cv, ss)()
		}
	}

	cv.Traverse(tile)
}

// pathBelowCapture returns the part of path whose state was applied after
// the offscreen camera. Paths that never went through the camera fall back
// to the nodes below this scene, then to the whole path.
func (s *VolumeScene) pathBelowCapture(vs *ViewState, path scenegraph.NodePath) scenegraph.NodePath {
	if i := path.IndexOf(vs.camera); i >= 0 {
		return path[i+1:]
	}
	if i := path.IndexOf(s); i >= 0 {
		s.logger.Debugf("Tile path has no offscreen camera, pushing state below the scene")
		return path[i+1:]
	}
	s.logger.Debugf("Tile path has no offscreen camera or scene, pushing state for the whole path")
	return path
}
