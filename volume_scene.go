package volscene

import (
	"sync"

	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/scenegraph"

	"github.com/google/uuid"
)

// TileRegistry is implemented by nodes that collect volume tiles during
// their offscreen pass. VolumeTile looks it up on the node path.
type TileRegistry interface {
	TileVisited(v scenegraph.Visitor, tile scenegraph.Node)
}

// VolumeScene is a group that renders its children into an offscreen
// color/depth pair, draws that as a backdrop and then replays every
// volume tile found below it against the backdrop. Non-cull visitors see a
// plain group.
type VolumeScene struct {
	scenegraph.Group

	cfg     Config
	logger  Logger
	program *gfx.Program

	mu    sync.Mutex
	views map[uuid.UUID]*ViewState
}

func NewVolumeScene() *VolumeScene {
	return NewVolumeSceneWithConfig(DefaultConfig(), nil)
}

// NewVolumeSceneWithConfig creates a scene with cfg. A nil logger
// discards all output.
func NewVolumeSceneWithConfig(cfg Config, logger Logger) *VolumeScene {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &VolumeScene{
		cfg:     cfg,
		logger:  logger,
		program: NewBackdropProgram(),
		views:   make(map[uuid.UUID]*ViewState),
	}
}

func (s *VolumeScene) Config() Config                { return s.cfg }
func (s *VolumeScene) Logger() Logger                { return s.logger }
func (s *VolumeScene) BackdropProgram() *gfx.Program { return s.program }

// ViewState returns the cached state of a traversal context, or nil.
func (s *VolumeScene) ViewState(id uuid.UUID) *ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[id]
}

func (s *VolumeScene) NumViewStates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Release drops every ViewState and frees the GPU objects of their
// offscreen cameras.
func (s *VolumeScene) Release() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[uuid.UUID]*ViewState)
	s.mu.Unlock()

	for id, vs := range views {
		if rc := vs.camera.RenderingCache(); rc != nil {
			rc.ReleaseGPUObjects()
			vs.camera.SetRenderingCache(nil)
		}
		s.logger.Debugf("Released ViewState %s", id)
	}
}

func (s *VolumeScene) Traverse(v scenegraph.Visitor) {
	cv, ok := scenegraph.AsCullTraverser(v)
	if !ok {
		s.Group.Traverse(v)
		return
	}
	s.cull(cv)
}

// TileVisited records tile for replay. It is a no-op for visitors that
// have no ViewState in this scene.
func (s *VolumeScene) TileVisited(v scenegraph.Visitor, tile scenegraph.Node) {
	cv, ok := scenegraph.AsCullTraverser(v)
	if !ok {
		return
	}
	vs := s.ViewState(cv.ContextID())
	if vs == nil {
		return
	}
	vs.addTile(TileRequest{
		NodePath:   cv.NodePath().Clone(),
		Projection: cv.ProjectionMatrix(),
		ModelView:  cv.ModelViewMatrix(),
	})
}

func (s *VolumeScene) cull(cv scenegraph.CullTraverser) {
	vs := s.viewState(cv)
	defer vs.Profiler.Scope("frame")()
	defer scenegraph.ScopedPhase(cv, cv.Phase())()
	defer func() { vs.stage = StageIdle }()

	projection := cv.ProjectionMatrix()
	modelView := cv.ModelViewMatrix()
	vs.beginFrame()

	captured := s.captureOffscreen(cv, vs)

	vs.stage = StageFusingDepth
	_, projection = s.applyFusion(cv, captured, projection)

	s.drawBackdrop(cv, vs, modelView, projection)
	s.replayTiles(cv, vs)
	vs.Profiler.SetCount("tiles", len(vs.tiles))
}

// viewState returns the ViewState of cv's context, creating it on first
// use. Only the map access is locked; targets are built outside the lock.
func (s *VolumeScene) viewState(cv scenegraph.CullTraverser) *ViewState {
	id := cv.ContextID()

	s.mu.Lock()
	vs, ok := s.views[id]
	s.mu.Unlock()
	if ok {
		return vs
	}

	width, height := s.cfg.DefaultTextureWidth, s.cfg.DefaultTextureHeight
	if vp := cv.Viewport(); vp != nil && vp.Width > 0 && vp.Height > 0 {
		width, height = vp.Width, vp.Height
	}
	s.logger.Debugf("Creating ViewState for context %s (%dx%d)", id, width, height)

	vs = newViewState(id, width, height, s.cfg, s.program)
	vs.camera.SetCullCallback(func(_ *scenegraph.Camera, rtt scenegraph.CullTraverser) {
		s.Group.Traverse(rtt)
		vs.captured = DepthRange{Near: rtt.CalculatedNearPlane(), Far: rtt.CalculatedFarPlane()}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.views[id]; ok {
		return existing
	}
	s.views[id] = vs
	return vs
}
