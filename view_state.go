package volscene

import (
	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/scenegraph"
	"github.com/gekko3d/volscene/shaders"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	UniformColorTexture = "colorTexture"
	UniformDepthTexture = "depthTexture"
	UniformViewportSize = "viewportSize"

	colorTextureUnit = 0
	depthTextureUnit = 1
)

// Stage is the step of the per-frame pipeline a ViewState is in.
type Stage int

const (
	StageIdle Stage = iota
	StageCapturingOffscreen
	StageFusingDepth
	StageDrawingBackdrop
	StageReplayingTiles
)

func (s Stage) String() string {
	switch s {
	case StageCapturingOffscreen:
		return "CapturingOffscreen"
	case StageFusingDepth:
		return "FusingDepth"
	case StageDrawingBackdrop:
		return "DrawingBackdrop"
	case StageReplayingTiles:
		return "ReplayingTiles"
	}
	return "Idle"
}

// TileRequest is a volume tile seen during the offscreen pass, with the
// traversal state needed to draw it again afterwards.
type TileRequest struct {
	NodePath   scenegraph.NodePath
	Projection mgl64.Mat4
	ModelView  mgl64.Mat4
	Frame      uint64
}

// ViewState is the per-context cache of a VolumeScene: offscreen targets,
// the offscreen camera, the backdrop quad and the tiles of the current
// frame. It is only touched by the traversal of its own context.
type ViewState struct {
	contextID uuid.UUID

	colorTexture *gfx.Texture2D
	depthTexture *gfx.Texture2D
	camera       *scenegraph.Camera

	backdrop         *scenegraph.Geode
	backdropGeometry *scenegraph.Geometry
	sharedState      *gfx.StateSet
	viewportSize     *gfx.Uniform

	tiles    []TileRequest
	frame    uint64
	stage    Stage
	captured DepthRange

	Profiler *Profiler
}

func (vs *ViewState) ContextID() uuid.UUID                   { return vs.contextID }
func (vs *ViewState) ColorTexture() *gfx.Texture2D           { return vs.colorTexture }
func (vs *ViewState) DepthTexture() *gfx.Texture2D           { return vs.depthTexture }
func (vs *ViewState) Camera() *scenegraph.Camera             { return vs.camera }
func (vs *ViewState) Backdrop() *scenegraph.Geode            { return vs.backdrop }
func (vs *ViewState) BackdropGeometry() *scenegraph.Geometry { return vs.backdropGeometry }
func (vs *ViewState) SharedStateSet() *gfx.StateSet          { return vs.sharedState }
func (vs *ViewState) ViewportSizeUniform() *gfx.Uniform      { return vs.viewportSize }
func (vs *ViewState) Frame() uint64                          { return vs.frame }
func (vs *ViewState) Stage() Stage                           { return vs.stage }
func (vs *ViewState) CapturedDepthRange() DepthRange         { return vs.captured }

// Tiles returns a copy of the current frame's tile requests.
func (vs *ViewState) Tiles() []TileRequest {
	out := make([]TileRequest, len(vs.tiles))
	copy(out, vs.tiles)
	return out
}

// beginFrame drops the previous frame's tiles.
func (vs *ViewState) beginFrame() {
	vs.frame++
	for i := range vs.tiles {
		vs.tiles[i] = TileRequest{}
	}
	vs.tiles = vs.tiles[:0]
}

func (vs *ViewState) addTile(req TileRequest) {
	req.Frame = vs.frame
	vs.tiles = append(vs.tiles, req)
}

// newViewState allocates the offscreen targets at width x height and builds
// the camera, backdrop and shared state around them. The camera's cull
// callback is installed by the owning VolumeScene.
func newViewState(id uuid.UUID, width, height int, cfg Config, program *gfx.Program) *ViewState {
	vs := &ViewState{
		contextID: id,
		captured:  EmptyDepthRange(),
		Profiler:  NewProfiler(),
	}

	vs.colorTexture = gfx.NewTexture2D(width, height, gfx.FormatRGBA)
	vs.colorTexture.SetFilter(gfx.FilterLinear, gfx.FilterLinear)
	vs.colorTexture.SetWrap(gfx.WrapClampToEdge, gfx.WrapClampToEdge)

	vs.depthTexture = gfx.NewTexture2D(width, height, gfx.FormatDepthComponent)
	vs.depthTexture.SetFilter(gfx.FilterLinear, gfx.FilterLinear)
	vs.depthTexture.SetWrap(gfx.WrapClampToBorder, gfx.WrapClampToBorder)
	vs.depthTexture.BorderColor = mgl32.Vec4(cfg.DepthBorderColor)

	cam := scenegraph.NewCamera()
	cam.SetName("volscene.offscreen")
	cam.Attach(scenegraph.ColorBuffer, vs.colorTexture)
	cam.Attach(scenegraph.DepthBuffer, vs.depthTexture)
	cam.SetClearMask(scenegraph.ClearColorBit | scenegraph.ClearDepthBit)
	cam.SetRenderOrder(scenegraph.PreRender)
	cam.SetRenderTargetImplementation(scenegraph.FrameBufferObjectTarget)
	cam.SetReferenceFrame(scenegraph.RelativeRF)
	cam.SetProjectionMatrix(mgl64.Ident4())
	cam.SetViewMatrix(mgl64.Ident4())
	cam.SetViewport(0, 0, width, height)
	vs.camera = cam

	geom := scenegraph.NewGeometry()
	geom.SetVertexArray(make([]mgl32.Vec3, 4))
	geom.SetColorArray([]mgl32.Vec4{{1, 1, 1, 1}}, scenegraph.BindOverall)
	geom.SetTexCoordArray(0, []mgl32.Vec2{{0, 1}, {0, 0}, {1, 1}, {1, 0}})
	geom.AddPrimitiveSet(scenegraph.DrawArrays{Mode: scenegraph.TriangleStrip, First: 0, Count: 4})

	geomState := geom.GetOrCreateStateSet()
	geomState.SetMode(gfx.ModeDepthTest, true)
	geomState.SetMode(gfx.ModeLighting, false)
	geomState.SetMode(gfx.ModeBlend, true)
	geomState.SetRenderBinDetails(cfg.BackdropBinNumber, cfg.BackdropBinName)
	geomState.SetAttribute(program)
	vs.backdropGeometry = geom

	vs.viewportSize = gfx.NewVec2Uniform(UniformViewportSize, mgl32.Vec2(cfg.InitialViewportSize))
	shared := gfx.NewStateSet()
	shared.AddUniform(gfx.NewIntUniform(UniformColorTexture, colorTextureUnit))
	shared.AddUniform(gfx.NewIntUniform(UniformDepthTexture, depthTextureUnit))
	shared.SetTextureAttribute(colorTextureUnit, vs.colorTexture)
	shared.SetTextureAttribute(depthTextureUnit, vs.depthTexture)
	shared.AddUniform(vs.viewportSize)
	vs.sharedState = shared

	geode := scenegraph.NewGeode()
	geode.SetName("volscene.backdrop")
	geode.SetCullingActive(false)
	geode.AddDrawable(geom)
	geode.SetStateSet(shared)
	vs.backdrop = geode

	return vs
}

// NewBackdropProgram builds the two-stage program that composites the
// captured color and depth.
func NewBackdropProgram() *gfx.Program {
	return gfx.NewProgram("volscene.backdrop",
		gfx.NewShader(gfx.StageVertex, "backdrop_vert.wgsl", shaders.BackdropVertexWGSL),
		gfx.NewShader(gfx.StageFragment, "backdrop_frag.wgsl", shaders.BackdropFragmentWGSL),
	)
}
