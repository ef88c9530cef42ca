package scenegraph

import (
	"math"

	"github.com/gekko3d/volscene/gfx"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// CullVisitor walks a scene for one viewer and fills a RenderStage. It
// keeps the projection, model-view and state-set stacks, computes the
// near/far range of what it queued and culls against the view frustum.
type CullVisitor struct {
	NodePathStack

	id    uuid.UUID
	phase Phase

	projectionStack []mgl64.Mat4
	modelViewStack  []mgl64.Mat4
	stateStack      []*gfx.StateSet

	camera *Camera
	stage  *RenderStage
	near   float64
	far    float64

	NearFarRatio   float64
	ComputeNearFar bool
	// CacheFactory, when set, creates the rendering cache of render-to-texture
	// cameras the first time they are culled.
	CacheFactory func(cam *Camera) gfx.RenderingCache
}

func NewCullVisitor() *CullVisitor {
	return NewCullVisitorWithID(uuid.New())
}

func NewCullVisitorWithID(id uuid.UUID) *CullVisitor {
	return &CullVisitor{
		id:             id,
		near:           math.Inf(1),
		far:            math.Inf(-1),
		NearFarRatio:   DefaultNearFarRatio,
		ComputeNearFar: true,
	}
}

func (cv *CullVisitor) Kind() VisitorKind    { return KindCull }
func (cv *CullVisitor) ContextID() uuid.UUID { return cv.id }

func (cv *CullVisitor) Phase() Phase     { return cv.phase }
func (cv *CullVisitor) SetPhase(p Phase) { cv.phase = p }

func (cv *CullVisitor) ProjectionMatrix() mgl64.Mat4 {
	if len(cv.projectionStack) == 0 {
		return mgl64.Ident4()
	}
	return cv.projectionStack[len(cv.projectionStack)-1]
}

func (cv *CullVisitor) ModelViewMatrix() mgl64.Mat4 {
	if len(cv.modelViewStack) == 0 {
		return mgl64.Ident4()
	}
	return cv.modelViewStack[len(cv.modelViewStack)-1]
}

func (cv *CullVisitor) PushProjectionMatrix(m mgl64.Mat4) {
	cv.projectionStack = append(cv.projectionStack, m)
}

func (cv *CullVisitor) PopProjectionMatrix() {
	if n := len(cv.projectionStack); n > 0 {
		cv.projectionStack = cv.projectionStack[:n-1]
	}
}

// PushModelViewMatrix pushes m. RelativeRF composes it with the current top,
// the absolute frames push it as is.
func (cv *CullVisitor) PushModelViewMatrix(m mgl64.Mat4, rf ReferenceFrame) {
	if rf == RelativeRF {
		m = cv.ModelViewMatrix().Mul4(m)
	}
	cv.modelViewStack = append(cv.modelViewStack, m)
}

func (cv *CullVisitor) PopModelViewMatrix() {
	if n := len(cv.modelViewStack); n > 0 {
		cv.modelViewStack = cv.modelViewStack[:n-1]
	}
}

func (cv *CullVisitor) PushStateSet(s *gfx.StateSet) {
	cv.stateStack = append(cv.stateStack, s)
}

func (cv *CullVisitor) PopStateSet() {
	if n := len(cv.stateStack); n > 0 {
		cv.stateStack[n-1] = nil
		cv.stateStack = cv.stateStack[:n-1]
	}
}

func (cv *CullVisitor) ProjectionDepth() int { return len(cv.projectionStack) }
func (cv *CullVisitor) ModelViewDepth() int  { return len(cv.modelViewStack) }
func (cv *CullVisitor) StateSetDepth() int   { return len(cv.stateStack) }

func (cv *CullVisitor) Viewport() *gfx.Viewport {
	if cv.stage == nil {
		return nil
	}
	return cv.stage.Viewport
}

func (cv *CullVisitor) CurrentCamera() *Camera { return cv.camera }

func (cv *CullVisitor) CurrentRenderStage() *RenderStage { return cv.stage }

func (cv *CullVisitor) CalculatedNearPlane() float64 { return cv.near }
func (cv *CullVisitor) CalculatedFarPlane() float64  { return cv.far }

func (cv *CullVisitor) SetCalculatedNearPlane(v float64) { cv.near = v }
func (cv *CullVisitor) SetCalculatedFarPlane(v float64)  { cv.far = v }

func (cv *CullVisitor) Traverse(n Node) { n.Traverse(cv) }

// Cull runs a full cull pass of root as seen by cam and returns the filled
// render stage. The stage projection is clamped to the computed near/far.
func (cv *CullVisitor) Cull(cam *Camera, root Node) *RenderStage {
	cv.path = cv.path[:0]
	cv.projectionStack = cv.projectionStack[:0]
	cv.modelViewStack = cv.modelViewStack[:0]
	cv.stateStack = cv.stateStack[:0]
	cv.phase = PhaseDefault
	cv.near, cv.far = math.Inf(1), math.Inf(-1)

	stage := NewRenderStage(cam, cam.Viewport())
	cv.stage = stage
	cv.camera = cam

	defer ScopedProjection(cv, cam.ProjectionMatrix())()
	defer ScopedModelView(cv, cam.ViewMatrix(), AbsoluteRF)()
	if ss := cam.StateSet(); ss != nil {
		defer ScopedStateSet(cv, ss)()
	}

	Accept(root, cv)

	stage.Near, stage.Far = cv.near, cv.far
	if cv.ComputeNearFar {
		ClampProjectionMatrix(&stage.Projection, cv.near, cv.far, cv.NearFarRatio)
	}
	return stage
}

func (cv *CullVisitor) Apply(n Node) {
	if n.CullingActive() && cv.isCulled(n.Bound()) {
		return
	}
	if ss := n.StateSet(); ss != nil {
		defer ScopedStateSet(cv, ss)()
	}

	switch node := n.(type) {
	case *Camera:
		cv.applyCamera(node)
	case *Transform:
		cv.applyTransform(node)
	case *Geode:
		cv.applyGeode(node)
	default:
		n.Traverse(cv)
	}
}

func (cv *CullVisitor) applyTransform(t *Transform) {
	defer ScopedModelView(cv, t.Matrix, t.ReferenceFrame)()
	t.Traverse(cv)
}

func (cv *CullVisitor) applyGeode(g *Geode) {
	for _, d := range g.Drawables() {
		if g.CullingActive() && cv.isCulled(d.Bound()) {
			continue
		}
		cv.AddDrawable(d)
	}
}

func (cv *CullVisitor) applyCamera(cam *Camera) {
	proj, view := cam.ProjectionMatrix(), cam.ViewMatrix()
	rf := AbsoluteRF
	if cam.ReferenceFrame() == RelativeRF {
		proj = cv.ProjectionMatrix().Mul4(proj)
		rf = RelativeRF
	}
	defer ScopedProjection(cv, proj)()
	defer ScopedModelView(cv, view, rf)()

	if cam.RenderOrder() == NestedRender {
		cv.traverseCamera(cam)
		return
	}

	if cam.RenderingCache() == nil && cv.CacheFactory != nil {
		cam.SetRenderingCache(cv.CacheFactory(cam))
	}

	viewport := cam.Viewport()
	if viewport == nil {
		viewport = cv.Viewport()
	}
	stage := NewRenderStage(cam, viewport)
	stage.Projection = proj

	parentStage, parentCamera := cv.stage, cv.camera
	parentNear, parentFar := cv.near, cv.far
	cv.stage, cv.camera = stage, cam
	cv.near, cv.far = math.Inf(1), math.Inf(-1)
	defer func() {
		stage.Near, stage.Far = cv.near, cv.far
		if cv.ComputeNearFar {
			ClampProjectionMatrix(&stage.Projection, cv.near, cv.far, cv.NearFarRatio)
		}
		cv.stage, cv.camera = parentStage, parentCamera
		cv.near, cv.far = parentNear, parentFar
	}()

	if parentStage != nil {
		if cam.RenderOrder() == PreRender {
			parentStage.PreRenderStages = append(parentStage.PreRenderStages, stage)
		} else {
			parentStage.PostRenderStages = append(parentStage.PostRenderStages, stage)
		}
	}

	cv.traverseCamera(cam)
}

func (cv *CullVisitor) traverseCamera(cam *Camera) {
	if cb := cam.CullCallback(); cb != nil {
		cb(cam, cv)
		return
	}
	cam.Traverse(cv)
}

// AddDrawable queues d under the current matrices and state stack and
// widens the calculated near/far range to include it.
func (cv *CullVisitor) AddDrawable(d *Geometry) {
	mv := cv.ModelViewMatrix()
	if ss := d.StateSet(); ss != nil {
		defer ScopedStateSet(cv, ss)()
	}

	bound := d.Bound()
	depth := 0.0
	if bound.Valid() {
		depth = -mv.Mul4x1(bound.Center().Vec4(1)).Z()
		if cv.ComputeNearFar {
			eye := bound.Transform(mv)
			dNear, dFar := -eye.Max.Z(), -eye.Min.Z()
			if dFar >= 0 {
				cv.near = math.Min(cv.near, dNear)
				cv.far = math.Max(cv.far, dFar)
			}
		}
	}

	states := make([]*gfx.StateSet, len(cv.stateStack))
	copy(states, cv.stateStack)

	if cv.stage == nil {
		cv.stage = NewRenderStage(cv.camera, nil)
	}
	cv.stage.AddLeaf(RenderLeaf{
		Drawable:   d,
		States:     states,
		ModelView:  mv,
		Projection: cv.ProjectionMatrix(),
		Phase:      cv.phase,
		Depth:      depth,
	})
}

// isCulled tests a model-space bound against the current frustum. While
// near/far are being computed only the side planes are used, since the
// projection's depth range is not final yet.
func (cv *CullVisitor) isCulled(b BoundingBox) bool {
	if !b.Valid() {
		return false
	}
	planes := ExtractFrustum(cv.ProjectionMatrix().Mul4(cv.ModelViewMatrix()))
	test := planes[:]
	if cv.ComputeNearFar {
		test = planes[:PlaneNear]
	}
	return !BoxInFrustum(b, test)
}
