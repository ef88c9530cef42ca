package scenegraph

import (
	"github.com/gekko3d/volscene/gfx"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type BufferComponent int

const (
	ColorBuffer BufferComponent = iota
	DepthBuffer
)

type ClearMask uint32

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
)

type RenderOrder int

const (
	PreRender RenderOrder = iota
	NestedRender
	PostRender
)

type RenderTargetImplementation int

const (
	FrameBufferTarget RenderTargetImplementation = iota
	FrameBufferObjectTarget
)

// CullCallback replaces the default child traversal of a camera during the
// cull pass.
type CullCallback func(cam *Camera, cv CullTraverser)

// Camera is a group with its own view, projection and viewport. Pre and
// post render cameras get their own RenderStage during culling.
type Camera struct {
	Group

	viewMatrix       mgl64.Mat4
	projectionMatrix mgl64.Mat4
	referenceFrame   ReferenceFrame
	viewport         *gfx.Viewport
	clearColor       mgl32.Vec4
	clearMask        ClearMask
	renderOrder      RenderOrder
	renderTarget     RenderTargetImplementation
	attachments      map[BufferComponent]*gfx.Texture2D
	cullCallback     CullCallback
	renderingCache   gfx.RenderingCache
}

func NewCamera() *Camera {
	return &Camera{
		viewMatrix:       mgl64.Ident4(),
		projectionMatrix: mgl64.Ident4(),
		referenceFrame:   AbsoluteRF,
		clearColor:       mgl32.Vec4{0.2, 0.2, 0.4, 1.0},
		clearMask:        ClearColorBit | ClearDepthBit,
		renderOrder:      NestedRender,
		attachments:      make(map[BufferComponent]*gfx.Texture2D),
	}
}

func (c *Camera) SetViewMatrix(m mgl64.Mat4)       { c.viewMatrix = m }
func (c *Camera) ViewMatrix() mgl64.Mat4           { return c.viewMatrix }
func (c *Camera) SetProjectionMatrix(m mgl64.Mat4) { c.projectionMatrix = m }
func (c *Camera) ProjectionMatrix() mgl64.Mat4     { return c.projectionMatrix }

func (c *Camera) SetReferenceFrame(rf ReferenceFrame) { c.referenceFrame = rf }
func (c *Camera) ReferenceFrame() ReferenceFrame      { return c.referenceFrame }

func (c *Camera) SetViewport(x, y, width, height int) {
	c.viewport = gfx.NewViewport(x, y, width, height)
}

func (c *Camera) Viewport() *gfx.Viewport { return c.viewport }

func (c *Camera) SetClearColor(col mgl32.Vec4) { c.clearColor = col }
func (c *Camera) ClearColor() mgl32.Vec4       { return c.clearColor }

func (c *Camera) SetClearMask(m ClearMask) { c.clearMask = m }
func (c *Camera) ClearMask() ClearMask     { return c.clearMask }

func (c *Camera) SetRenderOrder(o RenderOrder) { c.renderOrder = o }
func (c *Camera) RenderOrder() RenderOrder     { return c.renderOrder }

func (c *Camera) SetRenderTargetImplementation(impl RenderTargetImplementation) {
	c.renderTarget = impl
}

func (c *Camera) RenderTargetImplementation() RenderTargetImplementation {
	return c.renderTarget
}

func (c *Camera) Attach(buffer BufferComponent, tex *gfx.Texture2D) {
	c.attachments[buffer] = tex
}

func (c *Camera) Attachment(buffer BufferComponent) *gfx.Texture2D {
	return c.attachments[buffer]
}

func (c *Camera) SetCullCallback(cb CullCallback) { c.cullCallback = cb }
func (c *Camera) CullCallback() CullCallback      { return c.cullCallback }

func (c *Camera) SetRenderingCache(rc gfx.RenderingCache) { c.renderingCache = rc }
func (c *Camera) RenderingCache() gfx.RenderingCache      { return c.renderingCache }

// Bound is empty for render-to-texture cameras: their content is not part of
// the enclosing scene's extent.
func (c *Camera) Bound() BoundingBox {
	if c.renderOrder == NestedRender {
		return c.Group.Bound()
	}
	return EmptyBoundingBox()
}
