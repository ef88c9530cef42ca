package wgpugfx

import (
	"fmt"

	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/scenegraph"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type target struct {
	texture  *wgpu.Texture
	view     *wgpu.TextureView
	sampler  *wgpu.Sampler
	width    int
	height   int
	revision uint64
}

func (t *target) release() {
	if t.sampler != nil {
		t.sampler.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
	*t = target{}
}

// stale reports whether the GPU side of tex has to be (re)built.
func (t *target) stale(tex *gfx.Texture2D) bool {
	if tex == nil {
		return false
	}
	return t.texture == nil ||
		t.width != tex.TextureWidth() ||
		t.height != tex.TextureHeight() ||
		t.revision != tex.ModifiedCount()
}

// TargetCache owns the color and depth textures a render-to-texture camera
// renders into. It is the camera's gfx.RenderingCache: releasing it drops
// the textures and the next Ensure allocates them at the current size.
type TargetCache struct {
	device *wgpu.Device
	color  target
	depth  target

	releases int
}

func NewTargetCache(device *wgpu.Device) *TargetCache {
	return &TargetCache{device: device}
}

// Factory returns a scenegraph.CullVisitor CacheFactory allocating on device.
func Factory(device *wgpu.Device) func(*scenegraph.Camera) gfx.RenderingCache {
	return func(*scenegraph.Camera) gfx.RenderingCache {
		return NewTargetCache(device)
	}
}

func (c *TargetCache) ColorView() *wgpu.TextureView { return c.color.view }
func (c *TargetCache) DepthView() *wgpu.TextureView { return c.depth.view }
func (c *TargetCache) ColorSampler() *wgpu.Sampler  { return c.color.sampler }
func (c *TargetCache) DepthSampler() *wgpu.Sampler  { return c.depth.sampler }

// Releases counts ReleaseGPUObjects calls.
func (c *TargetCache) Releases() int { return c.releases }

// NeedsRebuild reports whether Ensure would allocate for cam.
func (c *TargetCache) NeedsRebuild(cam *scenegraph.Camera) bool {
	return c.color.stale(cam.Attachment(scenegraph.ColorBuffer)) ||
		c.depth.stale(cam.Attachment(scenegraph.DepthBuffer))
}

// Ensure allocates GPU textures for the camera attachments that are missing,
// resized or dirtied since the last call.
func (c *TargetCache) Ensure(cam *scenegraph.Camera) error {
	if tex := cam.Attachment(scenegraph.ColorBuffer); c.color.stale(tex) {
		if err := c.build(&c.color, "volscene color", tex); err != nil {
			return err
		}
	}
	if tex := cam.Attachment(scenegraph.DepthBuffer); c.depth.stale(tex) {
		if err := c.build(&c.depth, "volscene depth", tex); err != nil {
			return err
		}
	}
	return nil
}

func (c *TargetCache) build(t *target, label string, tex *gfx.Texture2D) error {
	if c.device == nil {
		return fmt.Errorf("%s: no device", label)
	}
	format, err := TextureFormat(tex.Format())
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	width, height := tex.TextureWidth(), tex.TextureHeight()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%s: invalid size %dx%d", label, width, height)
	}

	t.release()
	t.texture, err = c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create %s texture: %w", label, err)
	}
	t.view, err = t.texture.CreateView(nil)
	if err != nil {
		t.release()
		return fmt.Errorf("create %s view: %w", label, err)
	}
	t.sampler, err = c.device.CreateSampler(samplerDescriptor(label, tex))
	if err != nil {
		t.release()
		return fmt.Errorf("create %s sampler: %w", label, err)
	}
	t.width, t.height, t.revision = width, height, tex.ModifiedCount()
	return nil
}

func (c *TargetCache) ReleaseGPUObjects() {
	c.color.release()
	c.depth.release()
	c.releases++
}

// EncodeClear records a pass that clears both targets: color to clearColor
// and depth to the far plane.
func (c *TargetCache) EncodeClear(encoder *wgpu.CommandEncoder, clearColor mgl32.Vec4) error {
	if c.color.view == nil && c.depth.view == nil {
		return nil
	}
	desc := &wgpu.RenderPassDescriptor{Label: "volscene offscreen clear"}
	if c.color.view != nil {
		desc.ColorAttachments = []wgpu.RenderPassColorAttachment{{
			View:       c.color.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: ClearColor(clearColor),
		}}
	}
	if c.depth.view != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            c.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}
	pass := encoder.BeginRenderPass(desc)
	return pass.End()
}
