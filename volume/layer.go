package volume

import (
	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/scenegraph"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a density image placed in model space. Locator maps the unit
// texture cube onto the layer's extent.
type Layer struct {
	Image   *Image3D
	Locator mgl64.Mat4

	texture       *gfx.Texture3D
	normalTexture *gfx.Texture3D
}

func NewLayer(img *Image3D, locator mgl64.Mat4) *Layer {
	return &Layer{Image: img, Locator: locator}
}

// NewLayerWithExtent places img in the box [minB, maxB].
func NewLayerWithExtent(img *Image3D, minB, maxB mgl64.Vec3) *Layer {
	size := maxB.Sub(minB)
	locator := mgl64.Translate3D(minB.X(), minB.Y(), minB.Z()).Mul4(mgl64.Scale3D(size.X(), size.Y(), size.Z()))
	return NewLayer(img, locator)
}

// Texture returns the base texture, created on first use.
func (l *Layer) Texture() *gfx.Texture3D {
	if l.texture == nil {
		l.texture = newVolumeTexture(l.Image)
	}
	return l.texture
}

// NormalTexture returns the gradient normal map, computed on first use.
func (l *Layer) NormalTexture() *gfx.Texture3D {
	if l.normalTexture == nil {
		l.normalTexture = newVolumeTexture(ComputeNormalMap(l.Image))
	}
	return l.normalTexture
}

// Dirty marks the image as changed. Textures are re-uploaded and the
// normal map recomputed.
func (l *Layer) Dirty() {
	if l.texture != nil {
		l.texture.Data = l.Image.Data
		l.texture.DirtyTextureObject()
	}
	if l.normalTexture != nil {
		l.normalTexture.Data = ComputeNormalMap(l.Image).Data
		l.normalTexture.DirtyTextureObject()
	}
}

// TexGen maps model space into texture space.
func (l *Layer) TexGen() mgl64.Mat4 {
	return l.Locator.Inv()
}

func (l *Layer) Bound() scenegraph.BoundingBox {
	unit := scenegraph.BoundingBox{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	return unit.Transform(l.Locator)
}

func newVolumeTexture(img *Image3D) *gfx.Texture3D {
	t := gfx.NewTexture3D(img.Width, img.Height, img.Depth, img.Data)
	t.MinFilter, t.MagFilter = gfx.FilterLinear, gfx.FilterLinear
	t.WrapS, t.WrapT, t.WrapR = gfx.WrapClampToEdge, gfx.WrapClampToEdge, gfx.WrapClampToEdge
	return t
}
