package volscene

import (
	"github.com/gekko3d/volscene/gfx"
	"github.com/gekko3d/volscene/scenegraph"
	"github.com/gekko3d/volscene/shaders"
	"github.com/gekko3d/volscene/volume"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	baseTextureUnit = 2
	normalMapUnit   = 3
)

// VolumeTile draws one volume layer with the ray-march program. Under a
// VolumeScene it only registers itself during the offscreen pass and
// draws when replayed; anywhere else it draws directly.
type VolumeTile struct {
	scenegraph.Group

	layer    *volume.Layer
	property volume.Property

	geode    *scenegraph.Geode
	geometry *scenegraph.Geometry
}

func NewVolumeTile(layer *volume.Layer, property volume.Property) *VolumeTile {
	t := &VolumeTile{layer: layer, property: property}

	b := layer.Bound()
	t.geometry = scenegraph.NewBoxGeometry(
		mgl32.Vec3{float32(b.Min.X()), float32(b.Min.Y()), float32(b.Min.Z())},
		mgl32.Vec3{float32(b.Max.X()), float32(b.Max.Y()), float32(b.Max.Z())},
	)

	ss := t.geometry.GetOrCreateStateSet()
	ss.SetAttribute(NewVolumeProgram())
	ss.AddUniform(gfx.NewIntUniform(volume.UniformBaseTexture, baseTextureUnit))
	ss.AddUniform(gfx.NewIntUniform(volume.UniformNormalMap, normalMapUnit))
	ss.SetTextureAttribute(baseTextureUnit, layer.Texture())
	ss.SetTextureAttribute(normalMapUnit, layer.NormalTexture())
	ss.SetMode(gfx.ModeBlend, true)
	ss.SetMode(gfx.ModeCullFace, true)
	ss.SetRenderBinDetails(DefaultConfig().BackdropBinNumber, gfx.RenderBinDepthSorted)
	property.Apply(ss)

	t.geode = scenegraph.NewGeode()
	t.geode.SetName("volscene.tile")
	t.geode.AddDrawable(t.geometry)
	return t
}

// NewVolumeProgram builds the ray-march program.
func NewVolumeProgram() *gfx.Program {
	return gfx.NewProgram("volscene.volume",
		gfx.NewShader(gfx.StageVertex, "volume_vert.wgsl", shaders.VolumeVertexWGSL),
		gfx.NewShader(gfx.StageFragment, "volume_frag.wgsl", shaders.VolumeFragmentWGSL),
	)
}

func (t *VolumeTile) Layer() *volume.Layer           { return t.layer }
func (t *VolumeTile) Property() volume.Property      { return t.property }
func (t *VolumeTile) Geometry() *scenegraph.Geometry { return t.geometry }

func (t *VolumeTile) SetProperty(p volume.Property) {
	t.property = p
	p.Apply(t.geometry.GetOrCreateStateSet())
}

func (t *VolumeTile) Bound() scenegraph.BoundingBox {
	b := t.layer.Bound()
	b.ExpandByBox(t.Group.Bound())
	return b
}

func (t *VolumeTile) Traverse(v scenegraph.Visitor) {
	cv, ok := scenegraph.AsCullTraverser(v)
	if !ok {
		t.Group.Traverse(v)
		return
	}

	if cv.Phase() == scenegraph.PhaseRenderToTexture {
		if reg := findTileRegistry(cv.NodePath()); reg != nil {
			reg.TileVisited(cv, t)
			return
		}
	}
	t.draw(cv)
}

func (t *VolumeTile) draw(cv scenegraph.CullTraverser) {
	scenegraph.Accept(t.geode, cv)
	t.Group.Traverse(cv)
}

// findTileRegistry returns the closest registry above the last node of
// path.
func findTileRegistry(path scenegraph.NodePath) TileRegistry {
	for i := len(path) - 2; i >= 0; i-- {
		if reg, ok := path[i].(TileRegistry); ok {
			return reg
		}
	}
	return nil
}
