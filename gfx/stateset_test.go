package gfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenLaterLayersOverride(t *testing.T) {
	base := NewStateSet()
	base.AddUniform(NewIntUniform("colorTexture", 0))
	base.AddUniform(NewFloatUniform("transparency", 1))
	base.SetMode(ModeLighting, true)

	prog := NewProgram("volume", NewShader(StageVertex, "v", ""), NewShader(StageFragment, "f", ""))
	top := NewStateSet()
	top.SetAttribute(prog)
	top.AddUniform(NewFloatUniform("transparency", 0.25))
	top.SetMode(ModeLighting, false)
	top.SetRenderBinDetails(10, RenderBinDepthSorted)

	es := Flatten([]*StateSet{base, nil, top})

	require.Equal(t, prog, es.Program)
	assert.Equal(t, int32(0), es.Uniforms["colorTexture"].Int())
	assert.Equal(t, float32(0.25), es.Uniforms["transparency"].Float())
	assert.False(t, es.Modes[ModeLighting])
	assert.Equal(t, RenderBinDetails{Number: 10, Name: RenderBinDepthSorted}, es.Bin)
}

func TestFlattenEmptyStackUsesDefaultBin(t *testing.T) {
	es := Flatten(nil)
	assert.Nil(t, es.Program)
	assert.Equal(t, RenderBinDefault, es.Bin.Name)
	assert.Equal(t, 0, es.Bin.Number)
}

func TestAddUniformReplacesByName(t *testing.T) {
	ss := NewStateSet()
	ss.AddUniform(NewVec2Uniform("viewportSize", mgl32.Vec2{1280, 1024}))
	ss.AddUniform(NewVec2Uniform("viewportSize", mgl32.Vec2{640, 480}))

	require.Len(t, ss.Uniforms(), 1)
	assert.Equal(t, mgl32.Vec2{640, 480}, ss.Uniform("viewportSize").Vec2())
	assert.Nil(t, ss.Uniform("missing"))
}

func TestUniformModifiedCountOnlyOnChange(t *testing.T) {
	u := NewVec2Uniform("viewportSize", mgl32.Vec2{1, 1})
	u.SetVec2(mgl32.Vec2{1, 1})
	assert.Equal(t, uint64(0), u.ModifiedCount())
	u.SetVec2(mgl32.Vec2{2, 1})
	assert.Equal(t, uint64(1), u.ModifiedCount())
}

func TestTextureUnitsSorted(t *testing.T) {
	ss := NewStateSet()
	ss.SetTextureAttribute(3, NewTexture2D(1, 1, FormatRGBA))
	ss.SetTextureAttribute(0, NewTexture2D(1, 1, FormatRGBA))
	ss.SetTextureAttribute(1, NewTexture2D(1, 1, FormatDepthComponent))
	assert.Equal(t, []int{0, 1, 3}, ss.TextureUnits())
}

func TestTexture2DResizeAndDirty(t *testing.T) {
	tex := NewTexture2D(512, 512, FormatRGBA)
	tex.SetTextureSize(800, 600)
	tex.DirtyTextureObject()

	w, h, d := tex.Dimensions()
	assert.Equal(t, []int{800, 600, 1}, []int{w, h, d})
	assert.Equal(t, uint64(1), tex.ModifiedCount())
}

func TestProgramIgnoresNilShader(t *testing.T) {
	p := NewProgram("p")
	p.AddShader(nil)
	p.AddShader(NewShader(StageFragment, "f", "src"))
	assert.Len(t, p.Shaders(), 1)
	assert.Nil(t, p.Shader(StageVertex))
	assert.Equal(t, "f", p.Shader(StageFragment).Name)
}
