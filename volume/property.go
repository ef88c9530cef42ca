package volume

import "github.com/gekko3d/volscene/gfx"

const (
	UniformBaseTexture   = "baseTexture"
	UniformNormalMap     = "normalMap"
	UniformSampleDensity = "sampleDensity"
	UniformTransparency  = "transparency"
	UniformAlphaCutOff   = "alphaCutOff"
)

// Property holds the ray-march parameters of a volume.
type Property struct {
	// SampleDensity is the step length in texture space.
	SampleDensity float32
	Transparency  float32
	// Samples with alpha at or below AlphaCutOff are skipped.
	AlphaCutOff float32
}

func DefaultProperty() Property {
	return Property{
		SampleDensity: 0.005,
		Transparency:  1.0,
		AlphaCutOff:   0.02,
	}
}

// Apply writes the property uniforms into ss, updating existing uniforms in
// place.
func (p Property) Apply(ss *gfx.StateSet) {
	setFloat(ss, UniformSampleDensity, p.SampleDensity)
	setFloat(ss, UniformTransparency, p.Transparency)
	setFloat(ss, UniformAlphaCutOff, p.AlphaCutOff)
}

func setFloat(ss *gfx.StateSet, name string, v float32) {
	if u := ss.Uniform(name); u != nil && u.Type() == gfx.UniformFloat {
		u.SetFloat(v)
		return
	}
	ss.AddUniform(gfx.NewFloatUniform(name, v))
}
