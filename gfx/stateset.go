package gfx

import (
	"sort"
)

type Mode int

const (
	ModeDepthTest Mode = iota
	ModeLighting
	ModeBlend
	ModeCullFace
)

// RenderBinDetails selects the bin a drawable is sorted into. Bins with a
// higher number draw later; the name picks the sort order inside the bin.
type RenderBinDetails struct {
	Number int
	Name   string
}

const (
	RenderBinDefault     = "RenderBin"
	RenderBinDepthSorted = "DepthSortedBin"
)

// StateSet is one layer of render state pushed and popped during traversal.
type StateSet struct {
	program  *Program
	uniforms []*Uniform
	textures map[int]Texture
	modes    map[Mode]bool
	bin      *RenderBinDetails
}

func NewStateSet() *StateSet {
	return &StateSet{
		textures: make(map[int]Texture),
		modes:    make(map[Mode]bool),
	}
}

func (s *StateSet) SetAttribute(p *Program) { s.program = p }
func (s *StateSet) Program() *Program       { return s.program }

// AddUniform adds u, replacing any uniform with the same name.
func (s *StateSet) AddUniform(u *Uniform) {
	for i, existing := range s.uniforms {
		if existing.Name() == u.Name() {
			s.uniforms[i] = u
			return
		}
	}
	s.uniforms = append(s.uniforms, u)
}

func (s *StateSet) Uniform(name string) *Uniform {
	for _, u := range s.uniforms {
		if u.Name() == name {
			return u
		}
	}
	return nil
}

func (s *StateSet) Uniforms() []*Uniform { return s.uniforms }

func (s *StateSet) SetTextureAttribute(unit int, t Texture) {
	s.textures[unit] = t
}

func (s *StateSet) TextureAttribute(unit int) Texture {
	return s.textures[unit]
}

// TextureUnits returns the bound units in ascending order.
func (s *StateSet) TextureUnits() []int {
	units := make([]int, 0, len(s.textures))
	for u := range s.textures {
		units = append(units, u)
	}
	sort.Ints(units)
	return units
}

func (s *StateSet) SetMode(m Mode, on bool) { s.modes[m] = on }

func (s *StateSet) GetMode(m Mode) (on bool, set bool) {
	on, set = s.modes[m]
	return on, set
}

func (s *StateSet) SetRenderBinDetails(number int, name string) {
	s.bin = &RenderBinDetails{Number: number, Name: name}
}

func (s *StateSet) RenderBin() (RenderBinDetails, bool) {
	if s.bin == nil {
		return RenderBinDetails{}, false
	}
	return *s.bin, true
}

// EffectiveState is the result of applying a stack of state sets in order,
// later layers overriding earlier ones.
type EffectiveState struct {
	Program  *Program
	Uniforms map[string]*Uniform
	Textures map[int]Texture
	Modes    map[Mode]bool
	Bin      RenderBinDetails
}

func Flatten(stack []*StateSet) EffectiveState {
	es := EffectiveState{
		Uniforms: make(map[string]*Uniform),
		Textures: make(map[int]Texture),
		Modes:    make(map[Mode]bool),
		Bin:      RenderBinDetails{Number: 0, Name: RenderBinDefault},
	}
	for _, s := range stack {
		if s == nil {
			continue
		}
		if s.program != nil {
			es.Program = s.program
		}
		for _, u := range s.uniforms {
			es.Uniforms[u.Name()] = u
		}
		for unit, t := range s.textures {
			es.Textures[unit] = t
		}
		for m, on := range s.modes {
			es.Modes[m] = on
		}
		if s.bin != nil {
			es.Bin = *s.bin
		}
	}
	return es
}
