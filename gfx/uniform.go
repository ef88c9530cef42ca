package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

type UniformType int

const (
	UniformInt UniformType = iota
	UniformFloat
	UniformVec2
)

// Uniform is a named shader constant. The modified count lets a backend skip
// uploads when nothing changed.
type Uniform struct {
	name     string
	typ      UniformType
	i        int32
	f        float32
	v2       mgl32.Vec2
	modified uint64
}

func NewIntUniform(name string, v int32) *Uniform {
	return &Uniform{name: name, typ: UniformInt, i: v}
}

func NewFloatUniform(name string, v float32) *Uniform {
	return &Uniform{name: name, typ: UniformFloat, f: v}
}

func NewVec2Uniform(name string, v mgl32.Vec2) *Uniform {
	return &Uniform{name: name, typ: UniformVec2, v2: v}
}

func (u *Uniform) Name() string      { return u.name }
func (u *Uniform) Type() UniformType { return u.typ }
func (u *Uniform) Int() int32        { return u.i }
func (u *Uniform) Float() float32    { return u.f }
func (u *Uniform) Vec2() mgl32.Vec2  { return u.v2 }

func (u *Uniform) ModifiedCount() uint64 {
	return u.modified
}

func (u *Uniform) SetInt(v int32) {
	if u.typ == UniformInt && u.i == v {
		return
	}
	u.typ, u.i = UniformInt, v
	u.modified++
}

func (u *Uniform) SetFloat(v float32) {
	if u.typ == UniformFloat && u.f == v {
		return
	}
	u.typ, u.f = UniformFloat, v
	u.modified++
}

func (u *Uniform) SetVec2(v mgl32.Vec2) {
	if u.typ == UniformVec2 && u.v2 == v {
		return
	}
	u.typ, u.v2 = UniformVec2, v
	u.modified++
}
