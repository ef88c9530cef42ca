package scenegraph

import (
	"github.com/gekko3d/volscene/gfx"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type PrimitiveMode int

const (
	Triangles PrimitiveMode = iota
	TriangleStrip
)

type DrawArrays struct {
	Mode  PrimitiveMode
	First int
	Count int
}

type ArrayBinding int

const (
	BindOff ArrayBinding = iota
	BindOverall
	BindPerVertex
)

// Geometry is a drawable leaf. Vertex data is kept in float32 since it is
// what gets uploaded. The bound is computed when vertices are set and again
// on the first Bound call after DirtyBound.
type Geometry struct {
	vertices     []mgl32.Vec3
	colors       []mgl32.Vec4
	colorBinding ArrayBinding
	texCoords    map[int][]mgl32.Vec2
	primitives   []DrawArrays
	stateSet     *gfx.StateSet

	bound      BoundingBox
	boundDirty bool
}

func NewGeometry() *Geometry {
	return &Geometry{
		texCoords:  make(map[int][]mgl32.Vec2),
		boundDirty: true,
	}
}

// SetVertexArray replaces the vertices and recomputes the bound, so culling
// geometry shared between contexts only reads it.
func (g *Geometry) SetVertexArray(v []mgl32.Vec3) {
	g.vertices = v
	g.bound = vertexBound(v)
	g.boundDirty = false
}

func (g *Geometry) VertexArray() []mgl32.Vec3 { return g.vertices }

func (g *Geometry) SetColorArray(c []mgl32.Vec4, binding ArrayBinding) {
	g.colors = c
	g.colorBinding = binding
}

func (g *Geometry) ColorArray() ([]mgl32.Vec4, ArrayBinding) { return g.colors, g.colorBinding }

func (g *Geometry) SetTexCoordArray(unit int, tc []mgl32.Vec2) {
	g.texCoords[unit] = tc
}

func (g *Geometry) TexCoordArray(unit int) []mgl32.Vec2 { return g.texCoords[unit] }

func (g *Geometry) AddPrimitiveSet(p DrawArrays) {
	g.primitives = append(g.primitives, p)
}

func (g *Geometry) PrimitiveSets() []DrawArrays { return g.primitives }

func (g *Geometry) StateSet() *gfx.StateSet { return g.stateSet }

func (g *Geometry) GetOrCreateStateSet() *gfx.StateSet {
	if g.stateSet == nil {
		g.stateSet = gfx.NewStateSet()
	}
	return g.stateSet
}

// DirtyBound must be called after vertices are modified in place.
func (g *Geometry) DirtyBound() {
	g.boundDirty = true
}

func (g *Geometry) BoundDirty() bool { return g.boundDirty }

func (g *Geometry) Bound() BoundingBox {
	if g.boundDirty {
		g.bound = vertexBound(g.vertices)
		g.boundDirty = false
	}
	return g.bound
}

func vertexBound(verts []mgl32.Vec3) BoundingBox {
	b := EmptyBoundingBox()
	for _, v := range verts {
		b.ExpandByPoint(mgl64.Vec3{float64(v.X()), float64(v.Y()), float64(v.Z())})
	}
	return b
}

// NewBoxGeometry builds a closed box as a triangle list with texture
// coordinates spanning the unit cube.
func NewBoxGeometry(minB, maxB mgl32.Vec3) *Geometry {
	c := [8]mgl32.Vec3{
		{minB.X(), minB.Y(), minB.Z()},
		{maxB.X(), minB.Y(), minB.Z()},
		{maxB.X(), maxB.Y(), minB.Z()},
		{minB.X(), maxB.Y(), minB.Z()},
		{minB.X(), minB.Y(), maxB.Z()},
		{maxB.X(), minB.Y(), maxB.Z()},
		{maxB.X(), maxB.Y(), maxB.Z()},
		{minB.X(), maxB.Y(), maxB.Z()},
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}

	size := maxB.Sub(minB)
	texCoord := func(p mgl32.Vec3) mgl32.Vec2 {
		// only x and y are carried; the volume shader derives z from texgen
		tx, ty := float32(0), float32(0)
		if size.X() != 0 {
			tx = (p.X() - minB.X()) / size.X()
		}
		if size.Y() != 0 {
			ty = (p.Y() - minB.Y()) / size.Y()
		}
		return mgl32.Vec2{tx, ty}
	}

	verts := make([]mgl32.Vec3, 0, 36)
	tcs := make([]mgl32.Vec2, 0, 36)
	for _, f := range faces {
		for _, idx := range [6]int{f[0], f[1], f[2], f[0], f[2], f[3]} {
			verts = append(verts, c[idx])
			tcs = append(tcs, texCoord(c[idx]))
		}
	}

	g := NewGeometry()
	g.SetVertexArray(verts)
	g.SetTexCoordArray(0, tcs)
	g.SetColorArray([]mgl32.Vec4{{1, 1, 1, 1}}, BindOverall)
	g.AddPrimitiveSet(DrawArrays{Mode: Triangles, First: 0, Count: len(verts)})
	return g
}
