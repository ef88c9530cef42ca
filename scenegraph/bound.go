package scenegraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox is an axis aligned box. The zero value is not empty; use
// EmptyBoundingBox to start an accumulation.
type BoundingBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b BoundingBox) Valid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

func (b *BoundingBox) ExpandByPoint(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

func (b *BoundingBox) ExpandByBox(o BoundingBox) {
	if !o.Valid() {
		return
	}
	b.ExpandByPoint(o.Min)
	b.ExpandByPoint(o.Max)
}

func (b BoundingBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BoundingBox) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Transform returns the conservative box enclosing b after applying m.
func (b BoundingBox) Transform(m mgl64.Mat4) BoundingBox {
	if !b.Valid() {
		return b
	}
	out := EmptyBoundingBox()
	for _, c := range b.Corners() {
		out.ExpandByPoint(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}
