package scenegraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0 with the normal pointing inside.
func ExtractFrustum(vp mgl64.Mat4) [6]mgl64.Vec4 {
	var planes [6]mgl64.Vec4

	row := func(r int) mgl64.Vec4 {
		return mgl64.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes[PlaneLeft] = r3.Add(r0)
	planes[PlaneRight] = r3.Sub(r0)
	planes[PlaneBottom] = r3.Add(r1)
	planes[PlaneTop] = r3.Sub(r1)
	// OpenGL-style -1..1 depth
	planes[PlaneNear] = r3.Add(r2)
	planes[PlaneFar] = r3.Sub(r2)

	for i := range planes {
		length := math.Sqrt(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}

// BoxInFrustum reports whether the box is at least partly inside every plane.
// For each plane the most inside corner is tested; if even that one is
// behind the plane the whole box is outside.
func BoxInFrustum(b BoundingBox, planes []mgl64.Vec4) bool {
	for _, plane := range planes {
		var p mgl64.Vec3
		for axis := 0; axis < 3; axis++ {
			if plane[axis] > 0 {
				p[axis] = b.Max[axis]
			} else {
				p[axis] = b.Min[axis]
			}
		}
		dist := plane[0]*p[0] + plane[1]*p[1] + plane[2]*p[2] + plane[3]
		if dist < 0 {
			return false
		}
	}
	return true
}
