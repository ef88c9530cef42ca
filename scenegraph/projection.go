package scenegraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultNearFarRatio = 0.0005

	nearPullRatio   = 0.98
	farPushRatio    = 1.02
	orthoSpanMargin = 0.02
)

// IsOrthographic reports whether p has the affine bottom row of an
// orthographic projection.
func IsOrthographic(p mgl64.Mat4) bool {
	const eps = 1e-9
	return math.Abs(p.At(3, 0)) < eps && math.Abs(p.At(3, 1)) < eps && math.Abs(p.At(3, 2)) < eps
}

// NearFarFromProjection recovers the eye-space near and far distances encoded
// in an OpenGL style projection matrix.
func NearFarFromProjection(p mgl64.Mat4) (near, far float64) {
	a, b := p.At(2, 2), p.At(2, 3)
	if IsOrthographic(p) {
		return (b + 1) / a, (b - 1) / a
	}
	return b / (a - 1), b / (a + 1)
}

// ClampProjectionMatrix rewrites the depth mapping of p so that it spans
// [near, far], with a small margin on each side. Nothing is changed and
// false is returned when far is not beyond near.
func ClampProjectionMatrix(p *mgl64.Mat4, near, far, nearFarRatio float64) bool {
	if !(far > near) || math.IsInf(near, 0) || math.IsInf(far, 0) {
		return false
	}

	if IsOrthographic(*p) {
		span := (far - near) * orthoSpanMargin
		n := near - span
		f := far + span
		p.Set(2, 2, -2/(f-n))
		p.Set(2, 3, -(f+n)/(f-n))
		return true
	}

	n := near * nearPullRatio
	f := far * farPushRatio
	if n < f*nearFarRatio {
		n = f * nearFarRatio
	}
	p.Set(2, 2, -(f+n)/(f-n))
	p.Set(2, 3, -2*f*n/(f-n))
	return true
}
