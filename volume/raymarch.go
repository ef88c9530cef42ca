package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxIterations caps the number of samples taken along one ray.
const MaxIterations = 2048

// ClipToUnitCube moves the eye point te along the ray towards t0 until it
// lies on the [0,1]^3 cube. Points already inside are returned unchanged.
func ClipToUnitCube(t0, te mgl32.Vec3) mgl32.Vec3 {
	inside := true
	for i := 0; i < 3; i++ {
		if te[i] < 0 || te[i] > 1 {
			inside = false
		}
	}
	if inside {
		return te
	}
	for i := 0; i < 3; i++ {
		if te[i] < 0 {
			r := -te[i] / (t0[i] - te[i])
			te = te.Add(t0.Sub(te).Mul(r))
		}
		if te[i] > 1 {
			r := (1 - te[i]) / (t0[i] - te[i])
			te = te.Add(t0.Sub(te).Mul(r))
		}
	}
	return te
}

// RayMarch composites the samples from the entry point t0 to the eye point
// te, both in texture space. It mirrors volume_frag.wgsl using nearest
// sampling and reports false where the shader would discard.
func RayMarch(base, normals *Image3D, t0, te mgl32.Vec3, p Property) (mgl32.Vec4, bool) {
	eyeDirection := te.Sub(t0)
	if l := eyeDirection.Len(); l > 0 {
		eyeDirection = eyeDirection.Mul(1 / l)
	}
	te = ClipToUnitCube(t0, te)

	steps := float32(2)
	if p.SampleDensity > 0 {
		steps = float32(math.Ceil(float64(te.Sub(t0).Len() / p.SampleDensity)))
	}
	steps = mgl32.Clamp(steps, 2, MaxIterations)

	delta := te.Sub(t0).Mul(1 / (steps - 1))
	texcoord := t0
	var frag mgl32.Vec4
	for i := 0; i < int(steps); i++ {
		nrm := sampleNearest(normals, texcoord)
		col := sampleNearest(base, texcoord)

		n := mgl32.Vec3{nrm[0]*2 - 1, nrm[1]*2 - 1, nrm[2]*2 - 1}
		lightScale := 0.1 + float32(math.Max(float64(n.Dot(eyeDirection)), 0))
		c := col.Vec3().Mul(lightScale)

		r := nrm[3] * p.Transparency
		if r > p.AlphaCutOff {
			rgb := frag.Vec3().Mul(1 - r).Add(c.Mul(r))
			frag = rgb.Vec4(frag[3] + r)
		}
		texcoord = texcoord.Add(delta)
	}

	if frag[3] > 1 {
		frag[3] = 1
	}
	return frag, frag[3] != 0
}

func sampleNearest(img *Image3D, tc mgl32.Vec3) mgl32.Vec4 {
	x := clampInt(int(tc.X()*float32(img.Width)), 0, img.Width-1)
	y := clampInt(int(tc.Y()*float32(img.Height)), 0, img.Height-1)
	z := clampInt(int(tc.Z()*float32(img.Depth)), 0, img.Depth-1)
	v := img.At(x, y, z)
	return mgl32.Vec4{float32(v[0]) / 255, float32(v[1]) / 255, float32(v[2]) / 255, float32(v[3]) / 255}
}
