package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere fills a sphere in the image
func Sphere(img *Image3D, center mgl32.Vec3, radius float32, rgba [4]uint8) {
	r2 := radius * radius
	lo, hi := bounds(center, mgl32.Vec3{radius, radius, radius})

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				dx := float32(x) - center.X() + 0.5
				dy := float32(y) - center.Y() + 0.5
				dz := float32(z) - center.Z() + 0.5
				if dx*dx+dy*dy+dz*dz <= r2 {
					img.Set(x, y, z, rgba)
				}
			}
		}
	}
}

// SoftSphere fills a sphere whose density falls off linearly from the
// center to zero at radius.
func SoftSphere(img *Image3D, center mgl32.Vec3, radius float32, rgb [3]uint8) {
	lo, hi := bounds(center, mgl32.Vec3{radius, radius, radius})

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				d := p.Sub(center).Len() / radius
				if d >= 1 {
					continue
				}
				a := uint8(math.Round(float64((1 - d) * 255)))
				img.Set(x, y, z, [4]uint8{rgb[0], rgb[1], rgb[2], a})
			}
		}
	}
}

// Cube fills an axis aligned box in the image
func Cube(img *Image3D, minB, maxB mgl32.Vec3, rgba [4]uint8) {
	minI := [3]int{
		int(math.Floor(float64(minB.X()))),
		int(math.Floor(float64(minB.Y()))),
		int(math.Floor(float64(minB.Z()))),
	}
	maxI := [3]int{
		int(math.Floor(float64(maxB.X()))),
		int(math.Floor(float64(maxB.Y()))),
		int(math.Floor(float64(maxB.Z()))),
	}

	for x := minI[0]; x <= maxI[0]; x++ {
		for y := minI[1]; y <= maxI[1]; y++ {
			for z := minI[2]; z <= maxI[2]; z++ {
				img.Set(x, y, z, rgba)
			}
		}
	}
}

// Cone fills a cone in the image
// base is the center of the base circle, tip is the apex
func Cone(img *Image3D, base, tip mgl32.Vec3, radius float32, rgba [4]uint8) {
	heightVec := tip.Sub(base)
	height := heightVec.Len()
	if height < 1e-5 {
		return
	}
	axis := heightVec.Normalize()

	maxDim := float32(math.Max(float64(radius), float64(height)))
	lo, hi := bounds(base.Add(tip).Mul(0.5), mgl32.Vec3{maxDim, maxDim, maxDim})

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				v := p.Sub(base)
				distOnAxis := v.Dot(axis)
				if distOnAxis < 0 || distOnAxis > height {
					continue
				}

				radiusAtDist := radius * (1.0 - distOnAxis/height)
				distToAxis2 := v.LenSqr() - distOnAxis*distOnAxis
				if distToAxis2 <= radiusAtDist*radiusAtDist {
					img.Set(x, y, z, rgba)
				}
			}
		}
	}
}

// Pyramid fills a square pyramid in the image
func Pyramid(img *Image3D, base, tip mgl32.Vec3, size float32, rgba [4]uint8) {
	heightVec := tip.Sub(base)
	height := heightVec.Len()
	if height < 1e-5 {
		return
	}
	axis := heightVec.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(axis.Dot(up))) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := axis.Cross(up).Normalize()
	forward := right.Cross(axis).Normalize()

	maxDim := float32(math.Max(float64(size), float64(height)))
	lo, hi := bounds(base.Add(tip).Mul(0.5), mgl32.Vec3{maxDim, maxDim, maxDim})
	halfSize := size * 0.5

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				v := p.Sub(base)
				distOnAxis := v.Dot(axis)
				if distOnAxis < 0 || distOnAxis > height {
					continue
				}

				s := halfSize * (1.0 - distOnAxis/height)
				dx := v.Dot(right)
				dz := v.Dot(forward)
				if math.Abs(float64(dx)) <= float64(s) && math.Abs(float64(dz)) <= float64(s) {
					img.Set(x, y, z, rgba)
				}
			}
		}
	}
}

func bounds(center, extent mgl32.Vec3) (lo, hi [3]int) {
	for i := 0; i < 3; i++ {
		lo[i] = int(math.Floor(float64(center[i] - extent[i])))
		hi[i] = int(math.Ceil(float64(center[i] + extent[i])))
	}
	return lo, hi
}
