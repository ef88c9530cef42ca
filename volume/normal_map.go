package volume

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ComputeNormalMap derives per-voxel normals from the density gradient by
// central differences. Normals point from dense towards empty space and
// are packed as n*0.5+0.5 into RGB; alpha keeps the source density.
// Voxels with no gradient get the packed zero vector.
func ComputeNormalMap(img *Image3D) *Image3D {
	out := NewImage3D(img.Width, img.Height, img.Depth)
	for z := 0; z < img.Depth; z++ {
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				n := Gradient(img, x, y, z).Mul(-1)
				if l := n.Len(); l > 0 {
					n = n.Mul(1 / l)
				}
				out.Set(x, y, z, [4]uint8{
					packUnit(n.X()),
					packUnit(n.Y()),
					packUnit(n.Z()),
					img.Density(x, y, z),
				})
			}
		}
	}
	return out
}

// Gradient is the central difference of density at x,y,z, in density
// units per voxel.
func Gradient(img *Image3D, x, y, z int) mgl32.Vec3 {
	d := func(x, y, z int) float32 { return float32(img.Density(x, y, z)) }
	return mgl32.Vec3{
		(d(x+1, y, z) - d(x-1, y, z)) * 0.5,
		(d(x, y+1, z) - d(x, y-1, z)) * 0.5,
		(d(x, y, z+1) - d(x, y, z-1)) * 0.5,
	}
}

// UnpackNormal reverses the packing of ComputeNormalMap.
func UnpackNormal(rgba [4]uint8) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(rgba[0])/255*2 - 1,
		float32(rgba[1])/255*2 - 1,
		float32(rgba[2])/255*2 - 1,
	}
}

func packUnit(v float32) uint8 {
	return uint8(math.Round(float64((v*0.5 + 0.5) * 255)))
}
