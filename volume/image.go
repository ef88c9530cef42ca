package volume

// Image3D is a dense RGBA8 voxel grid. Alpha carries density, RGB the
// voxel color.
type Image3D struct {
	Width  int
	Height int
	Depth  int
	Data   []uint8
}

func NewImage3D(width, height, depth int) *Image3D {
	return &Image3D{
		Width:  width,
		Height: height,
		Depth:  depth,
		Data:   make([]uint8, width*height*depth*4),
	}
}

func (img *Image3D) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < img.Width && y < img.Height && z < img.Depth
}

func (img *Image3D) offset(x, y, z int) int {
	return ((z*img.Height+y)*img.Width + x) * 4
}

// Set writes one voxel. Out of range coordinates are ignored.
func (img *Image3D) Set(x, y, z int, rgba [4]uint8) {
	if !img.Contains(x, y, z) {
		return
	}
	o := img.offset(x, y, z)
	copy(img.Data[o:o+4], rgba[:])
}

// At returns the voxel at x,y,z, or zero outside the grid.
func (img *Image3D) At(x, y, z int) [4]uint8 {
	var v [4]uint8
	if !img.Contains(x, y, z) {
		return v
	}
	o := img.offset(x, y, z)
	copy(v[:], img.Data[o:o+4])
	return v
}

// Density returns the alpha channel at the clamped coordinate, so gradients
// at the border see the edge value repeated.
func (img *Image3D) Density(x, y, z int) uint8 {
	x = clampInt(x, 0, img.Width-1)
	y = clampInt(y, 0, img.Height-1)
	z = clampInt(z, 0, img.Depth-1)
	return img.Data[img.offset(x, y, z)+3]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
