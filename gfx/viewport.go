package gfx

type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewViewport(x, y, width, height int) *Viewport {
	return &Viewport{X: x, Y: y, Width: width, Height: height}
}

func (v *Viewport) AspectRatio() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// RenderingCache holds backend objects (framebuffers, attachments) created
// for a camera. Releasing it forces the backend to rebuild them on next use.
type RenderingCache interface {
	ReleaseGPUObjects()
}
