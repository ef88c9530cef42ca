package scenegraph

import (
	"sort"

	"github.com/gekko3d/volscene/gfx"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// RenderLeaf is one drawable queued for rendering together with the state
// stack and matrices active when it was culled.
type RenderLeaf struct {
	Drawable   *Geometry
	States     []*gfx.StateSet
	ModelView  mgl64.Mat4
	Projection mgl64.Mat4
	Phase      Phase
	// Depth is the eye-space distance of the drawable's bound center.
	Depth float64
}

func (l RenderLeaf) State() gfx.EffectiveState {
	return gfx.Flatten(l.States)
}

type RenderBin struct {
	gfx.RenderBinDetails
	Leaves []RenderLeaf
}

// RenderStage collects everything one camera draws. Render-to-texture
// cameras culled inside it hang off PreRenderStages and PostRenderStages.
type RenderStage struct {
	Camera     *Camera
	Viewport   *gfx.Viewport
	ClearColor mgl32.Vec4
	ClearMask  ClearMask
	Projection mgl64.Mat4
	Near       float64
	Far        float64

	PreRenderStages  []*RenderStage
	PostRenderStages []*RenderStage

	bins map[int]*RenderBin
}

func NewRenderStage(cam *Camera, viewport *gfx.Viewport) *RenderStage {
	rs := &RenderStage{
		Camera:     cam,
		Viewport:   viewport,
		Projection: mgl64.Ident4(),
		bins:       make(map[int]*RenderBin),
	}
	if cam != nil {
		rs.ClearColor = cam.ClearColor()
		rs.ClearMask = cam.ClearMask()
		rs.Projection = cam.ProjectionMatrix()
	}
	return rs
}

func (rs *RenderStage) AddLeaf(leaf RenderLeaf) {
	details := leaf.State().Bin
	bin, ok := rs.bins[details.Number]
	if !ok {
		bin = &RenderBin{RenderBinDetails: details}
		rs.bins[details.Number] = bin
	}
	bin.Leaves = append(bin.Leaves, leaf)
}

// Bins returns the bins in draw order. Depth sorted bins are ordered back
// to front; other bins keep cull order.
func (rs *RenderStage) Bins() []*RenderBin {
	bins := make([]*RenderBin, 0, len(rs.bins))
	for _, b := range rs.bins {
		if b.Name == gfx.RenderBinDepthSorted {
			sort.SliceStable(b.Leaves, func(i, j int) bool {
				return b.Leaves[i].Depth > b.Leaves[j].Depth
			})
		}
		bins = append(bins, b)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Number < bins[j].Number })
	return bins
}

// Leaves returns all leaves in draw order.
func (rs *RenderStage) Leaves() []RenderLeaf {
	var out []RenderLeaf
	for _, b := range rs.Bins() {
		out = append(out, b.Leaves...)
	}
	return out
}

func (rs *RenderStage) NumLeaves() int {
	n := 0
	for _, b := range rs.bins {
		n += len(b.Leaves)
	}
	return n
}
