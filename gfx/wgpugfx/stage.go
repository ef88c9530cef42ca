package wgpugfx

import (
	"fmt"

	"github.com/gekko3d/volscene/scenegraph"

	"github.com/cogentcore/webgpu/wgpu"
)

// EncodePreRenderTargets walks the pre-render stages of stage depth first,
// makes sure every stage camera has its targets and records their clears.
// It returns the number of stages encoded.
func EncodePreRenderTargets(encoder *wgpu.CommandEncoder, stage *scenegraph.RenderStage) (int, error) {
	n := 0
	for _, pre := range stage.PreRenderStages {
		sub, err := EncodePreRenderTargets(encoder, pre)
		n += sub
		if err != nil {
			return n, err
		}
		if pre.Camera == nil {
			continue
		}
		cache, ok := pre.Camera.RenderingCache().(*TargetCache)
		if !ok {
			continue
		}
		if err := cache.Ensure(pre.Camera); err != nil {
			return n, fmt.Errorf("pre-render stage: %w", err)
		}
		if err := cache.EncodeClear(encoder, pre.ClearColor); err != nil {
			return n, fmt.Errorf("pre-render stage: %w", err)
		}
		n++
	}
	return n, nil
}
