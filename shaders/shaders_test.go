package shaders

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedStagesHaveEntryPoints(t *testing.T) {
	assert.Contains(t, BackdropVertexWGSL, "fn vs_main")
	assert.Contains(t, BackdropFragmentWGSL, "fn fs_main")
	assert.Contains(t, VolumeVertexWGSL, "fn vs_main")
	assert.Contains(t, VolumeFragmentWGSL, "fn fs_main")
}

func TestVolumeShaderIterationCap(t *testing.T) {
	want := "MAX_ITERATIONS : f32 = " + strconv.Itoa(MaxRayMarchIterations) + ".0"
	assert.True(t, strings.Contains(VolumeFragmentWGSL, want), "expected %q in volume_frag.wgsl", want)
	assert.Contains(t, VolumeFragmentWGSL, "discard")
}

func TestBackdropWritesDepth(t *testing.T) {
	assert.Contains(t, BackdropFragmentWGSL, "frag_depth")
	assert.Contains(t, BackdropFragmentWGSL, "viewportSize")
}
