package shaders

import (
	_ "embed"
)

// Backdrop composite: draws the captured offscreen color and depth as a
// far-plane quad so later tiles depth-test against the opaque scene.

//go:embed backdrop_vert.wgsl
var BackdropVertexWGSL string

//go:embed backdrop_frag.wgsl
var BackdropFragmentWGSL string

// Volume ray-march over a 3-D density/normal texture pair.

//go:embed volume_vert.wgsl
var VolumeVertexWGSL string

//go:embed volume_frag.wgsl
var VolumeFragmentWGSL string

// MaxRayMarchIterations bounds the sample loop in volume_frag.wgsl.
const MaxRayMarchIterations = 2048
