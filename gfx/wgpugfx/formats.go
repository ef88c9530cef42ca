package wgpugfx

import (
	"fmt"

	"github.com/gekko3d/volscene/gfx"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureFormat maps a scene graph internal format to the WebGPU format the
// backend allocates for it.
func TextureFormat(f gfx.InternalFormat) (wgpu.TextureFormat, error) {
	switch f {
	case gfx.FormatRGBA:
		return wgpu.TextureFormatRGBA8Unorm, nil
	case gfx.FormatDepthComponent:
		return wgpu.TextureFormatDepth32Float, nil
	}
	return wgpu.TextureFormatUndefined, fmt.Errorf("unsupported internal format %s", f)
}

func filterMode(f gfx.FilterMode) wgpu.FilterMode {
	if f == gfx.FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

// addressMode maps wrap modes. Border clamping needs an optional device
// feature, so it falls back to edge clamping.
func addressMode(w gfx.WrapMode) wgpu.AddressMode {
	if w == gfx.WrapRepeat {
		return wgpu.AddressModeRepeat
	}
	return wgpu.AddressModeClampToEdge
}

func samplerDescriptor(label string, t *gfx.Texture2D) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  addressMode(t.WrapS),
		AddressModeV:  addressMode(t.WrapT),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filterMode(t.MagFilter),
		MinFilter:     filterMode(t.MinFilter),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	}
}

func ClearColor(c mgl32.Vec4) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
