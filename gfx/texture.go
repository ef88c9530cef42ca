package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

type InternalFormat int

const (
	FormatRGBA InternalFormat = iota
	FormatDepthComponent
)

func (f InternalFormat) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatDepthComponent:
		return "DEPTH_COMPONENT"
	}
	return "UNKNOWN"
}

type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

type WrapMode int

const (
	WrapClampToEdge WrapMode = iota
	WrapClampToBorder
	WrapRepeat
)

// Texture is anything that can be bound to a texture unit of a StateSet.
type Texture interface {
	Dimensions() (width, height, depth int)
	Format() InternalFormat
	ModifiedCount() uint64
}

// Texture2D describes a two dimensional texture. The GPU object backing it is
// owned by a backend; DirtyTextureObject tells that backend to rebuild it.
type Texture2D struct {
	width         int
	height        int
	format        InternalFormat
	MinFilter     FilterMode
	MagFilter     FilterMode
	WrapS         WrapMode
	WrapT         WrapMode
	BorderColor   mgl32.Vec4
	modifiedCount uint64
}

func NewTexture2D(width, height int, format InternalFormat) *Texture2D {
	return &Texture2D{
		width:  width,
		height: height,
		format: format,
	}
}

func (t *Texture2D) SetTextureSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *Texture2D) TextureWidth() int  { return t.width }
func (t *Texture2D) TextureHeight() int { return t.height }

func (t *Texture2D) Dimensions() (int, int, int) { return t.width, t.height, 1 }
func (t *Texture2D) Format() InternalFormat      { return t.format }

func (t *Texture2D) SetFilter(minFilter, magFilter FilterMode) {
	t.MinFilter = minFilter
	t.MagFilter = magFilter
}

func (t *Texture2D) SetWrap(s, tw WrapMode) {
	t.WrapS = s
	t.WrapT = tw
}

// DirtyTextureObject marks the GPU object stale.
func (t *Texture2D) DirtyTextureObject() {
	t.modifiedCount++
}

func (t *Texture2D) ModifiedCount() uint64 { return t.modifiedCount }

// Texture3D is an RGBA8 volume texture. Data is laid out x fastest, then y, then z.
type Texture3D struct {
	width         int
	height        int
	depth         int
	Data          []uint8
	MinFilter     FilterMode
	MagFilter     FilterMode
	WrapS         WrapMode
	WrapT         WrapMode
	WrapR         WrapMode
	modifiedCount uint64
}

func NewTexture3D(width, height, depth int, data []uint8) *Texture3D {
	return &Texture3D{
		width:  width,
		height: height,
		depth:  depth,
		Data:   data,
	}
}

func (t *Texture3D) Dimensions() (int, int, int) { return t.width, t.height, t.depth }
func (t *Texture3D) Format() InternalFormat      { return FormatRGBA }
func (t *Texture3D) ModifiedCount() uint64       { return t.modifiedCount }

func (t *Texture3D) DirtyTextureObject() {
	t.modifiedCount++
}
