package volume

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func graySlice(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestDecodeSlicesStacksAlongZ(t *testing.T) {
	top := graySlice(4, 3, 10)
	top.SetGray(1, 0, color.Gray{Y: 200})

	vol, err := DecodeSlices([]io.Reader{
		encodePNG(t, top),
		encodePNG(t, graySlice(4, 3, 77)),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, vol.Width)
	assert.Equal(t, 3, vol.Height)
	assert.Equal(t, 2, vol.Depth)

	assert.Equal(t, [4]uint8{200, 200, 200, 200}, vol.At(1, 2, 0), "row 0 maps to the top of the volume")
	assert.Equal(t, [4]uint8{10, 10, 10, 10}, vol.At(1, 0, 0))
	assert.Equal(t, uint8(77), vol.Density(3, 1, 1))
}

func TestDecodeSlicesKeepsAlphaAsDensity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 40})
	img.SetNRGBA(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})

	vol, err := DecodeSlices([]io.Reader{encodePNG(t, img)})
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 0, 0, 40}, vol.At(0, 1, 0))
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, vol.At(1, 0, 0))
	assert.Zero(t, vol.Density(1, 1, 0))
}

func TestDecodeSlicesScalesToFirstSlice(t *testing.T) {
	vol, err := DecodeSlices([]io.Reader{
		encodePNG(t, graySlice(8, 8, 50)),
		encodePNG(t, graySlice(2, 2, 50)),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, vol.Width)
	assert.Equal(t, 8, vol.Height)
	assert.InDelta(t, 50, int(vol.Density(4, 4, 1)), 1)
}

func TestDecodeSlicesErrors(t *testing.T) {
	_, err := DecodeSlices(nil)
	assert.Error(t, err)

	_, err = DecodeSlices([]io.Reader{strings.NewReader("not an image")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slice 0")
}

func TestLoadSlices(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, v := range []uint8{1, 2, 3} {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		require.NoError(t, os.WriteFile(p, encodePNG(t, graySlice(2, 2, v)).Bytes(), 0o644))
		paths = append(paths, p)
	}

	vol, err := LoadSlices(paths)
	require.NoError(t, err)
	assert.Equal(t, 3, vol.Depth)
	assert.Equal(t, uint8(3), vol.Density(0, 0, 2))

	_, err = LoadSlices([]string{filepath.Join(dir, "missing.png")})
	assert.Error(t, err)
}

type trackedFile struct {
	io.ReadCloser
	open *int
}

func (f trackedFile) Close() error {
	*f.open--
	return f.ReadCloser.Close()
}

func TestLoadSlicesClosesEachFileBeforeNext(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		require.NoError(t, os.WriteFile(p, encodePNG(t, graySlice(2, 2, uint8(i))).Bytes(), 0o644))
		paths = append(paths, p)
	}

	open, maxOpen := 0, 0
	orig := openSlice
	openSlice = func(path string) (io.ReadCloser, error) {
		f, err := orig(path)
		if err != nil {
			return nil, err
		}
		open++
		if open > maxOpen {
			maxOpen = open
		}
		return trackedFile{ReadCloser: f, open: &open}, nil
	}
	t.Cleanup(func() { openSlice = orig })

	vol, err := LoadSlices(paths)
	require.NoError(t, err)
	assert.Equal(t, 5, vol.Depth)
	assert.Equal(t, 1, maxOpen)
	assert.Zero(t, open)

	_, err = LoadSlices(nil)
	assert.Error(t, err)
}
