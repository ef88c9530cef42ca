package volume

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// openSlice opens one slice file for LoadSlices.
var openSlice = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// LoadSlices reads a stack of 2D images (PNG, TIFF or BMP), one file per z
// slice, in the order given. Each file is closed before the next is opened.
func LoadSlices(paths []string) (*Image3D, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("load slices: no slices")
	}
	stack := sliceStack{depth: len(paths)}
	for i, p := range paths {
		if err := stack.addFile(i, p); err != nil {
			return nil, fmt.Errorf("load slices: %w", err)
		}
	}
	return stack.vol, nil
}

// DecodeSlices stacks decoded images into a volume, slice i at z = i. Every
// slice is scaled to the size of the first one. Image rows run top down, so
// row 0 lands on the highest y. Fully opaque slices carry their luminance as
// density.
func DecodeSlices(readers []io.Reader) (*Image3D, error) {
	if len(readers) == 0 {
		return nil, fmt.Errorf("decode slices: no slices")
	}
	stack := sliceStack{depth: len(readers)}
	for i, r := range readers {
		if err := stack.add(i, r); err != nil {
			return nil, err
		}
	}
	return stack.vol, nil
}

// sliceStack fills a volume one slice at a time. The volume is allocated
// from the size of the first slice.
type sliceStack struct {
	vol   *Image3D
	rect  image.Rectangle
	depth int
}

func (s *sliceStack) addFile(z int, path string) error {
	f, err := openSlice(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.add(z, f)
}

func (s *sliceStack) add(z int, r io.Reader) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode slice %d: %w", z, err)
	}
	sb := src.Bounds()
	if s.vol == nil {
		s.rect = image.Rect(0, 0, sb.Dx(), sb.Dy())
		if s.rect.Empty() {
			return fmt.Errorf("decode slice %d: empty image", z)
		}
		s.vol = NewImage3D(s.rect.Dx(), s.rect.Dy(), s.depth)
	}

	dst := image.NewNRGBA(s.rect)
	if sb.Dx() == s.rect.Dx() && sb.Dy() == s.rect.Dy() {
		draw.Draw(dst, s.rect, src, sb.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, s.rect, src, sb, draw.Src, nil)
	}
	fillSlice(s.vol, z, dst)
	return nil
}

func fillSlice(vol *Image3D, z int, slice *image.NRGBA) {
	opaque := slice.Opaque()
	for row := 0; row < vol.Height; row++ {
		y := vol.Height - 1 - row
		for x := 0; x < vol.Width; x++ {
			c := slice.NRGBAAt(x, row)
			density := c.A
			if opaque {
				density = color.GrayModel.Convert(c).(color.Gray).Y
			}
			vol.Set(x, y, z, [4]uint8{c.R, c.G, c.B, density})
		}
	}
}
