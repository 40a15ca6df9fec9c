package ggscale

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	ggimage "github.com/gogpu/ggscale/internal/image"
)

// PixelBuffer is a tightly packed RGBA8 image: row-major, 4 bytes per pixel,
// stride width*4 with no padding.
//
// A PixelBuffer is treated as immutable once produced. Downsampling always
// returns a new buffer.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer creates a transparent buffer with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width, height = max(1, width), max(1, height)
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*ggimage.BytesPerPixel),
	}
}

// WrapPixels wraps pix without copying. It fails with ErrInvalidDimensions
// unless width and height are positive and len(pix) == width*height*4.
func WrapPixels(pix []byte, width, height int) (*PixelBuffer, error) {
	if err := validate(pix, width, height); err != nil {
		return nil, err
	}
	return &PixelBuffer{width: width, height: height, pix: pix}, nil
}

// FromImage copies img into a new buffer. Colors are converted to
// non-premultiplied RGBA8, the layout decoders produce.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok {
		// Converting through premultiplied color would round translucent
		// samples, so NRGBA rows are copied as-is.
		p := NewPixelBuffer(b.Dx(), b.Dy())
		rowBytes := b.Dx() * ggimage.BytesPerPixel
		for y := range b.Dy() {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.pix[y*rowBytes:(y+1)*rowBytes], src.Pix[off:off+rowBytes])
		}
		return p
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &PixelBuffer{width: b.Dx(), height: b.Dy(), pix: dst.Pix}
}

// validate checks that pix holds exactly width×height RGBA8 pixels.
func validate(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if want := width * height * ggimage.BytesPerPixel; len(pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrInvalidDimensions, width, height, want, len(pix))
	}
	return nil
}

// Width returns the width in pixels.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Pix returns the raw samples. Callers must not modify them.
func (p *PixelBuffer) Pix() []uint8 {
	return p.pix
}

// RGBAAt returns the samples at (x, y), or transparent black out of range.
func (p *PixelBuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * ggimage.BytesPerPixel
	return color.RGBA{R: p.pix[i+0], G: p.pix[i+1], B: p.pix[i+2], A: p.pix[i+3]}
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(p.pix))
	copy(pix, p.pix)
	return &PixelBuffer{width: p.width, height: p.height, pix: pix}
}

// ToImage copies the buffer into an image.NRGBA.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.pix)
	return img
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	c := p.RGBAAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
