// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageSurface is a CPU-based surface backed by an *image.RGBA.
//
// It has no size limit beyond available memory and never fails silently,
// so a probe against it always succeeds at scale 1.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	_ = s.Present(pix, 800, 600)
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width, height = max(1, width), max(1, height)
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface renders into the provided image directly until resized.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Resize replaces the backing image with a cleared one of the new size.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	s.width, s.height = width, height
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel sets the pixel at (x, y).
func (s *ImageSurface) WritePixel(x, y int, c color.RGBA) {
	if s.closed {
		return
	}
	b := s.img.Bounds()
	s.img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
}

// ReadPixel returns the pixel at (x, y).
func (s *ImageSurface) ReadPixel(x, y int) color.RGBA {
	if s.closed {
		return color.RGBA{}
	}
	b := s.img.Bounds()
	return s.img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// Present copies pix into the surface at the origin, clipped to the surface.
func (s *ImageSurface) Present(pix []byte, width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkPresent(pix, width, height); err != nil {
		return err
	}
	blit(s.img, pix, width, height)
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(result, result.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
//
// Pix holds the bytes given to Present and WritePixel verbatim, which are
// straight (non-premultiplied) RGBA like canvas ImageData. Read Pix
// directly; the image.RGBA color methods assume premultiplied alpha and
// misreport translucent pixels.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Capabilities returns the surface capabilities.
func (s *ImageSurface) Capabilities() Capabilities {
	return Capabilities{
		Constrained:  false,
		MaxDimension: 0, // Unlimited
		MaxArea:      0,
	}
}

// blit copies a tightly packed width×height RGBA8 buffer into dst at its
// origin, clipping rows and columns that fall outside dst.
func blit(dst *image.RGBA, pix []byte, width, height int) {
	b := dst.Bounds()
	rows := min(height, b.Dy())
	rowBytes := min(width, b.Dx()) * 4
	for y := range rows {
		src := pix[y*width*4 : y*width*4+rowBytes]
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[off:off+rowBytes], src)
	}
}

// Verify ImageSurface implements Surface interface.
var _ Surface = (*ImageSurface)(nil)
var _ CapableSurface = (*ImageSurface)(nil)
