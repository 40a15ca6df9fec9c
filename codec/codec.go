// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec decodes encoded images into the tightly packed RGBA8 buffers
// ggscale renders.
//
// Supported formats are PNG, JPEG, GIF, TIFF, BMP, WebP and rgbz, a
// zstd-compressed raw RGBA container defined by this package. Multi-page
// TIFF files are read one directory at a time through TIFF.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP
)

// MaxPixels is the largest image Decode accepts. Larger images are rejected
// from their header before any pixel memory is allocated.
const MaxPixels = 1 << 28

// Errors.
var (
	// ErrEmpty is returned when there is no data to decode.
	ErrEmpty = errors.New("codec: empty input")

	// ErrTooLarge is returned for images with more than MaxPixels pixels.
	ErrTooLarge = errors.New("codec: image too large")
)

// Image is a decoded image: non-premultiplied RGBA8, row-major, stride
// Width*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte

	// Format is the name the format registered with, e.g. "tiff".
	Format string
}

// DecodeError reports a failure to decode an image.
type DecodeError struct {
	// Format is the detected format, or empty if none was recognized.
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return "codec: decode: " + e.Err.Error()
	}
	return "codec: decode " + e.Format + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode detects the format of data and decodes it to RGBA8.
// Failures are returned as *DecodeError.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: ErrEmpty}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	if err := checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return FromImage(img, format), nil
}

// checkSize rejects dimensions that are non-positive or exceed MaxPixels.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return nil
}

// FromImage converts img to an Image tagged with format.
func FromImage(img image.Image, format string) *Image {
	b := img.Bounds()
	dst, ok := img.(*image.NRGBA)
	if !ok || dst.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return &Image{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix[:b.Dx()*b.Dy()*4], Format: format}
}

// NRGBA returns the image as an *image.NRGBA sharing its pixels.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}
