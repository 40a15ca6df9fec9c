// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
)

// Surface is the render target for decoded images.
//
// A Surface can be resized to any size, written and read one pixel at a time,
// and given a whole RGBA8 buffer to display. Implementations backed by real
// devices may accept a size they cannot honor and fail silently afterwards;
// callers that care use the probe package to detect this.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	_ = s.Present(pix, 800, 600)
//	img := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Resize changes the surface dimensions and discards its content.
	Resize(width, height int) error

	// WritePixel sets the pixel at (x, y). Out-of-range writes are ignored.
	WritePixel(x, y int, c color.RGBA)

	// ReadPixel returns the pixel at (x, y), or transparent black when out
	// of range or when the surface holds no backing store.
	ReadPixel(x, y int) color.RGBA

	// Present displays a tightly packed RGBA8 buffer of width×height pixels
	// at the origin. len(pix) must be width*height*4. Implementations must
	// not retain pix after Present returns.
	Present(pix []byte, width, height int) error

	// Snapshot returns a copy of the current surface contents.
	// The returned image is a copy; modifications to it do not affect the surface.
	// Its Pix carries straight (non-premultiplied) RGBA bytes as presented,
	// despite the image.RGBA type.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Capabilities describes what a surface reports about itself.
//
// The limits are advisory. Devices that fail silently usually do not report
// their limits at all, which is why the renderer probes instead of trusting
// these values.
type Capabilities struct {
	// Constrained marks a surface on a device class known to impose
	// undisclosed size limits (typically mobile browsers).
	Constrained bool

	// MaxDimension is the largest width or height the surface reports
	// (0 = unknown/unlimited).
	MaxDimension int

	// MaxArea is the largest pixel count the surface reports
	// (0 = unknown/unlimited).
	MaxArea int
}

// CapableSurface is an optional interface for querying surface capabilities.
type CapableSurface interface {
	Surface

	// Capabilities returns the surface's capabilities.
	Capabilities() Capabilities
}

// Errors.
var (
	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidSize is returned for non-positive sizes or a pixel buffer
	// whose length does not match width*height*4.
	ErrInvalidSize = errors.New("surface: invalid size")
)

// checkPresent validates the arguments of Present.
func checkPresent(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return ErrInvalidSize
	}
	return nil
}
