// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"log/slog"
)

// Limits are the undisclosed size limits of a simulated device.
// A zero field means no limit on that axis.
type Limits struct {
	// MaxDimension is the largest width or height the device can allocate.
	MaxDimension int

	// MaxArea is the largest width*height the device can allocate.
	MaxArea int
}

// Fits reports whether a width×height surface can be allocated.
func (l Limits) Fits(width, height int) bool {
	if l.MaxDimension > 0 && (width > l.MaxDimension || height > l.MaxDimension) {
		return false
	}
	if l.MaxArea > 0 && width*height > l.MaxArea {
		return false
	}
	return true
}

// LimitedSurface is a CPU surface that behaves like a browser canvas on a
// memory-constrained device.
//
// Resizing beyond its Limits succeeds, but no backing store is allocated:
// writes are dropped, reads return transparent black and Present is a silent
// no-op. Nothing reports the failure, so only a probe can detect it.
type LimitedSurface struct {
	limits      Limits
	constrained bool

	width  int
	height int
	img    *image.RGBA // nil while the current size exceeds limits

	logger *slog.Logger
	closed bool
}

// NewLimitedSurface creates a limited surface of the given size.
// The surface reports itself as constrained.
func NewLimitedSurface(width, height int, limits Limits) *LimitedSurface {
	s := &LimitedSurface{limits: limits, constrained: true}
	_ = s.Resize(max(1, width), max(1, height))
	return s
}

// SetLogger sets the logger that records silent allocation failures.
func (s *LimitedSurface) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Limits returns the limits the surface enforces.
func (s *LimitedSurface) Limits() Limits {
	return s.limits
}

// Width returns the surface width.
func (s *LimitedSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *LimitedSurface) Height() int {
	return s.height
}

// Allocated reports whether the current size has a backing store.
func (s *LimitedSurface) Allocated() bool {
	return s.img != nil
}

// Resize changes the size. It never fails for positive sizes, even when the
// size exceeds the limits.
func (s *LimitedSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}

	s.width, s.height = width, height
	if !s.limits.Fits(width, height) {
		s.img = nil
		if s.logger != nil {
			s.logger.Debug("limited surface: allocation dropped",
				slog.Int("width", width), slog.Int("height", height))
		}
		return nil
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel sets the pixel at (x, y) when the surface is allocated.
func (s *LimitedSurface) WritePixel(x, y int, c color.RGBA) {
	if s.closed || s.img == nil {
		return
	}
	s.img.SetRGBA(x, y, c)
}

// ReadPixel returns the pixel at (x, y), or transparent black when the
// surface is not allocated.
func (s *LimitedSurface) ReadPixel(x, y int) color.RGBA {
	if s.closed || s.img == nil {
		return color.RGBA{}
	}
	return s.img.RGBAAt(x, y)
}

// Present copies pix into the surface. When the surface is not allocated
// the image is silently discarded.
func (s *LimitedSurface) Present(pix []byte, width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkPresent(pix, width, height); err != nil {
		return err
	}
	if s.img == nil {
		if s.logger != nil {
			s.logger.Warn("limited surface: present dropped",
				slog.Int("width", width), slog.Int("height", height))
		}
		return nil
	}
	blit(s.img, pix, width, height)
	return nil
}

// Snapshot returns a copy of the surface contents. An unallocated surface
// yields a fully transparent image of the current size.
func (s *LimitedSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if s.img != nil {
		copy(result.Pix, s.img.Pix)
	}
	return result
}

// Close releases resources associated with the surface.
func (s *LimitedSurface) Close() error {
	s.closed = true
	s.img = nil
	return nil
}

// Capabilities reports the surface as constrained without disclosing its
// limits.
func (s *LimitedSurface) Capabilities() Capabilities {
	return Capabilities{Constrained: s.constrained}
}

var _ CapableSurface = (*LimitedSurface)(nil)
