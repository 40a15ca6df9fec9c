// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"syscall/js"
)

// CanvasSurface draws into an HTML canvas element through its 2D context.
//
// Mobile browsers cap the canvas area without reporting it; past the cap
// the canvas silently stops drawing. Use the probe package before presenting
// large images on such devices.
type CanvasSurface struct {
	canvas      js.Value
	ctx         js.Value
	constrained bool
	closed      bool
}

// NewCanvasSurface wraps canvas. constrained is what Capabilities reports,
// typically derived from the user agent.
func NewCanvasSurface(canvas js.Value, constrained bool) (*CanvasSurface, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, errors.New("surface: canvas is undefined")
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil, errors.New("surface: 2d context unavailable")
	}
	return &CanvasSurface{canvas: canvas, ctx: ctx, constrained: constrained}, nil
}

// Canvas returns the wrapped canvas element.
func (s *CanvasSurface) Canvas() js.Value {
	return s.canvas
}

// Width returns the canvas width.
func (s *CanvasSurface) Width() int {
	return s.canvas.Get("width").Int()
}

// Height returns the canvas height.
func (s *CanvasSurface) Height() int {
	return s.canvas.Get("height").Int()
}

// Resize sets the canvas size, which also clears it.
func (s *CanvasSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	s.canvas.Set("width", width)
	s.canvas.Set("height", height)
	return nil
}

// WritePixel fills the 1×1 rectangle at (x, y).
func (s *CanvasSurface) WritePixel(x, y int, c color.RGBA) {
	if s.closed {
		return
	}
	s.ctx.Set("fillStyle", fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, float64(c.A)/255))
	s.ctx.Call("fillRect", x, y, 1, 1)
}

// ReadPixel reads the pixel at (x, y) back from the canvas.
func (s *CanvasSurface) ReadPixel(x, y int) color.RGBA {
	if s.closed {
		return color.RGBA{}
	}
	data := s.ctx.Call("getImageData", x, y, 1, 1).Get("data")
	return color.RGBA{
		R: uint8(data.Index(0).Int()),
		G: uint8(data.Index(1).Int()),
		B: uint8(data.Index(2).Int()),
		A: uint8(data.Index(3).Int()),
	}
}

// Present puts pix onto the canvas at the origin.
func (s *CanvasSurface) Present(pix []byte, width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkPresent(pix, width, height); err != nil {
		return err
	}
	imageData := s.ctx.Call("createImageData", width, height)
	js.CopyBytesToJS(imageData.Get("data"), pix)
	s.ctx.Call("putImageData", imageData, 0, 0)
	return nil
}

// Snapshot reads the whole canvas back.
func (s *CanvasSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	w, h := s.Width(), s.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}
	data := s.ctx.Call("getImageData", 0, 0, w, h).Get("data")
	js.CopyBytesToGo(img.Pix, data)
	return img
}

// DataURL returns the canvas contents as a PNG data URL.
func (s *CanvasSurface) DataURL() string {
	return s.canvas.Call("toDataURL").String()
}

// Close detaches the surface from the canvas.
func (s *CanvasSurface) Close() error {
	s.closed = true
	return nil
}

// Capabilities reports whether the canvas lives on a constrained device.
func (s *CanvasSurface) Capabilities() Capabilities {
	return Capabilities{Constrained: s.constrained}
}

var _ CapableSurface = (*CanvasSurface)(nil)
