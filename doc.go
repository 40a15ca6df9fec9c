// Package ggscale renders large decoded images onto surfaces whose maximum
// size is unknown and device dependent.
//
// # Overview
//
// Some devices, mobile browsers in particular, accept a canvas of any size
// and then silently fail to allocate it: drawing becomes a no-op and no error
// is raised. ggscale detects this and shrinks the image until it fits.
//
// Rendering has two parts:
//   - Probing (package probe): resize the surface to (width/s, height/s),
//     write an opaque pixel, read it back. The smallest s that reads back
//     opaque is the scale.
//   - Downsampling (Downsample): shrink the image by s with a box filter,
//     averaging each s×s block. Edge blocks are narrower when the
//     dimensions are not multiples of s.
//
// # Quick Start
//
//	import "github.com/gogpu/ggscale"
//
//	s := surface.ProfileMobile.New(1, 1)
//	w, h, err := ggscale.RenderAdaptive(ctx, pix, width, height, s)
//
// Full-capability devices skip the probe and get the image at full size.
// The decision comes from a DeviceSignal; by default the surface is asked.
//
// # Architecture
//
// The library is organized into:
//   - Public API: PixelBuffer, Renderer, RenderAdaptive, Downsample, Probe
//   - probe: the bounded scale search
//   - surface: render targets (CPU image, limit-simulating, HTML canvas)
//   - codec: decoding to RGBA8, TIFF directories and tags, raw containers
//   - Internal: image (box filter), parallel (worker pool)
//
// # Pixel Format
//
// Buffers are RGBA8, row-major, 4 bytes per pixel, no row padding. Channel
// averages are truncated, alpha included.
package ggscale
