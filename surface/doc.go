// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the render targets that decoded images are
// presented on.
//
// A Surface is a resizable pixel sink with single-pixel write and read-back.
// Read-back is what lets the probe package detect devices that accept a
// canvas size and then silently fail to allocate it.
//
// # Surface Types
//
//   - ImageSurface: CPU rendering into *image.RGBA, no limits
//   - LimitedSurface: CPU surface that silently drops work above its Limits,
//     for simulating mobile browsers and for tests
//   - CanvasSurface: an HTML canvas (js/wasm builds only)
//
// # Profiles
//
// LimitedSurface instances are usually created from a Profile:
//
//	p, _ := surface.LookupProfile("mobile")
//	s := p.New(1, 1)
//
// Every built-in profile is also registered as "limited:<name>".
//
// # Registry
//
//	s, err := surface.NewSurfaceByName("limited:legacy-mobile", 800, 600)
//	// or auto-select best available:
//	s, err := surface.NewSurface(800, 600)
package surface
