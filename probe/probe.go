// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package probe discovers the smallest integer scale factor at which a
// render surface still works.
//
// Some devices refuse large canvases without reporting an error: the
// allocation silently fails and drawing becomes a no-op. The prober detects
// this empirically. For each candidate scale it resizes the surface to
// (width/scale, height/scale), writes an opaque reference pixel at (0, 0) and
// reads it back. The first scale whose read-back alpha is fully opaque wins.
//
// The search is bounded: a surface that never accepts any size yields
// ErrSurfaceUnusable instead of looping forever.
package probe

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
)

// DefaultMaxScale is the scale bound used when Prober.MaxScale is zero.
const DefaultMaxScale = 64

// Errors.
var (
	// ErrSurfaceUnusable is returned when no scale up to the bound produced a
	// faithful read-back.
	ErrSurfaceUnusable = errors.New("probe: surface unusable")

	// ErrInvalidDimensions is returned for non-positive image dimensions.
	ErrInvalidDimensions = errors.New("probe: invalid dimensions")
)

// Reference is the default probe color: opaque white.
var Reference = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Target is the part of a surface the prober needs.
// surface.Surface satisfies it.
type Target interface {
	// Resize changes the surface size. A surface that cannot honor the size
	// may still return nil; that failure is what the probe detects.
	Resize(width, height int) error

	// WritePixel sets one pixel.
	WritePixel(x, y int, c color.RGBA)

	// ReadPixel returns one pixel as stored by the surface.
	ReadPixel(x, y int) color.RGBA
}

// Result reports the outcome of a probe.
type Result struct {
	// Scale is the smallest scale at which the surface read back the
	// reference pixel.
	Scale int

	// Attempts is the number of resize/write/read cycles performed.
	Attempts int
}

// Prober runs the scale search. The zero value is ready to use.
type Prober struct {
	// MaxScale bounds the search. Zero means DefaultMaxScale.
	MaxScale int

	// Reference is the pixel written at (0, 0). Its alpha is forced to 0xFF.
	// The zero value means the package-level Reference.
	Reference color.RGBA

	// Logger receives one debug record per trial. Nil disables logging.
	Logger *slog.Logger
}

// Scale probes target with a default Prober and returns the scale.
func Scale(ctx context.Context, width, height int, target Target) (int, error) {
	var p Prober
	r, err := p.Probe(ctx, width, height, target)
	return r.Scale, err
}

// Probe returns the smallest scale ≥ 1 at which target faithfully stores a
// pixel when sized to (width/scale, height/scale).
//
// The search stops with ErrSurfaceUnusable once scale passes MaxScale or
// max(width, height); beyond the latter every trial is a 1×1 surface.
// Cancellation of ctx is checked between trials.
// The surface is left at the size of the last trial.
func (p *Prober) Probe(ctx context.Context, width, height int, target Target) (Result, error) {
	return p.ProbeFrom(ctx, width, height, 1, target)
}

// ProbeFrom is like Probe but starts the search at scale start. Callers use
// it to continue a search after a scale that passed its trial turned out
// unusable. A start past the bound yields ErrSurfaceUnusable with no trials.
func (p *Prober) ProbeFrom(ctx context.Context, width, height, start int, target Target) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	ref := p.reference()
	limit := p.Limit(width, height)
	log := p.Logger
	attempts := 0

	for scale := max(1, start); scale <= limit; scale++ {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempts}, fmt.Errorf("probe: scale %d: %w", scale, err)
		}

		w, h := max(1, width/scale), max(1, height/scale)
		attempts++

		ok, err := trial(target, w, h, ref)
		if log != nil {
			log.Debug("probe trial",
				slog.Int("scale", scale),
				slog.Int("width", w),
				slog.Int("height", h),
				slog.Bool("ok", ok),
				slog.Any("err", err))
		}
		if ok {
			return Result{Scale: scale, Attempts: attempts}, nil
		}
	}

	if log != nil {
		log.Warn("probe exhausted", slog.Int("max_scale", limit), slog.Int("attempts", attempts))
	}
	return Result{Attempts: attempts}, fmt.Errorf("%w: no faithful read-back up to scale %d", ErrSurfaceUnusable, limit)
}

// Limit returns the largest scale the search tries for a width×height image.
func (p *Prober) Limit(width, height int) int {
	limit := p.MaxScale
	if limit <= 0 {
		limit = DefaultMaxScale
	}
	return min(limit, max(width, height))
}

// Verify resizes target to width×height and reports whether it stores the
// reference pixel at that size. It is the same check a search trial makes,
// for sizes other than width/scale × height/scale.
func (p *Prober) Verify(target Target, width, height int) bool {
	ok, _ := trial(target, width, height, p.reference())
	return ok
}

func (p *Prober) reference() color.RGBA {
	ref := p.Reference
	if ref == (color.RGBA{}) {
		ref = Reference
	}
	ref.A = 0xFF
	return ref
}

// trial performs one resize/write/read cycle. A resize error is reported
// as a failed trial.
func trial(target Target, w, h int, ref color.RGBA) (bool, error) {
	if err := target.Resize(w, h); err != nil {
		return false, err
	}
	target.WritePixel(0, 0, ref)
	got := target.ReadPixel(0, 0)
	return got.A == 0xFF, nil
}
