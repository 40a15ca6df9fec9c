package ggscale

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ggimage "github.com/gogpu/ggscale/internal/image"
	"github.com/gogpu/ggscale/internal/parallel"
	"github.com/gogpu/ggscale/probe"
	"github.com/gogpu/ggscale/surface"
)

// Result describes a completed render.
type Result struct {
	// Width and Height are the dimensions presented on the surface.
	Width, Height int

	// Scale is the integer factor the image was shrunk by (1 = full size).
	Scale int

	// Attempts is the number of probe cycles run; 0 when no probe was needed.
	Attempts int

	// ID is the render's identifier from WithIDs, or empty.
	ID string
}

// Renderer presents pixel buffers on surfaces that may silently refuse
// large sizes.
//
// For each render it asks the device signal whether the device is
// constrained. Unconstrained devices get the image at full size. On
// constrained devices the surface is probed for the smallest working scale,
// and the image is box-downsampled by that factor before presenting.
//
// A Renderer may be used from multiple goroutines as long as each render
// uses its own surface.
type Renderer struct {
	opts    options
	exec    ggimage.Executor
	pool    *parallel.WorkerPool // owned, nil unless WithWorkers
	buffers *ggimage.Pool        // downsample destinations, reused across renders
}

// buffersPerSize is how many destination buffers of one size a Renderer keeps.
const buffersPerSize = 2

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{opts: o, buffers: ggimage.NewPool(buffersPerSize)}
	switch {
	case o.exec != nil:
		r.exec = o.exec
	case o.pooled:
		r.pool = parallel.NewWorkerPool(o.workers)
		r.exec = r.pool
	}
	return r
}

// Close releases the worker pool created by WithWorkers.
// Close is idempotent.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// logger returns the Renderer's logger, or the package-wide one.
func (r *Renderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// Render presents src on target, downsampling first when the device is
// constrained and the surface cannot hold the full size.
//
// On success target has been resized to (Result.Width, Result.Height) and
// holds the presented image. Any failure fails the whole render; no
// partial or placeholder image is presented.
func (r *Renderer) Render(ctx context.Context, src *PixelBuffer, target surface.Surface) (Result, error) {
	if src == nil {
		return Result{}, fmt.Errorf("%w: nil pixel buffer", ErrInvalidDimensions)
	}
	if err := validate(src.pix, src.width, src.height); err != nil {
		return Result{}, err
	}
	if target == nil {
		return Result{}, errors.New("ggscale: nil surface")
	}

	res := Result{Width: src.width, Height: src.height, Scale: 1}
	log := r.logger()
	if r.opts.ids != nil {
		res.ID = r.opts.ids.Next()
		log = log.With(slog.String("render", res.ID))
	}
	propagateLogger(target, log)

	device := r.opts.device
	if device == nil {
		device = SurfaceSignal{Surface: target}
	}

	if device.IsConstrainedDevice() {
		scale, err := r.findScale(ctx, src, target, log, &res)
		if err != nil {
			log.Warn("render failed", slog.Int("attempts", res.Attempts), slog.Any("err", err))
			return res, fmt.Errorf("ggscale: render %dx%d: %w", src.width, src.height, err)
		}
		res.Scale = scale
	}

	out := src
	if res.Scale > 1 {
		g, err := ggimage.NewGeometry(src.width, src.height, res.Scale)
		if err != nil {
			return res, fmt.Errorf("ggscale: downsample: %w", err)
		}
		dst, _, err := ggimage.DownsampleInto(r.buffers.Get(g.DstLen()), src.pix, src.width, src.height, res.Scale, r.exec)
		if err != nil {
			return res, fmt.Errorf("ggscale: downsample: %w", err)
		}
		defer r.buffers.Put(dst)
		log.Debug("downsample",
			slog.Int("scale", g.Scale),
			slog.Int("width", g.DrawWidth),
			slog.Int("height", g.DrawHeight),
			slog.Int("overflow_rows", g.OverflowRows),
			slog.Int("overflow_cols", g.OverflowCols))
		out = &PixelBuffer{width: g.DrawWidth, height: g.DrawHeight, pix: dst}
	}
	res.Width, res.Height = out.width, out.height

	if err := target.Resize(out.width, out.height); err != nil {
		return res, fmt.Errorf("ggscale: resize surface to %dx%d: %w", out.width, out.height, err)
	}
	if err := target.Present(out.pix, out.width, out.height); err != nil {
		return res, fmt.Errorf("ggscale: present: %w", err)
	}

	log.Info("rendered",
		slog.Int("scale", res.Scale),
		slog.Int("width", res.Width),
		slog.Int("height", res.Height),
		slog.Int("attempts", res.Attempts))
	return res, nil
}

// findScale probes target for the smallest working scale. Trials run at
// width/scale × height/scale but the image is presented at the rounded-up
// size, so the presented size is checked as well; a scale whose presented
// size is rejected is skipped and the search continues from the next one.
func (r *Renderer) findScale(ctx context.Context, src *PixelBuffer, target surface.Surface, log *slog.Logger, res *Result) (int, error) {
	p := probe.Prober{
		MaxScale:  r.opts.maxScale,
		Reference: r.opts.reference,
		Logger:    log,
	}

	start := 1
	for {
		pr, err := p.ProbeFrom(ctx, src.width, src.height, start, target)
		res.Attempts += pr.Attempts
		if err != nil {
			return 0, err
		}

		g, err := ggimage.NewGeometry(src.width, src.height, pr.Scale)
		if err != nil {
			return 0, err
		}
		if p.Verify(target, g.DrawWidth, g.DrawHeight) {
			return pr.Scale, nil
		}
		log.Debug("presented size rejected",
			slog.Int("scale", pr.Scale),
			slog.Int("width", g.DrawWidth),
			slog.Int("height", g.DrawHeight))
		start = pr.Scale + 1
	}
}

// RenderAdaptive presents a width×height RGBA8 buffer on target and returns
// the dimensions actually presented. It is a one-shot Renderer.Render.
//
// Example:
//
//	s := surface.ProfileMobile.New(1, 1)
//	w, h, err := ggscale.RenderAdaptive(ctx, pix, 8000, 6000, s)
func RenderAdaptive(ctx context.Context, pixels []byte, width, height int, target surface.Surface, opts ...Option) (finalWidth, finalHeight int, err error) {
	src, err := WrapPixels(pixels, width, height)
	if err != nil {
		return 0, 0, err
	}

	r := NewRenderer(opts...)
	defer r.Close()

	res, err := r.Render(ctx, src, target)
	if err != nil {
		return 0, 0, err
	}
	return res.Width, res.Height, nil
}
