package ggscale

import (
	"image/color"
	"log/slog"
)

// Option configures a Renderer during creation.
// Use functional options to customize rendering behavior.
//
// Example:
//
//	// Probe only when the browser looks mobile, with a tighter bound.
//	r := ggscale.NewRenderer(
//	    ggscale.WithDevice(ggscale.UserAgent(ua)),
//	    ggscale.WithMaxScale(16),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	maxScale  int
	device    DeviceSignal
	pooled    bool
	workers   int
	exec      Executor
	ids       IDGenerator
	reference color.RGBA
	logger    *slog.Logger
}

// Executor runs a batch of independent functions and returns when all of
// them have finished.
type Executor interface {
	ExecuteAll(work []func())
}

// WithMaxScale bounds the probe search. Values ≤ 0 select the default.
func WithMaxScale(n int) Option {
	return func(o *options) {
		o.maxScale = n
	}
}

// WithDevice sets the device signal deciding whether to probe.
// Without it the target surface is asked via SurfaceSignal.
func WithDevice(d DeviceSignal) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithWorkers makes the Renderer downsample on its own pool of n workers.
// n ≤ 0 means GOMAXPROCS. The pool is released by Renderer.Close.
// WithExecutor takes precedence.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.pooled = true
		o.workers = n
	}
}

// WithExecutor makes the Renderer downsample on a caller-owned executor.
//
// Example:
//
//	pool := mypackage.NewPool()
//	r := ggscale.NewRenderer(ggscale.WithExecutor(pool))
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.exec = e
	}
}

// WithIDs tags every render with the next ID from g.
func WithIDs(g IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithReference sets the probe pixel. Its alpha is always forced opaque.
func WithReference(c color.RGBA) Option {
	return func(o *options) {
		o.reference = c
	}
}

// WithLogger sets the logger for this Renderer, overriding the
// package-wide logger from SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
