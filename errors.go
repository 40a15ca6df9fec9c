package ggscale

import (
	ggimage "github.com/gogpu/ggscale/internal/image"
	"github.com/gogpu/ggscale/probe"
)

// Errors returned by ggscale. They are the same values the sub-packages
// return, so errors.Is works whichever package produced them.
var (
	// ErrInvalidDimensions is returned for non-positive dimensions, a scale
	// below 1, or a pixel slice whose length is not width*height*4.
	ErrInvalidDimensions = ggimage.ErrInvalidDimensions

	// ErrSurfaceUnusable is returned when probing found no scale at which the
	// surface works.
	ErrSurfaceUnusable = probe.ErrSurfaceUnusable
)
