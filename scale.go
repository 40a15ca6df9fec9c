package ggscale

import (
	"context"
	"errors"
	"fmt"

	ggimage "github.com/gogpu/ggscale/internal/image"
	"github.com/gogpu/ggscale/probe"
	"github.com/gogpu/ggscale/surface"
)

// Downsample shrinks src by an integer factor using box averaging.
//
// The result is ceil(width/scale) × ceil(height/scale). Every output channel
// is the truncated mean of its source block; blocks along the right and
// bottom edges are narrower when the dimensions are not multiples of scale.
// A scale of 1 returns a copy.
func Downsample(src *PixelBuffer, scale int) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil pixel buffer", ErrInvalidDimensions)
	}
	dst, g, err := ggimage.Downsample(src.pix, src.width, src.height, scale)
	if err != nil {
		return nil, err
	}
	return &PixelBuffer{width: g.DrawWidth, height: g.DrawHeight, pix: dst}, nil
}

// Probe returns the smallest scale at which target stores a pixel when
// sized to (width/scale, height/scale), using the default bound.
func Probe(ctx context.Context, width, height int, target surface.Surface) (int, error) {
	p := probe.Prober{Logger: Logger()}
	r, err := p.Probe(ctx, width, height, target)
	if errors.Is(err, probe.ErrInvalidDimensions) {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return r.Scale, err
}
