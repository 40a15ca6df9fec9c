package ggscale

import (
	"strings"

	"github.com/gogpu/ggscale/surface"
)

// DeviceSignal reports whether the rendering device may impose undisclosed
// surface limits. Only constrained devices are probed.
type DeviceSignal interface {
	IsConstrainedDevice() bool
}

// Constrained is a fixed DeviceSignal.
type Constrained bool

// IsConstrainedDevice implements DeviceSignal.
func (c Constrained) IsConstrainedDevice() bool {
	return bool(c)
}

// UserAgent classifies a browser user agent string. Any agent containing
// "Mobi" is treated as a mobile device, the heuristic browser vendors
// recommend.
type UserAgent string

// IsConstrainedDevice implements DeviceSignal.
func (ua UserAgent) IsConstrainedDevice() bool {
	return strings.Contains(string(ua), "Mobi")
}

// SurfaceSignal asks the surface itself. Surfaces that do not implement
// surface.CapableSurface are treated as unconstrained.
type SurfaceSignal struct {
	Surface surface.Surface
}

// IsConstrainedDevice implements DeviceSignal.
func (s SurfaceSignal) IsConstrainedDevice() bool {
	cs, ok := s.Surface.(surface.CapableSurface)
	return ok && cs.Capabilities().Constrained
}
