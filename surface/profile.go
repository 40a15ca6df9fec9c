// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"sort"

	"github.com/gogpu/gputypes"
)

// Profile describes a class of device for LimitedSurface.
type Profile struct {
	// Name identifies the profile, e.g. "mobile".
	Name string

	// Limits are enforced silently by surfaces created from the profile.
	Limits Limits

	// Constrained is what the surface reports in Capabilities.
	Constrained bool
}

// New creates a LimitedSurface of the given size for the profile.
func (p Profile) New(width, height int) *LimitedSurface {
	s := NewLimitedSurface(width, height, p.Limits)
	s.constrained = p.Constrained
	return s
}

// LimitsFromGPU derives canvas limits from WebGPU device limits: a 2D
// texture can be at most MaxTextureDimension2D on each side.
func LimitsFromGPU(l gputypes.Limits) Limits {
	return Limits{MaxDimension: int(l.MaxTextureDimension2D)}
}

// Built-in profiles.
var (
	// ProfileDesktop has no limits.
	ProfileDesktop = Profile{Name: "desktop"}

	// ProfileMobile caps the canvas at 4096×4096 pixels worth of area,
	// the limit of current mobile Safari.
	ProfileMobile = Profile{
		Name:        "mobile",
		Limits:      Limits{MaxArea: 4096 * 4096},
		Constrained: true,
	}

	// ProfileLegacyMobile caps the canvas at 5 megapixels, the limit of
	// older iOS devices with 256 MB of RAM or less.
	ProfileLegacyMobile = Profile{
		Name:        "legacy-mobile",
		Limits:      Limits{MaxArea: 5 * 1024 * 1024},
		Constrained: true,
	}

	// ProfileWebGPU uses the default WebGPU texture dimension limit.
	ProfileWebGPU = Profile{
		Name:        "webgpu-default",
		Limits:      LimitsFromGPU(gputypes.DefaultLimits()),
		Constrained: true,
	}
)

var profiles = map[string]Profile{
	ProfileDesktop.Name:      ProfileDesktop,
	ProfileMobile.Name:       ProfileMobile,
	ProfileLegacyMobile.Name: ProfileLegacyMobile,
	ProfileWebGPU.Name:       ProfileWebGPU,
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Profiles returns the names of the built-in profiles, sorted.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
