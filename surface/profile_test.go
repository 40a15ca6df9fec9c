// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestProfiles(t *testing.T) {
	want := []string{"desktop", "legacy-mobile", "mobile", "webgpu-default"}
	if got := Profiles(); !slices.Equal(got, want) {
		t.Errorf("Profiles() = %v, want %v", got, want)
	}
}

func TestLookupProfile(t *testing.T) {
	p, ok := LookupProfile("legacy-mobile")
	if !ok {
		t.Fatal("legacy-mobile profile not found")
	}
	if p.Limits.MaxArea != 5*1024*1024 {
		t.Errorf("MaxArea = %d, want %d", p.Limits.MaxArea, 5*1024*1024)
	}
	if !p.Constrained {
		t.Error("legacy-mobile should be constrained")
	}

	if _, ok := LookupProfile("toaster"); ok {
		t.Error("unknown profile should not be found")
	}
}

func TestProfileNew(t *testing.T) {
	s := ProfileDesktop.New(100, 100)
	defer s.Close()

	if s.Capabilities().Constrained {
		t.Error("desktop profile surface should not be constrained")
	}
	if err := s.Resize(20000, 20000); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !s.Limits().Fits(20000, 20000) {
		t.Error("desktop profile should have no limits")
	}

	m := ProfileMobile.New(1, 1)
	defer m.Close()
	if !m.Capabilities().Constrained {
		t.Error("mobile profile surface should be constrained")
	}
	if m.Limits().Fits(4097, 4096) {
		t.Error("mobile profile should reject 4097x4096")
	}
}

func TestLimitsFromGPU(t *testing.T) {
	l := LimitsFromGPU(gputypes.Limits{MaxTextureDimension2D: 2048})
	if l.MaxDimension != 2048 {
		t.Errorf("MaxDimension = %d, want 2048", l.MaxDimension)
	}
	if l.MaxArea != 0 {
		t.Errorf("MaxArea = %d, want 0", l.MaxArea)
	}

	def := gputypes.DefaultLimits()
	if ProfileWebGPU.Limits.MaxDimension != int(def.MaxTextureDimension2D) {
		t.Errorf("webgpu-default MaxDimension = %d, want %d",
			ProfileWebGPU.Limits.MaxDimension, def.MaxTextureDimension2D)
	}
}
