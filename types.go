// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Size is the drawable area of a window in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// Empty reports whether either dimension is zero. Minimized windows report
// an empty size on some platforms.
func (s Size) Empty() bool { return s.Width == 0 || s.Height == 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// AdapterInfo describes an adapter for logging and selection.
type AdapterInfo struct {
	gputypes.AdapterInfo

	// Fallback marks adapters that trade performance for availability,
	// such as software rasterizers. Selection skips them unless fallback
	// is forced, and then takes nothing else.
	Fallback bool
}

func (i AdapterInfo) String() string {
	s := fmt.Sprintf("%s (%s, %s)", i.Name, i.Backend, i.DeviceType)
	if i.Fallback {
		s += " [fallback]"
	}
	return s
}

// DownlevelLimits returns the conservative limits every adapter is
// expected to meet. Only the texture dimensions matter to a renderer that
// clears a surface.
func DownlevelLimits() gputypes.Limits {
	return gputypes.DownlevelLimits()
}

// UsingResolution returns base with the texture dimension limits raised to
// what the adapter supports, so the surface can be as large as the display
// allows.
func UsingResolution(base, supported gputypes.Limits) gputypes.Limits {
	base.MaxTextureDimension1D = supported.MaxTextureDimension1D
	base.MaxTextureDimension2D = supported.MaxTextureDimension2D
	base.MaxTextureDimension3D = supported.MaxTextureDimension3D
	return base
}

// LimitsWithin reports whether the texture dimension limits in required
// are satisfied by supported.
func LimitsWithin(required, supported gputypes.Limits) bool {
	return required.MaxTextureDimension1D <= supported.MaxTextureDimension1D &&
		required.MaxTextureDimension2D <= supported.MaxTextureDimension2D &&
		required.MaxTextureDimension3D <= supported.MaxTextureDimension3D
}

// SupportsFormat reports whether caps lists f.
func SupportsFormat(caps gputypes.SurfaceCapabilities, f gputypes.TextureFormat) bool {
	for _, v := range caps.Formats {
		if v == f {
			return true
		}
	}
	return false
}

// SupportsPresentMode reports whether caps lists m.
func SupportsPresentMode(caps gputypes.SurfaceCapabilities, m gputypes.PresentMode) bool {
	for _, v := range caps.PresentModes {
		if v == m {
			return true
		}
	}
	return false
}

// IsSRGB reports whether writes to f are sRGB encoded.
func IsSRGB(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8UnormSrgb || f == gputypes.TextureFormatBGRA8UnormSrgb
}

var presentModes = []gputypes.PresentMode{
	gputypes.PresentModeFifo,
	gputypes.PresentModeFifoRelaxed,
	gputypes.PresentModeImmediate,
	gputypes.PresentModeMailbox,
}

// ParsePresentMode accepts the names printed by gputypes.PresentMode,
// case-insensitively, with an optional hyphen ("fifo-relaxed").
func ParsePresentMode(s string) (gputypes.PresentMode, error) {
	key := strings.ReplaceAll(s, "-", "")
	for _, m := range presentModes {
		if strings.EqualFold(key, m.String()) {
			return m, nil
		}
	}
	return gputypes.PresentModeUndefined, fmt.Errorf("present: unknown present mode %q", s)
}

var powerPreferences = []gputypes.PowerPreference{
	gputypes.PowerPreferenceNone,
	gputypes.PowerPreferenceLowPower,
	gputypes.PowerPreferenceHighPerformance,
}

// ParsePowerPreference accepts "none", "low-power" and "high-performance"
// in any case. An empty string means no preference.
func ParsePowerPreference(s string) (gputypes.PowerPreference, error) {
	if s == "" {
		return gputypes.PowerPreferenceNone, nil
	}
	key := strings.ReplaceAll(s, "-", "")
	for _, p := range powerPreferences {
		if strings.EqualFold(key, p.String()) {
			return p, nil
		}
	}
	return gputypes.PowerPreferenceNone, fmt.Errorf("present: unknown power preference %q", s)
}
