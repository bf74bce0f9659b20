// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import "errors"

// Sentinel errors. Backend failures are wrapped around these so callers can
// branch with errors.Is while still seeing the backend's reason.
var (
	// ErrNoAdapter is returned when no adapter can drive the surface.
	ErrNoAdapter = errors.New("present: no compatible adapter")

	// ErrDeviceRequest is returned when the adapter refuses to open a device.
	ErrDeviceRequest = errors.New("present: device request failed")

	// ErrAcquireTexture is returned when the next swap chain texture
	// cannot be acquired.
	ErrAcquireTexture = errors.New("present: failed to acquire next swap chain texture")

	// ErrInvalidSize is returned for a zero width or height.
	ErrInvalidSize = errors.New("present: surface size must be non-zero")

	// ErrUnsupportedFormat is returned when a requested format is not in
	// the surface capabilities.
	ErrUnsupportedFormat = errors.New("present: texture format not supported by surface")

	// ErrUnsupportedPresentMode is returned when a requested present mode
	// is not in the surface capabilities.
	ErrUnsupportedPresentMode = errors.New("present: present mode not supported by surface")

	// ErrReleased is returned by operations on a released Renderer.
	ErrReleased = errors.New("present: renderer released")

	// ErrSurfaceLost is wrapped by backends when the surface became
	// outdated and must be reconfigured.
	ErrSurfaceLost = errors.New("present: surface lost")

	// ErrForeignObject is returned when a backend receives an object
	// created by a different backend.
	ErrForeignObject = errors.New("present: object belongs to another backend")
)
