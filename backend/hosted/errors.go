// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hosted

import "errors"

var (
	// ErrNoDevice is returned by New when the host has no device with a
	// working queue.
	ErrNoDevice = errors.New("hosted: host has no usable device")

	// ErrNotConfigured is returned when a texture is acquired from a surface
	// that was never configured.
	ErrNotConfigured = errors.New("hosted: surface not configured")

	// ErrNoFrame is returned when a texture is acquired outside Begin/End.
	ErrNoFrame = errors.New("hosted: no frame in progress")

	// ErrTextureInFlight is returned when a second texture is acquired in
	// the same frame.
	ErrTextureInFlight = errors.New("hosted: surface texture already acquired")

	// ErrPassOpen is returned when an encoder is used while a render pass is
	// still open.
	ErrPassOpen = errors.New("hosted: render pass still open")

	// ErrEncoderFinished is returned when a finished encoder records again.
	ErrEncoderFinished = errors.New("hosted: command encoder already finished")

	// ErrAlreadySubmitted is returned when a command buffer is submitted twice.
	ErrAlreadySubmitted = errors.New("hosted: command buffer already submitted")

	// ErrReleased is returned by operations on released objects.
	ErrReleased = errors.New("hosted: object released")
)
