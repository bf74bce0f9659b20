// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

var (
	// ErrNotConfigured is returned when a texture is acquired from a surface
	// that was never configured.
	ErrNotConfigured = errors.New("native: surface not configured")

	// ErrTextureInFlight is returned when a second texture is acquired before
	// the first was presented or discarded.
	ErrTextureInFlight = errors.New("native: surface texture already acquired")

	// ErrPassOpen is returned when an encoder is used while a render pass is
	// still open.
	ErrPassOpen = errors.New("native: render pass still open")

	// ErrEncoderFinished is returned when a finished encoder records again.
	ErrEncoderFinished = errors.New("native: command encoder already finished")

	// ErrAlreadySubmitted is returned when a command buffer is submitted twice.
	ErrAlreadySubmitted = errors.New("native: command buffer already submitted")

	// ErrNoReadback is returned by Surface.Snapshot for backends whose
	// surfaces cannot be read back.
	ErrNoReadback = errors.New("native: surface does not support readback")

	// ErrReleased is returned by operations on released objects.
	ErrReleased = errors.New("native: object released")
)
