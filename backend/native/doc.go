// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the present backend interfaces on the pure Go
// HAL of github.com/gogpu/wgpu.
//
// Any hal.Backend works. Production code opens a registered backend by
// variant, after importing its package for the side effect:
//
//	import _ "github.com/gogpu/wgpu/hal/vulkan"
//
//	inst, err := native.Open(gputypes.BackendVulkan)
//
// The CPU backend needs no GPU and renders into memory when created with
// zero window handles, which makes it the backend of choice for tests and
// headless runs:
//
//	inst, err := native.NewInstance(software.API{})
//	surface, err := inst.CreateSurface(0, 0)
//
// HAL objects are not reference counted. Views, encoders and command
// buffers released by the renderer are destroyed only once the queue
// reports the submission that used them as complete.
package native
