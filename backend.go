// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import "github.com/gogpu/gputypes"

// Instance is the entry point of a GPU backend. Implementations live under
// backend/ and wrap a concrete WebGPU implementation.
type Instance interface {
	// RequestAdapter returns an adapter matching opts.
	RequestAdapter(opts *AdapterOptions) (Adapter, error)
	Release()
}

// AdapterOptions narrows adapter selection.
type AdapterOptions struct {
	PowerPreference      gputypes.PowerPreference
	ForceFallbackAdapter bool

	// CompatibleSurface, when set, excludes adapters that cannot present
	// to it.
	CompatibleSurface Surface
}

// Adapter is a physical device (or a software rasterizer).
type Adapter interface {
	Info() AdapterInfo
	Limits() gputypes.Limits
	RequestDevice(desc *DeviceDescriptor) (Device, Queue, error)
	Release()
}

// DeviceDescriptor configures device creation.
type DeviceDescriptor struct {
	Label          string
	RequiredLimits gputypes.Limits
}

// Device is a logical GPU device. Poll and Destroy match
// gpucontext.Device so a Device can be handed to gogpu libraries directly.
type Device interface {
	CreateCommandEncoder(label string) (CommandEncoder, error)
	Poll(wait bool)
	Destroy()
}

// Queue submits finished command buffers in order.
type Queue interface {
	Submit(buffers ...CommandBuffer) error
}

// Surface is the presentable image of a window.
type Surface interface {
	// Capabilities lists what the surface supports with adapter a. An
	// adapter that cannot present to the surface yields no formats.
	Capabilities(a Adapter) gputypes.SurfaceCapabilities

	// Configure (re)creates the swap chain. It may be called repeatedly.
	Configure(a Adapter, d Device, cfg *gputypes.SurfaceConfiguration) error

	// AcquireTexture returns the next swap chain texture.
	AcquireTexture() (SurfaceTexture, error)

	Release()
}

// SurfaceTexture is one swap chain image. Exactly one of Present or
// Discard must be called on it.
type SurfaceTexture interface {
	CreateView() (TextureView, error)
	Present() error
	Discard()
}

// TextureView is a render target view.
type TextureView interface {
	Release()
}

// CommandEncoder records GPU commands. Release is safe after Finish.
type CommandEncoder interface {
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error)
	Finish() (CommandBuffer, error)
	Release()
}

// RenderPass is an open render pass.
type RenderPass interface {
	End() error
}

// CommandBuffer is a finished, submittable recording.
type CommandBuffer interface {
	Release()
}

// RenderPassDescriptor describes a render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []ColorAttachment
}

// ColorAttachment is one color target of a render pass.
type ColorAttachment struct {
	View       TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}
