// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Renderer owns a configured surface and the device that draws into it.
//
// A Renderer is not safe for concurrent use. Drive it from the thread that
// runs the window's event loop.
type Renderer struct {
	adapter Adapter
	device  Device
	queue   Queue
	surface Surface

	caps   gputypes.SurfaceCapabilities
	config gputypes.SurfaceConfiguration
	size   Size

	recorder   Recorder
	sizeSource func() Size
	label      string

	frames   uint64
	released bool
}

// New creates a device for surface and configures the surface at size.
//
// The format is the surface's preferred format unless WithFormat is given,
// the present mode is Fifo unless WithPresentMode is given, and the alpha
// mode is the first the surface reports.
//
// On success the Renderer owns surface; Release frees it. The instance
// stays with the caller. On error everything acquired here is released and
// surface is left untouched.
func New(inst Instance, size Size, surface Surface, opts ...Option) (*Renderer, error) {
	if size.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	o := newOptions(opts)

	adapter, device, queue, err := create(inst, surface, &o)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		adapter:    adapter,
		device:     device,
		queue:      queue,
		surface:    surface,
		size:       size,
		recorder:   o.recorder,
		sizeSource: o.sizeSource,
		label:      o.label,
	}

	cfg, caps, err := surfaceConfig(surface.Capabilities(adapter), size, &o)
	if err != nil {
		r.releaseDevice()
		return nil, err
	}
	r.caps = caps
	r.config = cfg

	if err := r.configure(); err != nil {
		r.releaseDevice()
		return nil, err
	}
	return r, nil
}

// surfaceConfig picks the configuration for size from caps and options.
func surfaceConfig(caps gputypes.SurfaceCapabilities, size Size, o *options) (gputypes.SurfaceConfiguration, gputypes.SurfaceCapabilities, error) {
	if len(caps.Formats) == 0 {
		return gputypes.SurfaceConfiguration{}, caps, fmt.Errorf("%w: surface reports no formats", ErrUnsupportedFormat)
	}

	format := caps.Formats[0]
	if o.format != gputypes.TextureFormatUndefined {
		if !SupportsFormat(caps, o.format) {
			return gputypes.SurfaceConfiguration{}, caps, fmt.Errorf("%w: %v", ErrUnsupportedFormat, o.format)
		}
		format = o.format
	}

	if len(caps.PresentModes) > 0 && !SupportsPresentMode(caps, o.presentMode) {
		return gputypes.SurfaceConfiguration{}, caps, fmt.Errorf("%w: %v", ErrUnsupportedPresentMode, o.presentMode)
	}

	alpha := gputypes.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	if o.alphaModeSet {
		alpha = o.alphaMode
	}

	return gputypes.SurfaceConfiguration{
		Usage:       gputypes.TextureUsageRenderAttachment,
		Format:      format,
		Width:       size.Width,
		Height:      size.Height,
		PresentMode: o.presentMode,
		AlphaMode:   alpha,
	}, caps, nil
}

func (r *Renderer) configure() error {
	if err := r.surface.Configure(r.adapter, r.device, &r.config); err != nil {
		return fmt.Errorf("present: configure surface %dx%d: %w", r.config.Width, r.config.Height, err)
	}
	Logger().Debug("present: surface configured",
		"width", r.config.Width,
		"height", r.config.Height,
		"format", r.config.Format,
		"present_mode", r.config.PresentMode,
		"alpha_mode", r.config.AlphaMode,
	)
	return nil
}

// Resize reconfigures the surface for the new window size. A zero
// dimension is rejected, and a failed reconfiguration keeps the previous
// size and configuration.
func (r *Renderer) Resize(size Size) error {
	if r.released {
		return ErrReleased
	}
	if size.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	prev := r.config
	r.config.Width = size.Width
	r.config.Height = size.Height
	if err := r.configure(); err != nil {
		r.config = prev
		return err
	}
	r.size = size
	return nil
}

// Present renders one frame with the Recorder and presents it.
//
// If the surface reports it was lost, Present reconfigures it once and
// retries the acquisition. A frame that fails after acquisition is
// discarded, not presented.
func (r *Renderer) Present() error {
	if r.released {
		return ErrReleased
	}

	if r.sizeSource != nil {
		size := r.sizeSource()
		if size.Empty() {
			Logger().Debug("present: skipping frame for empty window", "size", size)
			return nil
		}
		if size != r.size {
			if err := r.Resize(size); err != nil {
				return err
			}
		}
	}

	tex, err := r.acquire()
	if err != nil {
		return err
	}

	if err := r.render(tex); err != nil {
		tex.Discard()
		Logger().Debug("present: frame discarded", "err", err)
		return err
	}

	if err := tex.Present(); err != nil {
		return fmt.Errorf("present: present frame: %w", err)
	}
	r.frames++
	return nil
}

func (r *Renderer) acquire() (SurfaceTexture, error) {
	tex, err := r.surface.AcquireTexture()
	if err != nil && errors.Is(err, ErrSurfaceLost) {
		Logger().Warn("present: surface lost, reconfiguring", "err", err)
		if cerr := r.configure(); cerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrAcquireTexture, cerr)
		}
		tex, err = r.surface.AcquireTexture()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquireTexture, err)
	}
	return tex, nil
}

func (r *Renderer) render(tex SurfaceTexture) error {
	view, err := tex.CreateView()
	if err != nil {
		return fmt.Errorf("present: create view: %w", err)
	}
	defer view.Release()

	enc, err := r.device.CreateCommandEncoder(r.label)
	if err != nil {
		return fmt.Errorf("present: create command encoder: %w", err)
	}
	defer enc.Release()

	target := Target{View: view, Size: r.size, Format: r.config.Format}
	if err := r.recorder.Record(enc, target); err != nil {
		return err
	}

	buf, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("present: finish commands: %w", err)
	}
	defer buf.Release()

	if err := r.queue.Submit(buf); err != nil {
		return fmt.Errorf("present: submit: %w", err)
	}
	return nil
}

// Size returns the current window size.
func (r *Renderer) Size() Size { return r.size }

// Config returns a copy of the active surface configuration.
func (r *Renderer) Config() gputypes.SurfaceConfiguration {
	cfg := r.config
	if cfg.ViewFormats != nil {
		cfg.ViewFormats = append([]gputypes.TextureFormat(nil), cfg.ViewFormats...)
	}
	return cfg
}

// Capabilities returns what the surface reported for the adapter.
func (r *Renderer) Capabilities() gputypes.SurfaceCapabilities { return r.caps }

// Info describes the adapter in use.
func (r *Renderer) Info() AdapterInfo { return r.adapter.Info() }

// Frames returns the number of frames presented.
func (r *Renderer) Frames() uint64 { return r.frames }

// Release frees the surface, device and adapter. It is safe to call more
// than once.
func (r *Renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.surface.Release()
	r.releaseDevice()
}

func (r *Renderer) releaseDevice() {
	r.device.Poll(true)
	r.device.Destroy()
	r.adapter.Release()
}

// Device, Queue, Adapter and SurfaceFormat let other gogpu libraries share
// the renderer's device through gpucontext.

// Device returns the device as a gpucontext.Device.
func (r *Renderer) Device() gpucontext.Device { return r.device }

// Queue returns the queue as a gpucontext.Queue.
func (r *Renderer) Queue() gpucontext.Queue { return r.queue }

// Adapter returns the adapter as a gpucontext.Adapter.
func (r *Renderer) Adapter() gpucontext.Adapter { return r.adapter }

// AdapterInfo returns the adapter's name and type as gpucontext reports
// them.
func (r *Renderer) AdapterInfo() gpucontext.AdapterInfo {
	info := r.adapter.Info()
	return gpucontext.AdapterInfo{Name: info.Name, Type: adapterType(info.DeviceType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterTypeUnknown
}

// SurfaceFormat returns the configured surface format.
func (r *Renderer) SurfaceFormat() gputypes.TextureFormat { return r.config.Format }

var _ gpucontext.DeviceProvider = (*Renderer)(nil)
