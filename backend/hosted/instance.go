// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hosted

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/wgpu"
)

// Instance exposes a host's adapter and window surface.
type Instance struct {
	adapter  *Adapter
	surface  *Surface
	released bool
}

// New wraps a host's adapter and device. format and mode are what the host
// configured its window surface with; they are the only ones the surface
// reports.
func New(adapter *wgpu.Adapter, device *wgpu.Device, format gputypes.TextureFormat, mode gputypes.PresentMode) (*Instance, error) {
	if adapter == nil || device == nil || device.Queue() == nil {
		return nil, ErrNoDevice
	}
	if format == gputypes.TextureFormatUndefined {
		return nil, fmt.Errorf("%w: host surface format is undefined", present.ErrUnsupportedFormat)
	}
	inst := &Instance{}
	inst.adapter = &Adapter{instance: inst, wgpu: adapter, device: device}
	inst.surface = &Surface{instance: inst, format: format, mode: mode}
	present.Logger().Debug("hosted: instance created",
		"adapter", adapter.Info().Name, "format", format, "present_mode", mode)
	return inst, nil
}

// FromProvider is New for a gpucontext.DeviceProvider whose device and
// adapter are *wgpu.Device and *wgpu.Adapter. An undefined format falls
// back to the provider's SurfaceFormat.
func FromProvider(p gpucontext.DeviceProvider, format gputypes.TextureFormat, mode gputypes.PresentMode) (*Instance, error) {
	if p == nil {
		return nil, ErrNoDevice
	}
	device, ok := p.Device().(*wgpu.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device %T", ErrNoDevice, p.Device())
	}
	adapter, ok := p.Adapter().(*wgpu.Adapter)
	if !ok {
		return nil, fmt.Errorf("%w: adapter %T", ErrNoDevice, p.Adapter())
	}
	if format == gputypes.TextureFormatUndefined {
		format = p.SurfaceFormat()
	}
	return New(adapter, device, format, mode)
}

// RequestAdapter implements present.Instance over the host's only adapter.
func (i *Instance) RequestAdapter(opts *present.AdapterOptions) (present.Adapter, error) {
	if i.released {
		return nil, ErrReleased
	}
	return present.SelectAdapter([]present.Adapter{i.adapter}, opts)
}

// Adapter returns the host's adapter.
func (i *Instance) Adapter() *Adapter { return i.adapter }

// Surface returns the host's window surface.
func (i *Instance) Surface() *Surface { return i.surface }

// Options returns the selection options that pick the host's adapter. A
// host running on a software rasterizer needs fallback forced.
func (i *Instance) Options() []present.Option {
	if i.adapter.Info().Fallback {
		return []present.Option{present.WithForceFallbackAdapter(true)}
	}
	return nil
}

// Release implements present.Instance. The host's objects stay alive.
func (i *Instance) Release() { i.released = true }

// Adapter wraps the host's wgpu.Adapter.
type Adapter struct {
	instance *Instance
	wgpu     *wgpu.Adapter
	device   *wgpu.Device
}

// Info implements present.Adapter. CPU adapters are reported as fallback
// adapters.
func (a *Adapter) Info() present.AdapterInfo {
	info := a.wgpu.Info()
	return present.AdapterInfo{
		AdapterInfo: info,
		Fallback:    info.DeviceType == gputypes.DeviceTypeCPU,
	}
}

// Limits implements present.Adapter.
func (a *Adapter) Limits() gputypes.Limits { return a.wgpu.Limits() }

// RequestDevice implements present.Adapter. The returned Device shares the
// host's device; destroying it does not destroy the host's.
func (a *Adapter) RequestDevice(desc *present.DeviceDescriptor) (present.Device, present.Queue, error) {
	if a.instance.released {
		return nil, nil, ErrReleased
	}
	limits := present.DownlevelLimits()
	label := ""
	if desc != nil {
		limits = desc.RequiredLimits
		label = desc.Label
	}
	if !present.LimitsWithin(limits, a.Limits()) {
		return nil, nil, fmt.Errorf("hosted: requested texture limits %d/%d/%d exceed adapter %q",
			limits.MaxTextureDimension1D, limits.MaxTextureDimension2D, limits.MaxTextureDimension3D,
			a.wgpu.Info().Name)
	}
	d := &Device{adapter: a, wgpu: a.device, queue: a.device.Queue(), label: label}
	return d, &Queue{device: d}, nil
}

// Release implements present.Adapter. The adapter belongs to the host.
func (a *Adapter) Release() {}

var (
	_ present.Instance = (*Instance)(nil)
	_ present.Adapter  = (*Adapter)(nil)
)
