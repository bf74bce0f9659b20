// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/wgpu/hal"
)

// Adapter wraps a hal.ExposedAdapter.
type Adapter struct {
	instance *Instance
	exposed  hal.ExposedAdapter
	released bool
}

// Info implements present.Adapter. CPU adapters are reported as fallback
// adapters.
func (a *Adapter) Info() present.AdapterInfo {
	return present.AdapterInfo{
		AdapterInfo: a.exposed.Info,
		Fallback:    a.exposed.Info.DeviceType == gputypes.DeviceTypeCPU,
	}
}

// Limits implements present.Adapter.
func (a *Adapter) Limits() gputypes.Limits {
	return a.exposed.Capabilities.Limits
}

// RequestDevice implements present.Adapter.
func (a *Adapter) RequestDevice(desc *present.DeviceDescriptor) (present.Device, present.Queue, error) {
	if a.released {
		return nil, nil, ErrReleased
	}
	limits := present.DownlevelLimits()
	label := ""
	if desc != nil {
		limits = desc.RequiredLimits
		label = desc.Label
	}
	if !present.LimitsWithin(limits, a.Limits()) {
		return nil, nil, fmt.Errorf("native: requested texture limits %d/%d/%d exceed adapter %q",
			limits.MaxTextureDimension1D, limits.MaxTextureDimension2D, limits.MaxTextureDimension3D,
			a.exposed.Info.Name)
	}

	open, err := a.exposed.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		return nil, nil, fmt.Errorf("native: open device on %q: %w", a.exposed.Info.Name, err)
	}

	d := &Device{hal: open.Device, queue: open.Queue, label: label}
	return d, &Queue{device: d}, nil
}

// Release implements present.Adapter.
func (a *Adapter) Release() {
	if a.released {
		return
	}
	a.released = true
	a.exposed.Adapter.Destroy()
}

var _ present.Adapter = (*Adapter)(nil)
