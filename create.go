// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"errors"
	"fmt"
)

// Create selects an adapter able to present to surface and opens a device
// on it. The device limits start from the downlevel defaults with the
// texture dimensions raised to the adapter's maximum.
//
// The caller owns the returned objects. On error nothing is left open.
func Create(inst Instance, surface Surface, opts ...Option) (Device, Adapter, Queue, error) {
	o := newOptions(opts)
	adapter, device, queue, err := create(inst, surface, &o)
	if err != nil {
		return nil, nil, nil, err
	}
	return device, adapter, queue, nil
}

func create(inst Instance, surface Surface, o *options) (Adapter, Device, Queue, error) {
	adapter, err := inst.RequestAdapter(&AdapterOptions{
		PowerPreference:      o.powerPreference,
		ForceFallbackAdapter: o.forceFallback,
		CompatibleSurface:    surface,
	})
	if err != nil {
		if errors.Is(err, ErrNoAdapter) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if adapter == nil {
		return nil, nil, nil, ErrNoAdapter
	}

	info := adapter.Info()
	Logger().Info("present: adapter selected",
		"name", info.Name,
		"backend", info.Backend,
		"type", info.DeviceType,
		"fallback", info.Fallback,
	)

	limits := UsingResolution(DownlevelLimits(), adapter.Limits())
	device, queue, err := adapter.RequestDevice(&DeviceDescriptor{
		Label:          o.label,
		RequiredLimits: limits,
	})
	if err != nil {
		adapter.Release()
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrDeviceRequest, err)
	}

	Logger().Info("present: device created",
		"label", o.label,
		"max_texture_2d", limits.MaxTextureDimension2D,
	)
	return adapter, device, queue, nil
}
